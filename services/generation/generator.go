package generation

import "context"

// TextGenerator produces free text from a prompt. Implementations are remote
// calls and may fail; callers always have a degraded path.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

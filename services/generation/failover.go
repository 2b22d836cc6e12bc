package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Failover routes generation calls to the primary provider until its first
// failure, then permanently to the secondary. With no secondary configured,
// primary failures propagate to the caller.
type Failover struct {
	primary   TextGenerator
	secondary TextGenerator
	health    *ProviderHealth
	logger    *zap.Logger
}

func NewFailover(primary, secondary TextGenerator, health *ProviderHealth, logger *zap.Logger) *Failover {
	return &Failover{primary: primary, secondary: secondary, health: health, logger: logger}
}

func (f *Failover) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	if f.primary == nil || f.health.PrimaryDown() {
		return f.generateSecondary(ctx, prompt, maxTokens, temperature)
	}

	text, err := f.primary.Generate(ctx, prompt, maxTokens, temperature)
	if err == nil {
		return text, nil
	}

	f.health.MarkPrimaryDown()
	f.logger.Warn("primary generation provider failed, switching to secondary for process lifetime",
		zap.Error(err))

	if f.secondary == nil {
		return "", err
	}
	return f.secondary.Generate(ctx, prompt, maxTokens, temperature)
}

func (f *Failover) generateSecondary(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	if f.secondary == nil {
		return "", fmt.Errorf("no generation provider available")
	}
	return f.secondary.Generate(ctx, prompt, maxTokens, temperature)
}

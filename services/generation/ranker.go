package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scenery/models"

	"go.uber.org/zap"
)

const (
	rankMaxTokens   = 512
	rankTemperature = 0.3
	templateTopN    = 5
)

// Ranker asks the generation layer to order fetched hotels against the
// user's request. Every failure path degrades to a templated summary; a
// ranking problem never fails a turn.
type Ranker struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewRanker(gen TextGenerator, logger *zap.Logger) *Ranker {
	return &Ranker{gen: gen, logger: logger}
}

// Rank runs the enrichment step under the given wall-clock timeout. A
// timeout of zero or less means the budget is already spent: the generation
// call is not made at all.
func (r *Ranker) Rank(ctx context.Context, hotels []models.Hotel, userRequest, location string, timeout time.Duration) *models.RankingResult {
	if len(hotels) == 0 || r.gen == nil || timeout <= 0 {
		return TemplateSummary(hotels, location)
	}

	rankCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := r.gen.Generate(rankCtx, buildRankPrompt(hotels, userRequest), rankMaxTokens, rankTemperature)
	if err != nil || strings.TrimSpace(text) == "" {
		r.logger.Warn("ranking generation degraded to template",
			zap.Duration("timeout", timeout), zap.Error(err))
		return TemplateSummary(hotels, location)
	}

	ranked := parseRankedNames(text, hotels)
	if len(ranked) == 0 {
		ranked = hotelNames(hotels, templateTopN)
	}
	return &models.RankingResult{
		RankedHotels: ranked,
		LLMResponse:  text,
		Mode:         "llm",
		Source:       "generation",
	}
}

// TemplateSummary is the degraded enrichment: a fixed summary over the
// already-sorted results.
func TemplateSummary(hotels []models.Hotel, location string) *models.RankingResult {
	msg := fmt.Sprintf("I found %d options", len(hotels))
	if location != "" {
		msg += " in " + location
	}
	msg += ". Here are the top picks by guest rating."
	return &models.RankingResult{
		RankedHotels: hotelNames(hotels, templateTopN),
		LLMResponse:  msg,
		Mode:         "fallback",
		Source:       "template",
	}
}

func buildRankPrompt(hotels []models.Hotel, userRequest string) string {
	var sb strings.Builder
	sb.WriteString("You are a hotel ranking assistant. Rank these hotels for the request: ")
	sb.WriteString(userRequest)
	sb.WriteString("\nAnswer with a numbered list of hotel names, best first, then one short sentence of reasoning.\n\n")
	for i, h := range hotels {
		fmt.Fprintf(&sb, "%d. %s | rating %.1f (%d reviews) | %s\n", i+1, h.Name, h.Rating, h.Reviews, h.Price)
	}
	return sb.String()
}

// parseRankedNames matches known hotel names in the response, in the order
// the model mentioned them.
func parseRankedNames(text string, hotels []models.Hotel) []string {
	lowered := strings.ToLower(text)
	type mention struct {
		pos  int
		name string
	}
	var mentions []mention
	for _, h := range hotels {
		if h.Name == "" {
			continue
		}
		if pos := strings.Index(lowered, strings.ToLower(h.Name)); pos >= 0 {
			mentions = append(mentions, mention{pos, h.Name})
		}
	}
	for i := 1; i < len(mentions); i++ {
		for j := i; j > 0 && mentions[j].pos < mentions[j-1].pos; j-- {
			mentions[j], mentions[j-1] = mentions[j-1], mentions[j]
		}
	}
	out := make([]string, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, m.name)
	}
	return out
}

func hotelNames(hotels []models.Hotel, limit int) []string {
	var out []string
	for _, h := range hotels {
		if h.Name == "" {
			continue
		}
		out = append(out, h.Name)
		if len(out) == limit {
			break
		}
	}
	return out
}

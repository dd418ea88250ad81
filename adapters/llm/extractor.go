package llm

import (
	"context"
	"fmt"

	"veristat/domain/claim"
	"veristat/internal/config"
)

// Extractor implements claim extraction over a Completer. Each tool keeps
// its own model and temperature because the mean-extraction prompt needs a
// stronger model than the test-extraction one.
type Extractor struct {
	completer Completer
	grim      config.ToolConfig
	statcheck config.ToolConfig
}

// NewExtractor wires an extractor from a model backend and per-tool config.
func NewExtractor(completer Completer, cfg config.Config) *Extractor {
	return &Extractor{
		completer: completer,
		grim:      cfg.GRIM,
		statcheck: cfg.Statcheck,
	}
}

// ExtractTestClaims pulls statistical test reports out of one segment.
func (e *Extractor) ExtractTestClaims(ctx context.Context, segment string) ([]claim.TestClaim, []error, error) {
	content, err := e.completer.Complete(ctx, e.statcheck.Model, e.statcheck.Temperature, statcheckSystem, statcheckPrompt(segment))
	if err != nil {
		return nil, nil, fmt.Errorf("test claim extraction: %w", err)
	}
	claims, skips := claim.DecodeTestClaims([]byte(cleanPayload(content)))
	return claims, skips, nil
}

// ExtractMeanClaims pulls reported means with sample sizes out of one
// segment.
func (e *Extractor) ExtractMeanClaims(ctx context.Context, segment string) ([]claim.MeanClaim, []error, error) {
	content, err := e.completer.Complete(ctx, e.grim.Model, e.grim.Temperature, grimSystem, grimPrompt(segment))
	if err != nil {
		return nil, nil, fmt.Errorf("mean claim extraction: %w", err)
	}
	claims, skips := claim.DecodeMeanClaims([]byte(cleanPayload(content)))
	return claims, skips, nil
}

package app

import (
	"context"
	"fmt"

	"veristat/domain/claim"
	"veristat/internal"
	"veristat/internal/config"
	"veristat/ports"
)

// Pipeline runs a full document check: read, segment, extract claims,
// evaluate. Extraction is the only non-deterministic stage, so consensus
// repeats the whole pipeline and votes on the resulting rows.
type Pipeline struct {
	reader    ports.DocumentReader
	extractor ports.ClaimExtractor
	grim      *GRIMService
	statcheck *StatcheckService
	cfg       config.Config
	log       *internal.Logger
}

// NewPipeline wires a pipeline from its stages.
func NewPipeline(reader ports.DocumentReader, extractor ports.ClaimExtractor, cfg config.Config, log *internal.Logger) *Pipeline {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Pipeline{
		reader:    reader,
		extractor: extractor,
		grim:      NewGRIMService(log),
		statcheck: NewStatcheckService(cfg.SignificanceLevel, log),
		cfg:       cfg,
		log:       log,
	}
}

// Alpha reports the significance level the statcheck stage uses.
func (p *Pipeline) Alpha() float64 { return p.statcheck.Alpha() }

// RunGRIM checks every mean claim extracted from the document at path.
func (p *Pipeline) RunGRIM(ctx context.Context, path string) (GRIMResult, error) {
	segments, err := p.reader.ReadSegments(path, p.cfg.GRIM.MaxWords, p.cfg.GRIM.OverlapWords)
	if err != nil {
		return GRIMResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var claims []claim.MeanClaim
	skipped := 0
	for _, seg := range segments {
		cs, skips, err := p.extractor.ExtractMeanClaims(ctx, seg)
		if err != nil {
			return GRIMResult{}, fmt.Errorf("extracting mean claims: %w", err)
		}
		for _, serr := range skips {
			p.log.Warn("grim: dropping malformed claim: %v", serr)
		}
		skipped += len(skips)
		claims = append(claims, cs...)
	}
	res := p.grim.Run(claims)
	res.Skipped += skipped
	p.log.Info("grim: %d rows, %d skipped, %d inapplicable from %d segments",
		len(res.Rows), res.Skipped, res.Inapplicable, len(segments))
	return res, nil
}

// RunStatcheck recalculates every test claim extracted from the document
// at path.
func (p *Pipeline) RunStatcheck(ctx context.Context, path string) (StatcheckResult, error) {
	segments, err := p.reader.ReadSegments(path, p.cfg.Statcheck.MaxWords, p.cfg.Statcheck.OverlapWords)
	if err != nil {
		return StatcheckResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var claims []claim.TestClaim
	skipped := 0
	for _, seg := range segments {
		cs, skips, err := p.extractor.ExtractTestClaims(ctx, seg)
		if err != nil {
			return StatcheckResult{}, fmt.Errorf("extracting test claims: %w", err)
		}
		for _, serr := range skips {
			p.log.Warn("statcheck: dropping malformed claim: %v", serr)
		}
		skipped += len(skips)
		claims = append(claims, cs...)
	}
	res := p.statcheck.Run(claims)
	res.Skipped += skipped
	p.log.Info("statcheck: %d rows, %d skipped from %d segments",
		len(res.Rows), res.Skipped, len(segments))
	return res, nil
}

// RunGRIMConsensus runs the GRIM pipeline k times and returns the most
// frequent result.
func (p *Pipeline) RunGRIMConsensus(ctx context.Context, path string, k int) (GRIMResult, error) {
	results, err := runConsensus(ctx, k, func(ctx context.Context) (GRIMResult, error) {
		return p.RunGRIM(ctx, path)
	})
	if err != nil {
		return GRIMResult{}, err
	}
	return Aggregate(results, serializeGRIM), nil
}

// RunStatcheckConsensus runs the statcheck pipeline k times and returns
// the most frequent result.
func (p *Pipeline) RunStatcheckConsensus(ctx context.Context, path string, k int) (StatcheckResult, error) {
	results, err := runConsensus(ctx, k, func(ctx context.Context) (StatcheckResult, error) {
		return p.RunStatcheck(ctx, path)
	})
	if err != nil {
		return StatcheckResult{}, err
	}
	return Aggregate(results, serializeStatcheck), nil
}

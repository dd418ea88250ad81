package app

import (
	"github.com/montanaflynn/stats"

	"veristat/adapters/stats/statcheck"
	"veristat/domain/claim"
	"veristat/domain/verdict"
	"veristat/internal"
)

// Summary aggregates a statcheck batch. The p-value statistics are computed
// over the upper bounds of the recalculated ranges, which is the side the
// significance call is made on.
type Summary struct {
	Claims       int
	Consistent   int
	Inconsistent int
	MedianUpperP float64
	MeanUpperP   float64
}

// StatcheckResult is one statcheck run over a claim batch.
type StatcheckResult struct {
	Rows    []verdict.Row
	Skipped int
	Summary Summary
}

// StatcheckService recalculates reported test statistics.
type StatcheckService struct {
	engine *statcheck.Engine
	log    *internal.Logger
}

// NewStatcheckService creates a statcheck service at the given alpha.
func NewStatcheckService(alpha float64, log *internal.Logger) *StatcheckService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &StatcheckService{engine: statcheck.New(alpha), log: log}
}

// Alpha reports the significance level in use.
func (s *StatcheckService) Alpha() float64 { return s.engine.Alpha() }

// Run evaluates each claim in input order after dropping adjacent
// duplicates. Claims the engine cannot evaluate (missing degrees of
// freedom, unknown families) are counted as skipped, not failed.
func (s *StatcheckService) Run(claims []claim.TestClaim) StatcheckResult {
	var res StatcheckResult
	var uppers []float64
	for _, c := range claim.DedupeAdjacent(claims) {
		v, err := s.engine.Evaluate(c)
		if err != nil {
			s.log.Warn("statcheck: skipping %s claim: %v", c.Type, err)
			res.Skipped++
			continue
		}
		res.Rows = append(res.Rows, v.Row())
		res.Summary.Claims++
		switch v.Consistent {
		case verdict.Consistent:
			res.Summary.Consistent++
		case verdict.Inconsistent:
			res.Summary.Inconsistent++
		}
		if v.ValidRange != nil {
			uppers = append(uppers, v.ValidRange.Upper)
		}
	}
	if len(uppers) > 0 {
		if m, err := stats.Median(uppers); err == nil {
			res.Summary.MedianUpperP = m
		}
		if m, err := stats.Mean(uppers); err == nil {
			res.Summary.MeanUpperP = m
		}
	}
	return res
}

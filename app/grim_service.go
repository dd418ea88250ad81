// Package app orchestrates the checking pipelines: claims in, verdict rows
// out, with consensus across repeated extraction runs.
package app

import (
	"veristat/adapters/stats/grim"
	"veristat/domain/claim"
	"veristat/domain/verdict"
	"veristat/internal"
)

// GRIMResult is one GRIM run over a claim batch. Skipped counts claims
// dropped at validation and Inapplicable counts claims GRIM cannot decide,
// so an empty row set is distinguishable from an empty input.
type GRIMResult struct {
	Rows         []verdict.Row
	Skipped      int
	Inapplicable int
}

// GRIMService evaluates mean claims.
type GRIMService struct {
	log *internal.Logger
}

// NewGRIMService creates a GRIM service.
func NewGRIMService(log *internal.Logger) *GRIMService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &GRIMService{log: log}
}

// Run checks each claim in input order. Adjacent duplicates (overlapping
// extraction windows) are dropped first; claims whose sample size exceeds
// the decimal resolution are reported as inapplicable rather than judged.
func (s *GRIMService) Run(claims []claim.MeanClaim) GRIMResult {
	var res GRIMResult
	for _, c := range claim.DedupeAdjacent(claims) {
		if !c.GRIMApplicable() {
			s.log.Warn("grim: mean %s with n=%d exceeds 10^%d resolution, not decidable",
				c.MeanLiteral, c.SampleSize, c.Decimals())
			res.Inapplicable++
			continue
		}
		res.Rows = append(res.Rows, grim.Evaluate(c).Row())
	}
	return res
}

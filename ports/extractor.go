// Package ports defines the interfaces between the checking core and its
// collaborators: claim extraction, document reading and result persistence.
package ports

import (
	"context"

	"veristat/domain/claim"
)

// ClaimExtractor pulls structured claims out of a text segment. Extraction
// is non-deterministic (language models behind it); the consensus runner
// exists because two calls over the same segment may disagree. Extractors
// return the claims that validated plus one error per record that did not.
type ClaimExtractor interface {
	ExtractTestClaims(ctx context.Context, segment string) ([]claim.TestClaim, []error, error)
	ExtractMeanClaims(ctx context.Context, segment string) ([]claim.MeanClaim, []error, error)
}

// DocumentReader turns a source file into overlapping text segments sized
// for the extractor.
type DocumentReader interface {
	ReadSegments(path string, maxWords, overlapWords int) ([]string, error)
}

package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"veristat/domain/verdict"
)

// MaxConsensusRuns bounds how many extraction runs a consensus vote may use.
const MaxConsensusRuns = 5

// Aggregate picks the most frequent row set across runs. Each run is keyed
// by a canonical serialization of its full row list, so two runs agree only
// when every row matches. Ties go to the earliest run with the winning
// count, and an empty input yields the zero result.
func Aggregate[T any](runs []T, serialize func(T) string) T {
	if len(runs) == 0 {
		var zero T
		return zero
	}
	keys := make([]string, len(runs))
	counts := make(map[string]int, len(runs))
	for i, run := range runs {
		keys[i] = serialize(run)
		counts[keys[i]]++
	}
	best := 0
	seen := map[string]bool{keys[0]: true}
	for i := 1; i < len(runs); i++ {
		if seen[keys[i]] {
			continue
		}
		seen[keys[i]] = true
		if counts[keys[i]] > counts[keys[best]] {
			best = i
		}
	}
	return runs[best]
}

// serializeRows renders a row list to CSV so that semantically equal runs
// hash to the same key regardless of how they were produced.
func serializeRows(rows []verdict.Row) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, r := range rows {
		_ = w.Write(r.Fields())
	}
	w.Flush()
	return b.String()
}

// serializeStatcheck keys a statcheck run by its rows and skip count. The
// summary derives from the rows, so it does not enter the key.
func serializeStatcheck(r StatcheckResult) string {
	return fmt.Sprintf("%d\n%s", r.Skipped, serializeRows(r.Rows))
}

// serializeGRIM keys a GRIM run by its rows and drop counts.
func serializeGRIM(r GRIMResult) string {
	return fmt.Sprintf("%d %d\n%s", r.Skipped, r.Inapplicable, serializeRows(r.Rows))
}

// runConsensus executes run k times concurrently and returns every result
// in run order. k is clamped to [1, MaxConsensusRuns]. The first failed run
// fails the whole vote.
func runConsensus[T any](ctx context.Context, k int, run func(context.Context) (T, error)) ([]T, error) {
	if k < 1 {
		k = 1
	}
	if k > MaxConsensusRuns {
		k = MaxConsensusRuns
	}
	results := make([]T, k)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < k; i++ {
		g.Go(func() error {
			r, err := run(gctx)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Package segment groups a morpheme sequence into lexical units. Candidate
// runs are constrained by composition rules over part-of-speech letters,
// resolved to a citation form and dictionary entries, and the partition with
// the highest total score is chosen by dynamic programming.
package segment

import (
	"context"
	"log/slog"

	"japanesereader/model"
	"japanesereader/pos"
)

// Segmenter finds the best-scoring partition of a morpheme sequence.
type Segmenter struct {
	resolver *Resolver
	log      *slog.Logger
}

func NewSegmenter(r *Resolver) *Segmenter {
	return &Segmenter{resolver: r, log: slog.Default().With("component", "segment")}
}

// Resolver returns the resolver units are built with.
func (s *Segmenter) Resolver() *Resolver { return s.resolver }

type cell struct {
	score int
	unit  *Unit
	next  int
}

// Segment partitions ms into units maximizing the summed unit score. The
// units cover ms exactly, in order. On equal scores the partition whose
// first unit is longer wins.
func (s *Segmenter) Segment(ctx context.Context, ms []model.Morpheme) ([]*Unit, error) {
	n := len(ms)
	if n == 0 {
		return nil, nil
	}
	letters := pos.Letters(ms)

	// best[i] is the best partition of ms[i:]; best[n] is the empty one.
	best := make([]cell, n+1)
	best[n] = cell{next: n}
	for i := n - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		best[i] = cell{score: -1}
		for j := i + 1; j <= n; j++ {
			if !Valid(letters[i:j]) {
				continue
			}
			if j < n && best[j].unit == nil {
				continue
			}
			u, err := s.resolver.Resolve(ctx, ms[i:j], i)
			if err != nil {
				return nil, err
			}
			if score := u.Score() + best[j].score; score >= best[i].score {
				best[i] = cell{score: score, unit: u, next: j}
			}
		}
	}

	var units []*Unit
	for i := 0; i < n; i = best[i].next {
		units = append(units, best[i].unit)
	}
	s.log.Debug("segmented", "morphemes", n, "units", len(units), "score", best[0].score)
	return units, nil
}

package tokenize

import (
	"context"

	"japanesereader/ingest"
	"japanesereader/model"
)

// Tokenized pairs an ingest.Sentence with the morphemes produced for it.
type Tokenized struct {
	Sentence  ingest.Sentence
	Morphemes []model.Morpheme
	Err       error
}

// Start launches a goroutine that consumes sentences from in, tokenizes them
// and publishes the results in order. The returned channel is closed when in
// is closed or ctx is done.
func (k *Kagome) Start(ctx context.Context, in <-chan ingest.Sentence) <-chan Tokenized {
	out := make(chan Tokenized, cap(in))
	go func() {
		defer close(out)
		k.log.Debug("tokenizer stage started")
		for {
			var s ingest.Sentence
			select {
			case <-ctx.Done():
				k.log.Debug("tokenizer stage stopped", "err", ctx.Err())
				return
			case sent, ok := <-in:
				if !ok {
					return
				}
				s = sent
			}
			ms, err := k.Tokenize(ctx, s.Text)
			if err != nil {
				k.log.Warn("tokenize failed", "sentence", s.ID, "err", err)
			}
			select {
			case <-ctx.Done():
				return
			case out <- Tokenized{Sentence: s, Morphemes: ms, Err: err}:
				k.log.Debug("tokenized", "sentence", s.ID, "morphemes", len(ms))
			}
		}
	}()
	return out
}

package analyze

import (
	"context"

	"japanesereader/tokenize"
)

// Result is the outcome of analyzing one tokenized sentence.
type Result struct {
	Report Report
	Err    error
}

// Start consumes tokenized sentences from in and publishes their reports in
// order. The returned channel is closed when in is closed or ctx is done.
func (a *Analyzer) Start(ctx context.Context, in <-chan tokenize.Tokenized) <-chan Result {
	out := make(chan Result, cap(in))
	go func() {
		defer close(out)
		for {
			var t tokenize.Tokenized
			select {
			case <-ctx.Done():
				return
			case tk, ok := <-in:
				if !ok {
					return
				}
				t = tk
			}

			res := Result{Err: t.Err}
			if t.Err == nil {
				res.Report, res.Err = a.AnalyzeMorphemes(ctx, t.Sentence, t.Morphemes)
			}
			if res.Err != nil {
				a.logger.Warn("analyze failed", "sentence", t.Sentence.ID, "err", res.Err)
				res.Report = Report{SentenceID: t.Sentence.ID, Text: t.Sentence.Text}
			}
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
		}
	}()
	return out
}

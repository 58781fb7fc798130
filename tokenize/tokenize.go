// Package tokenize wraps the kagome morphological analyzer. The UniDic
// analyzer splits text at the finest granularity segmentation composes
// from; the IPA analyzer is kept as a second opinion for readings.
package tokenize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"japanesereader/model"
)

// Kagome tokenizes text with one kagome dictionary. It is safe for
// concurrent use.
type Kagome struct {
	name string
	t    *tokenizer.Tokenizer
	log  *slog.Logger
}

func newKagome(name string, d *dict.Dict) (*Kagome, error) {
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("tokenize: %s: %w", name, err)
	}
	return &Kagome{name: name, t: t, log: slog.Default().With("component", "tokenize", "dict", name)}, nil
}

// NewUniDic returns the primary analyzer. Its tags carry all six levels:
// four part-of-speech levels, conjugation type and conjugation form.
func NewUniDic() (*Kagome, error) { return newKagome("uni", uni.Dict()) }

// NewIPA returns the secondary analyzer.
func NewIPA() (*Kagome, error) { return newKagome("ipa", ipa.Dict()) }

// Name returns the dictionary the analyzer was built with.
func (k *Kagome) Name() string { return k.name }

// Tokenize splits text into morphemes in normal mode.
func (k *Kagome) Tokenize(ctx context.Context, text string) ([]model.Morpheme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return convert(k.t.Analyze(text, tokenizer.Normal)), nil
}

// Modes runs the analyzer in normal, search and extended modes, for
// comparing segmentations.
func (k *Kagome) Modes(ctx context.Context, text string) (map[string][]model.Morpheme, error) {
	res := make(map[string][]model.Morpheme, 3)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return res, nil
	}
	res["normal"] = convert(k.t.Analyze(text, tokenizer.Normal))
	res["search"] = convert(k.t.Analyze(text, tokenizer.Search))
	res["extended"] = convert(k.t.Analyze(text, tokenizer.Extended))
	return res, nil
}

func convert(ktoks []tokenizer.Token) []model.Morpheme {
	out := make([]model.Morpheme, 0, len(ktoks))
	for _, kt := range ktoks {
		levels := kt.POS()
		features := make([]string, 6)
		copy(features, levels[:min(len(levels), 4)])
		features[4], _ = kt.InflectionalType()
		features[5], _ = kt.InflectionalForm()

		base, ok := kt.BaseForm()
		if !ok || base == "*" {
			base = kt.Surface
		}
		out = append(out, model.Morpheme{
			Surface:  kt.Surface,
			Reading:  reading(kt),
			BaseForm: base,
			POS:      model.NewPOS(features),
			Start:    kt.Start,
			End:      kt.End,
		})
	}
	return out
}

// reading returns the katakana reading of a token. UniDic carries no reading
// field, only the pronunciation, so that is used when the reading is absent.
func reading(kt tokenizer.Token) string {
	for _, get := range []func() (string, bool){kt.Reading, kt.Pronunciation} {
		if r, ok := get(); ok && r != "" && r != "*" {
			return r
		}
	}
	return ""
}

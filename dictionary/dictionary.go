// Package dictionary holds JMdict entries behind an FST headword index.
package dictionary

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"

	"japanesereader/model"
)

// Dictionary maps kanji and kana headwords to entries. It is read-only after
// construction and safe for concurrent use.
type Dictionary struct {
	entries  []model.Entry
	postings [][]int
	fst      *vellum.FST
}

// Load reads a JMdict file and indexes it.
func Load(path string) (*Dictionary, error) {
	entries, _, err := LoadJMdict(path)
	if err != nil {
		return nil, err
	}
	return New(entries)
}

// New indexes entries by every kanji and kana form.
func New(entries []model.Entry) (*Dictionary, error) {
	byForm := make(map[string][]int)
	for i, e := range entries {
		seen := make(map[string]bool, len(e.Kanji)+len(e.Kana))
		for _, forms := range [][]string{e.Kanji, e.Kana} {
			for _, f := range forms {
				if f == "" || seen[f] {
					continue
				}
				seen[f] = true
				byForm[f] = append(byForm[f], i)
			}
		}
	}

	keys := make([]string, 0, len(byForm))
	for k := range byForm {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary: fst builder: %w", err)
	}
	postings := make([][]int, 0, len(keys))
	for i, k := range keys {
		if err := builder.Insert([]byte(k), uint64(i)); err != nil {
			builder.Close()
			return nil, fmt.Errorf("dictionary: fst insert %q: %w", k, err)
		}
		postings = append(postings, byForm[k])
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("dictionary: fst close: %w", err)
	}
	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("dictionary: fst load: %w", err)
	}
	return &Dictionary{entries: entries, postings: postings, fst: fst}, nil
}

// Lookup returns the entries having form as a kanji or kana headword, in
// dictionary order.
func (d *Dictionary) Lookup(ctx context.Context, form string) ([]model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, ok, err := d.fst.Get([]byte(form))
	if err != nil {
		return nil, fmt.Errorf("dictionary: lookup %q: %w", form, err)
	}
	if !ok {
		return nil, nil
	}
	ids := d.postings[idx]
	out := make([]model.Entry, 0, len(ids))
	for _, i := range ids {
		out = append(out, d.entries[i])
	}
	return out, nil
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Headwords returns the number of distinct indexed forms.
func (d *Dictionary) Headwords() int { return d.fst.Len() }

// Close releases the FST.
func (d *Dictionary) Close() error {
	return d.fst.Close()
}

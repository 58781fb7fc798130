// Package lookup memoises calls into the dictionary and the translation
// service behind bounded caches, collapsing concurrent identical requests.
package lookup

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"japanesereader/metrics"
	"japanesereader/model"
)

const (
	dictionarySource  = "dictionary"
	translationSource = "translation"
)

// Dictionary looks up entries by headword.
type Dictionary interface {
	Lookup(ctx context.Context, form string) ([]model.Entry, error)
}

// CachedDictionary memoises successful lookups of the wrapped dictionary.
// Failures are not cached.
type CachedDictionary struct {
	next    Dictionary
	cache   *lru.Cache[string, []model.Entry]
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewDictionary(next Dictionary, size int, m *metrics.Metrics) (*CachedDictionary, error) {
	c, err := lru.New[string, []model.Entry](max(size, 1))
	if err != nil {
		return nil, fmt.Errorf("lookup: dictionary cache: %w", err)
	}
	return &CachedDictionary{
		next:    next,
		cache:   c,
		metrics: m,
		logger:  slog.Default().With("component", "lookup-cache"),
	}, nil
}

// Lookup serves form from the cache, or from the wrapped dictionary with
// concurrent misses for the same form sharing one call. The shared call does
// not inherit cancellation, so one caller giving up does not fail the others.
func (d *CachedDictionary) Lookup(ctx context.Context, form string) ([]model.Entry, error) {
	if entries, ok := d.cache.Get(form); ok {
		d.metrics.CacheHit(dictionarySource)
		return entries, nil
	}
	d.metrics.CacheMiss(dictionarySource)
	shared := context.WithoutCancel(ctx)
	ch := d.group.DoChan(form, func() (interface{}, error) {
		if entries, ok := d.cache.Get(form); ok {
			return entries, nil
		}
		entries, err := d.next.Lookup(shared, form)
		if err != nil {
			return nil, err
		}
		d.cache.Add(form, entries)
		return entries, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			d.metrics.LookupFailure(dictionarySource)
			d.logger.Warn("dictionary lookup failed", "form", form, "err", res.Err)
			return nil, res.Err
		}
		return res.Val.([]model.Entry), nil
	}
}

// Len returns the number of cached forms.
func (d *CachedDictionary) Len() int { return d.cache.Len() }

// Package analyze builds the per-sentence reading report: it segments a
// sentence into units and, for each unit, resolves its reading, conjugation
// and dictionary senses, falling back to machine translation.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/width"

	"japanesereader/ingest"
	"japanesereader/kanji"
	"japanesereader/metrics"
	"japanesereader/model"
	"japanesereader/pos"
	"japanesereader/reconcile"
	"japanesereader/segment"
	"japanesereader/translate"
)

const (
	caseParticles = "がでとにのはへを"
	symbolReading = "きごう"
)

type Options struct {
	// Workers bounds the units processed concurrently. Zero means 8.
	Workers int
	Kanji   *kanji.Readings
	Metrics *metrics.Metrics
}

// Analyzer turns sentences into reports. It is safe for concurrent use.
type Analyzer struct {
	tok     segment.Tokenizer
	seg     *segment.Segmenter
	tr      translate.Translator
	kanji   *kanji.Readings
	metrics *metrics.Metrics
	workers int
	logger  *slog.Logger
}

// New returns an analyzer. tr may be nil, in which case every translation
// is the placeholder.
func New(tok segment.Tokenizer, seg *segment.Segmenter, tr translate.Translator, opts Options) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	return &Analyzer{
		tok:     tok,
		seg:     seg,
		tr:      tr,
		kanji:   opts.Kanji,
		metrics: opts.Metrics,
		workers: opts.Workers,
		logger:  slog.Default().With("component", "analyze"),
	}
}

// Analyze tokenizes and reports on s.
func (a *Analyzer) Analyze(ctx context.Context, s ingest.Sentence) (Report, error) {
	ms, err := a.tok.Tokenize(ctx, s.Text)
	if err != nil {
		return Report{}, fmt.Errorf("analyze: tokenize: %w", err)
	}
	return a.AnalyzeMorphemes(ctx, s, ms)
}

// unitWork carries one unit through the report phases.
type unitWork struct {
	unit        *segment.Unit
	readings    segment.Readings
	reading     string // hiragana
	display     string
	matchRead   bool
	skip        bool
	report      UnitReport
	needsSearch bool
}

// AnalyzeMorphemes reports on s from already tokenized morphemes.
func (a *Analyzer) AnalyzeMorphemes(ctx context.Context, s ingest.Sentence, ms []model.Morpheme) (Report, error) {
	start := time.Now()
	units, err := a.seg.Segment(ctx, ms)
	if err != nil {
		return Report{}, fmt.Errorf("analyze: segment: %w", err)
	}

	rep := Report{SentenceID: s.ID, Text: s.Text, Surfaces: make([]string, len(units))}
	for i, u := range units {
		rep.Surfaces[i] = u.Surface()
		rep.Score += u.Score()
	}
	rep.Clauses = Clauses(rep.Surfaces)
	if len(units) == 0 {
		a.metrics.Sentence(0, time.Since(start))
		return rep, nil
	}

	work := make([]*unitWork, len(units))
	for i, u := range units {
		work[i] = &unitWork{unit: u, matchRead: true}
	}

	// readings decide which units repeat earlier ones
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	g.Go(func() error {
		if s.Text != "" {
			rep.Translation = translate.OrPlaceholder(gctx, a.tr, s.Text)
		}
		return nil
	})
	for _, w := range work {
		g.Go(func() error {
			r, err := a.seg.Resolver().Reading(gctx, w.unit)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				a.logger.Warn("reading failed", "surface", w.unit.Surface(), "err", err)
			}
			w.readings = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	seen := make(map[string]int)
	for i, w := range work {
		a.classify(i, w, seen)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for _, w := range work {
		if !w.needsSearch {
			continue
		}
		g.Go(func() error { return a.search(gctx, w) })
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	for _, w := range work {
		if !w.skip {
			rep.Units = append(rep.Units, w.report)
		}
	}
	a.metrics.Sentence(len(units), time.Since(start))
	return rep, nil
}

// classify fills the header of a unit report and decides whether the unit
// is omitted, reported in one line, repeats an earlier unit or needs a
// dictionary search.
func (a *Analyzer) classify(i int, w *unitWork, seen map[string]int) {
	u := w.unit
	surface := u.Surface()
	w.display = pos.Display(u.POS())
	w.reading = pos.KatakanaToHiragana(w.readings.Surface)

	switch {
	case u.Class() == pos.Blank:
		w.skip = true
		return
	case u.Class() == pos.SupplementarySymbol:
		if fullwidthAlphanumeric(surface) || !u.Recognized() {
			w.skip = true
			return
		}
		if pos.FoldLongVowels(w.reading) == pos.FoldLongVowels(symbolReading) {
			w.matchRead = false
			w.reading = ""
		}
	}

	start, end := u.Span()
	w.report = UnitReport{
		Index:     i,
		Kind:      KindWord,
		Surface:   surface,
		POS:       w.display,
		Start:     start,
		End:       end,
		Score:     u.Score(),
		Morphemes: morphemeSurfaces(u.Morphemes()),
		Letters:   u.Letters(),
		Pattern:   u.Pattern().String(),
	}
	if vc := u.VerbClass(); vc != pos.NoClass {
		w.report.VerbClass = vc.String()
	}
	if w.reading != "" && w.reading != surface {
		w.report.Reading = w.reading
	}

	switch {
	case u.Class() == pos.Particle && len([]rune(surface)) == 1 && strings.Contains(caseParticles, surface):
		w.report.Kind = KindParticle
		return
	case w.display == "numeral":
		w.report.Kind = KindNumeral
		return
	}

	w.report.Furigana = a.kanji.Furigana(surface, w.readings.Surface)
	if u.Citation() != surface {
		w.report.Citation = u.Citation()
	}
	w.report.Conjugations = u.Conjugations()
	if d := u.Diagnostics(); len(d) > 0 {
		w.report.Diagnostics = d
		a.metrics.AmbiguousClass()
		a.logger.Debug("unit diagnostics", "surface", surface, "diagnostics", d)
	}

	key := strings.Join([]string{strings.Join(u.POS().Strings(), ","), u.Citation(), surface, w.reading}, "\x00")
	if first, ok := seen[key]; ok {
		w.report.Kind = KindRepeat
		w.report.SeeUnit = &first
		return
	}
	seen[key] = i
	w.needsSearch = true
}

// search attaches dictionary matches to a word report, retrying without
// reading matching for kanji surfaces and falling back to a translation of
// the citation form.
func (a *Analyzer) search(ctx context.Context, w *unitWork) error {
	u := w.unit
	rec := a.seg.Resolver().Reconciler()
	q := reconcile.Query{
		Surface:         u.Surface(),
		Citation:        u.Citation(),
		POS:             u.POS(),
		Reading:         w.readings.Surface,
		CitationReading: w.readings.Citation,
	}
	if !w.matchRead {
		q.Reading = ""
	}

	matches, err := rec.Search(ctx, q, w.matchRead)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.logger.Warn("dictionary search failed", "citation", q.Citation, "err", err)
	}
	showKana := false
	if len(matches) == 0 && w.matchRead && pos.HasKanji(q.Surface) {
		w.report.NoReadingMatch = true
		showKana = true
		matches, err = rec.Search(ctx, q, false)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Warn("dictionary search failed", "citation", q.Citation, "err", err)
		}
	}

	if len(matches) == 0 {
		w.report.NoMatch = true
		if w.display != "proper noun" {
			w.report.RawTag = strings.Join(u.POS().Strings(), ",")
		}
		w.report.Fallback = translate.OrPlaceholder(ctx, a.tr, u.Citation())
		return nil
	}
	for _, m := range matches {
		w.report.Entries = append(w.report.Entries, entryReport(m, showKana))
	}
	return nil
}

func morphemeSurfaces(ms []model.Morpheme) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Surface
	}
	return out
}

func entryReport(m reconcile.Match, showKana bool) EntryReport {
	er := EntryReport{ID: m.Entry.ID, Kanji: m.Entry.Kanji, Senses: make([]SenseReport, 0, len(m.Senses))}
	if showKana {
		er.Kana = m.Entry.Kana
	}
	for _, i := range m.Senses {
		s := m.Entry.Senses[i]
		er.Senses = append(er.Senses, SenseReport{Index: i, Glosses: s.Glosses, POS: s.POSCodes()})
	}
	return er
}

// fullwidthAlphanumeric reports whether s is made only of fullwidth ASCII
// variants (Ａ, ３, ！ ...).
func fullwidthAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if width.LookupRune(r).Kind() != width.EastAsianFullwidth || r == '　' {
			return false
		}
	}
	return true
}

package segment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"japanesereader/conjugate"
	"japanesereader/model"
	"japanesereader/pos"
	"japanesereader/reconcile"
)

// ErrCompositionContract is returned when a run that fails the composition
// rules is asked to be resolved.
var ErrCompositionContract = errors.New("segment: run violates composition rules")

// Tokenizer splits text into morphemes.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]model.Morpheme, error)
}

// Dictionary looks up entries by headword.
type Dictionary interface {
	Lookup(ctx context.Context, form string) ([]model.Entry, error)
}

// Resolver turns a validated run of morphemes into a Unit: it picks the
// citation form and head tag, conjugates the citation and looks it up.
type Resolver struct {
	tok       Tokenizer
	secondary Tokenizer
	dict      Dictionary
	rec       *reconcile.Reconciler
	engine    *conjugate.Engine
	log       *slog.Logger
}

// NewResolver returns a resolver. secondary is an optional second analyzer
// consulted only for readings; it may be nil.
func NewResolver(tok, secondary Tokenizer, dict Dictionary, engine *conjugate.Engine) *Resolver {
	return &Resolver{
		tok:       tok,
		secondary: secondary,
		dict:      dict,
		rec:       reconcile.New(dict, engine.Rules()),
		engine:    engine,
		log:       slog.Default().With("component", "segment"),
	}
}

// Reconciler returns the tag reconciler the resolver looks words up with.
func (r *Resolver) Reconciler() *reconcile.Reconciler { return r.rec }

// Resolve builds the unit for run, which begins at morpheme offset start of
// its sentence. Dictionary failures are logged and leave the unit
// unrecognized; only cancellation and a run that breaks the composition
// rules are errors.
func (r *Resolver) Resolve(ctx context.Context, run []model.Morpheme, start int) (*Unit, error) {
	letters := pos.Letters(run)
	pattern, ok := Validate(letters)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCompositionContract, letters)
	}

	var sb strings.Builder
	for _, m := range run {
		sb.WriteString(m.Surface)
	}
	u := &Unit{
		morphemes: run,
		start:     start,
		letters:   letters,
		pattern:   pattern,
		surface:   sb.String(),
	}

	if hyp, head, ok := r.potentialForm(ctx, u); ok {
		u.citation, u.head, u.potential = hyp, head, true
	} else {
		u.citation = citationForm(run, letters)
		u.head = headTag(run, letters)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if guessesClass(u.head) {
		vc, err := pos.GuessVerbClass(u.head)
		u.verbClass = vc
		if err != nil {
			u.diagnostics = append(u.diagnostics, fmt.Sprintf("%v: %s", err, strings.Join(u.head.Strings(), ",")))
			r.log.Debug("unclassifiable verb", "surface", u.surface, "tag", u.head.ConjugationType())
		}
	}

	_, u.classes, u.index = r.paradigms(ctx, u.citation, u.head)

	u.entries = r.lookup(ctx, u)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.score = Score(u.Recognized(), len(run))
	return u, nil
}

// guessesClass reports whether a head tag is classified as a verb. The
// negative and desiderative auxiliaries inflect as adjectives.
func guessesClass(p model.POS) bool {
	switch pos.Of(p) {
	case pos.Verb:
		return true
	case pos.AuxiliaryVerb:
		ct := p.ConjugationType()
		return ct != "助動詞-ナイ" && ct != "助動詞-タイ"
	}
	return false
}

// citationForm picks the dictionary form of a run. Verb chains are cited by
// the base form of their leading verb; adjective runs by their first
// morpheme; anything else concatenates base forms up to and including the
// first morpheme that is inflected.
func citationForm(run []model.Morpheme, letters string) string {
	switch letters[0] {
	case 'v':
		i := strings.IndexByte(letters, 'v')
		var sb strings.Builder
		for _, m := range run[:i] {
			sb.WriteString(m.Surface)
		}
		sb.WriteString(baseForm(run[i]))
		return sb.String()
	case 'j':
		return baseForm(run[0])
	}
	var sb strings.Builder
	for _, m := range run {
		b := baseForm(m)
		sb.WriteString(b)
		if b != m.Surface {
			break
		}
	}
	return sb.String()
}

// headTag picks the morpheme whose tag represents the run.
func headTag(run []model.Morpheme, letters string) model.POS {
	switch letters[0] {
	case 'v':
		return run[strings.IndexByte(letters, 'v')].POS
	case 'j', 'x':
		return run[0].POS
	}
	i := 1
	for i < len(letters) && strings.IndexByte("xs", letters[len(letters)-i]) >= 0 {
		i++
	}
	return run[len(run)-i].POS
}

func baseForm(m model.Morpheme) string {
	if m.BaseForm == "" || m.BaseForm == "*" {
		return m.Surface
	}
	return m.BaseForm
}

// potentialForm tests whether a verb unit the tokenizer failed to reduce is
// the potential form of a dictionary verb (飲める from 飲む). It returns the
// hypothesised citation and its tag.
func (r *Resolver) potentialForm(ctx context.Context, u *Unit) (string, model.POS, bool) {
	if u.letters[0] != 'v' {
		return "", model.POS{}, false
	}
	first := u.morphemes[0]
	var hyp string
	var shifted bool
	switch {
	case len(u.morphemes) == 1 && baseForm(first) == u.surface && pos.EndsInEru(u.surface) && !r.isHeadword(ctx, u.surface):
		hyp, shifted = pos.ShiftEToU(strings.TrimSuffix(u.surface, "る"))
	case pos.EndsInERow(first.Surface) && !r.isHeadword(ctx, u.surface):
		hyp, shifted = pos.ShiftEToU(first.Surface)
	}
	if !shifted || !r.isHeadword(ctx, hyp) {
		return "", model.POS{}, false
	}

	ms, err := r.tok.Tokenize(ctx, hyp)
	if err != nil || len(ms) == 0 {
		return "", model.POS{}, false
	}
	head := ms[0].POS
	_, _, index := r.paradigms(ctx, hyp, head)
	for _, label := range index.Detect(u.surface) {
		if strings.HasPrefix(label, "potential") {
			return hyp, head, true
		}
	}
	return "", model.POS{}, false
}

// paradigms conjugates citation under every inflecting class its dictionary
// senses allow for tag p and indexes the result.
func (r *Resolver) paradigms(ctx context.Context, citation string, p model.POS) (string, []string, conjugate.Index) {
	form, classes, err := r.rec.ExactClasses(ctx, citation, p)
	if err != nil {
		r.log.Warn("class lookup failed", "citation", citation, "err", err)
		return citation, nil, conjugate.Index{}
	}
	tables := make([]conjugate.Table, 0, len(classes))
	for _, c := range classes {
		par, err := r.engine.Conjugate(form, c)
		if err != nil {
			r.log.Warn("conjugation failed", "citation", form, "class", c, "err", err)
			continue
		}
		tables = append(tables, par.Table)
	}
	return form, classes, conjugate.NewIndex(tables...)
}

// lookup returns the entries recognizing u: the surface itself when it is
// its own citation, otherwise the citation when the surface is one of its
// conjugations.
func (r *Resolver) lookup(ctx context.Context, u *Unit) []model.Entry {
	var form string
	switch {
	case u.citation == u.surface:
		form = u.surface
	case u.index.Contains(u.surface):
		form = u.citation
	default:
		return nil
	}
	entries, err := r.dict.Lookup(ctx, form)
	if err != nil {
		if ctx.Err() == nil {
			r.log.Warn("dictionary lookup failed", "form", form, "err", err)
		}
		return nil
	}
	return entries
}

func (r *Resolver) isHeadword(ctx context.Context, form string) bool {
	entries, err := r.dict.Lookup(ctx, form)
	return err == nil && len(entries) > 0
}

// Readings are the katakana readings of a unit's surface and citation form.
type Readings struct {
	Surface  string `json:"surface"`
	Citation string `json:"citation"`
}

// Reading works out the readings of u. The primary analyzer's reading wins
// unless neither it nor the citation reading names a dictionary headword
// while the secondary analyzer's citation reading does; then the secondary
// surface reading is used. Katakana surfaces with no reading read as
// themselves.
func (r *Resolver) Reading(ctx context.Context, u *Unit) (Readings, error) {
	surface := u.Readings()
	if surface == "" && pos.AllKatakana(u.surface) {
		surface = u.surface
	}
	citation, err := readingOf(ctx, r.tok, u.citation)
	if err != nil {
		return Readings{}, err
	}
	out := Readings{Surface: surface, Citation: citation}
	if r.secondary == nil {
		return out, nil
	}
	if r.isHeadword(ctx, pos.KatakanaToHiragana(surface)) || r.isHeadword(ctx, pos.KatakanaToHiragana(citation)) {
		return out, nil
	}

	secSurface, err := readingOf(ctx, r.secondary, u.surface)
	if err != nil {
		return Readings{}, err
	}
	secCitation, err := readingOf(ctx, r.secondary, u.citation)
	if err != nil {
		return Readings{}, err
	}
	if secSurface != "" && secCitation != "" && r.isHeadword(ctx, pos.KatakanaToHiragana(secCitation)) {
		out.Surface = secSurface
	}
	return out, nil
}

// readingOf concatenates the readings of text's morphemes. It is empty when
// any morpheme has no reading.
func readingOf(ctx context.Context, tok Tokenizer, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	ms, err := tok.Tokenize(ctx, text)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, m := range ms {
		if m.Reading == "" {
			return "", nil
		}
		sb.WriteString(m.Reading)
	}
	return sb.String(), nil
}

// Package conjugate generates inflectional paradigms from the rule table,
// including the derived passive, desiderative and progressive families, and
// maps observed surfaces back to the labels that produce them.
package conjugate

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Derivation names the family a paradigm cell was derived through.
type Derivation int

const (
	Base Derivation = iota
	Passive
	Desire
	DesireThird
	Progressive
)

func (d Derivation) String() string {
	switch d {
	case Passive:
		return "passive"
	case Desire:
		return "tai"
	case DesireThird:
		return "tai3"
	case Progressive:
		return "progressive"
	}
	return ""
}

// Cell locates one cell of a paradigm, derived cells included.
type Cell struct {
	Derivation Derivation `json:"derivation"`
	Key
}

// Table maps conjugation labels to their realized surfaces.
type Table map[string][]string

// Labels returns the table's labels, sorted.
func (t Table) Labels() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Paradigm is the full output of the engine for one (citation form, class).
// Paradigms returned by an Engine may be shared and must be treated as read-only.
type Paradigm struct {
	Citation string
	Class    string
	Table    Table
	Cells    map[Cell]string
}

// Forms returns the surfaces realized for a cell.
func (p *Paradigm) Forms(c Cell) []string {
	label, ok := p.Cells[c]
	if !ok {
		return nil
	}
	return p.Table[label]
}

const (
	provNegSuffix = "なければ"
	vowelStem     = "v1"
	adjective     = "adj-i"
	copula        = "cop-da"
)

var (
	passiveCases     = []int{2, 3}
	desireThirdCases = []int{1, 2, 3, 4, 7, 9, 12, 13}
	progressiveCases = []int{1, 2}
)

type cacheKey struct {
	citation string
	class    string
}

// Engine generates paradigms. It is safe for concurrent use.
type Engine struct {
	rules *Rules
	cache *lru.Cache[cacheKey, *Paradigm]
	log   *slog.Logger
}

// NewEngine returns an engine over rules memoizing up to cacheSize
// paradigms. A cacheSize <= 0 disables memoization.
func NewEngine(rules *Rules, cacheSize int) (*Engine, error) {
	e := &Engine{rules: rules, log: slog.Default().With("component", "conjugate")}
	if cacheSize > 0 {
		c, err := lru.New[cacheKey, *Paradigm](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("conjugate: cache: %w", err)
		}
		e.cache = c
	}
	return e, nil
}

// Rules returns the engine's rule table.
func (e *Engine) Rules() *Rules { return e.rules }

// Conjugate returns the complete paradigm of citation conjugated as class.
func (e *Engine) Conjugate(citation, class string) (*Paradigm, error) {
	key := cacheKey{citation, class}
	if e.cache != nil {
		if p, ok := e.cache.Get(key); ok {
			return p, nil
		}
	}
	p, err := e.generate(citation, class, nil)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Add(key, p)
	}
	return p, nil
}

// generate builds a paradigm. A nil cases slice means the full paradigm with
// every derived family; otherwise only the listed cases are produced and the
// only family applied is the provisional-negative contraction.
func (e *Engine) generate(citation, class string, cases []int) (*Paradigm, error) {
	info, ok := e.rules.Class(class)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	reals, err := e.rules.Realizations(class, citation)
	if err != nil {
		return nil, err
	}

	p := &Paradigm{
		Citation: citation,
		Class:    class,
		Table:    make(Table),
		Cells:    make(map[Cell]string),
	}
	for _, r := range reals {
		if cases != nil && !slices.Contains(cases, r.Key.Case) {
			continue
		}
		label := e.rules.Label(r.Key)
		p.Table[label] = append(p.Table[label], r.Forms...)
		p.Cells[Cell{Key: r.Key}] = label
	}

	full := cases == nil
	if info.IsVerb() {
		if full || slices.Contains(cases, 4) {
			e.contractProvisional(p)
		}
		if full {
			if err := e.derive(p); err != nil {
				return nil, err
			}
		}
	}
	if class == copula {
		colloquialCopula(p)
	}
	return p, nil
}

// contractProvisional adds なきゃ and なくちゃ variants of every
// provisional-negative plain form ending in なければ.
func (e *Engine) contractProvisional(p *Paradigm) {
	label, ok := p.Cells[Cell{Key: Key{Case: 4, Negative: true}}]
	if !ok {
		return
	}
	forms := p.Table[label]
	for _, f := range slices.Clone(forms) {
		if stem, ok := strings.CutSuffix(f, provNegSuffix); ok {
			forms = append(forms, stem+"なきゃ", stem+"なくちゃ")
		}
	}
	p.Table[label] = forms
}

func (e *Engine) derive(p *Paradigm) error {
	if passive := p.Forms(Cell{Key: Key{Case: 6}}); len(passive) > 0 {
		sub, err := e.generate(passive[0], vowelStem, passiveCases)
		if err != nil {
			return err
		}
		fold(p, sub, Passive)
	}

	if polite := p.Forms(Cell{Key: Key{Case: 1, Polite: true}}); len(polite) == 1 {
		renyou := trimRunes(polite[0], 2)

		tai, err := e.generate(renyou+"たい", adjective, nil)
		if err != nil {
			return err
		}
		if label, ok := tai.Cells[Cell{Key: Key{Case: 1}}]; ok {
			tai.Table[label] = append(tai.Table[label], renyou+"てぇ", renyou+"てー")
		}
		fold(p, tai, Desire)

		tai3, err := e.generate(renyou+"たがっている", vowelStem, desireThirdCases)
		if err != nil {
			return err
		}
		fold(p, tai3, DesireThird)
	} else {
		e.log.Debug("no single polite non-past form, skipping desire family",
			"citation", p.Citation, "class", p.Class, "forms", polite)
	}

	if tes := p.Forms(Cell{Key: Key{Case: 3}}); len(tes) == 1 {
		te := tes[0]
		prog, err := e.generate(te+"いる", vowelStem, progressiveCases)
		if err != nil {
			return err
		}
		fold(p, prog, Progressive)
		for _, c := range []struct {
			key    Key
			ending string
		}{
			{Key{Case: 1}, "る"},
			{Key{Case: 1, Negative: true}, "ない"},
			{Key{Case: 2}, "た"},
			{Key{Case: 2, Negative: true}, "なかった"},
		} {
			if label, ok := p.Cells[Cell{Derivation: Progressive, Key: c.key}]; ok {
				p.Table[label] = append(p.Table[label], te+c.ending)
			}
		}
	}
	return nil
}

// fold copies sub's cells into p under labels prefixed with the derivation.
func fold(p, sub *Paradigm, d Derivation) {
	relabel := make(map[string]string, len(sub.Table))
	for label, forms := range sub.Table {
		key := strings.TrimSuffix(d.String()+"_"+label, "_")
		p.Table[key] = slices.Clone(forms)
		relabel[label] = key
	}
	for cell, label := range sub.Cells {
		p.Cells[Cell{Derivation: d, Key: cell.Key}] = relabel[label]
	}
}

// colloquialCopula adds a じゃ variant of every realization starting with では.
func colloquialCopula(p *Paradigm) {
	for label, forms := range p.Table {
		for _, f := range slices.Clone(forms) {
			if rest, ok := strings.CutPrefix(f, "では"); ok {
				forms = append(forms, "じゃ"+rest)
			}
		}
		p.Table[label] = forms
	}
}

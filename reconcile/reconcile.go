// Package reconcile matches tokenizer part-of-speech tags against dictionary
// tags: it narrows a word to its inflecting class codes and filters and ranks
// dictionary senses.
package reconcile

import (
	"context"
	"slices"
	"sort"
	"strings"

	"japanesereader/conjugate"
	"japanesereader/model"
	"japanesereader/pos"
)

// Dictionary looks up entries by headword.
type Dictionary interface {
	Lookup(ctx context.Context, form string) ([]model.Entry, error)
}

const (
	copulaClass = "cop-da"
	copulaForm  = "だ"
	kanaOnly    = "uk"
)

var copulaTypes = []string{"助動詞-タ", "助動詞-ダ", "助動詞-デス"}

// Reconciler resolves tokenizer tags against dictionary senses.
type Reconciler struct {
	dict  Dictionary
	rules *conjugate.Rules
}

// New returns a Reconciler over dict using rules to decide which class codes
// inflect.
func New(dict Dictionary, rules *conjugate.Rules) *Reconciler {
	return &Reconciler{dict: dict, rules: rules}
}

// Compatible reports whether a dictionary sense tag fits a tokenizer tag.
func Compatible(p model.POS, t model.Tag) bool {
	switch c := pos.Of(p); c {
	case pos.Verb:
		if ok, decided := verbClassMatch(p, t.Code, true); decided {
			return ok
		}
		return strings.Contains(t.Text, "verb")
	case pos.AuxiliaryVerb:
		return !strings.HasPrefix(t.Text, "noun")
	case pos.Classifier:
		return t.Code == "adj-na"
	case pos.Unknown:
		return false
	default:
		return strings.HasPrefix(t.Text, c.Label())
	}
}

// ClassCompatible reports whether a dictionary class code can be the
// inflectional class of a word carrying tokenizer tag p.
func ClassCompatible(p model.POS, code string) bool {
	switch pos.Of(p) {
	case pos.AuxiliaryVerb:
		if ct := p.ConjugationType(); ct == "助動詞-ナイ" || ct == "助動詞-タイ" {
			return code == "adj-i"
		}
		fallthrough
	case pos.Verb:
		if ok, decided := verbClassMatch(p, code, false); decided {
			return ok
		}
		return strings.Contains(code, "verb")
	case pos.Noun:
		return code == "n" || strings.HasPrefix(code, "n-")
	case pos.Adjective:
		return strings.HasPrefix(code, "adj")
	}
	return false
}

// verbClassMatch applies the verb-class prefix rules. decided is false when
// the class gives no answer and the caller should fall back. Irregular verbs
// that are neither suru nor kuru default to vs-i when defaultSuru is set.
func verbClassMatch(p model.POS, code string, defaultSuru bool) (ok, decided bool) {
	vc, _ := pos.GuessVerbClass(p)
	switch vc {
	case pos.Godan:
		return strings.HasPrefix(code, "v5"), true
	case pos.Ichidan:
		return strings.HasPrefix(code, "v1"), true
	case pos.Irregular:
		switch {
		case pos.IsIrregularSuru(p):
			return code == "vs-i" || code == "vs-s", true
		case pos.IsIrregularKuru(p):
			return code == "vk", true
		case defaultSuru:
			return code == "vs-i", true
		}
	}
	return false, false
}

// ExactClasses returns the citation form to conjugate and the inflecting
// class codes that both appear on its dictionary senses and fit tag p.
// The copula is answered directly.
func (r *Reconciler) ExactClasses(ctx context.Context, citation string, p model.POS) (string, []string, error) {
	if (citation == "だ" || citation == "です") && slices.Contains(copulaTypes, p.ConjugationType()) {
		return copulaForm, []string{copulaClass}, nil
	}

	entries, err := r.dict.Lookup(ctx, citation)
	if err != nil {
		return citation, nil, err
	}
	var codes []string
	for _, e := range entries {
		for _, s := range e.Senses {
			for _, t := range s.POS {
				code, ok := r.rules.CodeFor(t.Code)
				if !ok {
					code, ok = r.rules.CodeFor(t.Text)
				}
				if !ok || slices.Contains(codes, code) {
					continue
				}
				if r.rules.Inflects(code) && ClassCompatible(p, code) {
					codes = append(codes, code)
				}
			}
		}
	}
	return citation, codes, nil
}

// Query describes the word being looked up.
type Query struct {
	Surface  string
	Citation string
	POS      model.POS
	// Reading and CitationReading are katakana readings of the surface and
	// of the citation form.
	Reading         string
	CitationReading string
}

// Match is a dictionary entry with the indices of its selected senses, best first.
type Match struct {
	Entry  model.Entry `json:"entry"`
	Senses []int       `json:"senses"`
}

// Search looks up q.Citation and keeps the entries with at least one sense
// compatible with q.POS, ranking each entry's senses. With matchReading set,
// only entries with a kana form equal to one of the query readings are
// considered. When no entry has a compatible sense, every considered entry is
// returned with all of its senses.
func (r *Reconciler) Search(ctx context.Context, q Query, matchReading bool) ([]Match, error) {
	found, err := r.dict.Lookup(ctx, q.Citation)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(found))
	hasKanji := pos.HasKanji(q.Surface)

	var matches, readingMatches []Match
	for _, e := range found {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		if matchReading && !kanaMatches(e, q) {
			continue
		}
		all := make([]int, len(e.Senses))
		for i := range all {
			all[i] = i
		}
		readingMatches = append(readingMatches, Match{Entry: e, Senses: all})

		if senses, ok := RankSenses(e, q.POS, hasKanji); ok {
			matches = append(matches, Match{Entry: e, Senses: senses})
		}
	}
	if len(matches) == 0 {
		return readingMatches, nil
	}
	return matches, nil
}

// kanaMatches compares kana with long vowels folded, since a reading taken
// from a pronunciation field writes them as ー.
func kanaMatches(e model.Entry, q Query) bool {
	reading, citation := pos.FoldLongVowels(q.Reading), pos.FoldLongVowels(q.CitationReading)
	for _, k := range e.Kana {
		kata := pos.FoldLongVowels(k)
		if (reading != "" && kata == reading) || (citation != "" && kata == citation) {
			return true
		}
	}
	return false
}

// RankSenses returns the senses of e that carry no tags or a tag compatible
// with p, best first, and whether any sense was compatible. Senses are
// ordered by: the kana-only flag agreeing with whether the surface is written
// in kanji, being marked common, carrying any tag at all.
func RankSenses(e model.Entry, p model.POS, hasKanji bool) ([]int, bool) {
	var senses []int
	matched := false
	for i, s := range e.Senses {
		if len(s.POS) == 0 {
			senses = append(senses, i)
			continue
		}
		for _, t := range s.POS {
			if Compatible(p, t) {
				senses = append(senses, i)
				matched = true
				break
			}
		}
	}

	type rank struct{ kanaFlag, common, tagged bool }
	ranks := make(map[int]rank, len(senses))
	for _, i := range senses {
		s := e.Senses[i]
		ranks[i] = rank{
			kanaFlag: hasKanji != s.HasMisc(kanaOnly),
			common:   isCommon(s),
			tagged:   len(s.POS) > 0,
		}
	}
	sort.SliceStable(senses, func(a, b int) bool {
		ra, rb := ranks[senses[a]], ranks[senses[b]]
		if ra.kanaFlag != rb.kanaFlag {
			return ra.kanaFlag
		}
		if ra.common != rb.common {
			return ra.common
		}
		return ra.tagged && !rb.tagged
	})
	return senses, matched
}

func isCommon(s model.Sense) bool {
	for _, t := range s.POS {
		if strings.Contains(t.Text, "common") || strings.Contains(t.Text, "futsuumeishi") {
			return true
		}
	}
	return false
}

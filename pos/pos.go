// Package pos classifies tokenizer part-of-speech tags: the closed set of
// coarse classes, the one-letter summary alphabet used by composition rules,
// display labels and the verb-class heuristic.
package pos

import (
	"strings"

	"japanesereader/model"
)

// Class is a coarse tokenizer part-of-speech class.
type Class int

const (
	Unknown Class = iota
	Interjection
	Symbol
	SupplementarySymbol
	Noun
	Suffix
	Particle
	Adjective
	AuxiliaryVerb
	Pronoun
	Blank
	Verb
	Prefix
	Classifier
	Adverb
	PreNounAdjectival
	Conjunction
)

type classInfo struct {
	tag    string
	letter byte
	label  string
}

var classes = [...]classInfo{
	Unknown:             {"", '?', "unknown"},
	Interjection:        {"感動詞", 'i', "interjection"},
	Symbol:              {"記号", 'y', "symbol"},
	SupplementarySymbol: {"補助記号", 'Y', "supplementary symbol"},
	Noun:                {"名詞", 'n', "noun"},
	Suffix:              {"接尾辞", 's', "suffix"},
	Particle:            {"助詞", 'p', "particle"},
	Adjective:           {"形容詞", 'j', "adjective"},
	AuxiliaryVerb:       {"助動詞", 'x', "auxiliary verb"},
	Pronoun:             {"代名詞", 'r', "pronoun"},
	Blank:               {"空白", 'b', "blank space"},
	Verb:                {"動詞", 'v', "verb"},
	Prefix:              {"接頭辞", 'P', "prefix"},
	Classifier:          {"形状詞", 'c', "classifier"},
	Adverb:              {"副詞", 'a', "adverb"},
	PreNounAdjectival:   {"連体詞", 'J', "pre-noun adjectival"},
	Conjunction:         {"接続詞", 'o', "conjunction"},
}

var byTag = func() map[string]Class {
	m := make(map[string]Class, len(classes))
	for c, info := range classes {
		if info.tag != "" {
			m[info.tag] = Class(c)
		}
	}
	return m
}()

// Of returns the coarse class of a tag. Unrecognised coarse tags map to Unknown.
func Of(p model.POS) Class {
	return byTag[p.Coarse()]
}

// Letter is the one-letter summary symbol for the class.
func (c Class) Letter() byte {
	if c < 0 || int(c) >= len(classes) {
		return classes[Unknown].letter
	}
	return classes[c].letter
}

// Label is the English name of the class. Dictionary tag descriptions for
// most classes start with this text.
func (c Class) Label() string {
	if c < 0 || int(c) >= len(classes) {
		return classes[Unknown].label
	}
	return classes[c].label
}

func (c Class) String() string { return c.Label() }

// Letters returns the POS-summary string of a morpheme run.
func Letters(ms []model.Morpheme) string {
	var b strings.Builder
	b.Grow(len(ms))
	for _, m := range ms {
		b.WriteByte(Of(m.POS).Letter())
	}
	return b.String()
}

// Display returns the label shown to a reader for a tag. Nouns are refined
// into numerals and proper nouns; unknown coarse tags are shown raw.
func Display(p model.POS) string {
	c := Of(p)
	switch c {
	case Unknown:
		return p.Coarse()
	case Noun:
		switch p.Sub() {
		case "数詞":
			return "numeral"
		case "固有名詞":
			return "proper noun"
		}
	}
	return c.Label()
}

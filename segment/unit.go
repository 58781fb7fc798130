package segment

import (
	"slices"

	"japanesereader/conjugate"
	"japanesereader/model"
	"japanesereader/pos"
)

// Unit is a contiguous run of morphemes treated as one lexical item.
// A Unit is immutable once resolved.
type Unit struct {
	morphemes []model.Morpheme
	start     int
	letters   string
	pattern   Pattern
	surface   string

	citation  string
	head      model.POS
	potential bool

	verbClass pos.VerbClass
	classes   []string
	index     conjugate.Index

	entries     []model.Entry
	score       int
	diagnostics []string
}

// Morphemes returns the unit's morphemes.
func (u *Unit) Morphemes() []model.Morpheme { return slices.Clone(u.morphemes) }

// Span returns the morpheme offsets [start, end) of the unit in its sentence.
func (u *Unit) Span() (int, int) { return u.start, u.start + len(u.morphemes) }

// Len returns the number of morphemes in the unit.
func (u *Unit) Len() int { return len(u.morphemes) }

func (u *Unit) Surface() string  { return u.surface }
func (u *Unit) Letters() string  { return u.letters }
func (u *Unit) Pattern() Pattern { return u.pattern }

// Citation returns the dictionary form used to look the unit up.
func (u *Unit) Citation() string { return u.citation }

// POS returns the tag of the unit's head morpheme.
func (u *Unit) POS() model.POS { return u.head }

// Class returns the coarse class of the head tag.
func (u *Unit) Class() pos.Class { return pos.Of(u.head) }

// Potential reports whether the citation was recovered by reading the unit
// as the potential form of another verb.
func (u *Unit) Potential() bool { return u.potential }

// VerbClass returns the inflectional class guessed for verb-like heads.
func (u *Unit) VerbClass() pos.VerbClass { return u.verbClass }

// Classes returns the inflecting dictionary class codes the unit was
// conjugated under.
func (u *Unit) Classes() []string { return slices.Clone(u.classes) }

// Conjugations returns the conjugation labels whose realizations equal the
// unit's surface. An unconjugated form has none.
func (u *Unit) Conjugations() []string { return slices.Clone(u.index.Detect(u.surface)) }

// Entries returns the dictionary entries the unit was recognized by.
func (u *Unit) Entries() []model.Entry { return u.entries }

// Recognized reports whether the unit matched any dictionary entry.
func (u *Unit) Recognized() bool { return len(u.entries) > 0 }

// Score returns the unit's contribution to a segmentation's score.
func (u *Unit) Score() int { return u.score }

// Diagnostics returns non-fatal notes raised while resolving the unit.
func (u *Unit) Diagnostics() []string { return slices.Clone(u.diagnostics) }

// Readings returns the concatenated primary readings of the unit's morphemes.
func (u *Unit) Readings() string {
	var s string
	for _, m := range u.morphemes {
		s += m.Reading
	}
	return s
}

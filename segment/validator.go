package segment

import "regexp"

// Pattern names the composition rule a run of morphemes satisfied.
type Pattern int

const (
	Invalid Pattern = iota
	Single
	NounCompound
	VerbChain
	AuxiliaryChain
	MixedChain
	ParticleChain
)

func (p Pattern) String() string {
	switch p {
	case Single:
		return "single"
	case NounCompound:
		return "noun-compound"
	case VerbChain:
		return "verb-chain"
	case AuxiliaryChain:
		return "auxiliary-chain"
	case MixedChain:
		return "mixed-chain"
	case ParticleChain:
		return "particle-chain"
	}
	return "invalid"
}

// Composition rules over the POS-summary alphabet, checked in order against
// the whole letter string.
var compositionRules = []struct {
	pattern Pattern
	re      *regexp.Regexp
}{
	// optional classifier/prefix, noun/pronoun stems, suffix or particle/adjective/auxiliary tail
	{NounCompound, regexp.MustCompile(`^(?:[cP]?[rn]+(?:s+|[pjx]*)|n+pns*)$`)},
	{VerbChain, regexp.MustCompile(`^(?:v[vpxj]*)+$`)},
	{AuxiliaryChain, regexp.MustCompile(`^x(?:p|[vx]*)$`)},
	{MixedChain, regexp.MustCompile(`^[ja][jvxp]+s?$`)},
	{ParticleChain, regexp.MustCompile(`^p[pj]+$`)},
}

// Validate reports whether a run with the given POS-summary letters may form
// one unit, and which rule accepted it. Any single morpheme is valid.
func Validate(letters string) (Pattern, bool) {
	switch len(letters) {
	case 0:
		return Invalid, false
	case 1:
		return Single, true
	}
	for _, r := range compositionRules {
		if r.re.MatchString(letters) {
			return r.pattern, true
		}
	}
	return Invalid, false
}

// Valid is Validate without the pattern.
func Valid(letters string) bool {
	_, ok := Validate(letters)
	return ok
}

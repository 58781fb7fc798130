package pos

import (
	"errors"
	"fmt"
	"strings"

	"japanesereader/model"
)

// VerbClass is the inflectional class of a verb-like morpheme.
type VerbClass int

const (
	NoClass VerbClass = iota
	Godan
	Ichidan
	Irregular
)

func (v VerbClass) String() string {
	switch v {
	case Godan:
		return "godan"
	case Ichidan:
		return "ichidan"
	case Irregular:
		return "irregular"
	}
	return "none"
}

// ErrUnclassifiable is returned when a verb-like tag cannot be assigned a class.
var ErrUnclassifiable = errors.New("pos: unrecognized verb")

const auxPrefix = "助動詞-"

// GuessVerbClass infers the inflectional class from the conjugation-type
// level of a tag. Auxiliary types (助動詞-マス, 助動詞-レル, ...) are
// classified by the romaji ending of their katakana name.
//
// A NoClass result with a nil error means the tag is known not to inflect
// like a verb (the past auxiliary); with ErrUnclassifiable it is a diagnostic
// the caller should surface.
func GuessVerbClass(p model.POS) (VerbClass, error) {
	ctype := p.ConjugationType()
	switch {
	case strings.Contains(ctype, "五段"):
		return Godan, nil
	case strings.Contains(ctype, "一段"):
		return Ichidan, nil
	case strings.Contains(ctype, "変格"):
		return Irregular, nil
	}

	if name, ok := strings.CutPrefix(ctype, auxPrefix); ok && AllKatakana(name) {
		r := Romaji(name)
		switch {
		case strings.HasSuffix(r, "u"):
			if strings.HasSuffix(r, "ru") && len(r) >= 3 && (r[len(r)-3] == 'i' || r[len(r)-3] == 'e') {
				return Ichidan, nil
			}
			return Godan, nil
		case strings.Contains("ta", r):
			return NoClass, nil
		}
	}
	return NoClass, fmt.Errorf("%w: %s", ErrUnclassifiable, strings.Join(p.Strings(), ","))
}

// IsIrregularSuru reports whether the tag is a サ行変格 (suru) conjugation.
func IsIrregularSuru(p model.POS) bool {
	return strings.Contains(p.ConjugationType(), "サ行変格")
}

// IsIrregularKuru reports whether the tag is a カ行変格 (kuru) conjugation.
func IsIrregularKuru(p model.POS) bool {
	return strings.Contains(p.ConjugationType(), "カ行変格")
}

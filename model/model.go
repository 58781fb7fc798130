package model

// POS is the 6-level hierarchical part-of-speech tag attached to a morpheme:
// four coarse-to-fine category levels followed by conjugation type and form.
// Unused levels hold "*".
type POS [6]string

// Coarse returns the top-level category (e.g. 動詞, 名詞).
func (p POS) Coarse() string { return p[0] }

// Sub returns the second category level (e.g. 数詞, 固有名詞).
func (p POS) Sub() string { return p[1] }

// ConjugationType returns the conjugation-type level (e.g. 五段-マ行, 助動詞-タ).
func (p POS) ConjugationType() string { return p[4] }

// ConjugationForm returns the conjugation-form level (e.g. 連用形-撥音便).
func (p POS) ConjugationForm() string { return p[5] }

// Strings returns the tag as a slice, for display.
func (p POS) Strings() []string {
	out := make([]string, len(p))
	copy(out, p[:])
	return out
}

// NewPOS builds a tag from tokenizer feature fields, padding missing levels with "*".
func NewPOS(features []string) POS {
	var p POS
	for i := range p {
		p[i] = "*"
		if i < len(features) && features[i] != "" {
			p[i] = features[i]
		}
	}
	return p
}

// Morpheme represents one atomic morpheme produced by the tokenizer.
type Morpheme struct {
	Surface  string `json:"surface"`
	Reading  string `json:"reading,omitempty"`
	BaseForm string `json:"base_form,omitempty"`
	POS      POS    `json:"pos"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Tag is a dictionary part-of-speech or usage tag: its short code (e.g. "v5m")
// and its description (e.g. "Godan verb with 'mu' ending").
type Tag struct {
	Code string `json:"code"`
	Text string `json:"text,omitempty"`
}

// Sense is one meaning of a dictionary entry.
type Sense struct {
	POS     []Tag    `json:"pos,omitempty"`
	Misc    []Tag    `json:"misc,omitempty"`
	Glosses []string `json:"glosses"`
}

// HasMisc reports whether the sense carries the usage flag with the given code.
func (s Sense) HasMisc(code string) bool {
	for _, m := range s.Misc {
		if m.Code == code {
			return true
		}
	}
	return false
}

// POSCodes returns the sense's part-of-speech codes in order.
func (s Sense) POSCodes() []string {
	out := make([]string, 0, len(s.POS))
	for _, t := range s.POS {
		out = append(out, t.Code)
	}
	return out
}

// Entry is a dictionary entry: headword forms and ordered senses.
type Entry struct {
	ID     int      `json:"id"`
	Kanji  []string `json:"kanji,omitempty"`
	Kana   []string `json:"kana"`
	Senses []Sense  `json:"senses"`
}

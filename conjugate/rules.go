package conjugate

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"japanesereader/pos"
)

//go:embed data/rules.yaml
var defaultRules []byte

// ErrUnknownClass is returned for a class code absent from the rule table.
var ErrUnknownClass = errors.New("conjugate: unknown word class")

// Key identifies one cell of a base paradigm.
type Key struct {
	Case     int  `json:"case"`
	Negative bool `json:"negative"`
	Polite   bool `json:"polite"`
}

// Realization is the set of surfaces the rule table gives for one cell.
type Realization struct {
	Key   Key
	Forms []string
}

// ClassInfo describes a dictionary word-class code.
type ClassInfo struct {
	Code        string `json:"code"`
	ID          int    `json:"id"`
	Description string `json:"description"`
	Paradigm    string `json:"paradigm,omitempty"`
}

// Inflects reports whether the class has conjugation rows.
func (c ClassInfo) Inflects() bool { return c.Paradigm != "" }

// IsVerb reports whether the class is a verb class.
func (c ClassInfo) IsVerb() bool { return strings.HasPrefix(c.Code, "v") }

type cells struct {
	Plain  []string `yaml:"plain"`
	Neg    []string `yaml:"neg"`
	Pol    []string `yaml:"pol"`
	PolNeg []string `yaml:"pol_neg"`
}

func (c cells) each(fn func(neg, pol bool, forms []string)) {
	fn(false, false, c.Plain)
	fn(true, false, c.Neg)
	fn(false, true, c.Pol)
	fn(true, true, c.PolNeg)
}

type row struct {
	Case  int `yaml:"case"`
	Strip int `yaml:"strip"`
	cells `yaml:",inline"`
}

type variant struct {
	Strip   int               `yaml:"strip"`
	Prefix  string            `yaml:"prefix"`
	Vars    map[string]string `yaml:"vars"`
	Replace []row             `yaml:"replace"`
}

type classSpec struct {
	Code        string `yaml:"code"`
	ID          int    `yaml:"id"`
	Description string `yaml:"description"`
	Paradigm    string `yaml:"paradigm"`
	variant     `yaml:",inline"`
	Kana        *variant `yaml:"kana"`
}

type document struct {
	Cases []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"cases"`
	Paradigms map[string][]row `yaml:"paradigms"`
	Classes   []classSpec      `yaml:"classes"`
}

// Rules is the read-only conjugation rule table.
type Rules struct {
	caseNames  map[int]string
	caseLabels map[int]string
	paradigms  map[string][]row
	classes    map[string]classSpec
	byDesc     map[string]string
}

var (
	defaultOnce sync.Once
	defaultSet  *Rules
	defaultErr  error
)

// DefaultRules returns the rule table embedded in the binary, parsed once.
func DefaultRules() (*Rules, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Load(strings.NewReader(string(defaultRules)))
	})
	return defaultSet, defaultErr
}

// Load parses a rule table.
func Load(r io.Reader) (*Rules, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("conjugate: decode rules: %w", err)
	}
	rs := &Rules{
		caseNames:  make(map[int]string, len(doc.Cases)),
		caseLabels: make(map[int]string, len(doc.Cases)),
		paradigms:  doc.Paradigms,
		classes:    make(map[string]classSpec, len(doc.Classes)),
		byDesc:     make(map[string]string, len(doc.Classes)+1),
	}
	for _, c := range doc.Cases {
		rs.caseNames[c.ID] = c.Name
		label := strings.ToLower(strings.SplitN(c.Name, " ", 2)[0])
		if label == "non-past" {
			label = ""
		}
		rs.caseLabels[c.ID] = label
	}
	for _, c := range doc.Classes {
		if _, dup := rs.classes[c.Code]; dup {
			return nil, fmt.Errorf("conjugate: duplicate class %q", c.Code)
		}
		if c.Paradigm != "" {
			if _, ok := doc.Paradigms[c.Paradigm]; !ok {
				return nil, fmt.Errorf("conjugate: class %q: unknown paradigm %q", c.Code, c.Paradigm)
			}
		}
		rs.classes[c.Code] = c
		rs.byDesc[c.Description] = c.Code
	}
	for name, rows := range doc.Paradigms {
		for _, r := range rows {
			if _, ok := rs.caseNames[r.Case]; !ok {
				return nil, fmt.Errorf("conjugate: paradigm %q: unknown case %d", name, r.Case)
			}
		}
	}
	return rs, nil
}

// Class returns the description of a class code.
func (rs *Rules) Class(code string) (ClassInfo, bool) {
	c, ok := rs.classes[code]
	if !ok {
		return ClassInfo{}, false
	}
	return ClassInfo{Code: c.Code, ID: c.ID, Description: c.Description, Paradigm: c.Paradigm}, true
}

// Inflects reports whether code is a known class with conjugation rows.
func (rs *Rules) Inflects(code string) bool {
	c, ok := rs.classes[code]
	return ok && c.Paradigm != ""
}

// CodeFor maps a dictionary tag description (or a bare code) to its code.
func (rs *Rules) CodeFor(description string) (string, bool) {
	if code, ok := rs.byDesc[description]; ok {
		return code, true
	}
	if _, ok := rs.classes[description]; ok {
		return description, true
	}
	return "", false
}

// Description returns the description of code, or code itself when unknown.
func (rs *Rules) Description(code string) string {
	if c, ok := rs.classes[code]; ok {
		return c.Description
	}
	return code
}

// CaseName returns the descriptive name of a grammatical case.
func (rs *Rules) CaseName(id int) string { return rs.caseNames[id] }

// Cases returns the known case ids in ascending order.
func (rs *Rules) Cases() []int {
	ids := make([]int, 0, len(rs.caseNames))
	for id := range rs.caseNames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Codes returns every class code, sorted.
func (rs *Rules) Codes() []string {
	out := make([]string, 0, len(rs.classes))
	for code := range rs.classes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Label returns the canonical conjugation label of a base cell:
// case name, then "_pol", then "_neg". The plain non-past cell is "".
func (rs *Rules) Label(k Key) string {
	label := rs.caseLabels[k.Case]
	if k.Polite {
		label += "_pol"
	}
	if k.Negative {
		label += "_neg"
	}
	return strings.TrimLeft(label, "_")
}

// Realizations returns the surfaces of every cell of the class's paradigm for
// the given citation form, in table order.
func (rs *Rules) Realizations(code, citation string) ([]Realization, error) {
	c, ok := rs.classes[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, code)
	}
	if c.Paradigm == "" {
		return nil, nil
	}
	v := c.variant
	if c.Kana != nil && !pos.HasKanji(citation) {
		v = *c.Kana
	}
	replacements := make(map[Key][]string)
	for _, r := range v.Replace {
		stem := trimRunes(citation, r.Strip)
		r.each(func(neg, pol bool, forms []string) {
			if forms == nil {
				return
			}
			out := make([]string, 0, len(forms))
			for _, f := range forms {
				out = append(out, stem+f)
			}
			replacements[Key{Case: r.Case, Negative: neg, Polite: pol}] = out
		})
	}

	stem := trimRunes(citation, v.Strip) + v.Prefix
	expand := newExpander(v.Vars)
	var out []Realization
	for _, r := range rs.paradigms[c.Paradigm] {
		r.each(func(neg, pol bool, forms []string) {
			key := Key{Case: r.Case, Negative: neg, Polite: pol}
			if repl, ok := replacements[key]; ok {
				out = append(out, Realization{Key: key, Forms: repl})
				return
			}
			if len(forms) == 0 {
				return
			}
			surfaces := make([]string, 0, len(forms))
			for _, f := range forms {
				surfaces = append(surfaces, stem+expand.Replace(f))
			}
			out = append(out, Realization{Key: key, Forms: surfaces})
		})
	}
	return out, nil
}

func newExpander(vars map[string]string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...)
}

func trimRunes(s string, n int) string {
	for i := 0; i < n && s != ""; i++ {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

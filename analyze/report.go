package analyze

// Kind says how much detail a unit report carries.
type Kind string

const (
	// KindWord is a unit reported with its dictionary matches.
	KindWord Kind = "word"
	// KindParticle is a one-character case particle, reported in one line.
	KindParticle Kind = "particle"
	// KindNumeral is a number, reported in one line with its reading.
	KindNumeral Kind = "numeral"
	// KindRepeat repeats an earlier unit of the same report; SeeUnit points at it.
	KindRepeat Kind = "repeat"
)

// SenseReport is one dictionary sense selected for a unit.
type SenseReport struct {
	Index   int      `json:"index"`
	Glosses []string `json:"glosses"`
	POS     []string `json:"pos,omitempty"`
}

// EntryReport is one matched dictionary entry. Kana is filled only when
// the entry was found without reading matching.
type EntryReport struct {
	ID     int           `json:"id"`
	Kanji  []string      `json:"kanji,omitempty"`
	Kana   []string      `json:"kana,omitempty"`
	Senses []SenseReport `json:"senses"`
}

// UnitReport describes one segmentation unit.
type UnitReport struct {
	Index   int    `json:"index"`
	Kind    Kind   `json:"kind"`
	Surface string `json:"surface"`
	// Reading is in hiragana and omitted when equal to the surface.
	Reading      string   `json:"reading,omitempty"`
	Furigana     string   `json:"furigana,omitempty"`
	POS          string   `json:"pos"`
	Citation     string   `json:"citation,omitempty"`
	Conjugations []string `json:"conjugations,omitempty"`
	Start        int      `json:"start"`
	End          int      `json:"end"`
	Score        int      `json:"score"`
	// Morphemes are the analyzer surfaces the unit was composed from, Letters
	// their part-of-speech summary and Pattern the composition rule matched.
	Morphemes []string `json:"morphemes"`
	Letters   string   `json:"letters"`
	Pattern   string   `json:"pattern"`
	VerbClass string   `json:"verb_class,omitempty"`

	SeeUnit        *int          `json:"see_unit,omitempty"`
	Entries        []EntryReport `json:"entries,omitempty"`
	NoReadingMatch bool          `json:"no_reading_match,omitempty"`
	NoMatch        bool          `json:"no_match,omitempty"`
	RawTag         string        `json:"raw_tag,omitempty"`
	Fallback       string        `json:"fallback,omitempty"`
	Diagnostics    []string      `json:"diagnostics,omitempty"`
}

// Report is the analysis of one sentence.
type Report struct {
	SentenceID  string       `json:"sentence_id"`
	Text        string       `json:"text"`
	Translation string       `json:"translation,omitempty"`
	Surfaces    []string     `json:"surfaces"`
	Units       []UnitReport `json:"units"`
	Clauses     []Clause     `json:"clauses,omitempty"`
	Score       int          `json:"score"`
}

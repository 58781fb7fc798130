package analyze

import "slices"

// ClauseType represents the type of a clause.
type ClauseType string

const (
	MainClause        ClauseType = "main"
	SubordinateClause ClauseType = "subordinate"
)

// Clause is a run of units [Start, End) between punctuation boundaries.
type Clause struct {
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Type       ClauseType `json:"type"`
	Connective string     `json:"connective,omitempty"`
}

var (
	clauseBoundaries = []string{"。", "、", "！", "？"}
	connectives      = []string{"が", "ので", "から", "けど", "けれど", "し", "と", "て", "ば"}
)

// Clauses splits unit surfaces at sentence and clause punctuation. A clause
// whose last unit before the comma is a connective particle is subordinate.
func Clauses(surfaces []string) []Clause {
	var out []Clause
	start := 0
	for i, s := range surfaces {
		if !slices.Contains(clauseBoundaries, s) {
			continue
		}
		if i > start {
			out = append(out, newClause(surfaces, start, i, s == "、"))
		}
		start = i + 1
	}
	if start < len(surfaces) {
		out = append(out, newClause(surfaces, start, len(surfaces), false))
	}
	return out
}

func newClause(surfaces []string, start, end int, comma bool) Clause {
	c := Clause{Start: start, End: end, Type: MainClause}
	if last := surfaces[end-1]; comma && slices.Contains(connectives, last) {
		c.Type = SubordinateClause
		c.Connective = last
	}
	return c
}

package kanji

import (
	"slices"
	"strings"

	"japanesereader/pos"
)

// Pair is one character of a surface with the reading aligned to it. Ruby is
// empty for kana and for kanji no reading could be aligned to. A pair with an
// empty Text carries reading left over after the last kanji.
type Pair struct {
	Text string `json:"text"`
	Ruby string `json:"ruby,omitempty"`
}

// variants returns the hiragana forms a KANJIDIC2 reading may take in a word:
// the whole reading and the stem before its okurigana mark.
func variants(kr string) []string {
	var out []string
	if full := NormalizeReading(kr); full != "" {
		out = append(out, full)
	}
	if i := strings.IndexRune(kr, '.'); i >= 0 {
		if pre := NormalizeReading(kr[:i]); pre != "" && !slices.Contains(out, pre) {
			out = append(out, pre)
		}
	}
	return out
}

func hasPrefixAt(reading []rune, k int, v string) (int, bool) {
	vr := []rune(v)
	if k+len(vr) > len(reading) || string(reading[k:k+len(vr)]) != v {
		return 0, false
	}
	return len(vr), true
}

// Align splits a katakana or hiragana reading over the characters of
// surface. Each kanji takes the longest of its readings (or their rendaku
// form, past the first character) that the remaining reading starts with;
// a final kanji with no match takes whatever reading is left.
func (k *Readings) Align(surface, reading string) []Pair {
	sr := []rune(surface)
	rr := []rune(pos.KatakanaToHiragana(reading))
	out := make([]Pair, 0, len(sr))
	at := 0
	for j, s := range sr {
		switch {
		case pos.IsKanji(s):
			// kana after this kanji must keep their own reading
			limit := len(rr) - kanaAfter(sr, j)
			best := ""
			for _, kr := range k.Of(s) {
				for _, v := range variants(kr) {
					cands := []string{v}
					if j > 0 {
						cands = append(cands, RendakuForm(v))
					}
					for _, c := range cands {
						if n, ok := hasPrefixAt(rr, at, c); ok && at+n <= limit && n > len([]rune(best)) {
							best = c
						}
					}
				}
			}
			if best != "" {
				out = append(out, Pair{Text: string(s), Ruby: best})
				at += len([]rune(best))
				continue
			}
			if lastKanji(sr, j) && at < limit {
				out = append(out, Pair{Text: string(s), Ruby: string(rr[at:limit])})
				at = limit
				continue
			}
			out = append(out, Pair{Text: string(s)})
		case pos.IsKana(s):
			out = append(out, Pair{Text: string(s)})
			if at < len(rr) && rr[at] == []rune(pos.KatakanaToHiragana(string(s)))[0] {
				at++
			}
		default:
			out = append(out, Pair{Text: string(s)})
		}
	}
	if at < len(rr) && !pos.HasKanji(surface) {
		out = append(out, Pair{Ruby: string(rr[at:])})
	}
	return out
}

func kanaAfter(sr []rune, j int) int {
	n := 0
	for _, r := range sr[j+1:] {
		if pos.IsKana(r) {
			n++
		}
	}
	return n
}

func lastKanji(sr []rune, j int) bool {
	for _, r := range sr[j+1:] {
		if pos.IsKanji(r) {
			return false
		}
	}
	return true
}

// Brackets renders pairs with every kanji replaced by its bracketed reading
// and kana kept as is: 入見内川 -> [いり][み][ない][かわ].
func Brackets(pairs []Pair) string {
	var sb strings.Builder
	for _, p := range pairs {
		if p.Text == "" {
			continue
		}
		if r := []rune(p.Text)[0]; pos.IsKanji(r) {
			sb.WriteString("[" + p.Ruby + "]")
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Annotated renders pairs as kanji|reading groups: [飲|の]む.
func Annotated(pairs []Pair) string {
	var sb strings.Builder
	for _, p := range pairs {
		if p.Ruby != "" && p.Text != "" {
			sb.WriteString("[" + p.Text + "|" + p.Ruby + "]")
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Furigana aligns reading to surface and renders it with Brackets. Surfaces
// without kanji have no furigana.
func (k *Readings) Furigana(surface, reading string) string {
	if k.Len() == 0 || !pos.HasKanji(surface) || reading == "" {
		return ""
	}
	return Brackets(k.Align(surface, reading))
}

package analyze

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format writes r in the plain-text layout used by the command line: the
// space-separated surfaces, the sentence translation, then one block per
// reported unit.
func Format(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(r.Surfaces, " "))
	fmt.Fprintln(bw, r.Translation)
	fmt.Fprintln(bw)

	for _, u := range r.Units {
		formatUnit(bw, u)
	}
	return bw.Flush()
}

func formatUnit(w io.Writer, u UnitReport) {
	reading := ""
	if u.Reading != "" {
		reading = " [" + u.Reading + "]"
	}
	switch u.Kind {
	case KindParticle:
		fmt.Fprintf(w, "%s particle\n\n", u.Surface)
		return
	case KindNumeral:
		fmt.Fprintf(w, "%s%s numeral\n\n", u.Surface, reading)
		return
	}

	header := u.Surface + reading + " " + u.POS
	if u.Citation != "" {
		header += " (" + u.Citation + ")"
	}
	if len(u.Conjugations) > 0 {
		header += " " + strings.Join(u.Conjugations, " ")
	}
	fmt.Fprintln(w, header)
	if u.Furigana != "" {
		fmt.Fprintf(w, "    %s\n", u.Furigana)
	}

	if u.Kind == KindRepeat {
		fmt.Fprint(w, "    [see above]\n\n")
		return
	}
	if u.NoReadingMatch {
		fmt.Fprintln(w, "    No reading matches")
	}
	if u.NoMatch {
		if u.RawTag != "" {
			fmt.Fprintf(w, "    No matches %s\n", u.RawTag)
		}
		fmt.Fprintf(w, "    [translation] %s\n\n", u.Fallback)
		return
	}

	for _, e := range u.Entries {
		if len(e.Kana) > 0 {
			fmt.Fprintf(w, "    %v\n", e.Kana)
		}
		if len(e.Senses) == 0 {
			fmt.Fprintln(w, "    No senses")
			continue
		}
		for _, s := range e.Senses {
			gloss := strings.ReplaceAll(strings.Join(s.Glosses, "; "), "`", "'")
			if len(s.POS) > 0 {
				gloss += " (" + strings.Join(s.POS, "|") + ")"
			}
			fmt.Fprintf(w, "    %s\n", gloss)
		}
		fmt.Fprintln(w)
	}
}

// WriteJSON writes r as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Package kanji loads KANJIDIC2 on/kun readings and aligns unit readings
// to the kanji of their surface for furigana.
package kanji

import (
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"japanesereader/pos"
)

type character struct {
	Literal        string `xml:"literal"`
	ReadingMeaning struct {
		RMGroup []struct {
			Reading []struct {
				Value string `xml:",chardata"`
				Type  string `xml:"r_type,attr"`
			} `xml:"reading"`
		} `xml:"rmgroup"`
	} `xml:"reading_meaning"`
}

// Readings maps a kanji to its KANJIDIC2 on and kun readings, in file order.
// It is read-only after loading.
type Readings struct {
	byKanji map[rune][]string
}

// Load reads a kanjidic2.xml file, gzip-compressed when the name ends in .gz.
func Load(path string) (*Readings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kanji: open: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("kanji: gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	k, err := Decode(r)
	if err != nil {
		return nil, err
	}
	slog.Info("kanjidic2 loaded", "component", "kanji", "path", path, "kanji", k.Len())
	return k, nil
}

// Decode streams <character> elements from r, skipping any wrapper.
func Decode(r io.Reader) (*Readings, error) {
	k := &Readings{byKanji: make(map[rune][]string)}
	d := xml.NewDecoder(r)
	d.Strict = false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("kanji: parse: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}
		var c character
		if err := d.DecodeElement(&c, &se); err != nil {
			return nil, fmt.Errorf("kanji: decode character: %w", err)
		}
		if utf8.RuneCountInString(c.Literal) != 1 {
			continue
		}
		var readings []string
		for _, group := range c.ReadingMeaning.RMGroup {
			for _, rd := range group.Reading {
				if rd.Type == "ja_on" || rd.Type == "ja_kun" {
					readings = append(readings, rd.Value)
				}
			}
		}
		lit, _ := utf8.DecodeRuneInString(c.Literal)
		k.byKanji[lit] = readings
	}
	return k, nil
}

// Of returns the readings of a kanji.
func (k *Readings) Of(r rune) []string {
	if k == nil {
		return nil
	}
	return k.byKanji[r]
}

// Len returns the number of kanji loaded.
func (k *Readings) Len() int {
	if k == nil {
		return 0
	}
	return len(k.byKanji)
}

// NormalizeReading strips KANJIDIC2 okurigana and affix markers ('.', '-')
// and converts katakana on readings to hiragana, so "い.る" matches "いる".
func NormalizeReading(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, s)
	return pos.KatakanaToHiragana(s)
}

var rendaku = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
}

// RendakuForm voices the first kana of a reading, as happens to non-initial
// members of compounds (かわ -> がわ). Readings that cannot be voiced are
// returned unchanged.
func RendakuForm(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if v, ok := rendaku[r]; ok {
		return string(v) + s[size:]
	}
	return s
}

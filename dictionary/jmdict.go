package dictionary

import (
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"japanesereader/model"
)

type jmdictEntry struct {
	Seq   int `xml:"ent_seq"`
	Kanji []struct {
		Keb string `xml:"keb"`
	} `xml:"k_ele"`
	Kana []struct {
		Reb string `xml:"reb"`
	} `xml:"r_ele"`
	Sense []struct {
		POS   []string `xml:"pos"`
		Misc  []string `xml:"misc"`
		Gloss []struct {
			Text string `xml:",chardata"`
			Lang string `xml:"lang,attr"`
		} `xml:"gloss"`
	} `xml:"sense"`
}

var entityDecl = regexp.MustCompile(`<!ENTITY\s+(\S+)\s+"([^"]*)"\s*>`)

// LoadJMdict reads a JMdict XML file (optionally gzipped) into entries.
// Entity references in <pos> and <misc> are kept as their short codes; the
// returned map gives each code's description from the DOCTYPE.
func LoadJMdict(path string) ([]model.Entry, map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("dictionary: gunzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return DecodeJMdict(r)
}

// DecodeJMdict streams <entry> elements from r.
func DecodeJMdict(r io.Reader) ([]model.Entry, map[string]string, error) {
	descriptions := make(map[string]string)
	d := xml.NewDecoder(r)
	d.Entity = make(map[string]string)

	var entries []model.Entry
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("dictionary: parse jmdict: %w", err)
		}
		switch t := tok.(type) {
		case xml.Directive:
			for _, m := range entityDecl.FindAllStringSubmatch(string(t), -1) {
				descriptions[m[1]] = m[2]
				d.Entity[m[1]] = m[1]
			}
		case xml.StartElement:
			if t.Name.Local != "entry" {
				continue
			}
			var e jmdictEntry
			if err := d.DecodeElement(&e, &t); err != nil {
				slog.Warn("skipping malformed jmdict entry", "component", "dictionary", "error", err)
				continue
			}
			entries = append(entries, convertEntry(e, descriptions))
		}
	}
	slog.Info("jmdict loaded", "component", "dictionary", "entries", len(entries), "entities", len(descriptions))
	return entries, descriptions, nil
}

func convertEntry(e jmdictEntry, descriptions map[string]string) model.Entry {
	out := model.Entry{ID: e.Seq}
	for _, k := range e.Kanji {
		out.Kanji = append(out.Kanji, k.Keb)
	}
	for _, r := range e.Kana {
		out.Kana = append(out.Kana, r.Reb)
	}
	for _, s := range e.Sense {
		var sense model.Sense
		for _, p := range s.POS {
			sense.POS = append(sense.POS, makeTag(p, descriptions))
		}
		for _, m := range s.Misc {
			sense.Misc = append(sense.Misc, makeTag(m, descriptions))
		}
		for _, g := range s.Gloss {
			if g.Lang != "" && g.Lang != "eng" {
				continue
			}
			sense.Glosses = append(sense.Glosses, strings.TrimSpace(g.Text))
		}
		out.Senses = append(out.Senses, sense)
	}
	return out
}

func makeTag(code string, descriptions map[string]string) model.Tag {
	code = strings.TrimSpace(code)
	if text, ok := descriptions[code]; ok {
		return model.Tag{Code: code, Text: text}
	}
	return model.Tag{Code: code, Text: code}
}

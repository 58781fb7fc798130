// Command demo prints the full conjugation table of a word, or the furigana
// alignment of a surface against its reading.
//
// Usage:
//
//	demo -class v5m 飲む
//	demo -list
//	demo -kanjidic dict/kanjidic2.xml -reading イリミナイカワ 入見内川
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"japanesereader/conjugate"
	"japanesereader/kanji"
	"japanesereader/pos"
)

func main() {
	class := flag.String("class", "", "JMdict class code of the word, e.g. v5m, v1, adj-i")
	kanjidic := flag.String("kanjidic", "", "KANJIDIC2 path; switches to furigana alignment")
	reading := flag.String("reading", "", "reading of the surface, in kana (furigana mode)")
	list := flag.Bool("list", false, "list the known class codes and grammatical cases")
	flag.Parse()

	if *list {
		rules, err := conjugate.DefaultRules()
		if err == nil {
			err = listRules(os.Stdout, rules)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	word := flag.Arg(0)

	var err error
	if *kanjidic != "" {
		err = printFurigana(*kanjidic, word, *reading)
	} else {
		err = printParadigm(word, *class)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printParadigm(citation, class string) error {
	if class == "" {
		return fmt.Errorf("-class is required")
	}
	rules, err := conjugate.DefaultRules()
	if err != nil {
		return err
	}
	engine, err := conjugate.NewEngine(rules, 0)
	if err != nil {
		return err
	}
	p, err := engine.Conjugate(citation, class)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s: %s)\n\n", p.Citation, p.Class, rules.Description(p.Class))
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, label := range p.Table.Labels() {
		name := label
		if name == "" {
			name = "non-past"
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, strings.Join(p.Table[label], ", "))
	}
	return tw.Flush()
}

// listRules prints every class code with its description, then every
// grammatical case.
func listRules(w io.Writer, rules *conjugate.Rules) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "class\tdescription\tinflects")
	for _, code := range rules.Codes() {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", code, rules.Description(code), rules.Inflects(code))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "case\tname")
	for _, id := range rules.Cases() {
		fmt.Fprintf(tw, "%d\t%s\n", id, rules.CaseName(id))
	}
	return tw.Flush()
}

func printFurigana(path, surface, reading string) error {
	readings, err := kanji.Load(path)
	if err != nil {
		return err
	}
	hira := pos.KatakanaToHiragana(reading)
	fmt.Printf("Surface: %s\nReading: %s\n\n", surface, hira)
	for _, r := range surface {
		if pos.IsKanji(r) {
			fmt.Printf("%c %v\n", r, readings.Of(r))
		}
	}
	pairs := readings.Align(surface, reading)
	fmt.Printf("\n%s\n%s\n", kanji.Brackets(pairs), kanji.Annotated(pairs))
	return nil
}

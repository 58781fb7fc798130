package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"japanesereader/conjugate"
	"japanesereader/dictionary"
	"japanesereader/ingest"
	"japanesereader/model"
	"japanesereader/pos"
	"japanesereader/segment"
	"japanesereader/tokenize"
)

func sense(code, text string, glosses ...string) model.Sense {
	return model.Sense{POS: []model.Tag{{Code: code, Text: text}}, Glosses: glosses}
}

// newUniDicAnalyzer runs the real UniDic and IPA analyzers over a small
// in-memory dictionary.
func newUniDicAnalyzer(t *testing.T, withSecondary bool) (*Analyzer, *segment.Segmenter, *tokenize.Kagome) {
	t.Helper()
	dict, err := dictionary.New([]model.Entry{
		{ID: 1, Kanji: []string{"猫"}, Kana: []string{"ねこ"}, Senses: []model.Sense{sense("n", "noun (common) (futsuumeishi)", "cat")}},
		{ID: 2, Kana: []string{"ここ"}, Senses: []model.Sense{sense("pn", "pronoun", "here")}},
		{ID: 3, Kanji: []string{"思う"}, Kana: []string{"おもう"}, Senses: []model.Sense{sense("v5u", "Godan verb with 'u' ending", "to think")}},
		{ID: 4, Kana: []string{"いる"}, Senses: []model.Sense{sense("v1", "Ichidan verb", "to be")}},
	})
	require.NoError(t, err)

	tok, err := tokenize.NewUniDic()
	require.NoError(t, err)
	var secondary segment.Tokenizer
	if withSecondary {
		ipa, err := tokenize.NewIPA()
		require.NoError(t, err)
		secondary = ipa
	}
	rules, err := conjugate.DefaultRules()
	require.NoError(t, err)
	engine, err := conjugate.NewEngine(rules, 16)
	require.NoError(t, err)

	seg := segment.NewSegmenter(segment.NewResolver(tok, secondary, dict, engine))
	return New(tok, seg, nil, Options{Workers: 2}), seg, tok
}

func TestAnalyzeUniDic(t *testing.T) {
	const text = "ここに猫、思っている。"
	for _, withSecondary := range []bool{false, true} {
		name := "unidic"
		if withSecondary {
			name = "unidic+ipa"
		}
		t.Run(name, func(t *testing.T) {
			a, seg, tok := newUniDicAnalyzer(t, withSecondary)
			ctx := context.Background()

			rep, err := a.Analyze(ctx, ingest.Sentence{ID: "u", Text: text})
			require.NoError(t, err)

			bySurface := make(map[string]UnitReport)
			for _, u := range rep.Units {
				bySurface[u.Surface] = u
			}

			cat, ok := bySurface["猫"]
			require.True(t, ok, "units: %v", rep.Surfaces)
			assert.Equal(t, "ねこ", cat.Reading)
			assert.False(t, cat.NoMatch)
			assert.False(t, cat.NoReadingMatch)
			require.NotEmpty(t, cat.Entries)
			assert.Equal(t, 1, cat.Entries[0].ID)

			here, ok := bySurface["ここ"]
			require.True(t, ok, "units: %v", rep.Surfaces)
			assert.False(t, here.NoMatch)

			verb, ok := bySurface["思っている"]
			require.True(t, ok, "units: %v", rep.Surfaces)
			assert.Equal(t, "思う", verb.Citation)
			assert.False(t, verb.NoMatch)
			assert.False(t, verb.NoReadingMatch)
			require.NotEmpty(t, verb.Entries)
			assert.Equal(t, 3, verb.Entries[0].ID)
			assert.Equal(t, pos.FoldLongVowels("おもっている"), pos.FoldLongVowels(verb.Reading))

			ms, err := tok.Tokenize(ctx, text)
			require.NoError(t, err)
			units, err := seg.Segment(ctx, ms)
			require.NoError(t, err)
			var thinking *segment.Unit
			for _, u := range units {
				if u.Surface() == "思っている" {
					thinking = u
				}
			}
			require.NotNil(t, thinking)
			r, err := seg.Resolver().Reading(ctx, thinking)
			require.NoError(t, err)
			assert.Equal(t, pos.FoldLongVowels("オモッテイル"), pos.FoldLongVowels(r.Surface))
			assert.Equal(t, pos.FoldLongVowels("オモウ"), pos.FoldLongVowels(r.Citation))
		})
	}
}

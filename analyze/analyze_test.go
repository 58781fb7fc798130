package analyze

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"japanesereader/conjugate"
	"japanesereader/ingest"
	"japanesereader/metrics"
	"japanesereader/model"
	"japanesereader/segment"
	"japanesereader/tokenize"
)

func tag(fields ...string) model.POS { return model.NewPOS(fields) }

func m(surface, base, reading string, p model.POS) model.Morpheme {
	return model.Morpheme{Surface: surface, BaseForm: base, Reading: reading, POS: p}
}

var (
	godanWa    = tag("動詞", "一般", "*", "*", "五段-ワア行", "連用形-促音便")
	ichidanA   = tag("動詞", "非自立可能", "*", "*", "上一段-ア行", "終止形-一般")
	teParticle = tag("助詞", "接続助詞")
	gaParticle = tag("助詞", "格助詞")
	noun       = tag("名詞", "普通名詞", "一般")
	comma      = tag("補助記号", "読点")
	period     = tag("補助記号", "句点")
)

type fakeTokenizer map[string][]model.Morpheme

func (f fakeTokenizer) Tokenize(_ context.Context, text string) ([]model.Morpheme, error) {
	if ms, ok := f[text]; ok {
		return ms, nil
	}
	return nil, nil
}

type fakeDict map[string][]model.Entry

func (f fakeDict) Lookup(ctx context.Context, form string) ([]model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f[form], nil
}

type fakeTranslator struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return "en:" + text, nil
}

var testDict = fakeDict{
	"思う": {{ID: 1, Kanji: []string{"思う"}, Kana: []string{"おもう"}, Senses: []model.Sense{
		{POS: []model.Tag{{Code: "v5u", Text: "Godan verb with 'u' ending"}}, Glosses: []string{"to think", "to consider"}},
	}}},
	"大学": {{ID: 2, Kanji: []string{"大学"}, Senses: []model.Sense{
		{POS: []model.Tag{{Code: "n", Text: "noun (common) (futsuumeishi)"}}, Glosses: []string{"university"}},
	}}},
}

func thinking() []model.Morpheme {
	return []model.Morpheme{
		m("思っ", "思う", "オモッ", godanWa),
		m("て", "て", "テ", teParticle),
		m("いる", "いる", "イル", ichidanA),
	}
}

// sentence is 思っているが大学、思っている猫。
func sentence() []model.Morpheme {
	var ms []model.Morpheme
	ms = append(ms, thinking()...)
	ms = append(ms,
		m("が", "が", "ガ", gaParticle),
		m("大学", "大学", "ダイガク", noun),
		m("、", "、", "", comma),
	)
	ms = append(ms, thinking()...)
	return append(ms,
		m("猫", "猫", "", noun),
		m("。", "。", "", period),
	)
}

const sentenceText = "思っているが大学、思っている猫。"

var testTokenizer = fakeTokenizer{
	"思う":         {m("思う", "思う", "オモウ", godanWa)},
	sentenceText: sentence(),
}

func newAnalyzer(t *testing.T, tr *fakeTranslator, mt *metrics.Metrics) *Analyzer {
	t.Helper()
	rules, err := conjugate.DefaultRules()
	require.NoError(t, err)
	engine, err := conjugate.NewEngine(rules, 16)
	require.NoError(t, err)
	seg := segment.NewSegmenter(segment.NewResolver(testTokenizer, nil, testDict, engine))
	var opts Options
	opts.Workers = 2
	opts.Metrics = mt
	if tr == nil {
		return New(testTokenizer, seg, nil, opts)
	}
	return New(testTokenizer, seg, tr, opts)
}

func TestAnalyze(t *testing.T) {
	tr := &fakeTranslator{}
	mt := metrics.New(nil)
	a := newAnalyzer(t, tr, mt)

	rep, err := a.Analyze(context.Background(), ingest.Sentence{ID: "s1", Text: sentenceText})
	require.NoError(t, err)

	assert.Equal(t, "s1", rep.SentenceID)
	assert.Equal(t, "en:"+sentenceText, rep.Translation)
	assert.Equal(t, []string{"思っている", "が", "大学", "、", "思っている", "猫", "。"}, rep.Surfaces)
	assert.Equal(t, 19, rep.Score)
	assert.Equal(t, []Clause{
		{Start: 0, End: 3, Type: MainClause},
		{Start: 4, End: 6, Type: MainClause},
	}, rep.Clauses)

	require.Len(t, rep.Units, 5)
	byIndex := make(map[int]UnitReport)
	for _, u := range rep.Units {
		byIndex[u.Index] = u
	}
	assert.NotContains(t, byIndex, 3, "unrecognised punctuation is omitted")
	assert.NotContains(t, byIndex, 6)

	verb := byIndex[0]
	assert.Equal(t, KindWord, verb.Kind)
	assert.Equal(t, "おもっている", verb.Reading)
	assert.Equal(t, "思う", verb.Citation)
	assert.Equal(t, "verb", verb.POS)
	assert.Contains(t, verb.Conjugations, "progressive")
	require.Len(t, verb.Entries, 1)
	assert.Equal(t, 1, verb.Entries[0].ID)
	assert.Empty(t, verb.Entries[0].Kana)
	assert.Equal(t, []string{"to think", "to consider"}, verb.Entries[0].Senses[0].Glosses)
	assert.Equal(t, 0, verb.Start)
	assert.Equal(t, 3, verb.End)
	assert.Equal(t, []string{"思っ", "て", "いる"}, verb.Morphemes)
	assert.Equal(t, "vpv", verb.Letters)
	assert.Equal(t, "verb-chain", verb.Pattern)
	assert.Equal(t, "godan", verb.VerbClass)

	assert.Equal(t, KindParticle, byIndex[1].Kind)

	uni := byIndex[2]
	assert.Equal(t, "だいがく", uni.Reading)
	assert.Empty(t, uni.Citation)
	assert.True(t, uni.NoReadingMatch, "entry has no kana form")
	assert.Equal(t, "single", uni.Pattern)
	assert.Empty(t, uni.VerbClass)
	require.Len(t, uni.Entries, 1)

	repeat := byIndex[4]
	assert.Equal(t, KindRepeat, repeat.Kind)
	require.NotNil(t, repeat.SeeUnit)
	assert.Equal(t, 0, *repeat.SeeUnit)
	assert.Empty(t, repeat.Entries)

	cat := byIndex[5]
	assert.True(t, cat.NoMatch)
	assert.Equal(t, strings.Join(noun.Strings(), ","), cat.RawTag)
	assert.Equal(t, "en:猫", cat.Fallback)
	assert.Empty(t, cat.Reading)

	assert.Equal(t, 1.0, testutil.ToFloat64(mt.SentencesTotal))
	assert.Equal(t, 7.0, testutil.ToFloat64(mt.UnitsTotal))
}

func TestAnalyzeWithoutTranslator(t *testing.T) {
	a := newAnalyzer(t, nil, nil)
	rep, err := a.Analyze(context.Background(), ingest.Sentence{ID: "s1", Text: sentenceText})
	require.NoError(t, err)
	assert.Equal(t, "<translation failed>", rep.Translation)
}

func TestAnalyzeEmpty(t *testing.T) {
	a := newAnalyzer(t, &fakeTranslator{}, nil)
	rep, err := a.Analyze(context.Background(), ingest.Sentence{ID: "e"})
	require.NoError(t, err)
	assert.Empty(t, rep.Units)
	assert.Empty(t, rep.Translation)
	assert.Zero(t, rep.Score)
}

func TestAnalyzeCancelled(t *testing.T) {
	a := newAnalyzer(t, &fakeTranslator{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.AnalyzeMorphemes(ctx, ingest.Sentence{Text: sentenceText}, sentence())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormat(t *testing.T) {
	a := newAnalyzer(t, &fakeTranslator{}, nil)
	rep, err := a.Analyze(context.Background(), ingest.Sentence{ID: "s1", Text: sentenceText})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, rep))
	out := buf.String()

	for _, want := range []string{
		"思っている が 大学 、 思っている 猫 。\n",
		"思っている [おもっている] verb (思う) ",
		"    to think; to consider (v5u)\n",
		"が particle\n",
		"大学 [だいがく] noun\n    No reading matches\n",
		"    [see above]\n",
		"    [translation] en:猫\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFullwidthAlphanumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ＡＢ３", true},
		{"！", true},
		{"、", false},
		{"abc", false},
		{"　", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fullwidthAlphanumeric(tt.in), tt.in)
	}
}

func TestClauses(t *testing.T) {
	tests := []struct {
		name     string
		surfaces []string
		want     []Clause
	}{
		{"none", nil, nil},
		{"single", []string{"猫", "だ"}, []Clause{{Start: 0, End: 2, Type: MainClause}}},
		{
			"subordinate before comma",
			[]string{"雨", "な", "ので", "、", "休む", "。"},
			[]Clause{
				{Start: 0, End: 3, Type: SubordinateClause, Connective: "ので"},
				{Start: 4, End: 5, Type: MainClause},
			},
		},
		{"connective without comma", []string{"行く", "が", "。"}, []Clause{{Start: 0, End: 2, Type: MainClause}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clauses(tt.surfaces))
		})
	}
}

func TestStart(t *testing.T) {
	a := newAnalyzer(t, &fakeTranslator{}, nil)
	in := make(chan tokenize.Tokenized, 2)
	in <- tokenize.Tokenized{Sentence: ingest.Sentence{ID: "bad"}, Err: errors.New("tokenizer down")}
	in <- tokenize.Tokenized{Sentence: ingest.Sentence{ID: "ok", Text: sentenceText}, Morphemes: sentence()}
	close(in)

	var got []Result
	for r := range a.Start(context.Background(), in) {
		got = append(got, r)
	}
	require.Len(t, got, 2)
	assert.Error(t, got[0].Err)
	assert.Equal(t, "bad", got[0].Report.SentenceID)
	require.NoError(t, got[1].Err)
	assert.Len(t, got[1].Report.Units, 5)
}

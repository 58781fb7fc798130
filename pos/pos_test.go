package pos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"japanesereader/model"
)

func tag(fields ...string) model.POS { return model.NewPOS(fields) }

func TestLetters(t *testing.T) {
	ms := []model.Morpheme{
		{Surface: "思っ", POS: tag("動詞", "一般", "*", "*", "五段-ワア行", "連用形-促音便")},
		{Surface: "て", POS: tag("助詞", "接続助詞")},
		{Surface: "いる", POS: tag("動詞", "非自立可能", "*", "*", "上一段-ア行", "終止形-一般")},
		{Surface: "？", POS: tag("補助記号", "句点")},
		{Surface: "x", POS: tag("未知語")},
	}
	assert.Equal(t, "vpvY?", Letters(ms))
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		pos  model.POS
		want string
	}{
		{tag("名詞", "数詞"), "numeral"},
		{tag("名詞", "固有名詞", "地名"), "proper noun"},
		{tag("名詞", "普通名詞", "一般"), "noun"},
		{tag("助動詞"), "auxiliary verb"},
		{tag("形状詞", "一般"), "classifier"},
		{tag("空白"), "blank space"},
		{tag("フィラー"), "フィラー"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Display(tt.pos))
	}
}

func TestGuessVerbClass(t *testing.T) {
	tests := []struct {
		name    string
		ctype   string
		want    VerbClass
		wantErr bool
	}{
		{"godan", "五段-マ行", Godan, false},
		{"kami ichidan", "上一段-ア行", Ichidan, false},
		{"shimo ichidan", "下一段-バ行", Ichidan, false},
		{"suru", "サ行変格", Irregular, false},
		{"kuru", "カ行変格", Irregular, false},
		{"masu", "助動詞-マス", Godan, false},
		{"reru", "助動詞-レル", Ichidan, false},
		{"past", "助動詞-タ", NoClass, false},
		{"nai", "助動詞-ナイ", NoClass, true},
		{"copula", "助動詞-ダ", NoClass, true},
		{"adjective", "形容詞", NoClass, true},
		{"empty", "*", NoClass, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GuessVerbClass(tag("助動詞", "*", "*", "*", tt.ctype, "*"))
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnclassifiable))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRomaji(t *testing.T) {
	tests := map[string]string{
		"マス":   "masu",
		"レル":   "reru",
		"ラシイ":  "rashii",
		"シャ":   "sha",
		"キッテ":  "kitte",
		"ラーメン": "raamen",
		"のむ":   "nomu",
	}
	for in, want := range tests {
		assert.Equal(t, want, Romaji(in), in)
	}
}

func TestKanaShifts(t *testing.T) {
	assert.True(t, EndsInEru("飲める"))
	assert.True(t, EndsInEru("買える"))
	assert.False(t, EndsInEru("飲む"))
	assert.False(t, EndsInEru("る"))

	got, ok := ShiftEToU("飲め")
	assert.True(t, ok)
	assert.Equal(t, "飲む", got)

	_, ok = ShiftEToU("飲み")
	assert.False(t, ok)

	assert.Equal(t, "のむ", KatakanaToHiragana("ノム"))
	assert.Equal(t, "ノム", HiraganaToKatakana("のむ"))
	assert.True(t, HasKanji("大学"))
	assert.False(t, HasKanji("だいがく"))
	assert.True(t, AllKatakana("ラーメン"))
	assert.False(t, AllKatakana(""))
}

func TestFoldLongVowels(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"がっこう", "ガッコー"},
		{"せんせい", "センセー"},
		{"おおきい", "オーキー"},
		{"くうき", "クーキ"},
		{"きょう", "キョー"},
		{"おもう", "オモー"},
	}
	for _, tt := range tests {
		assert.Equal(t, FoldLongVowels(tt.a), FoldLongVowels(tt.b), tt.a)
	}
	assert.Equal(t, "ネコ", FoldLongVowels("ねこ"))
	assert.Equal(t, "ホン", FoldLongVowels("ほん"))
	assert.NotEqual(t, FoldLongVowels("おばさん"), FoldLongVowels("おばあさん"))
}

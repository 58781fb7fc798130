package kanji

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKanjidic = `<?xml version="1.0" encoding="UTF-8"?>
<kanjidic2>
<header><file_version>4</file_version></header>
<character><literal>入</literal><reading_meaning><rmgroup>
<reading r_type="pinyin">ru4</reading>
<reading r_type="ja_on">ニュウ</reading>
<reading r_type="ja_on">ジュ</reading>
<reading r_type="ja_kun">い.る</reading>
<reading r_type="ja_kun">-い.る</reading>
<reading r_type="ja_kun">-い.り</reading>
<reading r_type="ja_kun">はい.る</reading>
</rmgroup></reading_meaning></character>
<character><literal>見</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">ケン</reading>
<reading r_type="ja_kun">み.る</reading>
<reading r_type="ja_kun">み.える</reading>
</rmgroup></reading_meaning></character>
<character><literal>内</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">ナイ</reading>
<reading r_type="ja_on">ダイ</reading>
<reading r_type="ja_kun">うち</reading>
</rmgroup></reading_meaning></character>
<character><literal>川</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">セン</reading>
<reading r_type="ja_kun">かわ</reading>
</rmgroup></reading_meaning></character>
<character><literal>飲</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">イン</reading>
<reading r_type="ja_kun">の.む</reading>
</rmgroup></reading_meaning></character>
<character><literal>小</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">ショウ</reading>
<reading r_type="ja_kun">ちい.さい</reading>
<reading r_type="ja_kun">こ-</reading>
<reading r_type="ja_kun">お-</reading>
</rmgroup></reading_meaning></character>
</kanjidic2>`

func load(t *testing.T) *Readings {
	t.Helper()
	k, err := Decode(strings.NewReader(sampleKanjidic))
	require.NoError(t, err)
	return k
}

func TestDecode(t *testing.T) {
	k := load(t)
	assert.Equal(t, 6, k.Len())
	assert.Equal(t, []string{"セン", "かわ"}, k.Of('川'))
	assert.Nil(t, k.Of('山'))
}

func TestNormalizeReading(t *testing.T) {
	assert.Equal(t, "いり", NormalizeReading("-い.り"))
	assert.Equal(t, "にゅう", NormalizeReading("ニュウ"))
	assert.Equal(t, "がわ", RendakuForm("かわ"))
	assert.Equal(t, "いり", RendakuForm("いり"))
	assert.Equal(t, "", RendakuForm(""))
}

func TestFurigana(t *testing.T) {
	k := load(t)
	tests := []struct {
		surface, reading, want string
	}{
		{"入見内川", "イリミナイカワ", "[いり][み][ない][かわ]"},
		{"飲む", "ノム", "[の]む"},
		{"小川", "オガワ", "[お][がわ]"},
		{"のむ", "ノム", ""},
	}
	for _, tt := range tests {
		t.Run(tt.surface, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Furigana(tt.surface, tt.reading))
		})
	}
}

func TestAnnotated(t *testing.T) {
	k := load(t)
	assert.Equal(t, "[飲|の]む", Annotated(k.Align("飲む", "ノム")))
}

func TestFuriganaWithoutReadings(t *testing.T) {
	var k *Readings
	assert.Equal(t, "", k.Furigana("川", "カワ"))
}

package dictionary

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"japanesereader/model"
)

const sampleJMdict = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE JMdict [
<!ELEMENT JMdict (entry*)>
<!ENTITY v5m "Godan verb with 'mu' ending">
<!ENTITY vt "transitive verb">
<!ENTITY n "noun (common) (futsuumeishi)">
<!ENTITY uk "word usually written using kana alone">
]>
<JMdict>
<entry>
<ent_seq>1169910</ent_seq>
<k_ele><keb>飲む</keb></k_ele>
<r_ele><reb>のむ</reb></r_ele>
<sense>
<pos>&v5m;</pos>
<pos>&vt;</pos>
<gloss>to drink</gloss>
<gloss>to gulp</gloss>
<gloss xml:lang="ger">trinken</gloss>
</sense>
<sense>
<gloss>to smoke (tobacco)</gloss>
</sense>
</entry>
<entry>
<ent_seq>1206730</ent_seq>
<k_ele><keb>学生</keb></k_ele>
<r_ele><reb>がくせい</reb></r_ele>
<sense>
<pos>&n;</pos>
<misc>&uk;</misc>
<gloss>student</gloss>
</sense>
</entry>
</JMdict>`

func TestDecodeJMdict(t *testing.T) {
	entries, descriptions, err := DecodeJMdict(strings.NewReader(sampleJMdict))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Godan verb with 'mu' ending", descriptions["v5m"])

	nomu := entries[0]
	assert.Equal(t, 1169910, nomu.ID)
	assert.Equal(t, []string{"飲む"}, nomu.Kanji)
	assert.Equal(t, []string{"のむ"}, nomu.Kana)
	require.Len(t, nomu.Senses, 2)
	assert.Equal(t, []model.Tag{
		{Code: "v5m", Text: "Godan verb with 'mu' ending"},
		{Code: "vt", Text: "transitive verb"},
	}, nomu.Senses[0].POS)
	assert.Equal(t, []string{"to drink", "to gulp"}, nomu.Senses[0].Glosses)
	assert.Empty(t, nomu.Senses[1].POS)

	assert.True(t, entries[1].Senses[0].HasMisc("uk"))
}

func TestLookup(t *testing.T) {
	entries, _, err := DecodeJMdict(strings.NewReader(sampleJMdict))
	require.NoError(t, err)
	d, err := New(entries)
	require.NoError(t, err)
	defer d.Close()

	ctx := context.Background()
	for _, form := range []string{"飲む", "のむ"} {
		got, err := d.Lookup(ctx, form)
		require.NoError(t, err)
		require.Len(t, got, 1, form)
		assert.Equal(t, 1169910, got[0].ID)
	}

	got, err := d.Lookup(ctx, "飲んだ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = d.Lookup(ctx, "学")
	require.NoError(t, err)
	assert.Empty(t, got, "prefixes of headwords are not headwords")
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 4, d.Headwords())
}

func TestLookupSharedForm(t *testing.T) {
	d, err := New([]model.Entry{
		{ID: 1, Kanji: []string{"橋"}, Kana: []string{"はし"}},
		{ID: 2, Kanji: []string{"箸"}, Kana: []string{"はし"}},
		{ID: 3, Kanji: []string{"端"}, Kana: []string{"はし", "はし"}},
	})
	require.NoError(t, err)

	got, err := d.Lookup(context.Background(), "はし")
	require.NoError(t, err)
	ids := make([]int, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestLookupCancelled(t *testing.T) {
	d, err := New([]model.Entry{{ID: 1, Kana: []string{"x"}}})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Lookup(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

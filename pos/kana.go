package pos

import (
	"strings"
	"unicode"
)

// IsKanji reports whether r is a CJK unified ideograph (or the 々 repeater).
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) || r == '々'
}

// IsKana returns true if r is hiragana or katakana.
func IsKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// IsKatakana returns true for katakana letters and the prolonged sound mark.
func IsKatakana(r rune) bool {
	return (r >= 0x30A1 && r <= 0x30FA) || r == 'ー'
}

// HasKanji reports whether s contains at least one kanji.
func HasKanji(s string) bool {
	return strings.IndexFunc(s, IsKanji) >= 0
}

// AllKatakana reports whether s is non-empty and made only of katakana.
func AllKatakana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsKatakana(r) {
			return false
		}
	}
	return true
}

// KatakanaToHiragana converts katakana to hiragana, leaving other runes alone.
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// HiraganaToKatakana converts hiragana to katakana, leaving other runes alone.
func HiraganaToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x3041 && r <= 0x3096 {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}

// e-row hiragana to the u-row kana of the same consonant.
var eToU = map[rune]rune{
	'え': 'う', 'け': 'く', 'げ': 'ぐ', 'せ': 'す', 'ぜ': 'ず',
	'て': 'つ', 'で': 'づ', 'ね': 'ぬ', 'へ': 'ふ', 'べ': 'ぶ',
	'ぺ': 'ぷ', 'め': 'む', 'れ': 'る',
}

// EndsInERow reports whether the last rune of s is an e-row hiragana.
func EndsInERow(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	_, ok := eToU[runes[len(runes)-1]]
	return ok
}

// ShiftEToU replaces the final e-row kana of s with its u-row counterpart.
// The second result is false when s does not end in an e-row kana.
func ShiftEToU(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return s, false
	}
	u, ok := eToU[runes[len(runes)-1]]
	if !ok {
		return s, false
	}
	runes[len(runes)-1] = u
	return string(runes), true
}

// EndsInEru reports whether s ends with an e-row kana followed by る,
// i.e. reads as "-eru".
func EndsInEru(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 || runes[len(runes)-1] != 'る' {
		return false
	}
	return EndsInERow(string(runes[:len(runes)-1]))
}

var digraphs = map[string]string{
	"キャ": "kya", "キュ": "kyu", "キョ": "kyo", "シャ": "sha", "シュ": "shu", "ショ": "sho",
	"チャ": "cha", "チュ": "chu", "チョ": "cho", "ニャ": "nya", "ニュ": "nyu", "ニョ": "nyo",
	"ヒャ": "hya", "ヒュ": "hyu", "ヒョ": "hyo", "ミャ": "mya", "ミュ": "myu", "ミョ": "myo",
	"リャ": "rya", "リュ": "ryu", "リョ": "ryo", "ギャ": "gya", "ギュ": "gyu", "ギョ": "gyo",
	"ジャ": "ja", "ジュ": "ju", "ジョ": "jo", "ビャ": "bya", "ビュ": "byu", "ビョ": "byo",
	"ピャ": "pya", "ピュ": "pyu", "ピョ": "pyo",
}

var monographs = map[rune]string{
	'ア': "a", 'イ': "i", 'ウ': "u", 'エ': "e", 'オ': "o",
	'カ': "ka", 'キ': "ki", 'ク': "ku", 'ケ': "ke", 'コ': "ko",
	'サ': "sa", 'シ': "shi", 'ス': "su", 'セ': "se", 'ソ': "so",
	'タ': "ta", 'チ': "chi", 'ツ': "tsu", 'テ': "te", 'ト': "to",
	'ナ': "na", 'ニ': "ni", 'ヌ': "nu", 'ネ': "ne", 'ノ': "no",
	'ハ': "ha", 'ヒ': "hi", 'フ': "fu", 'ヘ': "he", 'ホ': "ho",
	'マ': "ma", 'ミ': "mi", 'ム': "mu", 'メ': "me", 'モ': "mo",
	'ヤ': "ya", 'ユ': "yu", 'ヨ': "yo",
	'ラ': "ra", 'リ': "ri", 'ル': "ru", 'レ': "re", 'ロ': "ro",
	'ワ': "wa", 'ヰ': "i", 'ヱ': "e", 'ヲ': "o", 'ン': "n",
	'ガ': "ga", 'ギ': "gi", 'グ': "gu", 'ゲ': "ge", 'ゴ': "go",
	'ザ': "za", 'ジ': "ji", 'ズ': "zu", 'ゼ': "ze", 'ゾ': "zo",
	'ダ': "da", 'ヂ': "ji", 'ヅ': "zu", 'デ': "de", 'ド': "do",
	'バ': "ba", 'ビ': "bi", 'ブ': "bu", 'ベ': "be", 'ボ': "bo",
	'パ': "pa", 'ピ': "pi", 'プ': "pu", 'ペ': "pe", 'ポ': "po",
	'ァ': "a", 'ィ': "i", 'ゥ': "u", 'ェ': "e", 'ォ': "o", 'ヴ': "vu",
}

// Romaji transliterates kana to Hepburn-style romaji. Runes that are not
// kana pass through unchanged.
func Romaji(s string) string {
	runes := []rune(HiraganaToKatakana(s))
	var b strings.Builder
	geminate := false
	for i := 0; i < len(runes); i++ {
		var syl string
		if i+1 < len(runes) {
			if d, ok := digraphs[string(runes[i:i+2])]; ok {
				syl = d
				i++
			}
		}
		if syl == "" {
			switch r := runes[i]; {
			case r == 'ッ':
				geminate = true
				continue
			case r == 'ー':
				if out := b.String(); out != "" && out[len(out)-1] < 0x80 {
					syl = out[len(out)-1:]
				}
			default:
				if m, ok := monographs[r]; ok {
					syl = m
				} else {
					syl = string(unicode.ToLower(r))
				}
			}
		}
		if geminate && syl != "" {
			b.WriteByte(syl[0])
			geminate = false
		}
		b.WriteString(syl)
	}
	return b.String()
}

// vowel returns the vowel a katakana rune ends in, or 0 when it has none
// (ン, ッ and non-kana).
func vowel(r rune) byte {
	switch r {
	case 'ャ':
		return 'a'
	case 'ュ':
		return 'u'
	case 'ョ':
		return 'o'
	}
	syl, ok := monographs[r]
	if !ok || r == 'ン' {
		return 0
	}
	return syl[len(syl)-1]
}

// FoldLongVowels returns the katakana form of s with long vowels written as
// ー, so that a dictionary spelling such as がっこう and a pronunciation such
// as ガッコー compare equal. A vowel kana repeating the previous vowel, ウ
// after an o- or u-row kana and イ after an e-row kana are folded.
func FoldLongVowels(s string) string {
	runes := []rune(HiraganaToKatakana(s))
	var prev byte
	for i, r := range runes {
		if r == 'ー' {
			continue
		}
		v := vowel(r)
		if prev != 0 {
			switch {
			case r == 'ウ' && (prev == 'o' || prev == 'u'),
				r == 'イ' && prev == 'e',
				strings.ContainsRune("アイウエオ", r) && v == prev:
				runes[i] = 'ー'
				continue
			}
		}
		prev = v
	}
	return string(runes)
}

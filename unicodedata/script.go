package unicodedata

// Script is a Unicode script tag, simplified to the set the pipeline's
// shapers and glyph-source resolver actually branch on.
type Script uint8

const (
	ScriptCommon Script = iota
	ScriptInherited
	ScriptLatin
	ScriptCyrillic
	ScriptGreek
	ScriptArabic
	ScriptHebrew
	ScriptHan
	ScriptHiragana
	ScriptKatakana
	ScriptHangul
	ScriptDevanagari
	ScriptThai
	ScriptGeorgian
	ScriptArmenian
	ScriptBengali
	ScriptTamil
	ScriptTelugu
	ScriptKannada
	ScriptMalayalam
	ScriptGujarati
	ScriptOriya
	ScriptGurmukhi
	ScriptSinhala
	ScriptKhmer
	ScriptLao
	ScriptMyanmar
	ScriptTibetan
	ScriptEthiopic
	ScriptUnknown
)

var scriptNames = [...]string{
	ScriptCommon: "Common", ScriptInherited: "Inherited", ScriptLatin: "Latin",
	ScriptCyrillic: "Cyrillic", ScriptGreek: "Greek", ScriptArabic: "Arabic",
	ScriptHebrew: "Hebrew", ScriptHan: "Han", ScriptHiragana: "Hiragana",
	ScriptKatakana: "Katakana", ScriptHangul: "Hangul", ScriptDevanagari: "Devanagari",
	ScriptThai: "Thai", ScriptGeorgian: "Georgian", ScriptArmenian: "Armenian",
	ScriptBengali: "Bengali", ScriptTamil: "Tamil", ScriptTelugu: "Telugu",
	ScriptKannada: "Kannada", ScriptMalayalam: "Malayalam", ScriptGujarati: "Gujarati",
	ScriptOriya: "Oriya", ScriptGurmukhi: "Gurmukhi", ScriptSinhala: "Sinhala",
	ScriptKhmer: "Khmer", ScriptLao: "Lao", ScriptMyanmar: "Myanmar",
	ScriptTibetan: "Tibetan", ScriptEthiopic: "Ethiopic", ScriptUnknown: "Unknown",
}

func (s Script) String() string {
	if int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return "Unknown"
}

// IsRTL reports whether s is conventionally written right-to-left.
func (s Script) IsRTL() bool {
	return s == ScriptArabic || s == ScriptHebrew
}

// RequiresComplexShaping reports whether s typically needs ligature
// substitution, reordering, or contextual forms beyond a trivial
// one-glyph-per-rune shaper.
func (s Script) RequiresComplexShaping() bool {
	switch s {
	case ScriptArabic, ScriptHebrew, ScriptDevanagari, ScriptBengali,
		ScriptTamil, ScriptTelugu, ScriptKannada, ScriptMalayalam,
		ScriptGujarati, ScriptOriya, ScriptGurmukhi, ScriptSinhala,
		ScriptKhmer, ScriptLao, ScriptMyanmar, ScriptTibetan, ScriptThai:
		return true
	default:
		return false
	}
}

// scriptRange is one contiguous Unicode block mapped to a script.
type scriptRange struct {
	lo, hi rune
	script Script
}

// scriptRanges is checked in order; the first matching range wins.
// Kept as a flat, ordered table (rather than the teacher's nested
// per-region dispatch functions) since the lookup itself is a single
// linear scan either way and a table is easier to extend.
var scriptRanges = []scriptRange{
	{0x0041, 0x005A, ScriptLatin}, {0x0061, 0x007A, ScriptLatin},
	{0x00C0, 0x00D6, ScriptLatin}, {0x00D8, 0x00F6, ScriptLatin}, {0x00F8, 0x00FF, ScriptLatin},
	{0x0100, 0x024F, ScriptLatin}, {0x0250, 0x02AF, ScriptLatin},
	{0x1E00, 0x1EFF, ScriptLatin}, {0x2C60, 0x2C7F, ScriptLatin}, {0xA720, 0xA7FF, ScriptLatin},

	{0x0300, 0x036F, ScriptInherited}, {0x1AB0, 0x1AFF, ScriptInherited},
	{0x1DC0, 0x1DFF, ScriptInherited}, {0x20D0, 0x20FF, ScriptInherited}, {0xFE20, 0xFE2F, ScriptInherited},

	{0x0370, 0x03FF, ScriptGreek}, {0x1F00, 0x1FFF, ScriptGreek},

	{0x0400, 0x04FF, ScriptCyrillic}, {0x0500, 0x052F, ScriptCyrillic},
	{0x2DE0, 0x2DFF, ScriptCyrillic}, {0xA640, 0xA69F, ScriptCyrillic},

	{0x0530, 0x058F, ScriptArmenian},
	{0x10A0, 0x10FF, ScriptGeorgian}, {0x2D00, 0x2D2F, ScriptGeorgian},

	{0x0590, 0x05FF, ScriptHebrew}, {0xFB1D, 0xFB4F, ScriptHebrew},
	{0xFB00, 0xFB1C, ScriptLatin}, // Latin ligatures (fi, fl, ...)

	{0x0600, 0x06FF, ScriptArabic}, {0x0750, 0x077F, ScriptArabic},
	{0x08A0, 0x08FF, ScriptArabic}, {0xFB50, 0xFDFF, ScriptArabic}, {0xFE70, 0xFEFF, ScriptArabic},

	{0x0900, 0x097F, ScriptDevanagari}, {0xA8E0, 0xA8FF, ScriptDevanagari},
	{0x0980, 0x09FF, ScriptBengali},
	{0x0A00, 0x0A7F, ScriptGurmukhi},
	{0x0A80, 0x0AFF, ScriptGujarati},
	{0x0B00, 0x0B7F, ScriptOriya},
	{0x0B80, 0x0BFF, ScriptTamil},
	{0x0C00, 0x0C7F, ScriptTelugu},
	{0x0C80, 0x0CFF, ScriptKannada},
	{0x0D00, 0x0D7F, ScriptMalayalam},
	{0x0D80, 0x0DFF, ScriptSinhala},

	{0x1100, 0x11FF, ScriptHangul}, {0x3130, 0x318F, ScriptHangul},
	{0xA960, 0xA97F, ScriptHangul}, {0xAC00, 0xD7AF, ScriptHangul}, {0xD7B0, 0xD7FF, ScriptHangul},

	{0x3040, 0x309F, ScriptHiragana}, {0x1B000, 0x1B0FF, ScriptHiragana},
	{0x30A0, 0x30FF, ScriptKatakana}, {0x31F0, 0x31FF, ScriptKatakana}, {0xFF65, 0xFF9F, ScriptKatakana},

	{0x2E80, 0x2EFF, ScriptHan}, {0x2F00, 0x2FDF, ScriptHan}, {0x3400, 0x4DBF, ScriptHan},
	{0x4E00, 0x9FFF, ScriptHan}, {0xF900, 0xFAFF, ScriptHan},
	{0x20000, 0x2A6DF, ScriptHan}, {0x2A700, 0x2B73F, ScriptHan}, {0x2B740, 0x2B81F, ScriptHan},

	{0x0E00, 0x0E7F, ScriptThai}, {0x0E80, 0x0EFF, ScriptLao}, {0x0F00, 0x0FFF, ScriptTibetan},
	{0x1000, 0x109F, ScriptMyanmar}, {0xAA60, 0xAA7F, ScriptMyanmar},
	{0x1780, 0x17FF, ScriptKhmer}, {0x19E0, 0x19FF, ScriptKhmer},

	{0x1200, 0x137F, ScriptEthiopic}, {0x1380, 0x139F, ScriptEthiopic}, {0x2D80, 0x2DDF, ScriptEthiopic},

	{0x2000, 0x206F, ScriptCommon}, {0x2070, 0x209F, ScriptCommon}, {0x20A0, 0x20CF, ScriptCommon},
	{0x2100, 0x214F, ScriptCommon}, {0x2150, 0x218F, ScriptCommon}, {0x2190, 0x21FF, ScriptCommon},
	{0x2200, 0x22FF, ScriptCommon}, {0x2300, 0x23FF, ScriptCommon}, {0x2500, 0x25FF, ScriptCommon},
	{0x2600, 0x27BF, ScriptCommon}, {0x3000, 0x303F, ScriptCommon},
	{0xFF00, 0xFF64, ScriptCommon}, {0xFFA0, 0xFFEF, ScriptCommon},
}

// DetectScript returns the Unicode script of r using hardcoded range
// tables, avoiding a dependency on golang.org/x/text/unicode/runenames
// or a full UCD table just to answer "what script is this rune".
func DetectScript(r rune) Script {
	if r < 0x0080 {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return ScriptLatin
		}
		return ScriptCommon
	}
	for _, rg := range scriptRanges {
		if r >= rg.lo && r <= rg.hi {
			return rg.script
		}
	}
	return ScriptUnknown
}

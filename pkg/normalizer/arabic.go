package normalizer

import "strings"

// arabicIndicDigits maps Arabic-Indic and Extended Arabic-Indic digits to
// their ASCII equivalents.
var arabicIndicDigits = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
}

// letterFolds collapses orthographic variants that students use
// interchangeably: hamza carriers onto bare alef, alef maqsura onto yeh,
// and teh marbuta onto heh.
var letterFolds = map[rune]rune{
	'أ': 'ا', 'إ': 'ا', 'آ': 'ا', 'ٱ': 'ا',
	'ى': 'ي',
	'ة': 'ه',
	'ؤ': 'و',
	'ئ': 'ي',
}

// tashkeel covers the Arabic diacritic range plus tatweel, all of which are
// stripped before matching.
func isTashkeel(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670 || r == 0x0640
}

// Fold lowercases, converts Arabic-Indic digits to ASCII, folds letter
// variants, and strips diacritics. It is applied before every dictionary
// lookup so the tables only need folded keys.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if isTashkeel(r) {
			continue
		}
		if d, ok := arabicIndicDigits[r]; ok {
			b.WriteRune(d)
			continue
		}
		if f, ok := letterFolds[r]; ok {
			b.WriteRune(f)
			continue
		}
		b.WriteRune(r)
	}
	return collapseSpaces(b.String())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

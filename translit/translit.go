// Package translit maps player names onto the ASCII character set required by
// the FIDE rating report.
package translit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

// Letters that do not decompose into an ASCII base letter plus marks.
var substitutions = map[rune]string{
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'þ': "th", 'Þ': "TH",
	'ð': "d", 'Ð': "D",
	'ĳ': "ij", 'Ĳ': "IJ",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ı': "i",

	'а': "a", 'А': "A",
	'б': "b", 'Б': "B",
	'в': "v", 'В': "V",
	'г': "g", 'Г': "G",
	'ґ': "g", 'Ґ': "G",
	'д': "d", 'Д': "D",
	'е': "e", 'Е': "E",
	'ё': "e", 'Ё': "E",
	'є': "ye", 'Є': "Ye",
	'ж': "zh", 'Ж': "Zh",
	'з': "z", 'З': "Z",
	'и': "i", 'И': "I",
	'і': "i", 'І': "I",
	'ї': "yi", 'Ї': "Yi",
	'й': "y", 'Й': "Y",
	'к': "k", 'К': "K",
	'л': "l", 'Л': "L",
	'м': "m", 'М': "M",
	'н': "n", 'Н': "N",
	'о': "o", 'О': "O",
	'п': "p", 'П': "P",
	'р': "r", 'Р': "R",
	'с': "s", 'С': "S",
	'т': "t", 'Т': "T",
	'у': "u", 'У': "U",
	'ф': "f", 'Ф': "F",
	'х': "kh", 'Х': "Kh",
	'ц': "ts", 'Ц': "Ts",
	'ч': "ch", 'Ч': "Ch",
	'ш': "sh", 'Ш': "Sh",
	'щ': "shch", 'Щ': "Shch",
	'ъ': "", 'Ъ': "",
	'ы': "y", 'Ы': "Y",
	'ь': "", 'Ь': "",
	'э': "e", 'Э': "E",
	'ю': "yu", 'Ю': "Yu",
	'я': "ya", 'Я': "Ya",
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Placeholder replaces runes that have no ASCII rendering.
const Placeholder = '?'

// ASCII applies the substitution table, strips diacritics and replaces whatever
// is left outside ASCII with Placeholder.
func ASCII(s string) string {
	var substituted strings.Builder
	substituted.Grow(len(s))
	for _, r := range s {
		if sub, ok := substitutions[r]; ok {
			substituted.WriteString(sub)
			continue
		}
		substituted.WriteRune(r)
	}

	stripped := norm.NFC.String(stripMarks.String(norm.NFD.String(substituted.String())))

	var out strings.Builder
	out.Grow(len(stripped))
	for _, r := range stripped {
		if r < unicode.MaxASCII+1 {
			out.WriteRune(r)
		} else {
			out.WriteRune(Placeholder)
		}
	}
	return out.String()
}

// FederationName renders "Last,First" in ASCII.
func FederationName(first, last string) string {
	return ASCII(strings.TrimSpace(last)) + "," + ASCII(strings.TrimSpace(first))
}

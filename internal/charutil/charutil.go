// Package charutil normalizes character codes for proximity matching.
package charutil

import "unicode"

// baseLatin1 maps the Latin-1 supplement block (U+00C0..U+00FF) to its
// unaccented base letter. Non-letter codes and letters without a base form
// map to themselves; ß folds to 's'.
var baseLatin1 = [64]rune{
	'a', 'a', 'a', 'a', 'a', 'a', 0xC6, 'c', // À Á Â Ã Ä Å Æ Ç
	'e', 'e', 'e', 'e', 'i', 'i', 'i', 'i', // È É Ê Ë Ì Í Î Ï
	0xD0, 'n', 'o', 'o', 'o', 'o', 'o', 0xD7, // Ð Ñ Ò Ó Ô Õ Ö ×
	'o', 'u', 'u', 'u', 'u', 'y', 0xDE, 's', // Ø Ù Ú Û Ü Ý Þ ß
	'a', 'a', 'a', 'a', 'a', 'a', 0xE6, 'c', // à á â ã ä å æ ç
	'e', 'e', 'e', 'e', 'i', 'i', 'i', 'i', // è é ê ë ì í î ï
	0xF0, 'n', 'o', 'o', 'o', 'o', 'o', 0xF7, // ð ñ ò ó ô õ ö ÷
	'o', 'u', 'u', 'u', 'u', 'y', 0xFE, 'y', // ø ù ú û ü ý þ ÿ
}

// ToBaseLower lowercases c and strips its diacritic, so that 'Ä', 'ä' and
// 'a' all collapse to 'a'. Characters outside the known accent ranges are
// returned lowercased but otherwise unchanged.
func ToBaseLower(c rune) rune {
	c = unicode.ToLower(c)
	if c >= 0xC0 && c <= 0xFF {
		return baseLatin1[c-0xC0]
	}
	if c >= 0x100 && c <= 0x17F {
		return baseLatinExtended(c)
	}
	return c
}

// baseLatinExtended handles the Latin Extended-A block, which alternates
// upper/lower forms of accented letters in contiguous runs.
func baseLatinExtended(c rune) rune {
	switch {
	case c <= 0x105:
		return 'a'
	case c <= 0x10D:
		return 'c'
	case c <= 0x111:
		return 'd'
	case c <= 0x11B:
		return 'e'
	case c <= 0x123:
		return 'g'
	case c <= 0x127:
		return 'h'
	case c <= 0x131:
		return 'i'
	case c <= 0x135:
		return 'j'
	case c <= 0x138:
		return 'k'
	case c <= 0x142:
		return 'l'
	case c <= 0x14B:
		return 'n'
	case c <= 0x151:
		return 'o'
	case c <= 0x153:
		return c // œ has no single base letter
	case c <= 0x159:
		return 'r'
	case c <= 0x161:
		return 's'
	case c <= 0x167:
		return 't'
	case c <= 0x173:
		return 'u'
	case c <= 0x175:
		return 'w'
	case c <= 0x178:
		return 'y'
	case c <= 0x17E:
		return 'z'
	default:
		return 's' // ſ
	}
}

// IsAsciiUpper reports whether c is an ASCII uppercase letter.
func IsAsciiUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

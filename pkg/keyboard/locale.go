package keyboard

// Digraph maps a two-character input sequence to the single trie character
// it stands in for, e.g. "ae" typed for 'ä'.
type Digraph struct {
	First, Second rune
	Replacement   rune
}

// LocaleRules is the read-only per-locale table of extra proximity
// characters and digraph substitutions consumed by the correction search.
// The zero value carries no rules; all methods are nil-safe.
type LocaleRules struct {
	locale     string
	additional map[rune][]rune
	digraphs   []Digraph
}

var englishAdditional = map[rune][]rune{
	'a': {'e', 'i', 'o', 'u'},
	'e': {'a', 'i', 'o', 'u'},
	'i': {'a', 'e', 'o', 'u'},
	'o': {'a', 'e', 'i', 'u'},
	'u': {'a', 'e', 'i', 'o'},
}

var germanDigraphs = []Digraph{
	{'a', 'e', 'ä'},
	{'o', 'e', 'ö'},
	{'u', 'e', 'ü'},
}

var frenchDigraphs = []Digraph{
	{'a', 'e', 'æ'},
	{'o', 'e', 'œ'},
}

// RulesForLocale returns the substitution rules for a locale identifier
// such as "en", "en_US" or "de". Unknown locales get empty rules.
func RulesForLocale(locale string) *LocaleRules {
	lr := &LocaleRules{locale: locale}
	switch lang(locale) {
	case "en":
		lr.additional = englishAdditional
	case "de":
		lr.digraphs = germanDigraphs
	case "fr":
		lr.digraphs = frenchDigraphs
	}
	return lr
}

// lang extracts the language part of an identifier like "de_DE".
func lang(locale string) string {
	for i, r := range locale {
		if r == '_' || r == '-' {
			return locale[:i]
		}
	}
	return locale
}

// Locale returns the identifier these rules were built for.
func (lr *LocaleRules) Locale() string {
	if lr == nil {
		return ""
	}
	return lr.locale
}

// AdditionalChars returns the extra proximity characters for a primary
// code, or nil when the locale defines none.
func (lr *LocaleRules) AdditionalChars(primary rune) []rune {
	if lr == nil || lr.additional == nil {
		return nil
	}
	return lr.additional[primary]
}

// DigraphReplacement returns the single character a two-character input
// sequence substitutes for, if the locale defines such a mapping.
func (lr *LocaleRules) DigraphReplacement(first, second rune) (rune, bool) {
	if lr == nil {
		return 0, false
	}
	for _, d := range lr.digraphs {
		if d.First == first && d.Second == second {
			return d.Replacement, true
		}
	}
	return 0, false
}

// HasDigraphs reports whether the locale defines any digraph mappings.
func (lr *LocaleRules) HasDigraphs() bool {
	return lr != nil && len(lr.digraphs) > 0
}

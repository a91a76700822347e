package autocomplete

import (
	"strings"
	"unicode"
)

// accentPairs is the fixed set of accented vowels folded when FoldAccents is set.
// Upper case forms are listed because LOWER() is ASCII-only on some databases.
var accentPairs = [][2]string{
	{"á", "a"}, {"à", "a"}, {"â", "a"}, {"ä", "a"}, {"ã", "a"},
	{"é", "e"}, {"è", "e"}, {"ê", "e"}, {"ë", "e"},
	{"í", "i"}, {"ì", "i"}, {"î", "i"}, {"ï", "i"},
	{"ó", "o"}, {"ò", "o"}, {"ô", "o"}, {"ö", "o"}, {"õ", "o"},
	{"ú", "u"}, {"ù", "u"}, {"û", "u"}, {"ü", "u"},
	{"Á", "a"}, {"À", "a"}, {"Â", "a"}, {"Ä", "a"}, {"Ã", "a"},
	{"É", "e"}, {"È", "e"}, {"Ê", "e"}, {"Ë", "e"},
	{"Í", "i"}, {"Ì", "i"}, {"Î", "i"}, {"Ï", "i"},
	{"Ó", "o"}, {"Ò", "o"}, {"Ô", "o"}, {"Ö", "o"}, {"Õ", "o"},
	{"Ú", "u"}, {"Ù", "u"}, {"Û", "u"}, {"Ü", "u"},
}

// sqliteCaseFolds maps the Latin-1 and Latin Extended-A capitals to lower case,
// since SQLite's LOWER() only folds ASCII.
var sqliteCaseFolds = func() [][2]string {
	var pairs [][2]string
	for _, span := range [][2]rune{{0xC0, 0xDE}, {0x100, 0x17F}} {
		for r := span[0]; r <= span[1]; r++ {
			if lower := unicode.ToLower(r); lower != r {
				pairs = append(pairs, [2]string{string(r), string(lower)})
			}
		}
	}
	return pairs
}()

var accentReplacer = func() *strings.Replacer {
	oldnew := make([]string, 0, len(accentPairs)*2)
	for _, pair := range accentPairs {
		oldnew = append(oldnew, pair[0], pair[1])
	}
	return strings.NewReplacer(oldnew...)
}()

// foldAccents applies the same folding to the search term that the SQL side applies to columns
func foldAccents(s string) string {
	return accentReplacer.Replace(s)
}

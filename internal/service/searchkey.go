package service

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const searchKeyMaxLen = 10

var initialsArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.FirstLetter
	return a
}()

// SearchKey derives a lowercase letter key from a product name: pinyin initials
// for Han characters, accent-folded ASCII letters otherwise. Anything it cannot
// transliterate is skipped; it never fails, at worst returning "".
func SearchKey(name string) (key string) {
	defer func() {
		if recover() != nil {
			key = ""
		}
	}()

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	n := 0
	for _, r := range folded {
		if n >= searchKeyMaxLen {
			break
		}
		switch {
		case unicode.Is(unicode.Han, r):
			initials := pinyin.SinglePinyin(r, initialsArgs)
			if len(initials) == 0 || initials[0] == "" {
				continue
			}
			c := rune(strings.ToLower(initials[0])[0])
			if c < 'a' || c > 'z' {
				continue
			}
			b.WriteRune(c)
			n++
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
			n++
		}
	}
	return b.String()
}

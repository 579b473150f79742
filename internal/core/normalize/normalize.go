// Package normalize folds free text into the form policy matching runs on
// Pipeline order
// 1 drop invalid UTF-8 and control characters other than tab and newlines
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove combining marks and format characters (ZWJ, ZWNJ, BOM)
// 5 Width fold fullwidth to ASCII, then recompose with NFC
// 6 Collapse every whitespace run to one ASCII space and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformers carry state, so each goroutine takes its own chain from a pool
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

var sanitizePool = sync.Pool{
	New: func() any {
		return runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t'
		}))
	},
}

// Fold returns the matching form of s
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Sanitize drops invalid UTF-8 and control characters postgres text columns reject
// tabs and line breaks survive
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "")

	tr := sanitizePool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	sanitizePool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Spaces maps every Unicode space (NBSP, thin space, line separators, BOM) to an ASCII space
// case, marks and width are left alone so patterns still see the original text
func Spaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && (unicode.IsSpace(r) || r == '\uFEFF') {
			return ' '
		}
		return r
	}, s)
}

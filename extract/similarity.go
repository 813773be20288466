package extract

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips diacritics: decompose, drop combining marks,
// recompose. OCR of German forms frequently mangles umlauts, so fuzzy
// keyword matching works on the folded form.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldDiacritics(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// similarity returns the Ratcliff/Obershelp ratio of two strings:
// twice the number of matching characters over the total length, with
// matches found by recursively splitting around the longest common
// substring. Identical strings score 1, disjoint strings 0.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchCount(ra, rb)) / float64(total)
}

func matchCount(a, b []rune) int {
	ai, bi, size := longestCommon(a, b)
	if size == 0 {
		return 0
	}
	return size + matchCount(a[:ai], b[:bi]) + matchCount(a[ai+size:], b[bi+size:])
}

// longestCommon finds the longest common substring, preferring the
// earliest occurrence on ties.
func longestCommon(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				cur[j] = 0
				continue
			}
			cur[j] = prev[j-1] + 1
			if cur[j] > size {
				size = cur[j]
				ai = i - size
				bi = j - size
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}

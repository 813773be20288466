// Package extract turns OCR'd table rows into a structured attribute
// set, finds the 8-digit registration identifier in free-form text, and
// maps attribute keys to canonical field codes via a pattern table.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// identifierPatterns is the cascade tried in order; the first match
// wins. The patterns tolerate the punctuation and spacing noise OCR
// introduces around the identifier label.
var identifierPatterns = []*regexp.Regexp{
	// "BaFin-ID" followed by 8 digits.
	regexp.MustCompile(`(?i)bafin[\s\-.,]*id[\s\-.,]*(\d{8})`),

	// 8 digits near "BaFin".
	regexp.MustCompile(`(?i)bafin[\s\-.,]*(\d{8})`),

	// "ID" or "Nr" followed by 8 digits.
	regexp.MustCompile(`(?i)(?:id|nr)[\s\-.,]*(\d{8})`),

	// 8 digits followed by "wenn bekannt".
	regexp.MustCompile(`(?i)(\d{8})[\s\-.,]*wenn[\s\-.,]+bekannt`),

	// "wenn bekannt" followed by 8 digits.
	regexp.MustCompile(`(?i)wenn[\s\-.,]+bekannt[\s\-.,]*(\d{8})`),
}

var isolatedNumber = regexp.MustCompile(`\b(\d{8})\b`)

// identifierKeywords are the context words that mark an isolated
// 8-digit number as the registration identifier in the fuzzy fallback.
var identifierKeywords = []string{"bafin", "id", "nummer", "kennung", "bekannt", "identifikation"}

const (
	contextRadius       = 50
	similarityThreshold = 0.7
)

// ExtractIdentifier finds the 8-digit registration identifier in text.
// It tries the labeled patterns first; when none match it falls back to
// scanning isolated 8-digit numbers and fuzzy-matching the surrounding
// words against the identifier keywords, which catches labels the OCR
// pass garbled.
func ExtractIdentifier(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := strings.Join(strings.Fields(text), " ")

	for _, pattern := range identifierPatterns {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			return mustAtoi(m[1]), true
		}
	}

	for _, loc := range isolatedNumber.FindAllStringSubmatchIndex(cleaned, -1) {
		start := loc[2] - contextRadius
		if start < 0 {
			start = 0
		}
		end := loc[3] + contextRadius
		if end > len(cleaned) {
			end = len(cleaned)
		}
		if contextMentionsIdentifier(strings.ToLower(cleaned[start:end])) {
			return mustAtoi(cleaned[loc[2]:loc[3]]), true
		}
	}
	return 0, false
}

func contextMentionsIdentifier(context string) bool {
	for _, word := range strings.Fields(context) {
		folded := foldDiacritics(word)
		for _, keyword := range identifierKeywords {
			if similarity(folded, keyword) > similarityThreshold {
				return true
			}
		}
	}
	return false
}

// mustAtoi converts a string the regexp already constrained to \d{8}.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

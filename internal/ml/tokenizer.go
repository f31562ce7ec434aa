package ml

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// stopWords holds common function words plus platform-fluff terms that
// carry no topical signal (channel boilerplate, resolution tags).
var stopWords = map[string]bool{
	// Function words
	"the": true, "and": true, "for": true, "you": true, "your": true,
	"with": true, "this": true, "that": true, "from": true, "are": true,
	"was": true, "has": true, "have": true, "how": true, "what": true,
	"why": true, "when": true, "who": true, "will": true, "can": true,
	"not": true, "all": true, "out": true, "get": true, "its": true,
	"our": true, "but": true, "top": true, "now": true, "new": true,
	// Platform fluff
	"official": true, "video": true, "subscribe": true, "channel": true,
	"watch": true, "episode": true, "part": true, "full": true,
	"best": true, "vlog": true, "shorts": true,
	// Resolution / quality tags
	"1080p": true, "720p": true, "2160p": true, "60fps": true,
	"uhd": true, "hdr": true,
}

// suffixes is the ordered strip list for the lightweight stemmer, most
// specific first. The list is deliberately conservative; it exists to
// collapse plurals and simple derivations, not to be a real stemmer.
var suffixes = []string{
	"ization", "fulness", "ousness", "iveness",
	"ational", "tional", "ments",
	"ness", "ions", "ment",
	"ies", "ers",
	"ed", "es", "ly", "s",
}

// Tokenize turns free text (a title or channel name) into normalized,
// stemmed tokens. Empty input yields an empty slice.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	normalized := strings.ToLower(norm.NFKC.String(text))
	fields := strings.Fields(normalized)

	tokens := make([]string, 0, len(fields))
	for _, word := range fields {
		// Trim punctuation from the edges only; interior punctuation
		// ("rock'n'roll", "node.js") keeps the word whole.
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) <= 2 || stopWords[word] {
			continue
		}
		tokens = append(tokens, stem(word))
	}
	return tokens
}

// stem strips the first matching suffix, provided the remaining stem keeps
// at least 3 characters.
func stem(word string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

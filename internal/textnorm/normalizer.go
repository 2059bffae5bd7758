// Package textnorm implements the text-cleaning pipeline shared by the
// classifier's training corpus and the inference path. The step order is a
// versioned contract: the ML sidecar's vocabulary was built with exactly this
// sequence, and any divergence degrades predictions silently. Change it only
// together with a model retrain, and keep the tests locked to the output.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minTokenLength is the rune length below which tokens are dropped
// (inclusive bound: tokens of length <= 2 are removed).
const minTokenLength = 2

// ASCII punctuation set, matching Python's string.punctuation. The training
// pipeline strips only these characters, so Unicode punctuation survives on
// purpose.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	urlPattern        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	htmlTagPattern    = regexp.MustCompile(`<.*?>`)
	digitRunPattern   = regexp.MustCompile(`\d+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize cleans raw text for classification. Total function: never fails,
// returns "" for empty or all-noise input.
//
// Pipeline, order-significant:
//  1. lowercase
//  2. strip URL tokens (http/https/www prefixed)
//  3. strip email-like tokens
//  4. strip HTML-tag-shaped substrings (non-greedy)
//  5. strip ASCII punctuation
//  6. strip digit runs
//  7. collapse whitespace, trim
//  8. drop stop words and tokens of rune length <= 2
//  9. rejoin with single spaces
func Normalize(raw string) string {
	text := strings.ToLower(raw)

	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = stripPunctuation(text)
	text = digitRunPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	if text == "" {
		return ""
	}

	tokens := strings.Split(text, " ")
	kept := tokens[:0]
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= minTokenLength {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

// stripPunctuation removes the ASCII punctuation set without touching any
// other rune.
func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
}

// Package normalize puts transcripts into the canonical form they are scored
// in: lower case, single spaces, and no punctuation other than the
// apostrophe, so contractions like "it's" stay one token.
//
// Punctuation is removed before both word and character scoring. A
// hypothesis that only drops commas or full stops therefore scores a CER of
// zero. Combining marks count as punctuation here: a decomposed "e\u0301"
// normalizes to "e". The ASCII file, group, record and unit separators
// (U+001C to U+001F) are treated as whitespace.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize lower-cases text, collapses whitespace runs to one ASCII space,
// trims both ends and drops every rune that is not a word character,
// whitespace or an apostrophe. Whitespace is collapsed again afterwards,
// since removing "-" from "a - b" would otherwise leave two spaces.
func Normalize(text string) string {
	text = collapse(strings.ToLower(text))
	text = strings.Map(func(r rune) rune {
		switch {
		case isSpace(r):
			return ' '
		case keep(r):
			return r
		}
		return -1
	}, text)
	return collapse(text)
}

// Words splits normalized text into word tokens
func Words(normalized string) []string {
	return strings.Fields(normalized)
}

// Chars splits normalized text into code points, spaces included
func Chars(normalized string) []rune {
	return []rune(normalized)
}

func collapse(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// Word characters are letters, digits and underscore
func keep(r rune) bool {
	switch {
	case r == '\'' || r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r):
		return true
	}
	return false
}

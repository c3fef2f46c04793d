package model

import (
	"strings"
	"unicode"
)

// knownLabels covers abbreviations that do not humanise well.
var knownLabels = map[string]string{
	"dob":         "Date of birth",
	"dateofbirth": "Date of birth",
	"tos":         "Terms of service",
	"email":       "Email address",
}

// upperWords stay upper case inside generated labels.
var upperWords = map[string]bool{"id": true, "url": true, "api": true, "sms": true}

// DefaultLabeler turns a property name into a sentence-case label:
// "confirmPassword" and "confirm_password" both become "Confirm password".
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if label, ok := knownLabels[strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))]; ok {
		return label
	}

	words := splitWords(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		switch {
		case upperWords[lower]:
			words[i] = strings.ToUpper(lower)
		case i == 0:
			runes := []rune(lower)
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		default:
			words[i] = lower
		}
	}
	return strings.Join(words, " ")
}

// splitWords breaks on separators, lower-to-upper transitions, and
// letter/digit boundaries.
func splitWords(name string) []string {
	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for i, r := range name {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			prev = r
			continue
		}
		if i > 0 && boundary(prev, r) {
			flush()
		}
		current = append(current, r)
		prev = r
	}
	flush()
	return words
}

func boundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	default:
		return false
	}
}

package hangmandomain

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize upper-cases s and strips combining marks, so "perché" becomes
// "PERCHE". The result is left decomposed.
func Normalize(s string) string {
	upper := Upper(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, upper)
	if err != nil {
		return upper
	}
	return out
}

// Upper applies full Unicode upper-casing, so "ß" becomes "SS".
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// LettersOf returns the set of normalized letters in phrase.
func LettersOf(phrase string) LetterSet {
	set := LetterSet{}
	for _, r := range Normalize(phrase) {
		if unicode.IsLetter(r) {
			set.Add(string(r))
		}
	}
	return set
}

// ParseLetter validates a letter guess and returns its normalized form.
func ParseLetter(input string) (string, error) {
	if utf8.RuneCountInString(input) != 1 {
		return "", ErrInvalidLetter
	}
	r, _ := utf8.DecodeRuneInString(input)
	if !unicode.IsLetter(r) {
		return "", ErrInvalidLetter
	}
	return Normalize(input), nil
}

// InitialPattern masks every non-space character of secret.
func InitialPattern(secret string) string {
	return renderPattern(Upper(secret), func(rune) bool { return false })
}

// WordLengths renders the rune length of every word joined by "+", e.g. "5+3".
func WordLengths(secret string) string {
	words := strings.Fields(secret)
	lengths := make([]string, len(words))
	for i, w := range words {
		lengths[i] = strconv.Itoa(utf8.RuneCountInString(w))
	}
	return strings.Join(lengths, "+")
}

// renderPattern joins one cell per rune with single spaces. Spaces stay
// spaces, revealed runes are shown and everything else is "_".
func renderPattern(secret string, revealed func(rune) bool) string {
	cells := make([]string, 0, utf8.RuneCountInString(secret))
	for _, r := range secret {
		switch {
		case r == ' ':
			cells = append(cells, " ")
		case revealed(r):
			cells = append(cells, string(r))
		default:
			cells = append(cells, "_")
		}
	}
	return strings.Join(cells, " ")
}

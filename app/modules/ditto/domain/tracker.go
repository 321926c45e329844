// Package dittodomain tracks which member first said each letter.
package dittodomain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sayer is the member a letter is attributed to.
type Sayer struct {
	UserID string
	Name   string
}

// Observation is the result of a tracked letter.
type Observation struct {
	Letter   string
	Repeated bool
	// Previous is the first sayer when Repeated is set.
	Previous Sayer
}

// Tracker holds the letters said since the last activation. The zero value
// is inactive.
type Tracker struct {
	active  bool
	letters map[string]Sayer
}

// NewTracker returns an inactive tracker.
func NewTracker() *Tracker {
	return &Tracker{letters: map[string]Sayer{}}
}

// Active reports whether messages are being tracked.
func (t *Tracker) Active() bool {
	return t.active
}

// Activate clears the recorded letters and starts tracking. It reports
// whether the tracker was already active, in which case only the letters
// were reset.
func (t *Tracker) Activate() (wasActive bool) {
	wasActive = t.active
	t.active = true
	t.letters = map[string]Sayer{}
	return wasActive
}

// Deactivate stops tracking. Recorded letters are kept until the next
// activation.
func (t *Tracker) Deactivate() {
	t.active = false
}

// ParseLetter returns the uppercased letter when content, once trimmed, is a
// single alphabetic character.
func ParseLetter(content string) (string, bool) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(content)
	if !unicode.IsLetter(r) {
		return "", false
	}
	return cases.Upper(language.Und).String(content), true
}

// Observe records content said by sayer. ok is false when the tracker is
// inactive or content is not a letter.
func (t *Tracker) Observe(content string, sayer Sayer) (obs Observation, ok bool) {
	if !t.active {
		return Observation{}, false
	}
	letter, ok := ParseLetter(content)
	if !ok {
		return Observation{}, false
	}
	if t.letters == nil {
		t.letters = map[string]Sayer{}
	}

	if previous, seen := t.letters[letter]; seen {
		return Observation{Letter: letter, Repeated: true, Previous: previous}, true
	}
	t.letters[letter] = sayer
	return Observation{Letter: letter}, true
}

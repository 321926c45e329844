package hangmandomain

import "sort"

// LetterSet is a set of normalized letters.
type LetterSet map[string]struct{}

func (s LetterSet) Add(l string) { s[l] = struct{}{} }

func (s LetterSet) Has(l string) bool {
	_, ok := s[l]
	return ok
}

func (s LetterSet) Remove(l string) { delete(s, l) }

// Sorted returns the letters in ascending order.
func (s LetterSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

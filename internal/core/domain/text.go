package domain

import "strings"

// CapitalizeEachWord lower-cases text and upper-cases the first letter of every
// space-separated word. Runs of spaces are preserved.
func CapitalizeEachWord(text string) string {
	words := strings.Split(strings.ToLower(text), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

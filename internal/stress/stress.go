// Package stress locates vowels in Russian words and tells which one carries
// the stress mark.
package stress

import (
	"strings"
	"unicode"

	"orfoepiya/internal/domain"
)

// vowels are the stress-bearing letters, lower case
const vowels = "аеёиоуыэюя"

// IsVowel reports whether r is a Russian vowel, ignoring case
func IsVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

// LocateVowels scans plain left to right and returns a slot for every vowel.
// A slot is stressed when the rune at the same index of marked is an upper-case
// vowel. Slot order is reading order and is what answer indexes refer to.
func LocateVowels(plain, marked string) []domain.VowelSlot {
	markedRunes := []rune(marked)

	var slots []domain.VowelSlot
	for i, r := range []rune(plain) {
		if !IsVowel(r) {
			continue
		}
		stressed := false
		if i < len(markedRunes) {
			m := markedRunes[i]
			stressed = unicode.IsUpper(m) && IsVowel(m)
		}
		slots = append(slots, domain.VowelSlot{
			Position: i,
			Char:     r,
			Stressed: stressed,
		})
	}
	return slots
}

// Locate is LocateVowels for a domain word
func Locate(w domain.Word) []domain.VowelSlot {
	return LocateVowels(w.Plain, w.Marked)
}

// StressedSlot returns the index of the first stressed slot, or -1
func StressedSlot(slots []domain.VowelSlot) int {
	for i, s := range slots {
		if s.Stressed {
			return i
		}
	}
	return -1
}

// CountStressed returns how many slots are marked stressed
func CountStressed(slots []domain.VowelSlot) int {
	n := 0
	for _, s := range slots {
		if s.Stressed {
			n++
		}
	}
	return n
}

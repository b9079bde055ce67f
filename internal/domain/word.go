package domain

// Word is a drill word: the plain lowercase form and the same word with the
// stressed vowel upper-cased.
type Word struct {
	Plain  string `json:"word"`
	Marked string `json:"stressed_word"`
}

// VowelSlot is one selectable vowel position of a word
type VowelSlot struct {
	Position int  // rune index in the plain form
	Char     rune // vowel as it appears in the plain form
	Stressed bool
}

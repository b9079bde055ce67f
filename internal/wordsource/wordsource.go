// Package wordsource loads drill words from a JSON list and drops records that
// break the word invariant.
package wordsource

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/stress"

	"go.uber.org/zap"
)

//go:embed words.json
var embeddedWords []byte

// record is the wire shape of one list entry
type record struct {
	Word         string `json:"word"`
	StressedWord string `json:"stressed_word"`
}

// Source reads a JSON word list on every call to Words
type Source struct {
	name   string
	open   func() (io.ReadCloser, error)
	logger *zap.Logger
}

// NewFileSource reads the list from a file
func NewFileSource(path string, logger *zap.Logger) *Source {
	return &Source{
		name: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
		logger: logger,
	}
}

// NewEmbeddedSource reads the list bundled with the binary
func NewEmbeddedSource(logger *zap.Logger) *Source {
	return &Source{
		name: "embedded",
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(embeddedWords)), nil
		},
		logger: logger,
	}
}

// Words returns the valid words of the list in file order
func (s *Source) Words(ctx context.Context) ([]domain.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWordSourceUnavailable, err)
	}

	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrWordSourceUnavailable, s.name, err)
	}
	defer rc.Close()

	words, err := Parse(rc, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Word list loaded", zap.String("source", s.name), zap.Int("words", len(words)))
	return words, nil
}

// Parse decodes a JSON array of records and keeps the valid, distinct ones.
// Skipped records are logged.
func Parse(r io.Reader, logger *zap.Logger) ([]domain.Word, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrWordSourceUnavailable, err)
	}

	seen := make(map[string]struct{}, len(records))
	words := make([]domain.Word, 0, len(records))
	for i, rec := range records {
		w := domain.Word{
			Plain:  strings.TrimSpace(rec.Word),
			Marked: strings.TrimSpace(rec.StressedWord),
		}
		if err := Validate(w); err != nil {
			logger.Warn("Skipping malformed word",
				zap.Int("index", i),
				zap.String("word", rec.Word),
				zap.String("stressed_word", rec.StressedWord),
				zap.Error(err),
			)
			continue
		}
		if _, dup := seen[w.Plain]; dup {
			logger.Warn("Skipping duplicate word", zap.Int("index", i), zap.String("word", w.Plain))
			continue
		}
		seen[w.Plain] = struct{}{}
		words = append(words, w)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("parse word list: %w", domain.ErrEmptyWordSet)
	}
	return words, nil
}

var (
	errEmpty             = errors.New("empty word")
	errLengthMismatch    = errors.New("plain and stressed forms differ in length")
	errFormMismatch      = errors.New("stressed form spells a different word")
	errStressOnConsonant = errors.New("stress mark on a consonant")
	errNoVowels          = errors.New("no vowels")
	errStressCount       = errors.New("stress mark must be on exactly one vowel")
)

// Validate checks a word against the stress-mark convention: marked spells
// plain letter for letter, with exactly one vowel upper-cased. Е and ё are
// interchangeable.
func Validate(w domain.Word) error {
	if w.Plain == "" || w.Marked == "" {
		return errEmpty
	}
	plain, marked := []rune(w.Plain), []rune(w.Marked)
	if len(plain) != len(marked) {
		return errLengthMismatch
	}

	upper := 0
	for i, p := range plain {
		m := marked[i]
		if !sameLetter(p, unicode.ToLower(m)) {
			return errFormMismatch
		}
		if unicode.IsUpper(m) {
			if !stress.IsVowel(m) {
				return errStressOnConsonant
			}
			upper++
		}
	}

	if len(stress.LocateVowels(w.Plain, w.Marked)) == 0 {
		return errNoVowels
	}
	if upper != 1 {
		return errStressCount
	}
	return nil
}

func sameLetter(a, b rune) bool {
	if a == b {
		return true
	}
	return (a == 'е' || a == 'ё') && (b == 'е' || b == 'ё')
}

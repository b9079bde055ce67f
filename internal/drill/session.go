// Package drill implements the stress drill state machine and the debounced
// reporting of its counters.
package drill

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/stress"
)

// State is the drill session lifecycle state
type State int

const (
	StateLoading State = iota
	StateReady
	StateAnswered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateAnswered:
		return "answered"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is the correctness of the current presentation
type Outcome int

const (
	Unanswered Outcome = iota
	Correct
	Incorrect
)

// Counters are the cumulative attempt counters of a session
type Counters struct {
	TotalAttempts  int
	CorrectAnswers int
}

// Accuracy returns the correct share in whole percent
func (c Counters) Accuracy() int {
	return domain.Accuracy(c.CorrectAnswers, c.TotalAttempts)
}

// CountersObserver is told about every counter change
type CountersObserver interface {
	Report(c Counters)
}

// WordSource provides the word list for a session
type WordSource interface {
	Words(ctx context.Context) ([]domain.Word, error)
}

// Answer is the result of a scored selection
type Answer struct {
	Slot    domain.VowelSlot
	Correct bool
}

// Session is a single learner's drill over one module.
// It is not safe for concurrent use.
type Session struct {
	words    []domain.Word
	index    int
	selected int
	outcome  Outcome
	counters Counters
	state    State
	err      error

	shuffle  func([]domain.Word)
	observer CountersObserver
}

// Option configures a Session
type Option func(*Session)

// WithShuffle replaces the default shuffle
func WithShuffle(fn func([]domain.Word)) Option {
	return func(s *Session) { s.shuffle = fn }
}

// WithObserver registers the counters observer
func WithObserver(o CountersObserver) Option {
	return func(s *Session) { s.observer = o }
}

// NewSession creates a session in the Loading state
func NewSession(opts ...Option) *Session {
	s := &Session{
		selected: -1,
		state:    StateLoading,
		shuffle:  randomShuffle(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomShuffle(rnd *rand.Rand) func([]domain.Word) {
	return func(words []domain.Word) {
		rnd.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
	}
}

// Load fetches the words and starts the session. On failure the session moves
// to Failed; calling Load again retries.
func (s *Session) Load(ctx context.Context, src WordSource) error {
	s.state = StateLoading
	s.err = nil

	words, err := src.Words(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	return s.Start(words)
}

// Start shuffles words, clears counters and presents the first word.
// Words without any vowel are skipped as unplayable.
func (s *Session) Start(words []domain.Word) error {
	playable := make([]domain.Word, 0, len(words))
	for _, w := range words {
		if len(stress.Locate(w)) > 0 {
			playable = append(playable, w)
		}
	}
	if len(playable) == 0 {
		err := fmt.Errorf("start drill: %w", domain.ErrEmptyWordSet)
		s.fail(err)
		return err
	}

	s.shuffle(playable)
	s.words = playable
	s.index = 0
	s.clearSelection()
	s.err = nil
	s.state = StateReady
	s.setCounters(Counters{})
	return nil
}

func (s *Session) fail(err error) {
	s.words = nil
	s.index = 0
	s.clearSelection()
	s.err = err
	s.state = StateFailed
}

// SelectAnswer scores the vowel slot at slotIndex of the current word.
// It returns false without counting an attempt when the session is not Ready
// or the index is out of range.
func (s *Session) SelectAnswer(slotIndex int) (Answer, bool) {
	if s.state != StateReady {
		return Answer{}, false
	}
	slots := s.Vowels()
	if slotIndex < 0 || slotIndex >= len(slots) {
		return Answer{}, false
	}

	slot := slots[slotIndex]
	next := s.counters
	next.TotalAttempts++
	if slot.Stressed {
		next.CorrectAnswers++
		s.outcome = Correct
	} else {
		s.outcome = Incorrect
	}
	s.selected = slotIndex
	s.state = StateAnswered
	s.setCounters(next)

	return Answer{Slot: slot, Correct: slot.Stressed}, true
}

// Advance moves to the next word, wrapping to the first after the last.
// It only works after an answer.
func (s *Session) Advance() bool {
	if s.state != StateAnswered {
		return false
	}
	s.index = (s.index + 1) % len(s.words)
	s.clearSelection()
	s.state = StateReady
	return true
}

// Restart zeroes the counters and returns to the first word of the current
// order. The order is kept as is.
func (s *Session) Restart() {
	s.index = 0
	s.clearSelection()
	if len(s.words) > 0 {
		s.state = StateReady
	}
	s.setCounters(Counters{})
}

// Accuracy returns the correct share in whole percent
func (s *Session) Accuracy() int {
	return s.counters.Accuracy()
}

func (s *Session) clearSelection() {
	s.selected = -1
	s.outcome = Unanswered
}

func (s *Session) setCounters(c Counters) {
	if c == s.counters {
		return
	}
	s.counters = c
	if s.observer != nil {
		s.observer.Report(c)
	}
}

// State returns the lifecycle state
func (s *Session) State() State { return s.state }

// Err returns the load error while Failed
func (s *Session) Err() error { return s.err }

// Counters returns the cumulative counters
func (s *Session) Counters() Counters { return s.counters }

// Index returns the position of the current word in the shuffled order
func (s *Session) Index() int { return s.index }

// Len returns the number of words in the drill
func (s *Session) Len() int { return len(s.words) }

// Outcome returns the correctness of the current presentation
func (s *Session) Outcome() Outcome { return s.outcome }

// Selection returns the selected slot index of the current presentation
func (s *Session) Selection() (int, bool) {
	return s.selected, s.selected >= 0
}

// Words returns a copy of the drill order
func (s *Session) Words() []domain.Word {
	out := make([]domain.Word, len(s.words))
	copy(out, s.words)
	return out
}

// CurrentWord returns the presented word
func (s *Session) CurrentWord() (domain.Word, bool) {
	if s.state != StateReady && s.state != StateAnswered {
		return domain.Word{}, false
	}
	return s.words[s.index], true
}

// Vowels returns the vowel slots of the presented word
func (s *Session) Vowels() []domain.VowelSlot {
	w, ok := s.CurrentWord()
	if !ok {
		return nil
	}
	return stress.Locate(w)
}

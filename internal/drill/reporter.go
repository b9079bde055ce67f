package drill

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatsWriter stores an absolute counters snapshot for a learner and module
type StatsWriter interface {
	WriteStats(ctx context.Context, userID int64, moduleID string, totalAttempts, correctAnswers int) error
}

// Reporter coalesces counter changes and writes the latest snapshot after a
// quiet period. Every Report cancels the pending write and restarts the wait.
type Reporter struct {
	writer   StatsWriter
	userID   int64
	moduleID string
	delay    time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu         sync.Mutex
	timer      *time.Timer
	pending    Counters
	pendingSeq uint64
	closed     bool

	// sendMu serializes writes; sentSeq is the newest snapshot written
	sendMu  sync.Mutex
	sentSeq uint64
}

// NewReporter creates a reporter for one learner and module
func NewReporter(
	writer StatsWriter,
	userID int64,
	moduleID string,
	delay, timeout time.Duration,
	logger *zap.Logger,
) *Reporter {
	return &Reporter{
		writer:   writer,
		userID:   userID,
		moduleID: moduleID,
		delay:    delay,
		timeout:  timeout,
		logger:   logger,
	}
}

// Report schedules c to be written once no newer report arrives within the
// debounce delay.
func (r *Reporter) Report(c Counters) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.pendingSeq++
	r.pending = c
	seq := r.pendingSeq

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, func() {
		r.flush(seq, c)
	})
}

// Close stops the timer and writes a snapshot that was reported but never
// written. Reports after Close are ignored.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
	}
	seq, c := r.pendingSeq, r.pending
	r.mu.Unlock()

	if seq > 0 {
		r.flush(seq, c)
	}
}

func (r *Reporter) flush(seq uint64, c Counters) {
	r.sendMu.Lock()
	defer r.sendMu.Unlock()

	// A newer snapshot already went out
	if seq <= r.sentSeq {
		return
	}
	r.sentSeq = seq

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.writer.WriteStats(ctx, r.userID, r.moduleID, c.TotalAttempts, c.CorrectAnswers); err != nil {
		r.logger.Warn("Failed to write stats snapshot",
			zap.Error(err),
			zap.Int64("user_id", r.userID),
			zap.String("module_id", r.moduleID),
			zap.Int("total_attempts", c.TotalAttempts),
			zap.Int("correct_answers", c.CorrectAnswers),
		)
		return
	}

	r.logger.Debug("Stats snapshot written",
		zap.Int64("user_id", r.userID),
		zap.String("module_id", r.moduleID),
		zap.Int("total_attempts", c.TotalAttempts),
		zap.Int("correct_answers", c.CorrectAnswers),
	)
}

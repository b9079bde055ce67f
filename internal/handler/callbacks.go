package handler

import (
	"context"
	"strings"
	"unicode"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/drill"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the callback message, or sends a new one for commands
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup, resp ...*tele.CallbackResponse) error {
	if c.Callback() == nil {
		return c.Send(text, markup, tele.ModeHTML)
	}
	if err := c.Edit(text, markup, tele.ModeHTML); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup, tele.ModeHTML)
	}
	return c.Respond(resp...)
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons whose Unique did not come through
	key := callback.Unique
	if key == "" {
		key = data
	}
	switch key {
	case btnNext.Unique:
		return h.handleNext(c)
	case btnRestart.Unique:
		return h.handleRestart(c)
	case btnRetry.Unique:
		return h.handleRetry(c)
	case btnDashboard.Unique:
		return h.handleDashboard(c)
	case btnLogout.Unique:
		return h.handleLogout(c)
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, vowelCallbackPrefix):
		i, ok := parseVowelIndex(data)
		if !ok {
			return c.Respond()
		}
		return h.handleVowel(c, i)
	case strings.HasPrefix(data, moduleCallbackPrefix):
		return h.handleModule(c, strings.TrimPrefix(data, moduleCallbackPrefix))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleModule opens a drill over the chosen module
func (h *Handler) handleModule(c tele.Context, moduleID string) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	module, ok := domain.FindModule(moduleID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Модуль недоступен"})
	}
	state := h.GetState(userID)
	if state.User == nil {
		return h.PromptNickname(c)
	}

	reporter := drill.NewReporter(
		h.statsWriter,
		state.User.ID,
		module.ID,
		h.drillCfg.StatsDebounce,
		h.drillCfg.StatsWriteTimeout,
		h.logger,
	)
	cs := &chatSession{
		session:  drill.NewSession(drill.WithObserver(reporter)),
		reporter: reporter,
		moduleID: module.ID,
	}
	if prev := h.sessions.put(userID, cs); prev != nil {
		prev.reporter.Close()
	}
	h.SetState(userID, &domain.StateData{
		State:    domain.StateDrilling,
		User:     state.User,
		ModuleID: module.ID,
	})

	h.logger.Info("Drill started",
		zap.Int64("user_id", userID),
		zap.Int64("learner_id", state.User.ID),
		zap.String("module_id", module.ID),
	)

	h.loadWords(cs, userID)
	return h.renderDrill(c, cs)
}

// handleVowel scores the chosen vowel slot
func (h *Handler) handleVowel(c tele.Context, slotIndex int) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	cs, ok := h.sessions.get(userID)
	if !ok {
		return h.sessionExpired(c)
	}

	answer, ok := cs.session.SelectAnswer(slotIndex)
	if !ok {
		// Stale or repeated tap
		return c.Respond()
	}

	h.logger.Debug("Answer scored",
		zap.Int64("user_id", userID),
		zap.Int("slot", slotIndex),
		zap.Bool("correct", answer.Correct),
	)

	toast := "❌ Неверно"
	if answer.Correct {
		toast = "✅ Верно!"
	}
	return h.renderDrill(c, cs, &tele.CallbackResponse{Text: toast})
}

// handleNext presents the next word
func (h *Handler) handleNext(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	cs, ok := h.sessions.get(userID)
	if !ok {
		return h.sessionExpired(c)
	}
	if !cs.session.Advance() {
		return c.Respond()
	}
	return h.renderDrill(c, cs)
}

// handleRestart zeroes the counters and starts over
func (h *Handler) handleRestart(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	cs, ok := h.sessions.get(userID)
	if !ok {
		return h.sessionExpired(c)
	}
	cs.session.Restart()
	return h.renderDrill(c, cs)
}

// handleRetry reloads the words after a failed load
func (h *Handler) handleRetry(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	cs, ok := h.sessions.get(userID)
	if !ok {
		return h.sessionExpired(c)
	}
	if cs.session.State() != drill.StateFailed {
		return c.Respond()
	}
	h.loadWords(cs, userID)
	return h.renderDrill(c, cs)
}

// handleDashboard leaves the drill for the module list
func (h *Handler) handleDashboard(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	// Closing writes pending counters so the dashboard shows them
	h.closeSession(userID)

	state := h.GetState(userID)
	if state.User == nil {
		return h.PromptNickname(c)
	}
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, User: state.User})
	return h.showDashboard(c, state.User)
}

// handleLogout ends the drill and forgets the learner
func (h *Handler) handleLogout(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockUser(userID)
	defer unlock()

	h.closeSession(userID)
	h.ResetState(userID)

	h.logger.Info("User logged out", zap.Int64("user_id", userID))

	text := "👋 Вы вышли. Отправьте /start, чтобы войти снова."
	if err := c.Edit(text); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text)
	}
	return c.Respond()
}

func (h *Handler) loadWords(cs *chatSession, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), wordsLoadTimeout)
	defer cancel()

	if err := cs.session.Load(ctx, h.words); err != nil {
		h.logger.Error("Failed to load drill words",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("module_id", cs.moduleID),
		)
	}
}

func (h *Handler) renderDrill(c tele.Context, cs *chatSession, resp ...*tele.CallbackResponse) error {
	module, _ := domain.FindModule(cs.moduleID)
	text, markup := drillView(cs.session, module)
	return h.show(c, text, markup, resp...)
}

func (h *Handler) sessionExpired(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.User == nil {
		c.Respond()
		return h.PromptNickname(c)
	}
	text, markup := dashboardView(state.User, h.loadStats(state.User.ID))
	return h.show(c, text, markup, &tele.CallbackResponse{Text: "Сессия завершена, выберите модуль заново"})
}

func (h *Handler) loadStats(learnerID int64) []domain.UserStat {
	stats, err := h.statsService.GetAllStats(context.Background(), learnerID)
	if err != nil {
		h.logger.Error("Failed to load stats",
			zap.Error(err),
			zap.Int64("learner_id", learnerID),
		)
		return nil
	}
	return stats
}

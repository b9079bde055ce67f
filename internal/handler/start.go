package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"orfoepiya/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	unlock := h.lockUser(userID)
	defer unlock()

	state := h.GetState(userID)
	if state.User == nil {
		return h.PromptNickname(c)
	}

	// /start leaves any running drill
	h.closeSession(userID)
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, User: state.User})
	return h.showDashboard(c, state.User)
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	unlock := h.lockUser(userID)
	defer unlock()

	state := h.GetState(userID)

	switch {
	case state.State == domain.StateWaitingNickname:
		return h.login(c, text)
	case state.User == nil:
		return h.PromptNickname(c)
	default:
		return c.Send("Используйте кнопки под сообщением или отправьте /start")
	}
}

// login signs the chat in under nickname and opens the dashboard
func (h *Handler) login(c tele.Context, nickname string) error {
	userID := c.Sender().ID

	user, err := h.authService.LoginByNickname(context.Background(), nickname)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Send(fmt.Sprintf("Никнейм должен быть непустым и не длиннее %d символов. Попробуйте ещё раз:", domain.MaxNicknameLength))
		}
		h.logger.Error("Failed to log in",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, User: user})

	if err := c.Send("✅ Добро пожаловать, <b>"+html.EscapeString(user.Nickname)+"</b>!", tele.ModeHTML); err != nil {
		return err
	}
	return h.showDashboard(c, user)
}

// showDashboard renders the module list with the learner's stats
func (h *Handler) showDashboard(c tele.Context, user *domain.UserAccount) error {
	// The dashboard still works without numbers
	text, markup := dashboardView(user, h.loadStats(user.ID))
	return h.show(c, text, markup)
}

package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// LearnerStore tells whether a chat is signed in
type LearnerStore interface {
	IsLoggedIn(userID int64) bool
	IsAwaitingNickname(userID int64) bool
	PromptNickname(c tele.Context) error
}

// AuthMiddleware lets through signed-in chats, /start and the nickname reply.
// Everything else is answered with a nickname prompt.
func AuthMiddleware(store LearnerStore, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			userID := sender.ID

			if store.IsLoggedIn(userID) {
				return next(c)
			}

			if c.Callback() == nil {
				if c.Text() == "/start" || store.IsAwaitingNickname(userID) {
					return next(c)
				}
			} else if err := c.Respond(&tele.CallbackResponse{Text: "Сначала войдите под своим никнеймом"}); err != nil {
				logger.Warn("Failed to acknowledge callback in middleware", zap.Error(err))
			}

			logger.Debug("Update from signed-out chat, asking for nickname", zap.Int64("user_id", userID))
			return store.PromptNickname(c)
		}
	}
}

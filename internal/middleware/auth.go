package middleware

import (
	"context"
	"time"

	"voci/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Replies shared with the bot handlers
const (
	MsgInternalError  = "Something went wrong. Please try again later."
	MsgPasswordPrompt = "Hi! This bot is private. Send the password to continue:"
)

const authTimeout = 5 * time.Second

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			authorized, err := authService.Admit(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return reply(c, MsgInternalError)
			}

			if !authorized {
				return reply(c, MsgPasswordPrompt)
			}

			return next(c)
		}
	}
}

// reply answers a callback query with an alert, any other update with a message
func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

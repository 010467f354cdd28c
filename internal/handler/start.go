package handler

import (
	"voci/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = "📖 voci keeps French and German vocabulary.\n\n" +
	"Add a word:\n/add " + entryFormat + "\n\n" +
	"Look it up:\n/get " + lookupFormat + "\n\n" +
	"Add more translations:\n/extend " + entryFormat + "\n\n" +
	"Remove it:\n/delete " + lookupFormat + "\n\n" +
	"Example: /add chien fr = de hund, köter"

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := h.requestContext()
	defer cancel()

	authorized, err := h.authService.Admit(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(middleware.MsgInternalError)
	}

	h.ResetState(userID)

	if !authorized {
		// Request password
		return c.Send(middleware.MsgPasswordPrompt)
	}

	// Show main menu
	if c.Callback() != nil {
		return h.editOrSend(c, mainMenuText, mainMenuMarkup())
	}
	return c.Send(mainMenuText, mainMenuMarkup())
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(helpText, mainMenuMarkup())
}

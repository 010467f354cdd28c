package handler

import (
	"strings"
	"unicode"

	"voci/internal/domain"

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

	// Already edited by another callback: acknowledge, don't send a new message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
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

// editOrSend edits the callback message, falling back to a new message
func (h *Handler) editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
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

	action := callback.Unique
	if action == "" {
		// Buttons whose Unique did not come through carry it in Data
		action = data
	}

	switch action {
	case btnAdd.Unique:
		return h.handleAddButton(c)
	case btnLookup.Unique:
		return h.handleLookupButton(c)
	case btnExtend.Unique:
		return h.handleExtendButton(c)
	case btnDelete.Unique:
		return h.handleDeleteButton(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

func (h *Handler) handleAddButton(c tele.Context) error {
	return h.awaitInput(c, domain.StateWaitingAdd)
}

func (h *Handler) handleLookupButton(c tele.Context) error {
	return h.awaitInput(c, domain.StateWaitingLookup)
}

func (h *Handler) handleExtendButton(c tele.Context) error {
	return h.awaitInput(c, domain.StateWaitingExtend)
}

func (h *Handler) handleDeleteButton(c tele.Context) error {
	return h.awaitInput(c, domain.StateWaitingDelete)
}

// awaitInput switches the user to state and shows its prompt
func (h *Handler) awaitInput(c tele.Context, state domain.UserState) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: state})

	return h.editOrSend(c, prompts[state], cancelMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}

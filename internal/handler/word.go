package handler

import (
	"fmt"
	"strings"

	"voci/internal/domain"
	"voci/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Prompts shown when an action waits for input
var prompts = map[domain.UserState]string{
	domain.StateWaitingAdd:    "➕ Send the new word:\n" + entryFormat,
	domain.StateWaitingLookup: "🔎 Send the word to look up:\n" + lookupFormat,
	domain.StateWaitingExtend: "✏️ Send the word with more translations:\n" + entryFormat,
	domain.StateWaitingDelete: "🗑 Send the word to delete:\n" + lookupFormat,
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	authorized, err := h.authService.Admit(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(middleware.MsgInternalError)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("Wrong password")
		}

		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(middleware.MsgInternalError)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
	}

	// User is authorized, handle based on state
	switch h.GetState(userID).State {
	case domain.StateWaitingAdd:
		return h.addTranslation(c, text)
	case domain.StateWaitingLookup:
		return h.lookupTranslation(c, text)
	case domain.StateWaitingExtend:
		return h.extendTranslation(c, text)
	case domain.StateWaitingDelete:
		return h.deleteTranslation(c, text)
	default:
		// Idle: a full entry adds, anything else is a lookup
		if strings.Contains(text, "=") {
			return h.addTranslation(c, text)
		}
		return h.lookupTranslation(c, text)
	}
}

// handleAddCommand handles /add <entry>
func (h *Handler) handleAddCommand(c tele.Context) error {
	return h.runCommand(c, domain.StateWaitingAdd, h.addTranslation)
}

// handleGetCommand handles /get <word> <lang>
func (h *Handler) handleGetCommand(c tele.Context) error {
	return h.runCommand(c, domain.StateWaitingLookup, h.lookupTranslation)
}

// handleExtendCommand handles /extend <entry>
func (h *Handler) handleExtendCommand(c tele.Context) error {
	return h.runCommand(c, domain.StateWaitingExtend, h.extendTranslation)
}

// handleDeleteCommand handles /delete <word> <lang>
func (h *Handler) handleDeleteCommand(c tele.Context) error {
	return h.runCommand(c, domain.StateWaitingDelete, h.deleteTranslation)
}

// runCommand executes a command payload, or waits for it if the payload is empty
func (h *Handler) runCommand(c tele.Context, state domain.UserState, run func(tele.Context, string) error) error {
	var payload string
	if msg := c.Message(); msg != nil {
		payload = strings.TrimSpace(msg.Payload)
	}

	if payload == "" {
		h.SetState(c.Sender().ID, &domain.StateData{State: state})
		return c.Send(prompts[state], cancelMarkup())
	}

	h.ResetState(c.Sender().ID)
	return run(c, payload)
}

func (h *Handler) addTranslation(c tele.Context, text string) error {
	e, err := parseEntry(text)
	if err != nil {
		return c.Send(errorMessage(err))
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	tr, err := h.translations.CreateTranslation(ctx, e.word, e.lang, e.translations, e.translationLang)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.Send("✅ Saved!\n\n" + formatRecord(tr) + "\n\nSend the next one or go back to /start")
}

func (h *Handler) lookupTranslation(c tele.Context, text string) error {
	word, lang, err := parseLookup(text)
	if err != nil {
		return c.Send(errorMessage(err))
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	tr, err := h.translations.ReadTranslation(ctx, word, lang)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.Send("📖 " + formatRecord(tr))
}

func (h *Handler) extendTranslation(c tele.Context, text string) error {
	e, err := parseEntry(text)
	if err != nil {
		return c.Send(errorMessage(err))
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	tr, err := h.translations.UpdateTranslation(ctx, e.word, e.lang, e.translations, e.translationLang)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.Send("✅ Updated!\n\n" + formatRecord(tr))
}

func (h *Handler) deleteTranslation(c tele.Context, text string) error {
	word, lang, err := parseLookup(text)
	if err != nil {
		return c.Send(errorMessage(err))
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	if err := h.translations.DeleteTranslation(ctx, word, lang); err != nil {
		return h.sendError(c, err)
	}

	return c.Send(fmt.Sprintf("🗑 Deleted %s (%s)", word, lang))
}

// sendError replies with the message matching err
func (h *Handler) sendError(c tele.Context, err error) error {
	h.logger.Debug("Translation request failed",
		zap.Int64("user_id", c.Sender().ID),
		zap.Error(err),
	)
	return c.Send(errorMessage(err))
}

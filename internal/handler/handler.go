package handler

import (
	"context"
	"sync"
	"time"

	"voci/internal/domain"
	"voci/internal/middleware"
	"voci/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds the storage work behind a single update
const requestTimeout = 10 * time.Second

// TranslationService is the use-case surface the bot drives
type TranslationService interface {
	CreateTranslation(ctx context.Context, word string, wordLang domain.Lang, translations []string, translationLang domain.Lang) (*domain.TranslationRecord, error)
	ReadTranslation(ctx context.Context, word string, lang domain.Lang) (*domain.TranslationRecord, error)
	UpdateTranslation(ctx context.Context, word string, lang domain.Lang, extraTranslations []string, extraLang domain.Lang) (*domain.TranslationRecord, error)
	DeleteTranslation(ctx context.Context, word string, lang domain.Lang) error
}

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	translations TranslationService
	logger       *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	translations TranslationService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		authService:  authService,
		translations: translations,
		logger:       logger,
		states:       make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Public: /start and free text carry the password prompt
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything else requires an authorized user
	authorized := h.bot.Group()
	authorized.Use(middleware.AuthMiddleware(h.authService, h.logger))

	authorized.Handle("/help", h.handleHelp)
	authorized.Handle("/add", h.handleAddCommand)
	authorized.Handle("/get", h.handleGetCommand)
	authorized.Handle("/extend", h.handleExtendCommand)
	authorized.Handle("/delete", h.handleDeleteCommand)

	// Callback queries (inline buttons)
	authorized.Handle(&btnAdd, h.handleAddButton)
	authorized.Handle(&btnLookup, h.handleLookupButton)
	authorized.Handle(&btnExtend, h.handleExtendButton)
	authorized.Handle(&btnDelete, h.handleDeleteButton)
	authorized.Handle(&btnCancel, h.handleCancel)
	authorized.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	authorized.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnAdd = tele.Btn{
		Unique: "add",
		Text:   "➕ Add",
	}
	btnLookup = tele.Btn{
		Unique: "lookup",
		Text:   "🔎 Look up",
	}
	btnExtend = tele.Btn{
		Unique: "extend",
		Text:   "✏️ Extend",
	}
	btnDelete = tele.Btn{
		Unique: "delete",
		Text:   "🗑 Delete",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

const mainMenuText = "🏠 Main menu\n\nChoose an action:"

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAdd, btnLookup),
		menu.Row(btnExtend, btnDelete),
	)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

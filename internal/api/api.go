// Package api exposes the translation use-cases over a JSON REST API.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"voci/internal/domain"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BasePath is the mount point of every API route
const BasePath = "/voci/api/v1"

// TranslationService is the use-case surface the API drives
type TranslationService interface {
	CreateTranslation(ctx context.Context, word string, wordLang domain.Lang, translations []string, translationLang domain.Lang) (*domain.TranslationRecord, error)
	ReadTranslation(ctx context.Context, word string, lang domain.Lang) (*domain.TranslationRecord, error)
	UpdateTranslation(ctx context.Context, word string, lang domain.Lang, extraTranslations []string, extraLang domain.Lang) (*domain.TranslationRecord, error)
	DeleteTranslation(ctx context.Context, word string, lang domain.Lang) error
}

// Handler holds shared dependencies for all API handlers
type Handler struct {
	translations TranslationService
	logger       *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(translations TranslationService, logger *zap.Logger) *Handler {
	return &Handler{
		translations: translations,
		logger:       logger,
	}
}

// NewRouter builds the HTTP router with middleware and all API routes
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/status", h.Status)

		r.Route("/translations", func(r chi.Router) {
			r.Get("/", h.GetTranslation)
			r.Post("/", h.CreateTranslation)
			r.Put("/", h.UpdateTranslation)
			r.Delete("/", h.DeleteTranslation)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}

// Response is the standard API response wrapper
type Response struct {
	Data any `json:"data,omitempty"`
}

// ErrorResponse is the standard API error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 OK JSON response
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Data: data})
}

// WriteCreated writes a 201 Created JSON response
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteConflict writes a 409 Conflict response
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// StatusResponse contains API status information
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	})
}

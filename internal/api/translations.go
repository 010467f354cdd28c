package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"voci/internal/domain"
	"voci/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// TranslationResponse represents a translation record in API responses
type TranslationResponse struct {
	ID              string      `json:"id"`
	Word            string      `json:"word"`
	Lang            domain.Lang `json:"lang"`
	Translations    []string    `json:"translations"`
	TranslationLang domain.Lang `json:"translation_lang"`
}

// TranslationRequest is the body of create and update requests
type TranslationRequest struct {
	Word            string   `json:"word"`
	Lang            string   `json:"lang"`
	Translations    []string `json:"translations"`
	TranslationLang string   `json:"translation_lang"`
}

func toTranslationResponse(tr *domain.TranslationRecord) TranslationResponse {
	id, word, lang, words, translationLang := tr.Flat()
	return TranslationResponse{
		ID:              id.String(),
		Word:            word,
		Lang:            lang,
		Translations:    words,
		TranslationLang: translationLang,
	}
}

// GetTranslation handles GET /translations?word=&lang=
func (h *Handler) GetTranslation(w http.ResponseWriter, r *http.Request) {
	word, lang, ok := parseWordQuery(w, r)
	if !ok {
		return
	}

	tr, err := h.translations.ReadTranslation(r.Context(), word, lang)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, toTranslationResponse(tr))
}

// CreateTranslation handles POST /translations
func (h *Handler) CreateTranslation(w http.ResponseWriter, r *http.Request) {
	req, lang, translationLang, ok := decodeTranslationRequest(w, r)
	if !ok {
		return
	}

	tr, err := h.translations.CreateTranslation(r.Context(), req.Word, lang, req.Translations, translationLang)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteCreated(w, toTranslationResponse(tr))
}

// UpdateTranslation handles PUT /translations.
// The translations in the body are added to the stored ones.
func (h *Handler) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	req, lang, translationLang, ok := decodeTranslationRequest(w, r)
	if !ok {
		return
	}

	tr, err := h.translations.UpdateTranslation(r.Context(), req.Word, lang, req.Translations, translationLang)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, toTranslationResponse(tr))
}

// DeleteTranslation handles DELETE /translations?word=&lang=
func (h *Handler) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	word, lang, ok := parseWordQuery(w, r)
	if !ok {
		return
	}

	if err := h.translations.DeleteTranslation(r.Context(), word, lang); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseWordQuery reads the word and lang query parameters.
// Returns false if the request was rejected (response already written).
func parseWordQuery(w http.ResponseWriter, r *http.Request) (string, domain.Lang, bool) {
	q := r.URL.Query()

	lang, err := domain.ParseLang(q.Get("lang"))
	if err != nil {
		WriteBadRequest(w, "Invalid language", map[string]string{"lang": err.Error()})
		return "", "", false
	}

	word := strings.TrimSpace(q.Get("word"))
	if word == "" {
		WriteValidationError(w, map[string]string{"word": "Word is required"})
		return "", "", false
	}

	return word, lang, true
}

// decodeTranslationRequest decodes and validates a create or update body.
// Returns false if the request was rejected (response already written).
func decodeTranslationRequest(w http.ResponseWriter, r *http.Request) (TranslationRequest, domain.Lang, domain.Lang, bool) {
	var req TranslationRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return req, "", "", false
	}

	langErrors := make(map[string]string)
	lang, err := domain.ParseLang(req.Lang)
	if err != nil {
		langErrors["lang"] = err.Error()
	}
	translationLang, err := domain.ParseLang(req.TranslationLang)
	if err != nil {
		langErrors["translation_lang"] = err.Error()
	}
	if len(langErrors) > 0 {
		WriteBadRequest(w, "Invalid language", langErrors)
		return req, "", "", false
	}

	validationErrors := make(map[string]string)
	req.Word = strings.TrimSpace(req.Word)
	if req.Word == "" {
		validationErrors["word"] = "Word is required"
	}
	if len(req.Translations) == 0 {
		validationErrors["translations"] = "At least one translation is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return req, "", "", false
	}

	return req, lang, translationLang, true
}

// writeServiceError maps a use-case error onto an HTTP response
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.KindOf(err) {
	case service.KindInvalidInput:
		if errors.Is(err, domain.ErrTranslationLanguageMismatch) {
			WriteValidationError(w, map[string]string{"translation_lang": domain.ErrTranslationLanguageMismatch.Error()})
			return
		}
		if errors.Is(err, domain.ErrUpdateWithSameItems) {
			WriteValidationError(w, map[string]string{"translations": domain.ErrUpdateWithSameItems.Error()})
			return
		}
		WriteBadRequest(w, cause(err).Error(), nil)
	case service.KindNotFound:
		WriteNotFound(w, "Translation not found")
	case service.KindDuplicate:
		WriteConflict(w, "Translation already exists")
	case service.KindInvalidData:
		WriteBadRequest(w, "Translation rejected by storage", nil)
	case service.KindBadID, service.KindUnknown:
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteInternalError(w, "Internal server error")
	default:
		h.logger.Error("Unhandled error kind", zap.Error(err))
		WriteInternalError(w, "Internal server error")
	}
}

// cause returns the error wrapped by a service error
func cause(err error) error {
	var se *service.Error
	if errors.As(err, &se) && se.Err != nil {
		return se.Err
	}
	return err
}

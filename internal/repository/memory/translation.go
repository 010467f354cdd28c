// Package memory keeps translation records in process memory.
// It backs the "memory" storage backend and doubles as a fake in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"voci/internal/domain"
	"voci/internal/repository"

	"github.com/google/uuid"
)

type wordKey struct {
	text string
	lang domain.Lang
}

// TranslationRepo implements repository.TranslationRepository
type TranslationRepo struct {
	mu     sync.RWMutex
	byID   map[string]*domain.TranslationRecord
	byWord map[wordKey]string
	newID  func() string
}

// NewTranslationRepo creates an empty in-memory repository
func NewTranslationRepo() *TranslationRepo {
	return &TranslationRepo{
		byID:   make(map[string]*domain.TranslationRecord),
		byWord: make(map[wordKey]string),
		newID:  uuid.NewString,
	}
}

func keyOf(w domain.Word) wordKey {
	return wordKey{text: w.Text(), lang: w.Lang()}
}

// Create stores a record unless one exists for the same word
func (r *TranslationRepo) Create(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tr.ID().IsPresent() {
		return nil, fmt.Errorf("%w: record already has id %q", repository.ErrInvalidData, tr.ID())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(tr.Word())
	if _, exists := r.byWord[key]; exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrConflict, tr.Word())
	}

	id := r.newID()
	stored := tr.WithID(domain.NewTranslationID(id))
	r.byID[id] = stored
	r.byWord[key] = id

	return stored.Clone(), nil
}

// ReadByWord returns the record stored for word
func (r *TranslationRepo) ReadByWord(ctx context.Context, word domain.Word) (*domain.TranslationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byWord[keyOf(word)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

// Update replaces the translations of the stored record
func (r *TranslationRepo) Update(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, ok := tr.ID().Value()
	if !ok {
		return nil, repository.ErrBadID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[id]
	if !exists {
		return nil, repository.ErrNotFound
	}

	// Only the translation list is persisted, the stored key stays as is
	_, text, lang, _, translationLang := current.Flat()
	updated, err := domain.NewTranslationRecord(id, text, lang, tr.Translations(), translationLang)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidData, err)
	}
	r.byID[id] = updated

	return updated.Clone(), nil
}

// Delete removes the record with the given id
func (r *TranslationRepo) Delete(ctx context.Context, id domain.TranslationID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, ok := id.Value()
	if !ok {
		return repository.ErrBadID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[value]
	if !exists {
		return repository.ErrNotFound
	}

	delete(r.byWord, keyOf(current.Word()))
	delete(r.byID, value)
	return nil
}

// Len returns the number of stored records
func (r *TranslationRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

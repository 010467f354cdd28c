package repository

import (
	"context"
	"errors"

	"voci/internal/domain"
)

// Errors returned by TranslationRepository implementations.
// Any other error is an unclassified storage failure.
var (
	ErrNotFound    = errors.New("translation record not found")
	ErrBadID       = errors.New("malformed or missing translation id")
	ErrInvalidData = errors.New("invalid translation record data")
	ErrConflict    = errors.New("translation record already exists")
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// TranslationRepository defines translation record storage
type TranslationRepository interface {
	// Create stores a new record and returns it with the assigned id.
	// Records that already carry an id are rejected with ErrInvalidData,
	// a stored record with the same word fails with ErrConflict.
	Create(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error)

	// ReadByWord finds the record matching word text and language exactly
	ReadByWord(ctx context.Context, word domain.Word) (*domain.TranslationRecord, error)

	// Update persists the translations of the record identified by its id
	Update(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error)

	// Delete removes the record with the given id
	Delete(ctx context.Context, id domain.TranslationID) error
}

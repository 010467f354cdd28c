package testutil

import (
	"context"

	"voci/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTranslationRepository is a mock for TranslationRepository
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) Create(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	args := m.Called(ctx, tr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationRecord), args.Error(1)
}

func (m *MockTranslationRepository) ReadByWord(ctx context.Context, word domain.Word) (*domain.TranslationRecord, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationRecord), args.Error(1)
}

func (m *MockTranslationRepository) Update(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	args := m.Called(ctx, tr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationRecord), args.Error(1)
}

func (m *MockTranslationRepository) Delete(ctx context.Context, id domain.TranslationID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

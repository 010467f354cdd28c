package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"voci/internal/domain"
	"voci/internal/repository"
	"voci/internal/repository/memory"
	"voci/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo repository.TranslationRepository) *TranslationService {
	return NewTranslationService(repo, testutil.NewTestLogger())
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Truef(t, IsKind(err, kind), "expected kind %s, got %v", kind, err)
}

func TestTranslationService_CreateTranslation(t *testing.T) {
	dbErr := fmt.Errorf("db error")

	tests := []struct {
		name         string
		word         string
		translations []string
		readError    error
		readRecord   *domain.TranslationRecord
		createError  error
		expectCreate bool
		expectedKind Kind
		expectedErr  error
	}{
		{
			name:         "new word",
			word:         testutil.Word,
			translations: testutil.Translations,
			readError:    repository.ErrNotFound,
			expectCreate: true,
		},
		{
			name:         "empty word",
			word:         "",
			translations: testutil.Translations,
			expectedKind: KindInvalidInput,
			expectedErr:  domain.ErrEmptyWord,
		},
		{
			name:         "no translations",
			word:         testutil.Word,
			translations: []string{},
			expectedKind: KindInvalidInput,
			expectedErr:  domain.ErrEmptyTranslation,
		},
		{
			name:         "empty translation",
			word:         testutil.Word,
			translations: []string{"hund", ""},
			expectedKind: KindInvalidInput,
			expectedErr:  domain.ErrEmptyWordInTranslation,
		},
		{
			name:         "word already stored",
			word:         testutil.Word,
			translations: testutil.Translations,
			readRecord:   testutil.NewTestRecord(true),
			expectedKind: KindDuplicate,
		},
		{
			name:         "lookup failure",
			word:         testutil.Word,
			translations: testutil.Translations,
			readError:    dbErr,
			expectedKind: KindUnknown,
			expectedErr:  dbErr,
		},
		{
			name:         "unique index fired",
			word:         testutil.Word,
			translations: testutil.Translations,
			readError:    repository.ErrNotFound,
			createError:  fmt.Errorf("insert: %w", repository.ErrConflict),
			expectCreate: true,
			expectedKind: KindDuplicate,
		},
		{
			name:         "storage rejected data",
			word:         testutil.Word,
			translations: testutil.Translations,
			readError:    repository.ErrNotFound,
			createError:  repository.ErrInvalidData,
			expectCreate: true,
			expectedKind: KindInvalidData,
		},
		{
			name:         "storage failure",
			word:         testutil.Word,
			translations: testutil.Translations,
			readError:    repository.ErrNotFound,
			createError:  dbErr,
			expectCreate: true,
			expectedKind: KindUnknown,
			expectedErr:  dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockTranslationRepository)

			if tt.readRecord != nil || tt.readError != nil {
				mockRepo.On("ReadByWord", mock.Anything, testutil.NewTestWord()).Return(tt.readRecord, tt.readError)
			}
			if tt.expectCreate {
				if tt.createError != nil {
					mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, tt.createError)
				} else {
					mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(tr *domain.TranslationRecord) bool {
						return !tr.ID().IsPresent() && tr.Word().Text() == tt.word
					})).Return(testutil.NewTestRecord(true), nil)
				}
			}

			service := newTestService(mockRepo)

			tr, err := service.CreateTranslation(context.Background(), tt.word, testutil.WordLang, tt.translations, testutil.TranslationLang)

			if tt.expectedKind != "" {
				assertKind(t, err, tt.expectedKind)
				assert.Nil(t, tr)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, testutil.TranslationID, tr.ID().String())
			}

			mockRepo.AssertExpectations(t)
			if !tt.expectCreate {
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestTranslationService_ReadTranslation(t *testing.T) {
	tests := []struct {
		name         string
		word         string
		mockReturn   *domain.TranslationRecord
		mockError    error
		expectRead   bool
		expectedKind Kind
	}{
		{
			name:       "record found",
			word:       testutil.Word,
			mockReturn: testutil.NewTestRecord(true),
			expectRead: true,
		},
		{
			name:         "empty word",
			word:         "",
			expectedKind: KindInvalidInput,
		},
		{
			name:         "not found",
			word:         testutil.Word,
			mockError:    repository.ErrNotFound,
			expectRead:   true,
			expectedKind: KindNotFound,
		},
		{
			name:         "storage failure",
			word:         testutil.Word,
			mockError:    fmt.Errorf("db error"),
			expectRead:   true,
			expectedKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockTranslationRepository)
			if tt.expectRead {
				mockRepo.On("ReadByWord", mock.Anything, testutil.NewTestWord()).Return(tt.mockReturn, tt.mockError)
			}

			service := newTestService(mockRepo)

			tr, err := service.ReadTranslation(context.Background(), tt.word, testutil.WordLang)

			if tt.expectedKind != "" {
				assertKind(t, err, tt.expectedKind)
				assert.Nil(t, tr)
				if tt.mockError != nil {
					assert.ErrorIs(t, err, tt.mockError)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, tr)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTranslationService_UnknownLang(t *testing.T) {
	tests := []struct {
		name            string
		wordLang        domain.Lang
		translationLang domain.Lang
	}{
		{name: "unsupported word language", wordLang: domain.Lang("en"), translationLang: testutil.TranslationLang},
		{name: "empty translation language", wordLang: testutil.WordLang, translationLang: domain.Lang("")},
		{name: "both unknown", wordLang: domain.Lang("en"), translationLang: domain.Lang("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockTranslationRepository)
			service := newTestService(mockRepo)

			tr, err := service.CreateTranslation(context.Background(), testutil.Word, tt.wordLang, testutil.Translations, tt.translationLang)

			assertKind(t, err, KindInvalidInput)
			assert.ErrorIs(t, err, domain.ErrUnknownLang)
			assert.Nil(t, tr)
			mockRepo.AssertNotCalled(t, "ReadByWord", mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("lookup in unsupported language", func(t *testing.T) {
		repo := memory.NewTranslationRepo()
		service := newTestService(repo)

		_, err := service.ReadTranslation(context.Background(), testutil.Word, domain.Lang("en"))
		assertKind(t, err, KindInvalidInput)
		assert.ErrorIs(t, err, domain.ErrUnknownLang)

		err = service.DeleteTranslation(context.Background(), testutil.Word, domain.Lang(""))
		assertKind(t, err, KindInvalidInput)
		assert.ErrorIs(t, err, domain.ErrUnknownLang)
	})
}

func TestTranslationService_UpdateTranslation(t *testing.T) {
	tests := []struct {
		name         string
		word         string
		extra        []string
		extraLang    domain.Lang
		readError    error
		updateError  error
		expectRead   bool
		expectUpdate bool
		expected     []string
		expectedKind Kind
		expectedErr  error
	}{
		{
			name:         "extends translations",
			word:         testutil.Word,
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			expectRead:   true,
			expectUpdate: true,
			expected:     []string{"hund", "köter", "Schäfer", "Jagdhund"},
		},
		{
			name:         "no extra words",
			word:         testutil.Word,
			extra:        []string{},
			extraLang:    testutil.TranslationLang,
			expectRead:   true,
			expectUpdate: true,
			expected:     []string{"hund", "köter"},
		},
		{
			name:         "empty word",
			word:         "",
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			expectedKind: KindInvalidInput,
			expectedErr:  domain.ErrEmptyWord,
		},
		{
			name:         "not found",
			word:         testutil.Word,
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			readError:    repository.ErrNotFound,
			expectRead:   true,
			expectedKind: KindNotFound,
		},
		{
			name:         "lookup failure",
			word:         testutil.Word,
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			readError:    fmt.Errorf("db error"),
			expectRead:   true,
			expectedKind: KindUnknown,
		},
		{
			name:         "language mismatch",
			word:         testutil.Word,
			extra:        []string{"chat"},
			extraLang:    domain.LangFrench,
			expectRead:   true,
			expectedKind: KindInvalidInput,
			expectedErr:  domain.ErrTranslationLanguageMismatch,
		},
		{
			name:         "same items",
			word:         testutil.Word,
			extra:        []string{"köter", "hund"},
			extraLang:    testutil.TranslationLang,
			expectRead:   true,
			expectedKind: KindInvalidInput,
			expectedErr:  domain.ErrUpdateWithSameItems,
		},
		{
			name:         "record vanished before update",
			word:         testutil.Word,
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			updateError:  repository.ErrNotFound,
			expectRead:   true,
			expectUpdate: true,
			expectedKind: KindNotFound,
		},
		{
			name:         "bad id",
			word:         testutil.Word,
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			updateError:  repository.ErrBadID,
			expectRead:   true,
			expectUpdate: true,
			expectedKind: KindBadID,
		},
		{
			name:         "storage failure on update",
			word:         testutil.Word,
			extra:        testutil.AdditionalTranslations,
			extraLang:    testutil.TranslationLang,
			updateError:  fmt.Errorf("db error"),
			expectRead:   true,
			expectUpdate: true,
			expectedKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockTranslationRepository)

			if tt.expectRead {
				if tt.readError != nil {
					mockRepo.On("ReadByWord", mock.Anything, testutil.NewTestWord()).Return(nil, tt.readError)
				} else {
					mockRepo.On("ReadByWord", mock.Anything, testutil.NewTestWord()).Return(testutil.NewTestRecord(true), nil)
				}
			}
			if tt.expectUpdate {
				call := mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(tr *domain.TranslationRecord) bool {
					return tr.ID().String() == testutil.TranslationID &&
						(tt.expected == nil || assert.ObjectsAreEqual(tt.expected, tr.Translations()))
				}))
				if tt.updateError != nil {
					call.Return(nil, tt.updateError)
				} else {
					persisted, err := domain.NewTranslationRecord(testutil.TranslationID, testutil.Word, testutil.WordLang, tt.expected, testutil.TranslationLang)
					require.NoError(t, err)
					call.Return(persisted, nil)
				}
			}

			service := newTestService(mockRepo)

			tr, err := service.UpdateTranslation(context.Background(), tt.word, testutil.WordLang, tt.extra, tt.extraLang)

			if tt.expectedKind != "" {
				assertKind(t, err, tt.expectedKind)
				assert.Nil(t, tr)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, tr.Translations())
				assert.Equal(t, testutil.TranslationID, tr.ID().String())
			}

			mockRepo.AssertExpectations(t)
			if !tt.expectUpdate {
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestTranslationService_DeleteTranslation(t *testing.T) {
	tests := []struct {
		name         string
		word         string
		readError    error
		deleteError  error
		expectRead   bool
		expectDelete bool
		expectedKind Kind
	}{
		{
			name:         "existing word",
			word:         testutil.Word,
			expectRead:   true,
			expectDelete: true,
		},
		{
			name:         "empty word",
			word:         "",
			expectedKind: KindInvalidInput,
		},
		{
			name:         "not found",
			word:         testutil.Word,
			readError:    repository.ErrNotFound,
			expectRead:   true,
			expectedKind: KindNotFound,
		},
		{
			name:         "lookup failure",
			word:         testutil.Word,
			readError:    fmt.Errorf("db error"),
			expectRead:   true,
			expectedKind: KindUnknown,
		},
		{
			name:         "bad id",
			word:         testutil.Word,
			deleteError:  repository.ErrBadID,
			expectRead:   true,
			expectDelete: true,
			expectedKind: KindBadID,
		},
		{
			name:         "deleted concurrently",
			word:         testutil.Word,
			deleteError:  repository.ErrNotFound,
			expectRead:   true,
			expectDelete: true,
			expectedKind: KindNotFound,
		},
		{
			name:         "storage failure on delete",
			word:         testutil.Word,
			deleteError:  fmt.Errorf("db error"),
			expectRead:   true,
			expectDelete: true,
			expectedKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockTranslationRepository)

			if tt.expectRead {
				if tt.readError != nil {
					mockRepo.On("ReadByWord", mock.Anything, testutil.NewTestWord()).Return(nil, tt.readError)
				} else {
					mockRepo.On("ReadByWord", mock.Anything, testutil.NewTestWord()).Return(testutil.NewTestRecord(true), nil)
				}
			}
			if tt.expectDelete {
				mockRepo.On("Delete", mock.Anything, domain.NewTranslationID(testutil.TranslationID)).Return(tt.deleteError)
			}

			service := newTestService(mockRepo)

			err := service.DeleteTranslation(context.Background(), tt.word, testutil.WordLang)

			if tt.expectedKind != "" {
				assertKind(t, err, tt.expectedKind)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTranslationService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewTranslationRepo())

	_, err := service.ReadTranslation(ctx, "chien", domain.LangFrench)
	assertKind(t, err, KindNotFound)

	created, err := service.CreateTranslation(ctx, "chien", domain.LangFrench, []string{"hund", "köter"}, domain.LangGerman)
	require.NoError(t, err)
	assert.True(t, created.ID().IsPresent())
	_, word, wordLang, words, translationLang := created.Flat()
	assert.Equal(t, "chien", word)
	assert.Equal(t, domain.LangFrench, wordLang)
	assert.Equal(t, []string{"hund", "köter"}, words)
	assert.Equal(t, domain.LangGerman, translationLang)

	_, err = service.CreateTranslation(ctx, "chien", domain.LangFrench, []string{"wauwau"}, domain.LangGerman)
	assertKind(t, err, KindDuplicate)

	read, err := service.ReadTranslation(ctx, "chien", domain.LangFrench)
	require.NoError(t, err)
	assert.Equal(t, created, read)

	updated, err := service.UpdateTranslation(ctx, "chien", domain.LangFrench, []string{"Schäfer", "Jagdhund"}, domain.LangGerman)
	require.NoError(t, err)
	assert.Equal(t, []string{"hund", "köter", "Schäfer", "Jagdhund"}, updated.Translations())
	assert.Equal(t, created.ID(), updated.ID())

	_, err = service.UpdateTranslation(ctx, "chien", domain.LangFrench, []string{"Jagdhund", "hund", "Schäfer", "köter"}, domain.LangGerman)
	assertKind(t, err, KindInvalidInput)
	assert.ErrorIs(t, err, domain.ErrUpdateWithSameItems)

	read, err = service.ReadTranslation(ctx, "chien", domain.LangFrench)
	require.NoError(t, err)
	assert.Equal(t, updated.Translations(), read.Translations())

	require.NoError(t, service.DeleteTranslation(ctx, "chien", domain.LangFrench))

	_, err = service.ReadTranslation(ctx, "chien", domain.LangFrench)
	assertKind(t, err, KindNotFound)

	err = service.DeleteTranslation(ctx, "chien", domain.LangFrench)
	assertKind(t, err, KindNotFound)
}

func TestError(t *testing.T) {
	inner := errors.New("boom")
	err := newError(OpRead, KindUnknown, inner)

	assert.Equal(t, "read_translation: unknown: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(inner))
	assert.True(t, IsKind(fmt.Errorf("wrapped: %w", newError(OpCreate, KindDuplicate, nil)), KindDuplicate))
	assert.Equal(t, "create_translation: duplicate", newError(OpCreate, KindDuplicate, nil).Error())
	assert.False(t, IsKind(inner, KindUnknown))
}

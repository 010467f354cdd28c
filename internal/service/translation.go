package service

import (
	"context"
	"errors"

	"voci/internal/domain"
	"voci/internal/repository"

	"go.uber.org/zap"
)

// TranslationService handles translation record use-cases
type TranslationService struct {
	repo   repository.TranslationRepository
	logger *zap.Logger
}

// NewTranslationService creates a new translation service
func NewTranslationService(repo repository.TranslationRepository, logger *zap.Logger) *TranslationService {
	return &TranslationService{
		repo:   repo,
		logger: logger,
	}
}

// CreateTranslation validates and stores a new translation record.
// It fails with KindDuplicate if a record for the word already exists.
func (s *TranslationService) CreateTranslation(
	ctx context.Context,
	word string,
	wordLang domain.Lang,
	translations []string,
	translationLang domain.Lang,
) (*domain.TranslationRecord, error) {
	tr, err := domain.NewTranslationRecord("", word, wordLang, translations, translationLang)
	if err != nil {
		return nil, s.fail(newError(OpCreate, KindInvalidInput, err))
	}

	// The storage unique index catches what slips between this check and Create
	_, err = s.repo.ReadByWord(ctx, tr.Word())
	switch {
	case err == nil:
		return nil, s.fail(newError(OpCreate, KindDuplicate, repository.ErrConflict))
	case !errors.Is(err, repository.ErrNotFound):
		return nil, s.fail(newError(OpCreate, KindUnknown, err))
	}

	created, err := s.repo.Create(ctx, tr)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, s.fail(newError(OpCreate, KindDuplicate, err))
		case errors.Is(err, repository.ErrInvalidData):
			return nil, s.fail(newError(OpCreate, KindInvalidData, err))
		default:
			return nil, s.fail(newError(OpCreate, KindUnknown, err))
		}
	}

	s.logger.Info("Translation created",
		zap.String("id", created.ID().String()),
		zap.String("word", word),
		zap.String("lang", wordLang.String()),
	)

	return created, nil
}

// ReadTranslation returns the record stored for a word
func (s *TranslationService) ReadTranslation(ctx context.Context, word string, lang domain.Lang) (*domain.TranslationRecord, error) {
	w, err := domain.NewWord(word, lang)
	if err != nil {
		return nil, s.fail(newError(OpRead, KindInvalidInput, err))
	}

	tr, serr := s.read(ctx, OpRead, w)
	if serr != nil {
		return nil, s.fail(serr)
	}

	return tr, nil
}

// UpdateTranslation adds extra translations to the record stored for a word
func (s *TranslationService) UpdateTranslation(
	ctx context.Context,
	word string,
	lang domain.Lang,
	extraTranslations []string,
	extraLang domain.Lang,
) (*domain.TranslationRecord, error) {
	w, err := domain.NewWord(word, lang)
	if err != nil {
		return nil, s.fail(newError(OpUpdate, KindInvalidInput, err))
	}

	tr, serr := s.read(ctx, OpUpdate, w)
	if serr != nil {
		return nil, s.fail(serr)
	}

	if err := tr.Update(extraTranslations, extraLang); err != nil {
		return nil, s.fail(newError(OpUpdate, KindInvalidInput, err))
	}

	updated, err := s.repo.Update(ctx, tr)
	if err != nil {
		return nil, s.fail(newError(OpUpdate, storageKind(err), err))
	}

	s.logger.Info("Translation updated",
		zap.String("id", updated.ID().String()),
		zap.String("word", word),
		zap.Int("translations", len(updated.Translations())),
	)

	return updated, nil
}

// DeleteTranslation removes the record stored for a word
func (s *TranslationService) DeleteTranslation(ctx context.Context, word string, lang domain.Lang) error {
	w, err := domain.NewWord(word, lang)
	if err != nil {
		return s.fail(newError(OpDelete, KindInvalidInput, err))
	}

	tr, serr := s.read(ctx, OpDelete, w)
	if serr != nil {
		return s.fail(serr)
	}

	if err := s.repo.Delete(ctx, tr.ID()); err != nil {
		return s.fail(newError(OpDelete, storageKind(err), err))
	}

	s.logger.Info("Translation deleted",
		zap.String("id", tr.ID().String()),
		zap.String("word", word),
		zap.String("lang", lang.String()),
	)

	return nil
}

func (s *TranslationService) read(ctx context.Context, op string, w domain.Word) (*domain.TranslationRecord, *Error) {
	tr, err := s.repo.ReadByWord(ctx, w)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(op, KindNotFound, err)
		}
		return nil, newError(op, KindUnknown, err)
	}
	return tr, nil
}

// storageKind maps update and delete storage errors
func storageKind(err error) Kind {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return KindNotFound
	case errors.Is(err, repository.ErrBadID):
		return KindBadID
	default:
		return KindUnknown
	}
}

// fail logs err at a level matching its kind and returns it
func (s *TranslationService) fail(err *Error) error {
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.String("kind", string(err.Kind)),
		zap.Error(err.Err),
	}

	switch err.Kind {
	case KindUnknown, KindBadID, KindInvalidData:
		s.logger.Error("Translation operation failed", fields...)
	default:
		s.logger.Warn("Translation operation rejected", fields...)
	}

	return err
}

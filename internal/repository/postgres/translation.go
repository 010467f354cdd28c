package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"voci/internal/domain"
	"voci/internal/repository"

	"github.com/lib/pq"
)

// PostgreSQL error codes the repository classifies
const (
	codeUniqueViolation  = pq.ErrorCode("23505")
	codeCheckViolation   = pq.ErrorCode("23514")
	codeNotNullViolation = pq.ErrorCode("23502")
)

// TranslationRepo implements repository.TranslationRepository
type TranslationRepo struct {
	db *sql.DB
}

// NewTranslationRepo creates a new translation repository
func NewTranslationRepo(db *sql.DB) *TranslationRepo {
	return &TranslationRepo{db: db}
}

// Create inserts a record and returns it with the generated id
func (r *TranslationRepo) Create(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	if tr.ID().IsPresent() {
		return nil, fmt.Errorf("%w: record already has id %q", repository.ErrInvalidData, tr.ID())
	}

	_, word, lang, words, translationLang := tr.Flat()

	query := `
		INSERT INTO translations (word, lang, translations, translation_lang)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, word, lang.String(), pq.Array(words), translationLang.String()).Scan(&id)
	if err != nil {
		return nil, classify(err)
	}

	return tr.WithID(domain.NewTranslationID(strconv.FormatInt(id, 10))), nil
}

// ReadByWord returns the record matching word text and language
func (r *TranslationRepo) ReadByWord(ctx context.Context, word domain.Word) (*domain.TranslationRecord, error) {
	query := `
		SELECT id, word, lang, translations, translation_lang
		FROM translations
		WHERE word = $1 AND lang = $2
	`

	var (
		id              int64
		text            string
		lang            string
		words           []string
		translationLang string
	)
	err := r.db.QueryRowContext(ctx, query, word.Text(), word.Lang().String()).Scan(
		&id, &text, &lang, pq.Array(&words), &translationLang,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return toRecord(id, text, lang, words, translationLang)
}

// Update stores the translations of the record
func (r *TranslationRepo) Update(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	id, err := parseID(tr.ID())
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE translations
		SET translations = $1, updated_at = NOW()
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, pq.Array(tr.Translations()), id)
	if err != nil {
		return nil, classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return tr.Clone(), nil
}

// Delete removes the record with the given id
func (r *TranslationRepo) Delete(ctx context.Context, id domain.TranslationID) error {
	rowID, err := parseID(id)
	if err != nil {
		return err
	}

	query := `DELETE FROM translations WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, rowID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func parseID(id domain.TranslationID) (int64, error) {
	value, ok := id.Value()
	if !ok {
		return 0, repository.ErrBadID
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", repository.ErrBadID, value)
	}
	return n, nil
}

func toRecord(id int64, text, lang string, words []string, translationLang string) (*domain.TranslationRecord, error) {
	wordLang, err := domain.ParseLang(lang)
	if err != nil {
		return nil, fmt.Errorf("stored translation %d: %w", id, err)
	}
	tl, err := domain.ParseLang(translationLang)
	if err != nil {
		return nil, fmt.Errorf("stored translation %d: %w", id, err)
	}

	tr, err := domain.NewTranslationRecord(strconv.FormatInt(id, 10), text, wordLang, words, tl)
	if err != nil {
		return nil, fmt.Errorf("stored translation %d: %w", id, err)
	}
	return tr, nil
}

// classify maps constraint violations onto repository errors
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", repository.ErrConflict, pqErr.Message)
	case codeCheckViolation, codeNotNullViolation:
		return fmt.Errorf("%w: %s", repository.ErrInvalidData, pqErr.Message)
	default:
		return err
	}
}

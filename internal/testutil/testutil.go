package testutil

import (
	"voci/internal/domain"

	"go.uber.org/zap"
)

// Fixture values shared by the test suites
const (
	TranslationID   = "123"
	Word            = "chien"
	WordLang        = domain.LangFrench
	TranslationLang = domain.LangGerman
)

var (
	// Translations are the stored translations of Word
	Translations = []string{"hund", "köter"}
	// AdditionalTranslations extend Translations in update scenarios
	AdditionalTranslations = []string{"Schäfer", "Jagdhund"}
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRecord creates the fixture record, with TranslationID if withID is set
func NewTestRecord(withID bool) *domain.TranslationRecord {
	id := ""
	if withID {
		id = TranslationID
	}

	words := make([]string, len(Translations))
	copy(words, Translations)

	tr, err := domain.NewTranslationRecord(id, Word, WordLang, words, TranslationLang)
	if err != nil {
		panic(err)
	}
	return tr
}

// NewTestWord creates the fixture lookup word
func NewTestWord() domain.Word {
	w, err := domain.NewWord(Word, WordLang)
	if err != nil {
		panic(err)
	}
	return w
}

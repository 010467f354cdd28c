package domain

import (
	"errors"
	"fmt"
)

// Validation errors raised while building or updating a translation record
var (
	ErrEmptyWord                   = errors.New("word is empty")
	ErrEmptyTranslation            = errors.New("translation list is empty")
	ErrEmptyWordInTranslation      = errors.New("translation list contains an empty word")
	ErrTranslationLanguageMismatch = errors.New("translation language does not match")
	ErrUpdateWithSameItems         = errors.New("update contains the same translations")
)

// Word is a non-empty text in a given language.
// It is the lookup key of a translation record.
type Word struct {
	text string
	lang Lang
}

// NewWord validates and creates a word
func NewWord(text string, lang Lang) (Word, error) {
	if text == "" {
		return Word{}, ErrEmptyWord
	}
	if !lang.Valid() {
		return Word{}, fmt.Errorf("%w: %q", ErrUnknownLang, string(lang))
	}
	return Word{text: text, lang: lang}, nil
}

// Text returns the word text
func (w Word) Text() string {
	return w.text
}

// Lang returns the word language
func (w Word) Lang() Lang {
	return w.lang
}

func (w Word) String() string {
	return w.text + " (" + string(w.lang) + ")"
}

// TranslationID is the storage-assigned identifier of a record.
// The zero value means the record has not been persisted yet.
type TranslationID struct {
	value string
}

// NewTranslationID wraps s, an empty string yields an absent id
func NewTranslationID(s string) TranslationID {
	return TranslationID{value: s}
}

// Value returns the id and whether it is present
func (id TranslationID) Value() (string, bool) {
	return id.value, id.value != ""
}

// IsPresent reports whether the id was assigned by storage
func (id TranslationID) IsPresent() bool {
	return id.value != ""
}

func (id TranslationID) String() string {
	return id.value
}

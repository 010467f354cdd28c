package domain

import "fmt"

// Translations are the target-language words of a record
type Translations struct {
	lang  Lang
	words []string
}

func newTranslations(words []string, lang Lang) (Translations, error) {
	if !lang.Valid() {
		return Translations{}, fmt.Errorf("%w: %q", ErrUnknownLang, string(lang))
	}
	if len(words) == 0 {
		return Translations{}, ErrEmptyTranslation
	}
	for _, w := range words {
		if w == "" {
			return Translations{}, ErrEmptyWordInTranslation
		}
	}

	cp := make([]string, len(words))
	copy(cp, words)
	return Translations{lang: lang, words: cp}, nil
}

// TranslationRecord is a word together with its translations in one language
type TranslationRecord struct {
	id           TranslationID
	word         Word
	translations Translations
}

// NewTranslationRecord validates the input and builds a record.
// An empty id means the record is not persisted yet.
func NewTranslationRecord(id string, wordText string, wordLang Lang, words []string, translationLang Lang) (*TranslationRecord, error) {
	word, err := NewWord(wordText, wordLang)
	if err != nil {
		return nil, err
	}

	translations, err := newTranslations(words, translationLang)
	if err != nil {
		return nil, err
	}

	return &TranslationRecord{
		id:           NewTranslationID(id),
		word:         word,
		translations: translations,
	}, nil
}

// ID returns the storage id of the record
func (r *TranslationRecord) ID() TranslationID {
	return r.id
}

// Word returns the source word
func (r *TranslationRecord) Word() Word {
	return r.word
}

// TranslationLang returns the language of the translations
func (r *TranslationRecord) TranslationLang() Lang {
	return r.translations.lang
}

// Translations returns a copy of the translated words
func (r *TranslationRecord) Translations() []string {
	cp := make([]string, len(r.translations.words))
	copy(cp, r.translations.words)
	return cp
}

// Flat returns a read-only projection of the record
func (r *TranslationRecord) Flat() (id TranslationID, wordText string, wordLang Lang, words []string, translationLang Lang) {
	return r.id, r.word.text, r.word.lang, r.Translations(), r.translations.lang
}

// WithID returns a copy of the record carrying the given id
func (r *TranslationRecord) WithID(id TranslationID) *TranslationRecord {
	cp := r.Clone()
	cp.id = id
	return cp
}

// Clone returns a deep copy of the record
func (r *TranslationRecord) Clone() *TranslationRecord {
	return &TranslationRecord{
		id:   r.id,
		word: r.word,
		translations: Translations{
			lang:  r.translations.lang,
			words: r.Translations(),
		},
	}
}

// Update extends the translations with newWords.
// Empty words and words already present are skipped, order of first
// appearance is kept. The record is left untouched on error.
func (r *TranslationRecord) Update(newWords []string, lang Lang) error {
	if lang != r.translations.lang {
		return ErrTranslationLanguageMismatch
	}

	if sameItems(r.translations.words, newWords) {
		return ErrUpdateWithSameItems
	}

	seen := make(map[string]struct{}, len(r.translations.words)+len(newWords))
	for _, w := range r.translations.words {
		seen[w] = struct{}{}
	}

	for _, w := range newWords {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		r.translations.words = append(r.translations.words, w)
	}

	return nil
}

// sameItems compares a and b as unordered multisets
func sameItems(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[string]int, len(a))
	for _, w := range a {
		counts[w]++
	}
	for _, w := range b {
		counts[w]--
		if counts[w] < 0 {
			return false
		}
	}
	return true
}

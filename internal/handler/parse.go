package handler

import (
	"errors"
	"fmt"
	"strings"

	"voci/internal/domain"
	"voci/internal/service"
)

// Input line formats
const (
	entryFormat  = "<word> <lang> = <lang> <translation>, <translation>, ..."
	lookupFormat = "<word> <lang>"
)

var errBadFormat = errors.New("unrecognized input")

// entry is a parsed "<word> <lang> = <lang> <t1>, <t2>" line
type entry struct {
	word            string
	lang            domain.Lang
	translations    []string
	translationLang domain.Lang
}

// parseEntry parses a word with its translations.
// The word may contain spaces: its language is the last field before "=".
func parseEntry(text string) (entry, error) {
	left, right, ok := strings.Cut(text, "=")
	if !ok {
		return entry{}, fmt.Errorf("%w: missing \"=\"", errBadFormat)
	}

	word, lang, err := parseLookup(left)
	if err != nil {
		return entry{}, err
	}

	right = strings.TrimSpace(right)
	langField, rest, _ := strings.Cut(right, " ")
	if langField == "" {
		return entry{}, fmt.Errorf("%w: missing translation language", errBadFormat)
	}
	translationLang, err := domain.ParseLang(langField)
	if err != nil {
		return entry{}, err
	}

	var translations []string
	for _, t := range strings.Split(rest, ",") {
		if t = strings.Join(strings.Fields(t), " "); t != "" {
			translations = append(translations, t)
		}
	}

	return entry{
		word:            word,
		lang:            lang,
		translations:    translations,
		translationLang: translationLang,
	}, nil
}

// parseLookup parses "<word> <lang>"
func parseLookup(text string) (string, domain.Lang, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", "", fmt.Errorf("%w: expected a word and a language", errBadFormat)
	}

	lang, err := domain.ParseLang(fields[len(fields)-1])
	if err != nil {
		return "", "", err
	}

	return strings.Join(fields[:len(fields)-1], " "), lang, nil
}

// formatRecord renders a record as "chien (fr) → de: hund, köter"
func formatRecord(tr *domain.TranslationRecord) string {
	return fmt.Sprintf("%s → %s: %s",
		tr.Word(),
		tr.TranslationLang(),
		strings.Join(tr.Translations(), ", "),
	)
}

// errorMessage turns an input or use-case error into a reply for the user
func errorMessage(err error) string {
	switch {
	case errors.Is(err, errBadFormat):
		return "I did not understand that. Use:\n" + entryFormat + "\nor\n" + lookupFormat
	case errors.Is(err, domain.ErrUnknownLang):
		return "Unknown language. Supported: " + supportedLangs()
	}

	switch service.KindOf(err) {
	case service.KindInvalidInput:
		return invalidInputMessage(err)
	case service.KindNotFound:
		return "No translation stored for this word."
	case service.KindDuplicate:
		return "This word is already stored. Use Extend to add translations."
	case service.KindInvalidData:
		return "The storage rejected this translation."
	default:
		return "Something went wrong. Please try again later."
	}
}

func invalidInputMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyWord):
		return "The word is empty."
	case errors.Is(err, domain.ErrEmptyTranslation):
		return "Give at least one translation."
	case errors.Is(err, domain.ErrEmptyWordInTranslation):
		return "One of the translations is empty."
	case errors.Is(err, domain.ErrTranslationLanguageMismatch):
		return "The stored translations are in another language."
	case errors.Is(err, domain.ErrUpdateWithSameItems):
		return "These translations are already stored."
	default:
		return "Invalid input."
	}
}

func supportedLangs() string {
	names := make([]string, 0, len(domain.SupportedLangs))
	for _, l := range domain.SupportedLangs {
		names = append(names, fmt.Sprintf("%s (%s)", l, l.Name()))
	}
	return strings.Join(names, ", ")
}

package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownLang is returned when a value is not one of the supported languages
var ErrUnknownLang = errors.New("unknown language")

// Lang is a supported language, identified by its ISO 639-1 code
type Lang string

const (
	LangFrench Lang = "fr"
	LangGerman Lang = "de"
)

// SupportedLangs lists every language the service accepts
var SupportedLangs = []Lang{LangFrench, LangGerman}

var langNames = map[string]Lang{
	"french": LangFrench,
	"german": LangGerman,
}

// ParseLang parses an ISO code ("fr"), a BCP 47 tag ("fr-CH")
// or an English language name ("french")
func ParseLang(s string) (Lang, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownLang)
	}

	if l, ok := langNames[v]; ok {
		return l, nil
	}

	tag, err := language.Parse(v)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
	}

	base, confidence := tag.Base()
	if confidence == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
	}

	l := Lang(base.String())
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
	}
	return l, nil
}

// Valid reports whether l is one of the supported languages
func (l Lang) Valid() bool {
	for _, s := range SupportedLangs {
		if l == s {
			return true
		}
	}
	return false
}

func (l Lang) String() string {
	return string(l)
}

// Name returns the English name of the language
func (l Lang) Name() string {
	for name, v := range langNames {
		if v == l {
			return name
		}
	}
	return string(l)
}

// MarshalText implements encoding.TextMarshaler
func (l Lang) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLang, string(l))
	}
	return []byte(l), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Lang) UnmarshalText(text []byte) error {
	parsed, err := ParseLang(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

package service

import (
	"errors"
	"fmt"
)

// Kind classifies use-case failures for the transport layers
type Kind string

const (
	// KindInvalidInput is a caller-fixable validation failure
	KindInvalidInput Kind = "invalid_input"
	// KindNotFound means no record exists for the requested word
	KindNotFound Kind = "not_found"
	// KindDuplicate means a record for the word already exists
	KindDuplicate Kind = "duplicate"
	// KindInvalidData means storage rejected the record
	KindInvalidData Kind = "invalid_data"
	// KindBadID means storage could not use the record id
	KindBadID Kind = "bad_id"
	// KindUnknown is any unclassified storage failure
	KindUnknown Kind = "unknown"
)

// Operation names carried by Error
const (
	OpCreate = "create_translation"
	OpRead   = "read_translation"
	OpUpdate = "update_translation"
	OpDelete = "delete_translation"
)

// Error is returned by every TranslationService operation.
//
// The possible kinds per operation are:
//
//	create: invalid_input, duplicate, invalid_data, unknown
//	read:   invalid_input, not_found, unknown
//	update: invalid_input, not_found, bad_id, unknown
//	delete: invalid_input, not_found, bad_id, unknown
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the kind of a service error, or KindUnknown
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is a service error of the given kind
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

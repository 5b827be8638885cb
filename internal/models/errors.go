package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure of the library core.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMemberNotFound
	KindDocumentNotFound
	KindEquipmentNotFound
	KindAuthorNotFound
	KindNotLendable
	KindBorrowFailed
	KindDuplicateKey
	KindSave
	KindInvalidArgument
)

var kindNames = map[ErrorKind]string{
	KindUnknown:           "unknown",
	KindMemberNotFound:    "member not found",
	KindDocumentNotFound:  "document not found",
	KindEquipmentNotFound: "equipment not found",
	KindAuthorNotFound:    "author not found",
	KindNotLendable:       "not lendable",
	KindBorrowFailed:      "borrow failed",
	KindDuplicateKey:      "duplicate key",
	KindSave:              "save failed",
	KindInvalidArgument:   "invalid argument",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by the registry, the lending engine and
// the library facade.
type Error struct {
	Kind ErrorKind

	// Key is the identifier involved (email, ISBN, equipment id), if any.
	Key string

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMemberNotFound    = &Error{Kind: KindMemberNotFound}
	ErrDocumentNotFound  = &Error{Kind: KindDocumentNotFound}
	ErrEquipmentNotFound = &Error{Kind: KindEquipmentNotFound}
	ErrAuthorNotFound    = &Error{Kind: KindAuthorNotFound}
	ErrNotLendable       = &Error{Kind: KindNotLendable}
	ErrBorrowFailed      = &Error{Kind: KindBorrowFailed}
	ErrDuplicateKey      = &Error{Kind: KindDuplicateKey}
	ErrSave              = &Error{Kind: KindSave}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Key != "" {
		msg += ": " + e.Key
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NotFound builds the not-found error for the given domain.
func NotFound(domain Domain, key string) *Error {
	kind := KindUnknown
	switch domain {
	case DomainMember:
		kind = KindMemberNotFound
	case DomainDocument:
		kind = KindDocumentNotFound
	case DomainEquipment:
		kind = KindEquipmentNotFound
	case DomainAuthor:
		kind = KindAuthorNotFound
	}
	return &Error{Kind: kind, Key: key}
}

// WithKey returns a copy of err with Key set when err is an *Error without
// one. Other errors are returned unchanged.
func WithKey(err error, key string) error {
	var e *Error
	if errors.As(err, &e) && e.Key == "" {
		cp := *e
		cp.Key = key
		return &cp
	}
	return err
}

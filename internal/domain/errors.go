package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned by the backend client
type ErrorKind int

const (
	KindService ErrorKind = iota
	KindAccountCreation
	KindAuthentication
	KindProfileLookup
	KindInvalidMediaKind
	KindEmptyURL
	KindDocumentCreate
	KindInvalidForm
)

// Sentinel errors, one per kind. An *Error matches the sentinel of its kind with errors.Is.
var (
	// ErrService is any pass-through failure of the backend service
	ErrService = errors.New("backend service error")

	// ErrAccountCreation indicates the service did not create an account
	ErrAccountCreation = errors.New("account creation failed")

	// ErrAuthentication indicates the email/password session could not be created
	ErrAuthentication = errors.New("authentication failed")

	// ErrProfileLookup indicates the current user's profile could not be resolved
	ErrProfileLookup = errors.New("profile lookup failed")

	// ErrInvalidMediaKind indicates a media kind other than video or image
	ErrInvalidMediaKind = errors.New("invalid media kind")

	// ErrEmptyURL indicates no URL could be derived for a stored file
	ErrEmptyURL = errors.New("empty file url")

	// ErrDocumentCreate indicates a document could not be created
	ErrDocumentCreate = errors.New("document creation failed")

	// ErrInvalidForm indicates a video form with missing fields
	ErrInvalidForm = errors.New("invalid video form")
)

// Absence errors. They are wrapped in an *Error of KindProfileLookup by GetCurrentUser
// and returned bare by lower layers.
var (
	// ErrNoSession indicates there is no active session
	ErrNoSession = errors.New("no active session")

	// ErrProfileNotFound indicates the account has no profile document
	ErrProfileNotFound = errors.New("profile not found")
)

var kindSentinels = map[ErrorKind]error{
	KindService:          ErrService,
	KindAccountCreation:  ErrAccountCreation,
	KindAuthentication:   ErrAuthentication,
	KindProfileLookup:    ErrProfileLookup,
	KindInvalidMediaKind: ErrInvalidMediaKind,
	KindEmptyURL:         ErrEmptyURL,
	KindDocumentCreate:   ErrDocumentCreate,
	KindInvalidForm:      ErrInvalidForm,
}

// Error is the single error type returned by backend client operations
type Error struct {
	Op   string // Operation name, e.g. "CreateUser"
	Kind ErrorKind
	Err  error // Underlying cause, may be nil
}

// Error returns "op: kind: cause"
func (e *Error) Error() string {
	msg := kindSentinels[e.Kind].Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Wrap builds an *Error. A nil err still produces an error, since some kinds
// (account creation, empty url) have no underlying cause.
func Wrap(op string, kind ErrorKind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf returns the kind of err, or KindService if err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindService
}

package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can map it to a response without
// inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindTransient
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindTransient:
		return "TRANSIENT_STORE"
	case KindInvariant:
		return "INVARIANT"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCardNotOwned   = errors.New("card not found in collection")
	ErrAlreadyActive  = errors.New("card is already active")
	ErrReportNotFound = errors.New("flight report subject not found")
)

// Error is the engine-level error. Op and UserID give enough context to log
// the failure; Err is the wrapped cause.
type Error struct {
	Kind   Kind
	Op     string
	UserID int64
	Err    error
}

func (e *Error) Error() string {
	if e.UserID != 0 {
		return fmt.Sprintf("%s (user %d): %v", e.Op, e.UserID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(kind Kind, op string, userID int64, err error) error {
	return &Error{Kind: kind, Op: op, UserID: userID, Err: err}
}

func Validation(op string, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

func NotFound(op string, userID int64, err error) error {
	return &Error{Kind: KindNotFound, Op: op, UserID: userID, Err: err}
}

func Conflict(op string, userID int64, err error) error {
	return &Error{Kind: KindConflict, Op: op, UserID: userID, Err: err}
}

// Wrap attaches an operation and user to a store error while keeping the
// kind assigned lower down. Nil stays nil.
func Wrap(op string, userID int64, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Op: op, UserID: userID, Err: err}
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind != KindUnknown {
			return e.Kind
		}
		return KindOf(e.Err)
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

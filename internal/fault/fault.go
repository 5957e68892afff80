package fault

import (
	"errors"
	"strings"
)

// Kind classifies what went wrong during an update run.
type Kind int

const (
	// KindIO covers local filesystem access, read and write failures.
	KindIO Kind = iota + 1
	// KindNetwork covers connection, transport and HTTP status failures.
	KindNetwork
	// KindDecode means a response did not match the expected structure.
	KindDecode
	// KindFormat means positional scraping of free text could not find an element.
	KindFormat
	// KindParse means a stored or extracted string is not a valid version.
	KindParse
	// KindNotFound means no release asset matched the required content type.
	KindNotFound
	// KindPermission means file mode bits could not be applied.
	KindPermission
	// KindInconsistentState means the locally recorded version is newer than the latest release.
	KindInconsistentState
)

// String returns a short human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	case KindFormat:
		return "format"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission"
	case KindInconsistentState:
		return "inconsistent state"
	default:
		return "unknown"
	}
}

// Error is a classified failure carrying the operation that failed and its cause.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Op describes the failed operation in a few words.
	Op string
	// Err is the underlying cause, nil for root failures.
	Err error
}

// New returns a root failure without an underlying cause.
func New(kind Kind, op string) error {
	return &Error{Kind: kind, Op: op}
}

// Wrap classifies err and annotates it with op.
// It returns nil when err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// Error renders "op: cause" or just "op" for root failures.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}

	return e.Op + ": " + e.Err.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified failure in the chain.
func KindOf(err error) (Kind, bool) {
	var target *Error
	if !errors.As(err, &target) {
		return 0, false
	}

	return target.Kind, true
}

// Is reports whether any classified failure in the chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var target *Error
		if !errors.As(err, &target) {
			return false
		}

		if target.Kind == kind {
			return true
		}

		err = target.Err
	}

	return false
}

// Chain splits err into its context messages, outermost first.
// Each element holds the text a layer added on top of its cause.
func Chain(err error) []string {
	var chain []string

	for err != nil {
		cause := errors.Unwrap(err)
		message := err.Error()

		if cause != nil {
			message = strings.TrimSuffix(message, cause.Error())
			message = strings.TrimSuffix(strings.TrimSpace(message), ":")
		}

		if message != "" {
			chain = append(chain, message)
		}

		err = cause
	}

	return chain
}

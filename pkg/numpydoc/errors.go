package numpydoc

import (
	"github.com/pkg/errors"
)

// Errors returned by [Compile]. Match them with [errors.Is].
// Compilation stops at the first violation, no partial output is produced.
var (
	// ErrMissingParameterDoc is returned when a declared parameter has no documentation.
	ErrMissingParameterDoc = errors.New("missing parameter documentation")
	// ErrUnknownParameterDoc is returned in strict mode when a documented parameter is not declared.
	ErrUnknownParameterDoc = errors.New("unknown parameter documentation")
	// ErrArityMismatch is returned when the number of documented values
	// disagrees with the arity of the declared type.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrConflictingReturnYield is returned when both returns and yields are documented.
	ErrConflictingReturnYield = errors.New("cannot have both returns and yields")
	// ErrReceivesWithoutYields is returned when receives are documented without yields.
	ErrReceivesWithoutYields = errors.New("receives require yields")
	// ErrInvalidPayload is returned when a section's payload is not one of its permitted shapes.
	ErrInvalidPayload = errors.New("invalid payload type")
	// ErrIncompatibleReturnType is returned when the declared return type
	// cannot produce the documented yields or receives.
	ErrIncompatibleReturnType = errors.New("incompatible return type")
	// ErrUnknownAttributeDoc is returned when documented attributes are not members of the type.
	ErrUnknownAttributeDoc = errors.New("unknown attribute documentation")
	// ErrConflictingParametersAttributes is returned when an enumeration-like type
	// is documented with both parameters and attributes.
	ErrConflictingParametersAttributes = errors.New("specify either parameters or attributes, not both")
	// ErrInvalidSignature is returned when the [Signature] is structurally invalid.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidRequest is returned when the [Request] is structurally invalid.
	ErrInvalidRequest = errors.New("invalid request")
)

// compileError ties the cause of a failure to one of the exported sentinels,
// so that both can be matched with [errors.Is] and [errors.As].
type compileError struct {
	sentinel error
	cause    error
}

func newError(sentinel, cause error) error {
	return &compileError{sentinel: sentinel, cause: cause}
}

func newErrorf(sentinel error, format string, args ...any) error {
	return newError(sentinel, errors.Errorf(format, args...))
}

func (e *compileError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *compileError) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}

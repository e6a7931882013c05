package interfaces

import "errors"

// MethodNotImplemented is the canonical failure payload of unsupported operations.
const MethodNotImplemented = "METHOD_NOT_IMPLEMENTED"

var (
	// ErrMethodNotImplemented is matched by every UnsupportedOperationError.
	ErrMethodNotImplemented = errors.New(MethodNotImplemented)

	// ErrUnknownOperation is returned for operation names outside the contract.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrMissingInstanceField is returned when a required instance field is empty.
	ErrMissingInstanceField = errors.New("missing required instance field")

	// ErrFolderNotFound is returned when the folder to upload does not exist.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrNotADirectory is returned when the folder to upload is a regular file.
	ErrNotADirectory = errors.New("not a directory")
)

// UnsupportedOperationError reports an operation outside a provider's capabilities.
type UnsupportedOperationError struct {
	Operation Operation
}

// Error returns the canonical not-implemented payload.
func (e *UnsupportedOperationError) Error() string {
	return MethodNotImplemented
}

// Is makes errors.Is(err, ErrMethodNotImplemented) hold.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrMethodNotImplemented
}

// Unsupported returns the not-implemented failure for op.
func Unsupported(op Operation) error {
	return &UnsupportedOperationError{Operation: op}
}

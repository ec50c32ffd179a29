package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is.
var (
	// ErrObjectNotFound indicates that a requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrObjectAlreadyExists indicates that an object with the same natural key
	// already exists, typically surfaced from a unique constraint violation.
	ErrObjectAlreadyExists = errors.New("object already exists")

	// ErrValueIsRequired indicates that a required value was not provided.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates that a provided value is not valid.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates that a provided value lies outside its allowed range.
	ErrValueIsOutOfRange = errors.New("value is out of range")
)

// ObjectNotFoundError reports that an object identified by ParamName/ID was not found.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectAlreadyExistsError reports a natural-key collision for ParamName/ID.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectAlreadyExistsError creates an ObjectAlreadyExistsError without an underlying cause.
func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

// NewObjectAlreadyExistsErrorWithCause creates an ObjectAlreadyExistsError wrapping an underlying cause.
func NewObjectAlreadyExistsErrorWithCause(paramName string, id any, cause error) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectAlreadyExistsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectAlreadyExists, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectAlreadyExists, e.ID)
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrObjectAlreadyExists
}

// ValueIsRequiredError reports that the value named by ParamName was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports that the value named by ParamName was invalid.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports that Value for ParamName fell outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause)
	}
	return fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v", ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

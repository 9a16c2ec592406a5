package choices

import (
	"errors"
	"fmt"
)

// Choice errors
var (
	ErrDuplicateName  = errors.New("duplicate choice name")
	ErrDuplicateValue = errors.New("duplicate choice value")
	ErrEmptyName      = errors.New("choice name cannot be empty")
	ErrNotFound       = errors.New("choice not found")
	ErrNullValue      = errors.New("null value not allowed")
)

// DuplicateNameError is returned by Define when two entries share a name.
type DuplicateNameError struct {
	Set  string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("choice set %s: duplicate name %q", e.Set, e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// DuplicateValueError is returned by Define when two entries share a value.
type DuplicateValueError struct {
	Set    string
	Value  any
	First  string // name of the entry that defined the value first
	Second string
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("choice set %s: value %v used by both %s and %s", e.Set, e.Value, e.First, e.Second)
}

// Is reports whether target is ErrDuplicateValue.
func (e *DuplicateValueError) Is(target error) bool {
	return target == ErrDuplicateValue
}

// NotFoundError is returned when a value or label lookup has no match.
type NotFoundError struct {
	Set   string
	By    string // "value" or "label"
	Value any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("choice set %s: no entry with %s %v", e.Set, e.By, e.Value)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a field value that failed Field.Clean.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrNullValue) {
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %s: %v is not a valid choice: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

package profile

import (
	"context"
	"errors"
	"fmt"
)

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownField    = errors.New("unknown profile field")
)

// NotFoundError is returned when no live profile has the given GUID.
type NotFoundError struct {
	GUID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %s not found", e.GUID)
}

// Is reports whether target is ErrProfileNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProfileNotFound
}

// UnknownFieldError names a field that Profile does not have.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown profile field %q", e.Field)
}

// Is reports whether target is ErrUnknownField.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// Condition matches profiles whose field holds exactly Value.
// A nil Value matches NULL.
type Condition struct {
	Field string
	Value any
}

// ListFilter provides filtering options for listing profiles.
type ListFilter struct {
	// Conditions are ANDed together. Empty matches every profile.
	Conditions []Condition

	// Limit restricts the number of profiles returned.
	// If 0, no limit is applied.
	Limit int

	// IncludeDeleted includes soft-deleted profiles in results.
	IncludeDeleted bool
}

// Repository defines the persistence interface for Profile entities.
type Repository interface {
	// Save validates and persists a profile.
	// For new profiles (ID == 0), this creates a new record and sets the ID.
	// For existing profiles (ID > 0), this updates the existing record.
	// An invalid profile is not written.
	Save(ctx context.Context, p *Profile) error

	// FindByGUID retrieves a profile by its GUID.
	// Returns NotFoundError if no matching profile exists.
	FindByGUID(ctx context.Context, guid string) (*Profile, error)

	// List retrieves profiles matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Profile, error)

	// Delete soft-deletes a profile.
	// Returns NotFoundError if no matching profile exists.
	Delete(ctx context.Context, guid string) error

	// Close releases any resources held by the repository.
	Close() error
}

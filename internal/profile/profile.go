// Package profile provides the Profile entity, a record whose columns are
// each constrained to a choice set.
//
// The package holds no infrastructure code. Persistence goes through the
// Repository interface; assignments are stored unchecked and the record is
// validated as a whole before it is written.
package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/choicekit/internal/choices"
)

// Profile is a record with one value per choice field.
// Field values are held as pointers; nil means NULL.
type Profile struct {
	id   int64
	guid string

	priority     *string
	language     *string
	gender       *string
	categoryType *string
	level        *string
	region       *string
	answer       *int
	suit         *int
	fruit        *int
	medalType    *string
	place        *int

	createdAt time.Time
	updatedAt time.Time
}

// NewProfile creates a profile with a fresh GUID and every field set to its
// default. Fields without a default (level) start as NULL.
func NewProfile() *Profile {
	now := time.Now()
	p := &Profile{
		guid:      uuid.NewString(),
		createdAt: now,
		updatedAt: now,
	}
	for _, b := range bindings {
		b.reset(p)
	}
	return p
}

// Snapshot is the flat form of a Profile used to move records in and out of
// storage.
type Snapshot struct {
	ID           int64
	GUID         string
	Priority     string
	Language     string
	Gender       string
	CategoryType string
	Level        *string
	Region       string
	Answer       int
	Suit         int
	Fruit        int
	MedalType    string
	Place        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstitute rebuilds a profile from stored data. Values are taken as-is.
func Reconstitute(s Snapshot) *Profile {
	return &Profile{
		id:           s.ID,
		guid:         s.GUID,
		priority:     &s.Priority,
		language:     &s.Language,
		gender:       &s.Gender,
		categoryType: &s.CategoryType,
		level:        s.Level,
		region:       &s.Region,
		answer:       &s.Answer,
		suit:         &s.Suit,
		fruit:        &s.Fruit,
		medalType:    &s.MedalType,
		place:        &s.Place,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

// Snapshot returns the flat form of the profile. Call Validate first; a NULL
// in a non-nullable field becomes the zero value.
func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		ID:           p.id,
		GUID:         p.guid,
		Priority:     deref(p.priority),
		Language:     deref(p.language),
		Gender:       deref(p.gender),
		CategoryType: deref(p.categoryType),
		Level:        p.level,
		Region:       deref(p.region),
		Answer:       deref(p.answer),
		Suit:         deref(p.suit),
		Fruit:        deref(p.fruit),
		MedalType:    deref(p.medalType),
		Place:        deref(p.place),
		CreatedAt:    p.createdAt,
		UpdatedAt:    p.updatedAt,
	}
}

func (p *Profile) ID() int64            { return p.id }
func (p *Profile) GUID() string         { return p.guid }
func (p *Profile) CreatedAt() time.Time { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// SetID is called by the persistence layer after an insert.
func (p *Profile) SetID(id int64) { p.id = id }

// Touch sets the updated timestamp to now.
func (p *Profile) Touch() { p.updatedAt = time.Now() }

// Set assigns raw text to a field. Integer fields parse raw as a base-10
// integer. An empty raw on a nullable field stores NULL. Membership in the
// field's set is not checked here; see Validate.
func (p *Profile) Set(field, raw string) error {
	b, err := lookup(field)
	if err != nil {
		return err
	}
	return b.assign(p, raw)
}

// Value returns the stored value of a field (string or int), or nil for NULL
// and for unknown fields.
func (p *Profile) Value(field string) any {
	b, err := lookup(field)
	if err != nil {
		return nil
	}
	return b.value(p)
}

// Display returns the label of a field's stored value. NULL renders as the
// set's empty label. Values outside the set render as their text form.
func (p *Profile) Display(field string) string {
	b, err := lookup(field)
	if err != nil {
		return ""
	}
	return b.display(p)
}

// Validate cleans every field and returns all failures joined.
func (p *Profile) Validate() error {
	var errs []error
	for _, b := range bindings {
		if err := b.clean(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Fields returns the choice field names in column order.
func Fields() []string {
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.name()
	}
	return names
}

// IsField reports whether name is a choice field of Profile.
func IsField(name string) bool {
	_, err := lookup(name)
	return err == nil
}

// SetFor returns the descriptor of the set that constrains a field.
func SetFor(field string) (choices.Descriptor, error) {
	b, err := lookup(field)
	if err != nil {
		return choices.Descriptor{}, err
	}
	return b.describe(), nil
}

// Nullable reports whether a field accepts NULL.
func Nullable(field string) bool {
	b, err := lookup(field)
	return err == nil && b.nullable()
}

func deref[V any](v *V) V {
	if v == nil {
		var zero V
		return zero
	}
	return *v
}

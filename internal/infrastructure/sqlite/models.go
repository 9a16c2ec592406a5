package sqlite

import (
	"time"

	"github.com/zjrosen/choicekit/internal/profile"
)

// ProfileModel represents the database row for the profiles table.
// Choice columns hold only the chosen value; timestamps are Unix seconds.
type ProfileModel struct {
	ID           int64
	GUID         string
	Priority     string
	Language     string
	Gender       string
	CategoryType string
	Level        *string // nullable
	Region       string
	Answer       int64
	Suit         int64
	Fruit        int64
	MedalType    string
	Place        int64
	CreatedAt    int64
	UpdatedAt    int64
	DeletedAt    *int64 // nullable
}

// toProfileModel converts a domain Profile to a ProfileModel.
func toProfileModel(p *profile.Profile) *ProfileModel {
	s := p.Snapshot()
	return &ProfileModel{
		ID:           s.ID,
		GUID:         s.GUID,
		Priority:     s.Priority,
		Language:     s.Language,
		Gender:       s.Gender,
		CategoryType: s.CategoryType,
		Level:        s.Level,
		Region:       s.Region,
		Answer:       int64(s.Answer),
		Suit:         int64(s.Suit),
		Fruit:        int64(s.Fruit),
		MedalType:    s.MedalType,
		Place:        int64(s.Place),
		CreatedAt:    s.CreatedAt.Unix(),
		UpdatedAt:    s.UpdatedAt.Unix(),
	}
}

// toDomain converts a ProfileModel to a domain Profile.
func (m *ProfileModel) toDomain() *profile.Profile {
	return profile.Reconstitute(profile.Snapshot{
		ID:           m.ID,
		GUID:         m.GUID,
		Priority:     m.Priority,
		Language:     m.Language,
		Gender:       m.Gender,
		CategoryType: m.CategoryType,
		Level:        m.Level,
		Region:       m.Region,
		Answer:       int(m.Answer),
		Suit:         int(m.Suit),
		Fruit:        int(m.Fruit),
		MedalType:    m.MedalType,
		Place:        int(m.Place),
		CreatedAt:    time.Unix(m.CreatedAt, 0),
		UpdatedAt:    time.Unix(m.UpdatedAt, 0),
	})
}

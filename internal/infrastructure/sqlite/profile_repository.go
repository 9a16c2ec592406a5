package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/choicekit/internal/log"
	"github.com/zjrosen/choicekit/internal/profile"
)

// profileColumns is the list of columns to select for profile queries.
const profileColumns = `id, guid, priority, language, gender, category_type, level, region,
	answer, suit, fruit, medal_type, place, created_at, updated_at, deleted_at`

// profileRepository implements profile.Repository using SQLite.
type profileRepository struct {
	db *sql.DB
}

func newProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{db: db}
}

// Ensure profileRepository implements profile.Repository.
var _ profile.Repository = (*profileRepository)(nil)

// scanProfile scans a row into a ProfileModel.
func scanProfile(scanner interface{ Scan(...any) error }) (*ProfileModel, error) {
	var m ProfileModel
	err := scanner.Scan(
		&m.ID, &m.GUID, &m.Priority, &m.Language, &m.Gender, &m.CategoryType, &m.Level, &m.Region,
		&m.Answer, &m.Suit, &m.Fruit, &m.MedalType, &m.Place,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return &m, err
}

// Save validates and persists a profile. Invalid profiles are rejected
// before any SQL runs.
func (r *profileRepository) Save(ctx context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		log.Debug(log.CatDB, "Rejected invalid profile", "guid", p.GUID(), "error", err)
		return fmt.Errorf("invalid profile %s: %w", p.GUID(), err)
	}
	m := toProfileModel(p)

	if p.ID() == 0 {
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO profiles (
				guid, priority, language, gender, category_type, level, region,
				answer, suit, fruit, medal_type, place, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.GUID, m.Priority, m.Language, m.Gender, m.CategoryType, m.Level, m.Region,
			m.Answer, m.Suit, m.Fruit, m.MedalType, m.Place, m.CreatedAt, m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		p.SetID(id)
		log.Debug(log.CatDB, "Inserted profile", "guid", m.GUID, "id", id)
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET
			priority = ?, language = ?, gender = ?, category_type = ?, level = ?, region = ?,
			answer = ?, suit = ?, fruit = ?, medal_type = ?, place = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		m.Priority, m.Language, m.Gender, m.CategoryType, m.Level, m.Region,
		m.Answer, m.Suit, m.Fruit, m.MedalType, m.Place, m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &profile.NotFoundError{GUID: m.GUID}
	}
	log.Debug(log.CatDB, "Updated profile", "guid", m.GUID)
	return nil
}

// FindByGUID retrieves a live profile by GUID.
func (r *profileRepository) FindByGUID(ctx context.Context, guid string) (*profile.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE guid = ? AND deleted_at IS NULL`,
		guid,
	)
	m, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &profile.NotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by guid: %w", err)
	}
	return m.toDomain(), nil
}

// List retrieves profiles matching the filter, newest first.
// Condition fields must be profile choice fields; they are used as column
// names.
func (r *profileRepository) List(ctx context.Context, filter profile.ListFilter) ([]*profile.Profile, error) {
	var where []string
	var args []any

	for _, c := range filter.Conditions {
		if !profile.IsField(c.Field) {
			return nil, &profile.UnknownFieldError{Field: c.Field}
		}
		if c.Value == nil {
			where = append(where, c.Field+` IS NULL`)
			continue
		}
		where = append(where, c.Field+` = ?`)
		args = append(args, c.Value)
	}
	if !filter.IncludeDeleted {
		where = append(where, `deleted_at IS NULL`)
	}

	query := `SELECT ` + profileColumns + ` FROM profiles`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	//nolint:gosec // G202: column names are checked against profile.Fields
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []*profile.Profile
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// Delete soft-deletes a profile by setting its deleted_at timestamp.
func (r *profileRepository) Delete(ctx context.Context, guid string) error {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET deleted_at = ?, updated_at = ?
		 WHERE guid = ? AND deleted_at IS NULL`,
		now, now, guid,
	)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &profile.NotFoundError{GUID: guid}
	}
	return nil
}

// Close is a no-op; the connection is owned by DB.
func (r *profileRepository) Close() error {
	return nil
}

// Package sqlite stores profiles in a local SQLite file for single-player
// and development setups.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/satchel/internal/domain"
)

const nowExpr = `strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

// ProfileRepository implements the profile repository on database/sql with the modernc driver
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile stores the initial save for a new profile
func (r *ProfileRepository) CreateProfile(ctx context.Context, profileID string, data []byte) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (profile_id, save_data) VALUES (?, ?) ON CONFLICT (profile_id) DO NOTHING`,
		profileID, string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProfile, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProfile, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileExists, profileID)
	}
	return nil
}

// GetSave returns the stored save payload
func (r *ProfileRepository) GetSave(ctx context.Context, profileID string) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT save_data FROM profiles WHERE profile_id = ?`, profileID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSave, err)
	}
	return []byte(data), nil
}

// UpdateSave replaces the stored save payload
func (r *ProfileRepository) UpdateSave(ctx context.Context, profileID string, data []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET save_data = ?, updated_at = `+nowExpr+` WHERE profile_id = ?`,
		string(data), profileID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateSave, err)
	}
	return requireRow(res, profileID, ErrMsgFailedToUpdateSave)
}

// DeleteProfile removes a profile and its save
func (r *ProfileRepository) DeleteProfile(ctx context.Context, profileID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE profile_id = ?`, profileID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteProfile, err)
	}
	return requireRow(res, profileID, ErrMsgFailedToDeleteProfile)
}

// ListProfiles returns every profile id, most recently updated first
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT profile_id FROM profiles ORDER BY updated_at DESC, profile_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfiles, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfiles, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfiles, err)
	}
	return ids, nil
}

// Ping checks the database handle is usable
func (r *ProfileRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireRow(res sql.Result, profileID, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/satchel/internal/domain"
)

// ProfileRepository implements the profile repository for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile stores the initial save for a new profile
func (r *ProfileRepository) CreateProfile(ctx context.Context, profileID string, data []byte) error {
	query := `
		INSERT INTO profiles (profile_id, save_data, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	if _, err := r.db.Exec(ctx, query, profileID, data); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrProfileExists, profileID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProfile, err)
	}
	return nil
}

// GetSave returns the stored save payload
func (r *ProfileRepository) GetSave(ctx context.Context, profileID string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT save_data FROM profiles WHERE profile_id = $1`, profileID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSave, err)
	}
	return data, nil
}

// UpdateSave replaces the stored save payload
func (r *ProfileRepository) UpdateSave(ctx context.Context, profileID string, data []byte) error {
	query := `
		UPDATE profiles
		SET save_data = $2, updated_at = NOW()
		WHERE profile_id = $1
	`
	tag, err := r.db.Exec(ctx, query, profileID, data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateSave, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	return nil
}

// DeleteProfile removes a profile and its save
func (r *ProfileRepository) DeleteProfile(ctx context.Context, profileID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE profile_id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteProfile, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	return nil
}

// ListProfiles returns every profile id, most recently updated first
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT profile_id FROM profiles ORDER BY updated_at DESC, profile_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfiles, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfiles, err)
	}
	return ids, nil
}

// Ping checks the pool can reach the database
func (r *ProfileRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

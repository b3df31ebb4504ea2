package repository

import (
	"context"
)

// Profile defines the interface for save-game persistence.
// Save payloads are the encoded save envelope; stores keep them opaque.
type Profile interface {
	CreateProfile(ctx context.Context, profileID string, data []byte) error
	GetSave(ctx context.Context, profileID string) ([]byte, error)
	UpdateSave(ctx context.Context, profileID string, data []byte) error
	DeleteProfile(ctx context.Context, profileID string) error
	ListProfiles(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

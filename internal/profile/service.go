// Package profile runs inventory transactions against stored player saves.
// Each mutating call holds the profile's lock for the whole
// load, apply, persist and publish sequence.
package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/satchel/internal/concurrency"
	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/event"
	"github.com/osse101/satchel/internal/inventory"
	"github.com/osse101/satchel/internal/logger"
	"github.com/osse101/satchel/internal/metrics"
	"github.com/osse101/satchel/internal/repository"
	"github.com/osse101/satchel/internal/save"
)

// ErrShuttingDown is returned for calls made after Shutdown started
var ErrShuttingDown = errors.New(ErrMsgShuttingDown)

var profileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Service defines the interface for profile and inventory operations.
// Returned snapshots are shared and must be treated as read-only.
type Service interface {
	CreateProfile(ctx context.Context, profileID string) (string, *domain.Snapshot, error)
	GetSnapshot(ctx context.Context, profileID string) (*domain.Snapshot, error)
	ListProfiles(ctx context.Context) ([]string, error)
	DeleteProfile(ctx context.Context, profileID string) error

	Place(ctx context.Context, profileID, itemID string, amount int) (*domain.Snapshot, int, error)
	MoveSlot(ctx context.Context, profileID string, from, to int) (*domain.Snapshot, error)
	Equip(ctx context.Context, profileID string, index int, slotID string) (*domain.Snapshot, error)
	EquipBag(ctx context.Context, profileID string, index int) (*domain.Snapshot, error)
	DropEquipped(ctx context.Context, profileID, equipSlot string, index int) (*domain.Snapshot, error)
	Unequip(ctx context.Context, profileID, equipSlot string) (*domain.Snapshot, error)
	DeleteFromSlot(ctx context.Context, profileID, container string, index, amount int) (*domain.Snapshot, error)
	DeleteEquipped(ctx context.Context, profileID, equipSlot string) (*domain.Snapshot, error)
	Consume(ctx context.Context, profileID, itemID string, amount int) (*domain.Snapshot, error)
	MarkSeen(ctx context.Context, profileID string, itemIDs []string) (*domain.Snapshot, error)

	ExportSave(ctx context.Context, profileID string) ([]byte, error)
	ImportSave(ctx context.Context, profileID string, data []byte) (*domain.Snapshot, error)

	Ping(ctx context.Context) error
	GetCacheStats() CacheStats
	Shutdown(ctx context.Context) error
}

// Config tunes the service
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// service implements the Service interface
type service struct {
	repo   repository.Profile
	engine *inventory.Engine
	locks  *concurrency.LockManager
	bus    event.Bus
	cache  *saveCache

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewService creates a new profile service. bus may be nil.
func NewService(repo repository.Profile, engine *inventory.Engine, locks *concurrency.LockManager, bus event.Bus, cfg Config) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:   repo,
		engine: engine,
		locks:  locks,
		bus:    bus,
		cache:  newSaveCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

// ValidateProfileID checks a caller-supplied profile id
func ValidateProfileID(profileID string) error {
	if profileID == "" || len(profileID) > MaxProfileIDLength || !profileIDPattern.MatchString(profileID) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidProfileID)
	}
	return nil
}

// begin registers an in-flight call, failing once shutdown has started
func (s *service) begin() (func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrShuttingDown
	}
	s.wg.Add(1)
	return s.wg.Done, nil
}

// CreateProfile creates a profile holding the starter kit. An empty id gets a generated one.
func (s *service) CreateProfile(ctx context.Context, profileID string) (string, *domain.Snapshot, error) {
	done, err := s.begin()
	if err != nil {
		return "", nil, err
	}
	defer done()

	if profileID == "" {
		profileID = uuid.NewString()
	}
	if err := ValidateProfileID(profileID); err != nil {
		return "", nil, err
	}

	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(profileID)
	defer unlock()

	env := save.New(s.engine.NewSnapshot())
	data, err := save.Encode(env)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSave, err)
	}
	if err := s.repo.CreateProfile(ctx, profileID, data); err != nil {
		metrics.RecordTransaction(OpCreate, metrics.ResultError)
		return "", nil, err
	}

	s.cache.Set(profileID, env)
	metrics.RecordTransaction(OpCreate, metrics.ResultAccepted)
	s.publish(ctx, event.NewProfileEvent(event.ProfileCreated, profileID))

	log.Info(LogMsgProfileCreated, "profile_id", profileID)
	return profileID, env.Data.Inventory, nil
}

// GetSnapshot returns the current normalized inventory
func (s *service) GetSnapshot(ctx context.Context, profileID string) (*domain.Snapshot, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(profileID)
	defer unlock()

	env, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return env.Data.Inventory, nil
}

// ListProfiles lists stored profile ids
func (s *service) ListProfiles(ctx context.Context) ([]string, error) {
	return s.repo.ListProfiles(ctx)
}

// DeleteProfile removes a profile and its save
func (s *service) DeleteProfile(ctx context.Context, profileID string) error {
	done, err := s.begin()
	if err != nil {
		return err
	}
	defer done()

	if err := ValidateProfileID(profileID); err != nil {
		return err
	}

	unlock := s.locks.Lock(profileID)
	defer unlock()

	if err := s.repo.DeleteProfile(ctx, profileID); err != nil {
		return err
	}
	s.cache.Invalidate(profileID)
	s.publish(ctx, event.NewProfileEvent(event.ProfileDeleted, profileID))

	logger.FromContext(ctx).Info(LogMsgProfileDeleted, "profile_id", profileID)
	return nil
}

// ExportSave returns the encoded save envelope
func (s *service) ExportSave(ctx context.Context, profileID string) ([]byte, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(profileID)
	defer unlock()

	env, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return save.Encode(env)
}

// ImportSave replaces a profile's save with data, creating the profile if needed.
// data may be a bare legacy snapshot, an envelope, or a zstd-compressed envelope.
func (s *service) ImportSave(ctx context.Context, profileID string, data []byte) (*domain.Snapshot, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}

	env, err := save.DecodeAny(data, s.engine)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedSaveVersion) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	encoded, err := save.Encode(env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSave, err)
	}

	unlock := s.locks.Lock(profileID)
	defer unlock()

	err = s.repo.UpdateSave(ctx, profileID, encoded)
	if errors.Is(err, domain.ErrProfileNotFound) {
		err = s.repo.CreateProfile(ctx, profileID, encoded)
	}
	if err != nil {
		metrics.RecordTransaction(OpImport, metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPersist, err)
	}

	s.cache.Set(profileID, env)
	metrics.RecordTransaction(OpImport, metrics.ResultAccepted)
	s.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.SaveImported,
		Payload: event.InventoryChangedPayloadV1{
			ProfileID: profileID,
			Operation: OpImport,
			Inventory: env.Data.Inventory,
			Timestamp: time.Now().Unix(),
		},
		Metadata: event.Metadata{event.MetadataKeyProfileID: profileID},
	})

	logger.FromContext(ctx).Info(LogMsgSaveImported, "profile_id", profileID)
	return env.Data.Inventory, nil
}

// Ping checks the backing store
func (s *service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// GetCacheStats reports snapshot cache counters
func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}

// Shutdown stops accepting calls and waits for in-flight ones
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		s.cache.Clear()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", ErrMsgShutdownTimedOut, ctx.Err())
	}
}

// load returns the cached envelope or reads and normalizes the stored one.
// Callers hold the profile lock so a slow read cannot overwrite a newer cache entry.
func (s *service) load(ctx context.Context, profileID string) (*save.Envelope, error) {
	if env, ok := s.cache.Get(profileID); ok {
		return env, nil
	}

	raw, err := s.repo.GetSave(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSave, err)
	}

	env, err := save.Decode(raw, s.engine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSave, err)
	}
	s.cache.Set(profileID, env)
	return env, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// Package activities provides the Service interface, the main entry point
// for listing activities and signing up participants.
package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/mergington/activities/internal/cache"
	"github.com/mergington/activities/internal/events"
	"github.com/mergington/activities/internal/log"
)

// ErrActivityNotFound is returned when an activity is not in the registry.
var ErrActivityNotFound = fmt.Errorf("activity not found")

// ErrAlreadySignedUp is returned when a participant is already on an
// activity's roster.
var ErrAlreadySignedUp = fmt.Errorf("already signed up")

// snapshotKey is the cache key under which the List result is stored.
const snapshotKey = "activities:all"

// Service is the main entry point for the signup domain.
// It coordinates the Registry, the event broker, and the list snapshot
// cache to provide a unified API for listing and signing up.
type Service interface {
	// List returns all activities sorted by name, rosters included.
	List(ctx context.Context) ([]*Activity, error)

	// Get retrieves an activity by name.
	// Returns ErrActivityNotFound if the activity does not exist.
	Get(ctx context.Context, name string) (*Activity, error)

	// SignUp adds email to the named activity's roster and returns a
	// confirmation message. The duplicate check and the append run as one
	// atomic registry update.
	// Returns ErrActivityNotFound if the activity does not exist.
	// Returns ErrAlreadySignedUp if email is already on the roster.
	SignUp(ctx context.Context, activityName, email string) (string, error)

	// Subscribe returns a channel of signup events.
	// The returned function must be called to unsubscribe and clean up resources.
	// The channel is automatically closed when the context is cancelled.
	Subscribe(ctx context.Context) (<-chan events.Event, func())
}

// ServiceConfig configures the Service.
type ServiceConfig struct {
	// Registry stores activities.
	Registry Registry
	// Events broadcasts signup events (optional).
	// If nil, a new Broker is created automatically.
	Events *events.Broker
	// Snapshots caches the List result between signups (optional).
	// If nil, every List reads through to the registry.
	Snapshots cache.Manager[string, []*Activity]
	// SnapshotTTL bounds the lifetime of a cached List result.
	// Defaults to cache.DefaultExpiration when zero.
	SnapshotTTL time.Duration
}

// Validate checks that all required fields are provided.
func (c *ServiceConfig) Validate() error {
	if c.Registry == nil {
		return fmt.Errorf("Registry is required")
	}
	return nil
}

// defaultService is the default implementation of Service.
type defaultService struct {
	registry    Registry
	events      *events.Broker
	snapshots   *cache.ReadThroughCache[string, []*Activity]
	snapshotTTL time.Duration
}

// NewService creates a new Service with the given configuration.
func NewService(cfg ServiceConfig) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	broker := cfg.Events
	if broker == nil {
		broker = events.NewBroker()
	}

	ttl := cfg.SnapshotTTL
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}

	s := &defaultService{
		registry:    cfg.Registry,
		events:      broker,
		snapshotTTL: ttl,
	}
	s.snapshots = cache.NewReadThroughCache[string, []*Activity](
		cfg.Snapshots,
		func(ctx context.Context) ([]*Activity, error) {
			return s.registry.List(), nil
		},
		cfg.Snapshots == nil,
	)

	return s, nil
}

// List returns all activities sorted by name.
func (s *defaultService) List(ctx context.Context) ([]*Activity, error) {
	return s.snapshots.Get(ctx, snapshotKey, s.snapshotTTL)
}

// Get retrieves an activity by name.
func (s *defaultService) Get(ctx context.Context, name string) (*Activity, error) {
	act, ok := s.registry.Get(name)
	if !ok {
		return nil, ErrActivityNotFound
	}
	return act, nil
}

// SignUp adds email to the named activity's roster.
func (s *defaultService) SignUp(ctx context.Context, activityName, email string) (string, error) {
	err := s.registry.Update(activityName, func(act *Activity) error {
		if act.HasParticipant(email) {
			return ErrAlreadySignedUp
		}
		act.Participants = append(act.Participants, email)
		return nil
	})
	if err != nil {
		return "", err
	}

	// The roster changed, so the cached snapshot is stale
	if err := s.snapshots.Flush(ctx); err != nil {
		// Log but don't fail - the registry is authoritative
		log.ErrorErr(log.CatCache, "failed to flush snapshot cache", err)
	}

	s.events.Publish(events.SignupEvent, activityName, email)

	log.Info(log.CatRegistry, "participant signed up",
		"activity", activityName, "email", email)

	return fmt.Sprintf("%s signed up for %s", email, activityName), nil
}

// Subscribe returns a channel of signup events.
// The returned function must be called to unsubscribe and clean up resources.
// The channel is automatically closed when the context is cancelled.
func (s *defaultService) Subscribe(ctx context.Context) (<-chan events.Event, func()) {
	subCtx, cancel := context.WithCancel(ctx)
	return s.events.Subscribe(subCtx), cancel
}

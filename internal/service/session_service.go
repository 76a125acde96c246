package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

const sessionKeyPrefix = "session:"

// CacheRepository abstracts persistence for session payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PageState is everything a browser session keeps between requests: the list
// page store, the detail page state of the last opened event and the
// notifications queued for the next render.
type PageState struct {
	List          *EventStore           `json:"list,omitempty"`
	Detail        *DetailState          `json:"detail,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

// Notify queues a notification for the next render.
func (p *PageState) Notify(notifications ...models.Notification) {
	p.Notifications = append(p.Notifications, notifications...)
}

// Drain returns the queued notifications and clears the queue.
func (p *PageState) Drain() []models.Notification {
	drained := p.Notifications
	p.Notifications = nil
	if drained == nil {
		return []models.Notification{}
	}
	return drained
}

// SessionService persists page state per session id.
type SessionService struct {
	repo    CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	locks   sessionLocks
}

// NewSessionService constructs a session service.
func NewSessionService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, metrics: metrics, ttl: ttl, logger: logger}
}

// Lock blocks until the caller owns sessionID's page state and returns the
// release func. Release is idempotent. The lock is process-local.
func (s *SessionService) Lock(sessionID string) func() {
	if s == nil || sessionID == "" {
		return func() {}
	}
	return s.locks.lock(sessionID)
}

// Load returns the stored state for sessionID. A miss or an unreadable
// entry yields fresh empty state; the page then reloads from the events API.
func (s *SessionService) Load(ctx context.Context, sessionID string) *PageState {
	state := &PageState{}
	if s == nil || s.repo == nil || sessionID == "" {
		return state
	}

	start := time.Now()
	err := s.repo.Get(ctx, sessionKeyPrefix+sessionID, state)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordSessionLookup(false, duration)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("session load failed", zap.String("session", sessionID), zap.Error(err))
		}
		return &PageState{}
	}
	s.metrics.RecordSessionLookup(true, duration)
	return state
}

// Save stores state for sessionID, refreshing its TTL.
func (s *SessionService) Save(ctx context.Context, sessionID string, state *PageState) error {
	if s == nil || s.repo == nil || sessionID == "" || state == nil {
		return nil
	}
	if err := s.repo.Set(ctx, sessionKeyPrefix+sessionID, state, s.ttl); err != nil {
		s.logger.Warn("session save failed", zap.String("session", sessionID), zap.Error(err))
		return err
	}
	return nil
}

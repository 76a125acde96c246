package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/pkg/config"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

type upstreamObserver interface {
	ObserveUpstreamRequest(method, endpoint string, status int, duration time.Duration)
}

// EventsAPIRepository talks JSON over HTTP to the events backend. Every call
// is attempted exactly once.
type EventsAPIRepository struct {
	baseURL string
	client  *http.Client
	metrics upstreamObserver
	logger  *zap.Logger
}

// NewEventsAPIRepository constructs the client for the configured base URL.
func NewEventsAPIRepository(cfg config.EventsAPIConfig, metrics upstreamObserver, logger *zap.Logger) *EventsAPIRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsAPIRepository{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		metrics: metrics,
		logger:  logger,
	}
}

// ListEvents performs GET /events.
func (r *EventsAPIRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := r.do(ctx, http.MethodGet, "/events", "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent performs GET /events/{id}.
func (r *EventsAPIRepository) GetEvent(ctx context.Context, id models.ID) (*models.Event, error) {
	var event models.Event
	if err := r.do(ctx, http.MethodGet, "/events/"+id.String(), "/events/:id", nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent performs POST /events and returns the server's record.
func (r *EventsAPIRepository) CreateEvent(ctx context.Context, payload dto.EventPayload) (*models.Event, error) {
	var event models.Event
	if err := r.do(ctx, http.MethodPost, "/events", "/events", payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent performs PATCH /events/{id} and returns the server's record.
func (r *EventsAPIRepository) UpdateEvent(ctx context.Context, id models.ID, payload dto.EventPayload) (*models.Event, error) {
	var event models.Event
	if err := r.do(ctx, http.MethodPatch, "/events/"+id.String(), "/events/:id", payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent performs DELETE /events/{id}.
func (r *EventsAPIRepository) DeleteEvent(ctx context.Context, id models.ID) error {
	return r.do(ctx, http.MethodDelete, "/events/"+id.String(), "/events/:id", nil, nil)
}

// ListCategories performs GET /categories.
func (r *EventsAPIRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.do(ctx, http.MethodGet, "/categories", "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListUsers performs GET /users.
func (r *EventsAPIRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.do(ctx, http.MethodGet, "/users", "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *EventsAPIRepository) do(ctx context.Context, method, path, endpoint string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		r.observe(method, endpoint, http.StatusServiceUnavailable, duration)
		r.logger.Warn("events api unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status,
			fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()
	r.observe(method, endpoint, resp.StatusCode, duration)

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", path))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		r.logger.Warn("events api returned an error", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return appErrors.Wrap(fmt.Errorf("received status %d", resp.StatusCode), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
			fmt.Sprintf("%s %s failed", method, path))
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
			fmt.Sprintf("invalid response from %s %s", method, path))
	}
	return nil
}

func (r *EventsAPIRepository) observe(method, endpoint string, status int, duration time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveUpstreamRequest(method, endpoint, status, duration)
}

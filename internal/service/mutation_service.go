package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

// Mutation actions, used for guard keys and metrics labels.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const updateNotificationDuration = 2 * time.Second

type eventsWriter interface {
	CreateEvent(ctx context.Context, payload dto.EventPayload) (*models.Event, error)
	UpdateEvent(ctx context.Context, id models.ID, payload dto.EventPayload) (*models.Event, error)
	DeleteEvent(ctx context.Context, id models.ID) error
}

// MutationResult carries the notification to show after a mutation and,
// for create and update, the record the events API returned.
type MutationResult struct {
	Event        *models.Event
	Notification models.Notification
}

// MutationService issues create, update and delete calls against the events
// API. Each call is attempted exactly once; local state only changes after
// the API confirms.
type MutationService struct {
	api       eventsWriter
	validator *validator.Validate
	guard     *InflightGuard
	notifier  Notifier
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewMutationService constructs a MutationService. validate must come from
// NewEventValidator; nil builds one.
func NewMutationService(api eventsWriter, validate *validator.Validate, notifier Notifier, metrics *MetricsService, logger *zap.Logger) (*MutationService, error) {
	if validate == nil {
		var err error
		if validate, err = NewEventValidator(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutationService{
		api:       api,
		validator: validate,
		guard:     NewInflightGuard(),
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Create posts form as a new event and appends the returned record to store.
func (s *MutationService) Create(ctx context.Context, session string, store *EventStore, form dto.EventForm) (MutationResult, error) {
	release, err := s.acquire(session, ActionCreate)
	if err != nil {
		return s.fail(ActionCreate, err, appErrors.FromError(err).Message)
	}
	defer release()

	if err := s.validate(form); err != nil {
		return s.fail(ActionCreate, err, appErrors.FromError(err).Message)
	}

	event, err := s.api.CreateEvent(ctx, form.CreatePayload())
	if err != nil {
		return s.fail(ActionCreate, err, "Failed to add event")
	}
	store.Add(*event)
	s.metrics.RecordMutation(ActionCreate, true)
	s.logger.Info("event created", zap.String("event_id", event.ID.String()))
	return MutationResult{
		Event:        event,
		Notification: s.notifier.Success("Event added.", "Your event has been successfully added."),
	}, nil
}

// Update patches the detail's event and swaps in the returned record.
func (s *MutationService) Update(ctx context.Context, session string, detail *DetailState, form dto.EventForm) (MutationResult, error) {
	release, err := s.acquire(session, ActionUpdate)
	if err != nil {
		return s.fail(ActionUpdate, err, appErrors.FromError(err).Message)
	}
	defer release()

	if err := s.validate(form); err != nil {
		return s.fail(ActionUpdate, err, appErrors.FromError(err).Message)
	}

	event, err := s.api.UpdateEvent(ctx, detail.Event.ID, form.UpdatePayload())
	if err != nil {
		return s.fail(ActionUpdate, err, "Failed to update event")
	}
	detail.Replace(*event)
	s.metrics.RecordMutation(ActionUpdate, true)
	s.logger.Info("event updated", zap.String("event_id", event.ID.String()))
	return MutationResult{
		Event:        event,
		Notification: s.notifier.SuccessFor("Event Updated", "", updateNotificationDuration),
	}, nil
}

// Delete removes the event with id.
func (s *MutationService) Delete(ctx context.Context, session string, id models.ID) (MutationResult, error) {
	release, err := s.acquire(session, ActionDelete)
	if err != nil {
		return s.fail(ActionDelete, err, appErrors.FromError(err).Message)
	}
	defer release()

	if err := s.api.DeleteEvent(ctx, id); err != nil {
		return s.fail(ActionDelete, err, "Failed to delete event")
	}
	s.metrics.RecordMutation(ActionDelete, true)
	s.logger.Info("event deleted", zap.String("event_id", id.String()))
	return MutationResult{
		Notification: s.notifier.Success("Event Deleted", "The event has been successfully removed."),
	}, nil
}

func (s *MutationService) acquire(session, action string) (func(), error) {
	key := session + ":" + action
	if !s.guard.TryAcquire(key) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Request already in progress")
	}
	return func() { s.guard.Release(key) }, nil
}

func (s *MutationService) validate(form dto.EventForm) error {
	if err := s.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing or invalid fields: "+strings.Join(fields, ", "))
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	start, startErr := models.ParseTimestamp(form.StartTime)
	end, endErr := models.ParseTimestamp(form.EndTime)
	if startErr == nil && endErr == nil && end.Before(start.Time) {
		return appErrors.Clone(appErrors.ErrValidation, "End time must not be before start time")
	}
	return nil
}

func (s *MutationService) fail(action string, err error, description string) (MutationResult, error) {
	s.metrics.RecordMutation(action, false)
	if appErrors.IsUpstream(err) {
		s.logger.Error("events api rejected mutation", zap.String("action", action), zap.Error(err))
	} else {
		s.logger.Warn("event mutation failed", zap.String("action", action), zap.Error(err))
	}
	return MutationResult{Notification: s.notifier.Error(description)}, err
}

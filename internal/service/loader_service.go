package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
)

type eventsReader interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id models.ID) (*models.Event, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// FormOptions are the select options of the create/edit form.
type FormOptions struct {
	Categories []models.Category
	Users      []models.User
}

// LoaderService fetches page data from the events API. Every loader issues
// its requests in parallel and waits for all of them; the first failure fails
// the whole load.
type LoaderService struct {
	api      eventsReader
	notifier Notifier
	logger   *zap.Logger
}

// NewLoaderService constructs a LoaderService.
func NewLoaderService(api eventsReader, notifier Notifier, logger *zap.Logger) *LoaderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoaderService{api: api, notifier: notifier, logger: logger}
}

// LoadEventList loads events and categories into a fresh store. On failure
// the store is empty and an error notification is returned.
func (s *LoaderService) LoadEventList(ctx context.Context) (*EventStore, []models.Notification) {
	var (
		events     []models.Event
		categories []models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.api.ListEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.api.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("load event list failed", zap.Error(err))
		return NewEventStore(nil, nil), []models.Notification{s.notifier.Error("Failed to load data")}
	}
	return NewEventStore(events, categories), nil
}

// LoadEventDetail loads one event with the users and categories needed to
// resolve its references. Any failure is returned to the caller.
func (s *LoaderService) LoadEventDetail(ctx context.Context, id models.ID) (*DetailState, error) {
	var (
		event      *models.Event
		users      []models.User
		categories []models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		event, err = s.api.GetEvent(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.api.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.api.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("load event detail failed", zap.String("event_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &DetailState{Event: *event, Users: users, Categories: categories}, nil
}

// LoadFormOptions loads the category and user options. On failure the
// options are empty and an error notification is returned.
func (s *LoaderService) LoadFormOptions(ctx context.Context) (FormOptions, []models.Notification) {
	var options FormOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		options.Categories, err = s.api.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		options.Users, err = s.api.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("load form options failed", zap.Error(err))
		return FormOptions{Categories: []models.Category{}, Users: []models.User{}}, []models.Notification{s.notifier.Error("Failed to load form options")}
	}
	return options, nil
}

// FormView assembles the form page.
func (o FormOptions) FormView(mode, action string, eventID models.ID, form dto.EventForm, notifications []models.Notification) dto.EventFormView {
	categories := o.Categories
	if categories == nil {
		categories = []models.Category{}
	}
	users := o.Users
	if users == nil {
		users = []models.User{}
	}
	return dto.EventFormView{
		Mode:          mode,
		Action:        action,
		EventID:       eventID,
		Form:          form,
		Categories:    categories,
		Users:         users,
		Notifications: nonNilNotifications(notifications),
	}
}

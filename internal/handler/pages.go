package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/middleware"
	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/internal/service"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

type pageLoader interface {
	LoadEventList(ctx context.Context) (*service.EventStore, []models.Notification)
	LoadEventDetail(ctx context.Context, id models.ID) (*service.DetailState, error)
	LoadFormOptions(ctx context.Context) (service.FormOptions, []models.Notification)
}

type eventMutator interface {
	Create(ctx context.Context, session string, store *service.EventStore, form dto.EventForm) (service.MutationResult, error)
	Update(ctx context.Context, session string, detail *service.DetailState, form dto.EventForm) (service.MutationResult, error)
	Delete(ctx context.Context, session string, id models.ID) (service.MutationResult, error)
}

type sessionStore interface {
	Lock(sessionID string) func()
	Load(ctx context.Context, sessionID string) *service.PageState
	Save(ctx context.Context, sessionID string, state *service.PageState) error
}

// pages carries the collaborators shared by the page handlers.
type pages struct {
	loader    pageLoader
	mutations eventMutator
	sessions  sessionStore
	notifier  service.Notifier
	logger    *zap.Logger
}

func newPages(loader pageLoader, mutations eventMutator, sessions sessionStore, notifier service.Notifier, logger *zap.Logger) pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return pages{loader: loader, mutations: mutations, sessions: sessions, notifier: notifier, logger: logger}
}

// failureNotification is the notification a mutation returned, or a generic
// one built from err when the request never reached the mutation.
func (p pages) failureNotification(err error, notification models.Notification) models.Notification {
	if notification.Title != "" {
		return notification
	}
	return p.notifier.Error(appErrors.FromError(err).Message)
}

const stateUnlockKey = "event_board.state_unlock"

// load locks the session's page state and reads it. The lock is held until
// save or the end of the request, whichever comes first.
func (p pages) load(c *gin.Context) *service.PageState {
	if held, _ := c.Get(stateUnlockKey); held == nil {
		c.Set(stateUnlockKey, p.sessions.Lock(middleware.SessionID(c)))
	}
	return p.sessions.Load(c.Request.Context(), middleware.SessionID(c))
}

func (p pages) save(c *gin.Context, state *service.PageState) {
	if err := p.sessions.Save(c.Request.Context(), middleware.SessionID(c), state); err != nil {
		p.logger.Warn("persist page state failed", zap.Error(err))
	}
	releaseState(c)
}

func releaseState(c *gin.Context) {
	held, _ := c.Get(stateUnlockKey)
	if unlock, ok := held.(func()); ok {
		c.Set(stateUnlockKey, nil)
		unlock()
	}
}

// releaseStateOnExit frees a page state lock a handler left held on an
// early return.
func releaseStateOnExit(c *gin.Context) {
	c.Next()
	releaseState(c)
}

// listStore returns the session's list store, running the list loader when
// the session has none yet.
func (p pages) listStore(c *gin.Context, state *service.PageState) *service.EventStore {
	if state.List == nil {
		store, notifications := p.loader.LoadEventList(c.Request.Context())
		state.List = store
		state.Notify(notifications...)
	}
	return state.List
}

// detailState returns the session's detail state for id, loading it when the
// session holds another event or none.
func (p pages) detailState(c *gin.Context, state *service.PageState, id models.ID) (*service.DetailState, error) {
	if state.Detail != nil && state.Detail.Event.ID == id {
		return state.Detail, nil
	}
	detail, err := p.loader.LoadEventDetail(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	state.Detail = detail
	return detail, nil
}

func eventIDParam(c *gin.Context) (models.ID, error) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return id, nil
}

// bindEventForm reads the event form from a JSON body or from form fields.
func bindEventForm(c *gin.Context) (dto.EventForm, error) {
	var form dto.EventForm
	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&form); err != nil {
			return form, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
		}
		return form, nil
	}

	for _, field := range []string{"title", "description", "image", "startTime", "endTime", "location", "createdBy"} {
		if err := form.SetField(field, c.PostForm(field)); err != nil {
			return form, err
		}
	}
	for _, raw := range c.PostFormArray("categoryIds") {
		id, err := models.ParseID(raw)
		if err != nil {
			return form, appErrors.Clone(appErrors.ErrValidation, "categoryIds must be numeric")
		}
		if !form.HasCategory(id) {
			form.ToggleCategory(id)
		}
	}
	return form, nil
}

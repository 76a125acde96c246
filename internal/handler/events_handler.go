package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/middleware"
	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/internal/service"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
	"github.com/noah-isme/event-board/pkg/response"
)

type eventExporter interface {
	Export(store *service.EventStore, format string) (*service.ExportResult, error)
}

// EventsHandler serves the event list page, its search and filter controls,
// the create form and exports.
type EventsHandler struct {
	pages
	exporter eventExporter
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(loader pageLoader, mutations eventMutator, sessions sessionStore, exporter eventExporter, notifier service.Notifier, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{pages: newPages(loader, mutations, sessions, notifier, logger), exporter: exporter}
}

// List godoc
// @Summary Event list page
// @Description Loads events and categories from the events API and resets search and filter.
// @Tags Events
// @Produce html,json
// @Success 200 {object} dto.EventListView
// @Router / [get]
func (h *EventsHandler) List(c *gin.Context) {
	state := h.load(c)
	store, notifications := h.loader.LoadEventList(c.Request.Context())
	state.List = store
	state.Notify(notifications...)
	h.renderList(c, http.StatusOK, state)
}

// Search godoc
// @Summary Search events by title
// @Tags Events
// @Accept x-www-form-urlencoded
// @Produce html,json
// @Param q formData string false "Title substring, case insensitive"
// @Success 200 {object} dto.EventListView
// @Router /search [post]
func (h *EventsHandler) Search(c *gin.Context) {
	state := h.load(c)
	h.listStore(c, state).SetSearchText(c.PostForm("q"))
	h.renderList(c, http.StatusOK, state)
}

// Filter godoc
// @Summary Filter events by category
// @Tags Events
// @Accept x-www-form-urlencoded
// @Produce html,json
// @Param categoryId formData string false "Category id, empty for all categories"
// @Success 200 {object} dto.EventListView
// @Failure 400 {object} response.Envelope
// @Router /filter [post]
func (h *EventsHandler) Filter(c *gin.Context) {
	var categoryID models.ID
	if raw := strings.TrimSpace(c.PostForm("categoryId")); raw != "" {
		id, err := models.ParseID(raw)
		if err != nil {
			renderError(c, appErrors.Clone(appErrors.ErrValidation, "categoryId must be numeric"))
			return
		}
		categoryID = id
	}
	state := h.load(c)
	h.listStore(c, state).SetCategory(categoryID)
	h.renderList(c, http.StatusOK, state)
}

// Reset godoc
// @Summary Clear search and category filter
// @Tags Events
// @Produce html,json
// @Success 200 {object} dto.EventListView
// @Router /reset [post]
func (h *EventsHandler) Reset(c *gin.Context) {
	state := h.load(c)
	h.listStore(c, state).Reset()
	h.renderList(c, http.StatusOK, state)
}

// NewForm godoc
// @Summary Create event form
// @Tags Events
// @Produce html,json
// @Success 200 {object} dto.EventFormView
// @Router /events/new [get]
func (h *EventsHandler) NewForm(c *gin.Context) {
	options, notifications := h.loader.LoadFormOptions(c.Request.Context())
	render(c, http.StatusOK, templateForm, options.FormView(dto.FormModeCreate, "/events", 0, dto.EventForm{}, notifications))
}

// Create godoc
// @Summary Create an event
// @Description Posts the event to the events API exactly once and appends the returned record to the list.
// @Tags Events
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param payload body dto.EventForm true "Event payload"
// @Success 201 {object} MutationView
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /events [post]
func (h *EventsHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	form, err := bindEventForm(c)
	if err != nil {
		h.renderCreateFailure(c, form, err, models.Notification{})
		return
	}

	state := h.load(c)
	store := h.listStore(c, state)
	h.save(c, state)

	result, err := h.mutations.Create(ctx, middleware.SessionID(c), store, form)
	if err != nil {
		h.renderCreateFailure(c, form, err, result.Notification)
		return
	}

	// Other requests of this session may have saved state during the call.
	state = h.load(c)
	switch {
	case state.List == nil:
		state.List = store
	case !state.List.Has(result.Event.ID):
		state.List.Add(*result.Event)
	}
	state.Notify(result.Notification)
	if wantsJSON(c) {
		h.save(c, state)
		response.Created(c, MutationView{Event: result.Event, Notifications: state.Drain()})
		return
	}
	h.renderList(c, http.StatusCreated, state)
}

// Export godoc
// @Summary Export the visible events
// @Tags Events
// @Produce text/csv,application/pdf
// @Param format path string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /events/export/{format} [get]
func (h *EventsHandler) Export(c *gin.Context) {
	state := h.load(c)
	store := h.listStore(c, state)
	h.save(c, state)

	result, err := h.exporter.Export(store, c.Param("format"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

func (h *EventsHandler) renderList(c *gin.Context, status int, state *service.PageState) {
	view := state.List.View(state.Drain())
	h.save(c, state)
	render(c, status, templateEvents, view)
}

func (h *EventsHandler) renderCreateFailure(c *gin.Context, form dto.EventForm, err error, notification models.Notification) {
	options, notifications := h.loader.LoadFormOptions(c.Request.Context())
	notifications = append([]models.Notification{h.failureNotification(err, notification)}, notifications...)
	renderFailure(c, err, templateForm, options.FormView(dto.FormModeCreate, "/events", 0, form, notifications))
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/middleware"
	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/internal/service"
)

// EventHandler serves the detail page of a single event and its edit and
// delete actions.
type EventHandler struct {
	pages
}

// NewEventHandler constructs the handler.
func NewEventHandler(loader pageLoader, mutations eventMutator, sessions sessionStore, notifier service.Notifier, logger *zap.Logger) *EventHandler {
	return &EventHandler{pages: newPages(loader, mutations, sessions, notifier, logger)}
}

// Show godoc
// @Summary Event detail page
// @Description Loads the event, users and categories in parallel. Any failure renders the error page.
// @Tags Event
// @Produce html,json
// @Param id path int true "Event ID"
// @Param confirm query string false "delete to show the delete confirmation"
// @Success 200 {object} dto.EventDetailView
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /event/{id} [get]
func (h *EventHandler) Show(c *gin.Context) {
	id, err := eventIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	detail, err := h.loader.LoadEventDetail(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	state := h.load(c)
	state.Detail = detail
	view := detail.View(c.Query("confirm") == "delete", state.Drain())
	h.save(c, state)
	render(c, http.StatusOK, templateEvent, view)
}

// Edit godoc
// @Summary Edit event form
// @Tags Event
// @Produce html,json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventFormView
// @Failure 404 {object} response.Envelope
// @Router /event/{id}/edit [get]
func (h *EventHandler) Edit(c *gin.Context) {
	id, err := eventIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	state := h.load(c)
	detail, err := h.detailState(c, state, id)
	if err != nil {
		renderError(c, err)
		return
	}
	h.save(c, state)
	render(c, http.StatusOK, templateForm, editFormView(detail, dto.NewEventFormFromEvent(detail.Event), state.Drain()))
}

// Update godoc
// @Summary Update an event
// @Description Patches the event exactly once and re-resolves creator and category names.
// @Tags Event
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param id path int true "Event ID"
// @Param payload body dto.EventForm true "Event payload"
// @Success 200 {object} dto.EventDetailView
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /event/{id} [patch]
func (h *EventHandler) Update(c *gin.Context) {
	id, err := eventIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	state := h.load(c)
	detail, err := h.detailState(c, state, id)
	if err != nil {
		renderError(c, err)
		return
	}
	h.save(c, state)

	form, err := bindEventForm(c)
	if err != nil {
		renderFailure(c, err, templateForm, editFormView(detail, form, []models.Notification{h.failureNotification(err, models.Notification{})}))
		return
	}
	result, err := h.mutations.Update(c.Request.Context(), middleware.SessionID(c), detail, form)
	if err != nil {
		renderFailure(c, err, templateForm, editFormView(detail, form, []models.Notification{h.failureNotification(err, result.Notification)}))
		return
	}

	state = h.load(c)
	state.Detail = detail
	state.Notify(result.Notification)
	view := detail.View(false, state.Drain())
	h.save(c, state)
	render(c, http.StatusOK, templateEvent, view)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the event exactly once and navigates to the list page.
// @Tags Event
// @Produce html,json
// @Param id path int true "Event ID"
// @Success 303
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /event/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := eventIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	result, err := h.mutations.Delete(c.Request.Context(), middleware.SessionID(c), id)
	state := h.load(c)
	if err != nil {
		notification := h.failureNotification(err, result.Notification)
		notifications := append(state.Drain(), notification)
		h.save(c, state)
		if state.Detail != nil && state.Detail.Event.ID == id {
			renderFailure(c, err, templateEvent, state.Detail.View(false, notifications))
			return
		}
		renderError(c, err, notifications...)
		return
	}

	state.Detail = nil
	state.Notify(result.Notification)
	view := MutationView{}
	if wantsJSON(c) {
		view.Notifications = state.Drain()
	}
	h.save(c, state)
	redirectHome(c, view)
}

func editFormView(detail *service.DetailState, form dto.EventForm, notifications []models.Notification) dto.EventFormView {
	options := service.FormOptions{Categories: detail.Categories, Users: detail.Users}
	return options.FormView(dto.FormModeEdit, "/event/"+detail.Event.ID.String(), detail.Event.ID, form, notifications)
}

package backend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

// Handler exposes a Store over HTTP. Bodies are bare JSON records, not the
// response envelope, and unknown ids answer 404 with an empty object.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler constructs the handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// Register mounts the collection routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/events", h.listEvents)
	r.POST("/events", h.createEvent)
	r.GET("/events/:id", h.getEvent)
	r.PATCH("/events/:id", h.patchEvent)
	r.DELETE("/events/:id", h.deleteEvent)
	r.GET("/categories", h.listCategories)
	r.GET("/categories/:id", h.getCategory)
	r.GET("/users", h.listUsers)
	r.GET("/users/:id", h.getUser)
}

func (h *Handler) listEvents(c *gin.Context) {
	events, err := h.store.ListEvents(c.Request.Context())
	h.respond(c, http.StatusOK, events, err)
}

func (h *Handler) getEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	event, err := h.store.GetEvent(c.Request.Context(), id)
	h.respond(c, http.StatusOK, event, err)
}

func (h *Handler) createEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if event.CategoryIDs == nil {
		event.CategoryIDs = []models.ID{}
	}
	created, err := h.store.CreateEvent(c.Request.Context(), event)
	h.respond(c, http.StatusCreated, created, err)
}

func (h *Handler) patchEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.store.PatchEvent(c.Request.Context(), id, patch)
	h.respond(c, http.StatusOK, updated, err)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.store.DeleteEvent(c.Request.Context(), id)
	h.respond(c, http.StatusOK, gin.H{}, err)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	h.respond(c, http.StatusOK, categories, err)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.store.GetCategory(c.Request.Context(), id)
	h.respond(c, http.StatusOK, category, err)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	h.respond(c, http.StatusOK, users, err)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	h.respond(c, http.StatusOK, user, err)
}

func (h *Handler) respond(c *gin.Context, status int, body interface{}, err error) {
	if err == nil {
		c.JSON(status, body)
		return
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	h.logger.Error("store operation failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func pathID(c *gin.Context) (models.ID, bool) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{})
		return 0, false
	}
	return id, true
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
	"github.com/noah-isme/event-board/pkg/response"
)

// Page templates.
const (
	templateEvents = "events.html"
	templateEvent  = "event.html"
	templateForm   = "form.html"
	templateError  = "error.html"
)

// MutationView is the JSON body answering a create, update or delete.
type MutationView struct {
	Event         *models.Event         `json:"event,omitempty"`
	Redirect      string                `json:"redirect,omitempty"`
	Notifications []models.Notification `json:"notifications"`
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func render(c *gin.Context, status int, name string, view interface{}) {
	if wantsJSON(c) {
		response.JSON(c, status, view)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(status, name, view)
}

// renderFailure answers a failed page action with view, keeping the status
// of err.
func renderFailure(c *gin.Context, err error, name string, view interface{}) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	if wantsJSON(c) {
		response.Error(c, appErr, view)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(appErr.Status, name, view)
}

func renderError(c *gin.Context, err error, notifications ...models.Notification) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	if wantsJSON(c) {
		if len(notifications) > 0 {
			response.Error(c, appErr, MutationView{Notifications: notifications})
			return
		}
		response.Error(c, appErr)
		return
	}
	c.HTML(appErr.Status, templateError, dto.ErrorView{
		Status:        appErr.Status,
		Code:          appErr.Code,
		Message:       appErr.Message,
		Notifications: notifications,
	})
}

func redirectHome(c *gin.Context, view MutationView) {
	if wantsJSON(c) {
		view.Redirect = "/"
		response.JSON(c, http.StatusOK, view)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

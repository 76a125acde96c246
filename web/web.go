// Package web holds the embedded HTML templates of the event board.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses every page template with the display helpers bound to
// formatter.
func Templates(formatter *service.DisplayFormatter) (*template.Template, error) {
	funcs := template.FuncMap{
		"displayTime": formatter.Format,
		"inputTime": func(raw string) string {
			ts, err := models.ParseTimestamp(raw)
			if err != nil {
				return raw
			}
			return ts.In(formatter.Location()).Format(models.LayoutDateTimeLocal)
		},
		"join": strings.Join,
	}
	return template.New("pages").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

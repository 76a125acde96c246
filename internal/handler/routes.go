package handler

import "github.com/gin-gonic/gin"

// RegisterPageRoutes mounts the list and detail pages.
func RegisterPageRoutes(r gin.IRouter, events *EventsHandler, event *EventHandler) {
	r.Use(releaseStateOnExit)
	r.GET("/", events.List)
	r.POST("/search", events.Search)
	r.POST("/filter", events.Filter)
	r.POST("/reset", events.Reset)
	r.GET("/events/new", events.NewForm)
	r.POST("/events", events.Create)
	r.GET("/events/export/:format", events.Export)

	r.GET("/event/:id", event.Show)
	r.GET("/event/:id/edit", event.Edit)
	r.POST("/event/:id", event.Update)
	r.PATCH("/event/:id", event.Update)
	r.POST("/event/:id/delete", event.Delete)
	r.DELETE("/event/:id", event.Delete)
}

// RegisterOpsRoutes mounts health, readiness and metrics endpoints.
func RegisterOpsRoutes(r gin.IRouter, metrics *MetricsHandler, exposeMetrics bool) {
	r.GET("/health", metrics.Health)
	r.GET("/ready", metrics.Ready)
	if exposeMetrics {
		r.GET("/metrics", metrics.Prometheus)
	}
}

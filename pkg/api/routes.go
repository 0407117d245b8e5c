package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smith3v/reply-reminder/pkg/metrics"
)

type Options struct {
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	RequestTimeout time.Duration
	DefaultSnooze  time.Duration
	Now            func() time.Time
}

func NewRouter(store Store, opts Options) *gin.Engine {
	registerValidators()

	h := NewHandler(store, opts.DefaultSnooze, opts.Now)

	router := gin.New()
	router.Use(
		recovery(),
		requestID(),
		accessLog(),
		corsMiddleware(opts.AllowedOrigins),
		instrument(opts.Metrics),
		timeout(opts.RequestTimeout),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		contacts := api.Group("/contacts")
		contacts.GET("", h.ListContacts)
		contacts.POST("", h.CreateContact)
		contacts.GET("/:id", h.GetContact)
		contacts.PATCH("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
		contacts.GET("/:id/messages", h.ListContactMessages)

		messages := api.Group("/messages")
		messages.GET("", h.ListMessages)
		messages.GET("/pending", h.ListPendingMessages)
		messages.POST("", h.CreateMessage)
		messages.PATCH("/:id", h.UpdateMessage)
		messages.DELETE("/:id", h.DeleteMessage)

		api.GET("/settings", h.GetSettings)
		api.POST("/settings", h.ReplaceSettings)

		api.GET("/reminders", h.ListReminders)
		api.GET("/reminders/summary", h.ReminderSummary)
		api.GET("/platforms", h.ListPlatforms)
	}

	return router
}

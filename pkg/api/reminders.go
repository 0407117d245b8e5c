package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smith3v/reply-reminder/pkg/agenda"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

func (h *Handler) ListReminders(c *gin.Context) {
	var priority reminder.Priority
	if raw := c.Query("priority"); raw != "" {
		p, err := reminder.ParsePriority(raw)
		if err != nil {
			respondValidation(c, err)
			return
		}
		priority = p
	}

	items, err := agenda.Pending(c.Request.Context(), h.store, h.now())
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	if priority != "" {
		items = agenda.FilterPriority(items, priority)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ReminderSummary(c *gin.Context) {
	items, err := agenda.Pending(c.Request.Context(), h.store, h.now())
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	c.JSON(http.StatusOK, agenda.Summarize(items))
}

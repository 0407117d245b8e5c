package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

type createMessageRequest struct {
	ContactID  uint      `json:"contactId" binding:"required"`
	Content    string    `json:"content" binding:"required"`
	Platform   string    `json:"platform" binding:"required"`
	Status     string    `json:"status" binding:"omitempty,message_status"`
	ReceivedAt time.Time `json:"receivedAt" binding:"required"`
}

type updateMessageRequest struct {
	Status       string     `json:"status" binding:"required,message_status"`
	RespondedAt  *time.Time `json:"respondedAt"`
	SnoozedUntil *time.Time `json:"snoozedUntil"`
}

const messageNotFound = "Message not found"

func (h *Handler) ListMessages(c *gin.Context) {
	messages, err := h.store.ListMessages(c.Request.Context())
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) ListPendingMessages(c *gin.Context) {
	messages, err := h.store.ListPendingMessages(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) CreateMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	status := reminder.Status(req.Status)
	if status == "" {
		status = reminder.StatusPending
	}
	message, err := h.store.CreateMessage(c.Request.Context(), db.Message{
		ContactID:  req.ContactID,
		Content:    req.Content,
		Platform:   req.Platform,
		Status:     status,
		ReceivedAt: req.ReceivedAt,
	})
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *Handler) UpdateMessage(c *gin.Context) {
	id, ok := parseID(c, "message")
	if !ok {
		return
	}
	var req updateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	update, err := db.MessageUpdate{
		Status:       reminder.Status(req.Status),
		RespondedAt:  req.RespondedAt,
		SnoozedUntil: req.SnoozedUntil,
	}.Normalize(h.now(), h.defaultSnooze)
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}

	message, err := h.store.UpdateMessage(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := parseID(c, "message")
	if !ok {
		return
	}
	if err := h.store.DeleteMessage(c.Request.Context(), id); err != nil {
		respondError(c, err, messageNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

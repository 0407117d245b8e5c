package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/reminder"
	"gorm.io/datatypes"
)

type createContactRequest struct {
	Name         string   `json:"name" binding:"required"`
	Nickname     *string  `json:"nickname"`
	Priority     string   `json:"priority" binding:"required,priority"`
	ReminderTime string   `json:"reminderTime" binding:"required,reminder_window"`
	Apps         []string `json:"apps" binding:"required"`
}

// updateContactRequest is a partial update. Empty strings keep the stored
// value except for nickname, where an empty string clears it.
type updateContactRequest struct {
	Name         *string   `json:"name"`
	Nickname     *string   `json:"nickname"`
	Priority     *string   `json:"priority" binding:"omitempty,priority"`
	ReminderTime *string   `json:"reminderTime" binding:"omitempty,reminder_window"`
	Apps         *[]string `json:"apps"`
}

const contactNotFound = "Contact not found"

func (h *Handler) ListContacts(c *gin.Context) {
	contacts, err := h.store.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, err, contactNotFound)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parseID(c, "contact")
	if !ok {
		return
	}
	contact, err := h.store.GetContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, contactNotFound)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	contact, err := h.store.CreateContact(c.Request.Context(), db.Contact{
		Name:         req.Name,
		Nickname:     req.Nickname,
		Priority:     reminder.Priority(req.Priority),
		ReminderTime: reminder.Window(req.ReminderTime),
		Apps:         datatypes.JSONSlice[string](req.Apps),
		CreatedAt:    h.now().UTC(),
	})
	if err != nil {
		respondError(c, err, contactNotFound)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := parseID(c, "contact")
	if !ok {
		return
	}
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	patch := db.ContactPatch{
		Name:     req.Name,
		Nickname: req.Nickname,
		Apps:     req.Apps,
	}
	if req.Priority != nil {
		p := reminder.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.ReminderTime != nil {
		w := reminder.Window(*req.ReminderTime)
		patch.ReminderTime = &w
	}

	contact, err := h.store.UpdateContact(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, contactNotFound)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c, "contact")
	if !ok {
		return
	}
	if err := h.store.DeleteContact(c.Request.Context(), id); err != nil {
		respondError(c, err, contactNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListContactMessages(c *gin.Context) {
	id, ok := parseID(c, "contact")
	if !ok {
		return
	}
	messages, err := h.store.ListMessagesByContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, contactNotFound)
		return
	}
	c.JSON(http.StatusOK, messages)
}

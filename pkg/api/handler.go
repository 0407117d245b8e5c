// Package api serves the REST interface over the reminder store.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

// Store is the persistence surface the handlers need. *db.Store satisfies it.
type Store interface {
	ListContacts(ctx context.Context) ([]db.Contact, error)
	GetContact(ctx context.Context, id uint) (db.Contact, error)
	CreateContact(ctx context.Context, contact db.Contact) (db.Contact, error)
	UpdateContact(ctx context.Context, id uint, patch db.ContactPatch) (db.Contact, error)
	DeleteContact(ctx context.Context, id uint) error

	ListMessages(ctx context.Context) ([]db.Message, error)
	ListMessagesByContact(ctx context.Context, contactID uint) ([]db.Message, error)
	ListPendingMessages(ctx context.Context, now time.Time) ([]db.Message, error)
	GetMessage(ctx context.Context, id uint) (db.Message, error)
	CreateMessage(ctx context.Context, message db.Message) (db.Message, error)
	UpdateMessage(ctx context.Context, id uint, update db.MessageUpdate) (db.Message, error)
	DeleteMessage(ctx context.Context, id uint) error

	GetSettings(ctx context.Context) (db.Settings, error)
	ReplaceSettings(ctx context.Context, settings db.Settings) (db.Settings, error)
}

type Handler struct {
	store         Store
	now           func() time.Time
	defaultSnooze time.Duration
}

func NewHandler(store Store, defaultSnooze time.Duration, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	if defaultSnooze <= 0 {
		defaultSnooze = reminder.DefaultSnooze
	}
	return &Handler{store: store, now: now, defaultSnooze: defaultSnooze}
}

type errorResponse struct {
	Message string `json:"message"`
}

func respondValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: "Validation error: " + describeValidation(err)})
}

// respondError maps store and domain errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a generic 500.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Message: notFoundMessage})
	case errors.Is(err, db.ErrInvalidTransition),
		errors.Is(err, reminder.ErrInvalidPriority),
		errors.Is(err, reminder.ErrInvalidWindow),
		errors.Is(err, reminder.ErrInvalidStatus):
		respondValidation(c, err)
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
			"error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
	}
}

func parseID(c *gin.Context, kind string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondValidation(c, fmt.Errorf("invalid %s id %q", kind, c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += describeField(fe)
	}
	return msg
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case tagPriority:
		return fmt.Sprintf("%s must be one of %s", field, joinValues(reminder.Priorities))
	case tagWindow:
		return fmt.Sprintf("%s must be one of %s", field, joinValues(reminder.Windows))
	case tagStatus:
		return fmt.Sprintf("%s must be one of pending, responded, snoozed", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func joinValues[T ~string](values []T) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += string(v)
	}
	return out
}

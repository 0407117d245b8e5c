package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/reminder"
	"gorm.io/datatypes"
)

type settingsRequest struct {
	Priority1Time        string   `json:"priority1Time" binding:"required,reminder_window"`
	Priority1Description string   `json:"priority1Description" binding:"required"`
	Priority2Time        string   `json:"priority2Time" binding:"required,reminder_window"`
	Priority2Description string   `json:"priority2Description" binding:"required"`
	Priority3Time        string   `json:"priority3Time" binding:"required,reminder_window"`
	Priority3Description string   `json:"priority3Description" binding:"required"`
	EnabledApps          []string `json:"enabledApps" binding:"required"`
	PushNotifications    *bool    `json:"pushNotifications" binding:"required"`
	SoundAlerts          *bool    `json:"soundAlerts" binding:"required"`
	QuickResponses       *bool    `json:"quickResponses" binding:"required"`
	DoNotDisturb         *bool    `json:"doNotDisturb" binding:"required"`
}

const settingsNotFound = "Settings not found"

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, settingsNotFound)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ReplaceSettings overwrites the whole settings record.
func (h *Handler) ReplaceSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	settings, err := h.store.ReplaceSettings(c.Request.Context(), db.Settings{
		ID:                   db.SettingsID,
		Priority1Time:        reminder.Window(req.Priority1Time),
		Priority1Description: req.Priority1Description,
		Priority2Time:        reminder.Window(req.Priority2Time),
		Priority2Description: req.Priority2Description,
		Priority3Time:        reminder.Window(req.Priority3Time),
		Priority3Description: req.Priority3Description,
		EnabledApps:          datatypes.JSONSlice[string](req.EnabledApps),
		PushNotifications:    *req.PushNotifications,
		SoundAlerts:          *req.SoundAlerts,
		QuickResponses:       *req.QuickResponses,
		DoNotDisturb:         *req.DoNotDisturb,
	})
	if err != nil {
		respondError(c, err, settingsNotFound)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type platform struct {
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
}

// ListPlatforms reports the known platforms. None are ever connected.
func (h *Handler) ListPlatforms(c *gin.Context) {
	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, settingsNotFound)
		return
	}
	platforms := make([]platform, 0, len(db.DefaultPlatforms))
	for _, name := range db.DefaultPlatforms {
		platforms = append(platforms, platform{Name: name, Enabled: settings.AppEnabled(name)})
	}
	c.JSON(http.StatusOK, platforms)
}

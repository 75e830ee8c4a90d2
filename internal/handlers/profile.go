package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/repository"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/utils"
)

type ProfileHandler struct {
	log   *zap.Logger
	users *repository.UserRepository
}

func NewProfileHandler(log *zap.Logger, users *repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{log: log, users: users}
}

type notificationsRequest struct {
	Enabled      bool   `json:"enabled"`
	ReminderTime string `json:"reminderTime"`
}

// UpdateNotifications stores the caller's daily reminder preferences.
func (h *ProfileHandler) UpdateNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req notificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Enabled && !utils.IsValidReminderTime(req.ReminderTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reminderTime must be HH:MM"})
		return
	}

	if err := h.users.UpdateNotificationPreferences(c.Request.Context(), user.ID, req.Enabled, req.ReminderTime); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

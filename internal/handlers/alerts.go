package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/alerts"
)

type AlertsHandler struct {
	log     *zap.Logger
	manager *alerts.Manager
}

func NewAlertsHandler(log *zap.Logger, manager *alerts.Manager) *AlertsHandler {
	return &AlertsHandler{log: log, manager: manager}
}

// List returns the caller's alerts, newest first. Limits beyond the hard
// cap are clamped, never rejected.
func (h *AlertsHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	opts := alerts.ListOptions{
		UnreadOnly: c.Query("unread_only") == "true",
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}

	list, err := h.manager.List(c.Request.Context(), user.ID, opts)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": list})
}

func (h *AlertsHandler) MarkRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.manager.MarkRead(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlertsHandler) MarkAllRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	result, err := h.manager.MarkAllRead(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/team"
)

type TeamHandler struct {
	log        *zap.Logger
	aggregator *team.Aggregator
}

func NewTeamHandler(log *zap.Logger, aggregator *team.Aggregator) *TeamHandler {
	return &TeamHandler{log: log, aggregator: aggregator}
}

// Overview serves the manager/HR roll-up. The role check belongs to the
// aggregator; the handler only supplies the resolved identity.
func (h *TeamHandler) Overview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dist, err := h.aggregator.Overview(c.Request.Context(), team.Identity{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/surveys"
)

type SurveysHandler struct {
	log     *zap.Logger
	service *surveys.Service
}

func NewSurveysHandler(log *zap.Logger, service *surveys.Service) *SurveysHandler {
	return &SurveysHandler{log: log, service: service}
}

type submitRequest struct {
	Responses []struct {
		QuestionID string  `json:"questionId" binding:"required"`
		Score      float64 `json:"score"`
	} `json:"responses" binding:"required"`
}

func (h *SurveysHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	responses := make([]models.Response, 0, len(req.Responses))
	for _, r := range req.Responses {
		responses = append(responses, models.Response{QuestionID: r.QuestionID, Score: r.Score})
	}

	record, err := h.service.Submit(c.Request.Context(), user.ID, responses)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *SurveysHandler) Today(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	done, err := h.service.SubmittedToday(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submitted": done})
}

func (h *SurveysHandler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	records, err := h.service.History(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": records})
}

func (h *SurveysHandler) Trend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	summary, err := h.service.TrendReport(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SurveysHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/surveys"
)

type ChartsHandler struct {
	log     *zap.Logger
	service *surveys.Service
}

func NewChartsHandler(log *zap.Logger, service *surveys.Service) *ChartsHandler {
	return &ChartsHandler{log: log, service: service}
}

// ScoreChart renders the caller's wellbeing score history as a standalone
// echarts page.
func (h *ChartsHandler) ScoreChart(c *gin.Context) {
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

	line := generateScoreChart(records)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render score chart", zap.Error(err))
	}
}

func generateScoreChart(records []models.ScoreRecord) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Wellbeing Over Time",
			Subtitle: "Daily weighted score",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	// Create data points in the format [date, value]
	items := make([]opts.LineData, 0, len(records))
	for _, record := range records {
		items = append(items, opts.LineData{Value: []interface{}{record.ScoreDate, record.TotalScore}})
	}

	line.AddSeries("Score", items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

package handler

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/acailab/goaltrack/internal/service"
)

// ChartHandler handles chart-rendering HTTP requests. Charts are
// returned as base64 data URIs alongside the aggregates they visualize.
type ChartHandler struct {
	charts *service.ChartService
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(charts *service.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// HandleGoalStatus renders the distribution of goals by status.
// GET /api/charts/goal-status
// Response: {"chart":"data:image/png;base64,...","data":{"pending":3,...}}
func (h *ChartHandler) HandleGoalStatus(w http.ResponseWriter, r *http.Request) {
	chart, err := h.charts.GoalStatus(r.Context())
	if err != nil {
		writeServiceError(w, err, "render goal status chart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chart": pngDataURI(chart.PNG),
		"data":  chart.Counts,
	})
}

// HandleSensorData renders sensor readings over a trailing window.
// GET /api/charts/sensor-data?days=7
// Response: {"chart":"...","statistics":{...},"dataPoints":N}
func (h *ChartHandler) HandleSensorData(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid days parameter.")
			return
		}
		days = parsed
	}

	chart, err := h.charts.SensorData(r.Context(), days)
	if err != nil {
		writeServiceError(w, err, "render sensor data chart")
		return
	}

	if chart.DataPoints == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "No sensor data available.",
			"dataPoints": 0,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chart":      pngDataURI(chart.PNG),
		"statistics": chart.Stats,
		"dataPoints": chart.DataPoints,
	})
}

func pngDataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

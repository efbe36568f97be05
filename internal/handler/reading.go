package handler

import (
	"net/http"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/acailab/goaltrack/internal/service"
)

// ReadingHandler handles sensor reading ingestion.
type ReadingHandler struct {
	readings *service.ReadingService
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readings *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readings: readings}
}

// HandleCreate stores a sensor reading.
// POST /api/readings
// Request: {"recordedAt":"2026-08-30T12:00:00Z","temperature":27.5,...}
func (h *ReadingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecordedAt     string  `json:"recordedAt"`
		Temperature    float64 `json:"temperature"`
		Humidity       float64 `json:"humidity"`
		SoilMoisture   float64 `json:"soilMoisture"`
		LightIntensity float64 `json:"lightIntensity"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var recordedAt time.Time
	if req.RecordedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "recordedAt must be RFC 3339.")
			return
		}
		recordedAt = parsed
	}

	reading := &domain.SensorReading{
		RecordedAt:     recordedAt,
		Temperature:    req.Temperature,
		Humidity:       req.Humidity,
		SoilMoisture:   req.SoilMoisture,
		LightIntensity: req.LightIntensity,
	}

	if err := h.readings.Ingest(r.Context(), reading); err != nil {
		writeServiceError(w, err, "ingest reading")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"reading": toReadingDTO(reading),
	})
}

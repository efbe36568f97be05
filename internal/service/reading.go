package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
)

// ReadingService handles ingestion of sensor readings.
type ReadingService struct {
	readings domain.ReadingRepository
}

// NewReadingService creates a new ReadingService.
func NewReadingService(readings domain.ReadingRepository) *ReadingService {
	return &ReadingService{readings: readings}
}

// Ingest validates and stores a sensor reading. A zero RecordedAt is
// stamped with the current time.
func (s *ReadingService) Ingest(ctx context.Context, reading *domain.SensorReading) error {
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now().UTC()
	}
	if reading.Humidity < 0 || reading.Humidity > 100 {
		return fmt.Errorf("%w: humidity must be between 0 and 100", domain.ErrInvalidInput)
	}
	if reading.SoilMoisture < 0 || reading.SoilMoisture > 100 {
		return fmt.Errorf("%w: soil moisture must be between 0 and 100", domain.ErrInvalidInput)
	}
	if reading.LightIntensity < 0 {
		return fmt.Errorf("%w: light intensity cannot be negative", domain.ErrInvalidInput)
	}

	if err := s.readings.Create(ctx, reading); err != nil {
		return fmt.Errorf("store reading: %w", err)
	}
	return nil
}

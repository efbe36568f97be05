package domain

import (
	"context"
	"time"
)

// SensorReading is a single environmental measurement from the field
// sensors. Readings feed the sensor-data chart endpoint.
type SensorReading struct {
	ID             int64
	RecordedAt     time.Time
	Temperature    float64
	Humidity       float64
	SoilMoisture   float64
	LightIntensity float64
}

// ReadingRepository defines persistence operations for sensor readings.
type ReadingRepository interface {
	Create(ctx context.Context, reading *SensorReading) error
	ListBetween(ctx context.Context, from, to time.Time) ([]SensorReading, error)
}

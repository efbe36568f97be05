package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/acailab/goaltrack/internal/repository/sqlite"
	"github.com/acailab/goaltrack/internal/service"
)

func newTestReadingService(t *testing.T) *service.ReadingService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return service.NewReadingService(db.Readings())
}

func TestReadingService_Ingest(t *testing.T) {
	readings := newTestReadingService(t)
	ctx := context.Background()

	reading := &domain.SensorReading{
		Temperature:    27.5,
		Humidity:       65,
		SoilMoisture:   42,
		LightIntensity: 900,
	}
	if err := readings.Ingest(ctx, reading); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if reading.ID == 0 {
		t.Fatal("expected reading ID to be set")
	}
	if reading.RecordedAt.IsZero() {
		t.Fatal("expected zero RecordedAt to be stamped")
	}
	if time.Since(reading.RecordedAt) > time.Minute {
		t.Fatalf("expected RecordedAt near now, got %v", reading.RecordedAt)
	}
}

func TestReadingService_Ingest_Invalid(t *testing.T) {
	readings := newTestReadingService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		reading domain.SensorReading
	}{
		{"humidity too high", domain.SensorReading{Humidity: 120}},
		{"humidity negative", domain.SensorReading{Humidity: -1}},
		{"soil moisture too high", domain.SensorReading{SoilMoisture: 101}},
		{"light negative", domain.SensorReading{LightIntensity: -5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.reading
			if err := readings.Ingest(ctx, &r); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

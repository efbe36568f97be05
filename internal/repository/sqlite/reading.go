package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
)

// ReadingRepository implements domain.ReadingRepository using SQLite.
type ReadingRepository struct {
	db *sql.DB
}

func (r *ReadingRepository) Create(ctx context.Context, reading *domain.SensorReading) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sensor_readings (recorded_at, temperature, humidity, soil_moisture, light_intensity)
		 VALUES (?, ?, ?, ?, ?)`,
		reading.RecordedAt.UTC(), reading.Temperature, reading.Humidity,
		reading.SoilMoisture, reading.LightIntensity,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	reading.ID = id
	return nil
}

func (r *ReadingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.SensorReading, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recorded_at, temperature, humidity, soil_moisture, light_intensity
		 FROM sensor_readings
		 WHERE recorded_at >= ? AND recorded_at <= ?
		 ORDER BY recorded_at`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var readings []domain.SensorReading
	for rows.Next() {
		var sr domain.SensorReading
		if err := rows.Scan(&sr.ID, &sr.RecordedAt, &sr.Temperature, &sr.Humidity,
			&sr.SoilMoisture, &sr.LightIntensity); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		readings = append(readings, sr)
	}
	return readings, rows.Err()
}

package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
)

// ChartService builds chart images and the aggregates that accompany
// them for the visualization endpoints.
type ChartService struct {
	goals    domain.GoalRepository
	readings domain.ReadingRepository
}

// NewChartService creates a new ChartService.
func NewChartService(goals domain.GoalRepository, readings domain.ReadingRepository) *ChartService {
	return &ChartService{goals: goals, readings: readings}
}

// GoalStatusChart is a rendered distribution of goals by status.
type GoalStatusChart struct {
	PNG    []byte
	Counts map[string]int
}

// MetricStats summarizes one sensor metric over the queried window.
type MetricStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Std  float64 `json:"std"`
}

// SensorChart is a rendered view of sensor readings plus per-metric
// statistics.
type SensorChart struct {
	PNG        []byte
	Stats      map[string]MetricStats
	DataPoints int
}

// GoalStatus renders a pie chart of goals grouped by status. Returns
// ErrNotFound when there are no goals to visualize.
func (s *ChartService) GoalStatus(ctx context.Context) (*GoalStatusChart, error) {
	counts, err := s.goals.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count goals: %w", err)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no goals to visualize", domain.ErrNotFound)
	}

	png, err := RenderStatusPie(counts)
	if err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}

	return &GoalStatusChart{PNG: png, Counts: counts}, nil
}

// SensorData renders line charts of sensor readings over the last
// `days` days. When no readings exist the returned chart has zero
// data points and no image.
func (s *ChartService) SensorData(ctx context.Context, days int) (*SensorChart, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", domain.ErrInvalidInput)
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	readings, err := s.readings.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	if len(readings) == 0 {
		return &SensorChart{}, nil
	}

	stats := map[string]MetricStats{
		"temperature":     computeStats(readings, func(r domain.SensorReading) float64 { return r.Temperature }),
		"humidity":        computeStats(readings, func(r domain.SensorReading) float64 { return r.Humidity }),
		"soil_moisture":   computeStats(readings, func(r domain.SensorReading) float64 { return r.SoilMoisture }),
		"light_intensity": computeStats(readings, func(r domain.SensorReading) float64 { return r.LightIntensity }),
	}

	png, err := RenderSensorSeries(readings, days)
	if err != nil {
		return nil, fmt.Errorf("render sensor chart: %w", err)
	}

	return &SensorChart{PNG: png, Stats: stats, DataPoints: len(readings)}, nil
}

func computeStats(readings []domain.SensorReading, value func(domain.SensorReading) float64) MetricStats {
	stats := MetricStats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, r := range readings {
		v := value(r)
		sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	n := float64(len(readings))
	stats.Mean = sum / n

	var sqSum float64
	for _, r := range readings {
		d := value(r) - stats.Mean
		sqSum += d * d
	}
	stats.Std = math.Sqrt(sqSum / n)
	return stats
}

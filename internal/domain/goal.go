package domain

import (
	"context"
	"time"
)

// Goal is a tracked objective with a simple lifecycle status.
type Goal struct {
	ID          int64
	Title       string
	Description string
	Status      string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	GoalStatusPending    = "pending"
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
)

// ValidGoalStatus reports whether s is one of the known goal statuses.
func ValidGoalStatus(s string) bool {
	return s == GoalStatusPending || s == GoalStatusInProgress || s == GoalStatusCompleted
}

// GoalRepository defines persistence operations for goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id int64) (*Goal, error)
	List(ctx context.Context) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

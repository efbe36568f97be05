package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/acailab/goaltrack/internal/domain"
)

// GoalService handles goal CRUD business logic.
type GoalService struct {
	goals domain.GoalRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goals domain.GoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

// GoalUpdate holds the fields of a partial goal update. Nil fields are
// left unchanged.
type GoalUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// Create stores a new goal owned by the given identity. Status defaults
// to pending when empty.
func (s *GoalService) Create(ctx context.Context, identity domain.Identity, title, description, status string) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if status == "" {
		status = domain.GoalStatusPending
	}
	if !domain.ValidGoalStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	goal := &domain.Goal{
		Title:       title,
		Description: description,
		Status:      status,
		CreatedBy:   identity.UserID,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

// Get returns a single goal by ID.
func (s *GoalService) Get(ctx context.Context, id int64) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id)
}

// List returns all goals, most recently updated first.
func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	return s.goals.List(ctx)
}

// Update applies a partial update to an existing goal.
func (s *GoalService) Update(ctx context.Context, id int64, upd GoalUpdate) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		goal.Title = title
	}
	if upd.Description != nil {
		description := strings.TrimSpace(*upd.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", domain.ErrInvalidInput)
		}
		goal.Description = description
	}
	if upd.Status != nil {
		if !domain.ValidGoalStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *upd.Status)
		}
		goal.Status = *upd.Status
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal by ID.
func (s *GoalService) Delete(ctx context.Context, id int64) error {
	return s.goals.Delete(ctx, id)
}

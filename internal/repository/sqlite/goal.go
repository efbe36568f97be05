package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
)

// GoalRepository implements domain.GoalRepository using SQLite.
type GoalRepository struct {
	db *sql.DB
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (title, description, status, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		goal.Title, goal.Description, goal.Status, goal.CreatedBy, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	goal.ID = id
	goal.CreatedAt = now
	goal.UpdatedAt = now
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	goal := &domain.Goal{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, status, created_by, created_at, updated_at
		 FROM goals WHERE id = ?`, id,
	).Scan(&goal.ID, &goal.Title, &goal.Description, &goal.Status,
		&goal.CreatedBy, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query goal by id: %w", err)
	}
	return goal, nil
}

func (r *GoalRepository) List(ctx context.Context) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, status, created_by, created_at, updated_at
		 FROM goals ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Status,
			&g.CreatedBy, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, description = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		goal.Title, goal.Description, goal.Status, now, goal.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	goal.UpdatedAt = now
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GoalRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM goals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count goals by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

package handler

import (
	"time"

	"github.com/acailab/goaltrack/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is
// deliberately absent.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// GoalDTO is the JSON representation of a goal.
type GoalDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedBy   int64  `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toGoalDTO(g *domain.Goal) GoalDTO {
	return GoalDTO{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Status:      g.Status,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}

func toGoalDTOs(goals []domain.Goal) []GoalDTO {
	dtos := make([]GoalDTO, len(goals))
	for i := range goals {
		dtos[i] = toGoalDTO(&goals[i])
	}
	return dtos
}

// ReadingDTO is the JSON representation of a sensor reading.
type ReadingDTO struct {
	ID             int64   `json:"id"`
	RecordedAt     string  `json:"recordedAt"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	SoilMoisture   float64 `json:"soilMoisture"`
	LightIntensity float64 `json:"lightIntensity"`
}

func toReadingDTO(r *domain.SensorReading) ReadingDTO {
	return ReadingDTO{
		ID:             r.ID,
		RecordedAt:     r.RecordedAt.Format(time.RFC3339),
		Temperature:    r.Temperature,
		Humidity:       r.Humidity,
		SoilMoisture:   r.SoilMoisture,
		LightIntensity: r.LightIntensity,
	}
}

package handler

import (
	"net/http"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/acailab/goaltrack/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Reads under
// the guarded prefix require any authenticated identity; writes require
// the admin role.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	goals *service.GoalService,
	readings *service.ReadingService,
	charts *service.ChartService,
	db domain.Database,
) {
	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(auth)
	goalHandler := NewGoalHandler(goals)
	readingHandler := NewReadingHandler(readings)
	chartHandler := NewChartHandler(charts)
	healthHandler := NewHealthHandler(db)

	authed := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, "", h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, domain.RoleAdmin, h)
	}

	mux.HandleFunc("GET /api/health", healthHandler.HandleHealth)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.Handle("GET /api/auth/verify", authed(authHandler.HandleVerify))

	mux.Handle("GET /api/goals", authed(goalHandler.HandleList))
	mux.Handle("GET /api/goals/{id}", authed(goalHandler.HandleGet))
	mux.Handle("POST /api/goals", adminOnly(goalHandler.HandleCreate))
	mux.Handle("PUT /api/goals/{id}", adminOnly(goalHandler.HandleUpdate))
	mux.Handle("DELETE /api/goals/{id}", adminOnly(goalHandler.HandleDelete))

	mux.Handle("GET /api/users", adminOnly(userHandler.HandleList))
	mux.Handle("POST /api/users", adminOnly(userHandler.HandleCreate))
	mux.Handle("PUT /api/users/{id}/role", adminOnly(userHandler.HandleUpdateRole))

	mux.Handle("POST /api/readings", adminOnly(readingHandler.HandleCreate))

	mux.Handle("GET /api/charts/goal-status", authed(chartHandler.HandleGoalStatus))
	mux.Handle("GET /api/charts/sensor-data", authed(chartHandler.HandleSensorData))
}

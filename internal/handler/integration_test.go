package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/acailab/goaltrack/internal/handler"
	"github.com/acailab/goaltrack/internal/repository/sqlite"
	"github.com/acailab/goaltrack/internal/service"
)

const testJWTSecret = "test-secret-key-for-handler-tests-0123456789"

type testEnv struct {
	auth     *service.AuthService
	goals    *service.GoalService
	readings *service.ReadingService
	charts   *service.ChartService
	db       *sqlite.DB
}

func newTestEnv(t *testing.T) *testEnv {
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

	hasher := service.NewPasswordHasher(4)
	codec := service.NewTokenCodec([]byte(testJWTSecret), time.Hour)
	policy := service.NewPasswordPolicy(8)

	return &testEnv{
		auth:     service.NewAuthService(db.Users(), hasher, codec, policy),
		goals:    service.NewGoalService(db.Goals()),
		readings: service.NewReadingService(db.Readings()),
		charts:   service.NewChartService(db.Goals(), db.Readings()),
		db:       db,
	}
}

func (e *testEnv) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, e.auth, e.goals, e.readings, e.charts, e.db)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (e *testEnv) registerAndLogin(t *testing.T, email, password string) string {
	t.Helper()
	if _, _, err := e.auth.Register(context.Background(), email, password, "Test User"); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	_, token, err := e.auth.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return token
}

func (e *testEnv) createAdminAndLogin(t *testing.T, email, password string) string {
	t.Helper()
	if _, err := e.auth.CreateUser(context.Background(), email, password, "Admin", domain.RoleAdmin); err != nil {
		t.Fatalf("create admin %s: %v", email, err)
	}
	_, token, err := e.auth.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login admin %s: %v", email, err)
	}
	return token
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestIntegration_RegisterLoginVerifyRoleGate(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	// Register a new user.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "Passw0rd",
		"name":     "A",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	user := body["user"].(map[string]any)
	if user["role"] != "user" {
		t.Fatalf("expected default role user, got %v", user["role"])
	}
	if _, ok := user["passwordHash"]; ok {
		t.Fatal("response must not contain the password hash")
	}
	if body["token"] == "" {
		t.Fatal("expected a token in the register response")
	}

	// Registering the same email again conflicts.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "A@X.com",
		"password": "Passw0rd",
		"name":     "A2",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.StatusCode)
	}

	// A policy-violating password is rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "b@x.com",
		"password": "short",
		"name":     "B",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("weak password: expected 400, got %d", resp.StatusCode)
	}

	// Wrong password and unknown email fail identically.
	resp, wrongBody := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "WrongPass1",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password login: expected 401, got %d", resp.StatusCode)
	}
	resp, unknownBody := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "Passw0rd",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown email login: expected 401, got %d", resp.StatusCode)
	}
	if wrongBody["error"] != unknownBody["error"] {
		t.Fatalf("login failures must be indistinguishable: %v vs %v", wrongBody["error"], unknownBody["error"])
	}

	// Login with the right credentials.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "Passw0rd",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	token := body["token"].(string)

	// Verify the token.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/auth/verify", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", resp.StatusCode)
	}
	if body["email"] != "a@x.com" || body["role"] != "user" || body["valid"] != true {
		t.Fatalf("unexpected verify response: %v", body)
	}

	// A plain user cannot write goals.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/goals", token, map[string]string{
		"title": "Nope", "description": "Not allowed",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("user POST goals: expected 403, got %d", resp.StatusCode)
	}
}

func TestIntegration_GuardRejectsMissingAndMalformedAuth(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/goals", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/goals", nil)
	req.Header.Set("Authorization", "Token xyz")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with Token scheme: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Token scheme: expected 401, got %d", resp2.StatusCode)
	}
}

func TestIntegration_AdminGoalCRUD(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	userToken := env.registerAndLogin(t, "reader@x.com", "Passw0rd")
	adminToken := env.createAdminAndLogin(t, "admin@x.com", "Passw0rd")

	// Create.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/goals", adminToken, map[string]string{
		"title":       "Expand the plantation",
		"description": "Add two hectares before the rainy season",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create goal: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	goal := body["goal"].(map[string]any)
	if goal["status"] != "pending" {
		t.Fatalf("expected default status pending, got %v", goal["status"])
	}
	goalID := int64(goal["id"].(float64))

	// Any authenticated role can read.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/goals", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list goals: expected 200, got %d", resp.StatusCode)
	}
	if goals := body["goals"].([]any); len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/goals/"+itoa(goalID), userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get goal: expected 200, got %d", resp.StatusCode)
	}

	// Update (partial).
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/goals/"+itoa(goalID), adminToken, map[string]string{
		"status": "in_progress",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update goal: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	goal = body["goal"].(map[string]any)
	if goal["status"] != "in_progress" || goal["title"] != "Expand the plantation" {
		t.Fatalf("unexpected updated goal: %v", goal)
	}

	// Unknown status is rejected.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/goals/"+itoa(goalID), adminToken, map[string]string{
		"status": "abandoned",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad status: expected 400, got %d", resp.StatusCode)
	}

	// Delete.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/goals/"+itoa(goalID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete goal: expected 200, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/goals/"+itoa(goalID), userToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted goal: expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_UserManagement(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	userToken := env.registerAndLogin(t, "plain@x.com", "Passw0rd")
	adminToken := env.createAdminAndLogin(t, "admin@x.com", "Passw0rd")

	// Listing users requires admin.
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/users", userToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("user lists users: expected 403, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/users", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin lists users: expected 200, got %d", resp.StatusCode)
	}
	users := body["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if _, ok := u.(map[string]any)["passwordHash"]; ok {
			t.Fatal("user listing must not contain password hashes")
		}
	}

	// Admin creates another admin directly.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", adminToken, map[string]string{
		"email": "second@x.com", "password": "Passw0rd", "name": "Second", "role": "admin",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create admin user: expected 201, got %d", resp.StatusCode)
	}

	// Promote the plain user; the change lands on the next login.
	var plainID int64
	for _, u := range users {
		m := u.(map[string]any)
		if m["email"] == "plain@x.com" {
			plainID = int64(m["id"].(float64))
		}
	}
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/users/"+itoa(plainID)+"/role", adminToken, map[string]string{
		"role": "admin",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promote user: expected 200, got %d (%v)", resp.StatusCode, body)
	}

	// The old token still carries the old role.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/users", userToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("stale token after promotion: expected 403, got %d", resp.StatusCode)
	}

	_, freshToken, err := env.auth.Login(context.Background(), "plain@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("relogin after promotion: %v", err)
	}
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/users", freshToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fresh token after promotion: expected 200, got %d", resp.StatusCode)
	}
}

func TestIntegration_ChartsAndReadings(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	userToken := env.registerAndLogin(t, "viewer@x.com", "Passw0rd")
	adminToken := env.createAdminAndLogin(t, "admin@x.com", "Passw0rd")

	// No goals yet: nothing to visualize.
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/charts/goal-status", userToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty goal chart: expected 404, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/goals", adminToken, map[string]string{
		"title": "G", "description": "D", "status": "completed",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create goal: expected 201, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/charts/goal-status", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("goal chart: expected 200, got %d", resp.StatusCode)
	}
	chart, _ := body["chart"].(string)
	if !strings.HasPrefix(chart, "data:image/png;base64,") {
		t.Fatalf("expected a PNG data URI, got %.40q", chart)
	}
	data := body["data"].(map[string]any)
	if data["completed"] != float64(1) {
		t.Fatalf("unexpected chart data: %v", data)
	}

	// Sensor flow: empty window first, then one ingested reading.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/charts/sensor-data?days=7", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("empty sensor chart: expected 200, got %d", resp.StatusCode)
	}
	if body["dataPoints"] != float64(0) {
		t.Fatalf("expected 0 data points, got %v", body["dataPoints"])
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/readings", adminToken, map[string]any{
		"temperature": 27.5, "humidity": 65.0, "soilMoisture": 42.0, "lightIntensity": 900.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("ingest reading: expected 201, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/charts/sensor-data?days=7", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sensor chart: expected 200, got %d", resp.StatusCode)
	}
	if body["dataPoints"] != float64(1) {
		t.Fatalf("expected 1 data point, got %v", body["dataPoints"])
	}
	stats := body["statistics"].(map[string]any)
	if _, ok := stats["temperature"]; !ok {
		t.Fatalf("expected temperature statistics, got %v", stats)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/charts/sensor-data?days=0", userToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("days=0: expected 400, got %d", resp.StatusCode)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

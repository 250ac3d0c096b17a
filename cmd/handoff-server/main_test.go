package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbarcore/handoff/internal/config"
	"github.com/sbarcore/handoff/internal/platform/metrics"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func testConfig(env string) *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            env,
		DatabaseURL:    "postgres://localhost/handoff_test",
		DBMaxConns:     4,
		DBMinConns:     1,
		CORSOrigins:    []string{"http://localhost:3000"},
		AuthSigningKey: testSigningKey,
		AuthIssuer:     "handoff-test",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		RequestTimeout: 5 * time.Second,
		BodyLimit:      "2M",
	}
}

func testServer(env string) *echo.Echo {
	return newServer(testConfig(env), zerolog.Nop(), nil, metrics.NewCollector())
}

func TestNewServer_Routes(t *testing.T) {
	e := testServer("development")

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /health/db",
		"GET /metrics",
		"GET /api/v1/schema",
		"GET /api/v1/schema/:name",
		"GET /api/v1/patients",
		"POST /api/v1/patients",
		"GET /api/v1/patients/:id",
		"PUT /api/v1/patients/:id",
		"PATCH /api/v1/patients/:id",
		"DELETE /api/v1/patients/:id",
		"POST /api/v1/patients/:id/discharge",
		"GET /api/v1/patients/:id/handoff",
		"GET /api/v1/shifts",
		"POST /api/v1/shifts/roster",
		"GET /api/v1/shifts/roster-template",
		"GET /api/v1/devices",
		"PATCH /api/v1/devices/:id",
		"GET /api/v1/medications",
		"DELETE /api/v1/medications/:id",
		"GET /api/v1/assessments",
		"PUT /api/v1/assessments/:id",
		"GET /api/v1/sbars",
		"POST /api/v1/sbars",
	}
	for _, route := range want {
		assert.True(t, routes[route], "missing route %s", route)
	}
}

func TestNewServer_Health(t *testing.T) {
	e := testServer("development")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNewServer_SchemaInDevelopment(t *testing.T) {
	e := testServer("development")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schema/device", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Name   string `json:"name"`
		Hidden []struct {
			Field string `json:"field"`
		} `json:"hidden"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "device", body.Name)
	require.NotEmpty(t, body.Hidden)
	assert.Equal(t, "insertion_site", body.Hidden[0].Field)
}

func TestNewServer_RequiresTokenOutsideDevelopment(t *testing.T) {
	e := testServer("production")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenCommand_MintsUsableToken(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/handoff_test")
	t.Setenv("AUTH_SIGNING_KEY", testSigningKey)
	t.Setenv("AUTH_ISSUER", "handoff-test")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--sub", "nurse-7", "--role", "physician", "--ttl", "1h"})
	require.NoError(t, cmd.Execute())
	token := strings.TrimSpace(out.String())
	require.NotEmpty(t, token)

	e := testServer("production")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A physician may read but not write.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	files := migrationFiles(dir)
	_, err := files.Open("001_handoff.sql")
	assert.Error(t, err, "an explicit directory replaces the embedded files")

	_, err = migrationFiles("").Open("001_handoff.sql")
	assert.NoError(t, err)
}

func TestNewRegistry(t *testing.T) {
	reg := newRegistry()
	names := make([]string, 0)
	for _, d := range reg.All() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"patient", "shift", "device", "medication", "assessment", "sbar"}, names)
}

func TestNewServer_DescribedPathsAreMounted(t *testing.T) {
	e := testServer("development")
	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, d := range newRegistry().All() {
		base := "/api/v1" + d.Path
		for _, route := range []string{
			"GET " + base,
			"POST " + base,
			"GET " + base + "/:id",
			"PUT " + base + "/:id",
			"PATCH " + base + "/:id",
			"DELETE " + base + "/:id",
		} {
			assert.True(t, routes[route], "%s: missing route %s", d.Name, route)
		}
	}
}

func TestNewServer_BodyLimit(t *testing.T) {
	cfg := testConfig("development")
	cfg.BodyLimit = "1K"
	e := newServer(cfg, zerolog.Nop(), nil, metrics.NewCollector())

	body := `{"name":"` + strings.Repeat("x", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

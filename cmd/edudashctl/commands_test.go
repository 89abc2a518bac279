package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t           *testing.T
	api         string
	sessionFile string
}

func newCLI(t *testing.T, backend http.HandlerFunc) *cli {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return &cli{t: t, api: srv.URL, sessionFile: filepath.Join(t.TempDir(), "session.json")}
}

func (c *cli) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	full := append([]string{"--api", c.api, "--session-file", c.sessionFile}, args...)
	err := run(context.Background(), full, &out, &errOut)
	return out.String(), err
}

func token(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "3", "role": role, "exp": exp.Unix()}).
		SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func teacherBackend(t *testing.T, tok string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok, "role": "teacher"})
		case "/teacher/dashboard":
			assert.Equal(t, "Bearer "+tok, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"profile":{"name":"R. Iyer","subject":"Physics"},"kpis":{"total_students":42},"ai_insight":"Attendance is up."}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func TestLoginStatusDashboardLogout(t *testing.T) {
	tok := token(t, "teacher", time.Now().Add(time.Hour))
	c := newCLI(t, teacherBackend(t, tok))

	out, err := c.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = c.run("login", "--email", "iyer@example.edu", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as iyer@example.edu (teacher)")

	out, err = c.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as teacher")

	out, err = c.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, R. Iyer!")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "42")

	_, err = c.run("dashboard", "--role", "admin")
	assert.ErrorContains(t, err, "cannot open the admin dashboard")

	out, err = c.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = c.run("dashboard")
	assert.ErrorContains(t, err, "not logged in")
}

func TestDashboard_ExpiredSession(t *testing.T) {
	tok := token(t, "teacher", time.Now().Add(-time.Minute))
	c := newCLI(t, teacherBackend(t, tok))

	_, err := c.run("login", "--email", "a@b.in", "--password", "pw")
	require.NoError(t, err)

	_, err = c.run("dashboard")
	assert.ErrorContains(t, err, "session expired")

	out, err := c.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.", "the expired session was cleared")
}

func TestDashboard_BackendDown(t *testing.T) {
	tok := token(t, "student", time.Now().Add(time.Hour))
	c := newCLI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok, "role": "student"})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.run("login", "--email", "a@b.in", "--password", "pw")
	require.NoError(t, err)

	_, err = c.run("dashboard")
	assert.ErrorContains(t, err, "Failed to load student dashboard data")
}

func TestUnknownCommand(t *testing.T) {
	c := newCLI(t, http.NotFound)
	_, err := c.run("frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, err = c.run("login", "--email", "only@email.in")
	assert.ErrorContains(t, err, "email and password are required")
}

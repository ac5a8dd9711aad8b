package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"risuwork/config"
	"risuwork/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// testApp bundles a server over an in-memory database with its Fiber app.
type testApp struct {
	app *fiber.App
	srv *Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		Env:            "test",
		PasswordScheme: "plain",
		InitScript:     "/bin/true",
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return &testApp{app: app, srv: srv}
}

// do sends a JSON request through the app, optionally with a session cookie.
func (ta *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// sessionCookie extracts the session cookie issued by a signup or login
// response.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// idResponse is the {message, id} shape returned by creation endpoints.
type idResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

func (ta *testApp) seedIndustry(t *testing.T, name string) uint {
	t.Helper()
	industry := models.IndustryCategory{Name: name}
	require.NoError(t, ta.srv.db.Create(&industry).Error)
	return industry.ID
}

func (ta *testApp) createCompany(t *testing.T, name string, industryID uint) uint {
	t.Helper()
	resp := ta.do(t, http.MethodPost, "/api/cl/company", fiber.Map{
		"name":        name,
		"industry_id": fmt.Sprintf("%d", industryID),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body idResponse
	decodeBody(t, resp, &body)
	return body.ID
}

func (ta *testApp) signupCS(t *testing.T, email string) *http.Cookie {
	t.Helper()
	resp := ta.do(t, http.MethodPost, "/api/cs/signup", fiber.Map{
		"email":    email,
		"password": "password123",
		"name":     "Test Seeker",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp)
}

func (ta *testApp) signupCL(t *testing.T, email string, companyID uint) *http.Cookie {
	t.Helper()
	resp := ta.do(t, http.MethodPost, "/api/cl/signup", fiber.Map{
		"email":      email,
		"password":   "password123",
		"name":       "Test Employer",
		"company_id": companyID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp)
}

func (ta *testApp) createJob(t *testing.T, cookie *http.Cookie, title string, salary int, tags string) uint {
	t.Helper()
	resp := ta.do(t, http.MethodPost, "/api/cl/job", fiber.Map{
		"title":       title,
		"description": "description of " + title,
		"salary":      salary,
		"tags":        tags,
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body idResponse
	decodeBody(t, resp, &body)
	return body.ID
}

// newEmployer provisions industry, company and a logged-in employer in one
// call; most employer-side tests start here.
func (ta *testApp) newEmployer(t *testing.T, email string) (*http.Cookie, uint) {
	t.Helper()
	industryID := ta.seedIndustry(t, "IT-"+email)
	companyID := ta.createCompany(t, "Company of "+email, industryID)
	return ta.signupCL(t, email, companyID), companyID
}

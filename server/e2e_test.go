package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullHiringFlow walks both sides of the board through one hiring round:
// an employer publishes openings, a seeker finds one by tag and applies, the
// employer reviews the applicant and closes the opening.
func TestFullHiringFlow(t *testing.T) {
	ta := newTestApp(t)

	industryID := ta.seedIndustry(t, "Software")
	companyID := ta.createCompany(t, "Risuwork Inc", industryID)
	employer := ta.signupCL(t, "hr@risuwork.example", companyID)

	goJob := ta.createJob(t, employer, "Go backend engineer", 700, "go,backend,remote")
	ta.createJob(t, employer, "Frontend engineer", 600, "typescript,frontend")

	seeker := ta.signupCS(t, "dev@example.com")

	// Keyword search finds it by title substring.
	var search searchResponse
	resp := ta.do(t, http.MethodGet, "/api/cs/job_search?keyword=backend", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &search)
	require.Len(t, search.Jobs, 1)
	assert.Equal(t, "Go backend engineer", search.Jobs[0].Title)
	assert.Equal(t, "Risuwork Inc", search.Jobs[0].Company.Name)

	// Tag search matches whole tags only; "go" does not pull in other jobs.
	resp = ta.do(t, http.MethodGet, "/api/cs/job_search?tag=go", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &search)
	require.Len(t, search.Jobs, 1)
	assert.Equal(t, "Go backend engineer", search.Jobs[0].Title)

	resp = ta.do(t, http.MethodPost, "/api/cs/application", fiber.Map{"job_id": goJob}, seeker)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The seeker sees the application with the job embedded.
	var mine struct {
		Applications []struct {
			JobID uint `json:"job_id"`
			Job   struct {
				Title  string `json:"title"`
				Salary int    `json:"salary"`
			} `json:"job"`
		} `json:"applications"`
	}
	resp = ta.do(t, http.MethodGet, "/api/cs/applications", nil, seeker)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &mine)
	require.Len(t, mine.Applications, 1)
	assert.Equal(t, goJob, mine.Applications[0].JobID)
	assert.Equal(t, "Go backend engineer", mine.Applications[0].Job.Title)

	// The employer sees the applicant on the job detail.
	var detail jobDetailResponse
	resp = ta.do(t, http.MethodGet, fmt.Sprintf("/api/cl/job/%d", goJob), nil, employer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &detail)
	require.Len(t, detail.Applications, 1)
	assert.Equal(t, "dev@example.com", detail.Applications[0].Applicant.Email)

	// Salary bump shows up in search.
	resp = ta.do(t, http.MethodPatch, fmt.Sprintf("/api/cl/job/%d", goJob), fiber.Map{"salary": 800}, employer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ta.do(t, http.MethodGet, "/api/cs/job_search?tag=go", nil)
	decodeBody(t, resp, &search)
	require.Len(t, search.Jobs, 1)
	assert.Equal(t, 800, search.Jobs[0].Salary)

	// Position filled: archive it. It leaves search, rejects new applications
	// and further edits, yet the seeker's application history keeps it.
	resp = ta.do(t, http.MethodPost, fmt.Sprintf("/api/cl/job/%d/archive", goJob), nil, employer)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.do(t, http.MethodGet, "/api/cs/job_search?tag=go", nil)
	decodeBody(t, resp, &search)
	assert.Empty(t, search.Jobs)

	latecomer := ta.signupCS(t, "late@example.com")
	resp = ta.do(t, http.MethodPost, "/api/cs/application", fiber.Map{"job_id": goJob}, latecomer)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = ta.do(t, http.MethodPatch, fmt.Sprintf("/api/cl/job/%d", goJob), fiber.Map{"salary": 900}, employer)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Gone from the employer's own list too, yet still directly fetchable and
	// still in the seeker's application history.
	var list struct {
		Jobs []jobDetailResponse `json:"jobs"`
	}
	resp = ta.do(t, http.MethodGet, "/api/cl/jobs", nil, employer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &list)
	require.Len(t, list.Jobs, 1)
	assert.Equal(t, "Frontend engineer", list.Jobs[0].Title)

	resp = ta.do(t, http.MethodGet, fmt.Sprintf("/api/cl/job/%d", goJob), nil, employer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.do(t, http.MethodGet, "/api/cs/applications", nil, seeker)
	decodeBody(t, resp, &mine)
	require.Len(t, mine.Applications, 1)

	// The other opening is still up.
	resp = ta.do(t, http.MethodGet, "/api/cs/job_search", nil)
	decodeBody(t, resp, &search)
	require.Len(t, search.Jobs, 1)
	assert.Equal(t, "Frontend engineer", search.Jobs[0].Title)
}

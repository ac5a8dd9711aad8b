package server

import (
	"strconv"
	"time"

	"risuwork/models"
	"risuwork/repository"

	"github.com/gofiber/fiber/v2"
)

// jobSummary is the job shape embedded in search results and application
// listings.
type jobSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Salary      int       `json:"salary"`
	Tags        string    `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newJobSummary(j models.Job) jobSummary {
	return jobSummary{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Salary:      j.Salary,
		Tags:        j.Tags,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// CSSignup handles POST /api/cs/signup
func (s *Server) CSSignup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	credential, err := s.hasher.Hash(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:    req.Email,
		Password: credential,
		Name:     req.Name,
		UserType: models.UserTypeCS,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.Respond(c, err)
	}

	if err := s.setSession(c, user.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"message": "CS account created successfully", "id": user.ID})
}

// CSLogin handles POST /api/cs/login
func (s *Server) CSLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.Respond(c, err)
	}
	if user == nil || !s.hasher.Verify(req.Password, user.Password) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	if err := s.setSession(c, user.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON("Logged in successfully")
}

// CSLogout handles POST /api/cs/logout
func (s *Server) CSLogout(c *fiber.Ctx) error {
	if _, ok := s.sessionEmail(c); !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not logged in"))
	}
	if err := s.clearSession(c); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON("Logged out successfully")
}

// SearchJobs handles GET /api/cs/job_search
func (s *Server) SearchJobs(c *fiber.Ctx) error {
	var req struct {
		Keyword    string `query:"keyword"`
		MinSalary  int    `query:"min_salary"`
		MaxSalary  int    `query:"max_salary"`
		Tag        string `query:"tag"`
		IndustryID string `query:"industry_id"`
		Page       int    `query:"page"`
	}
	if err := c.QueryParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	jobs, err := s.jobRepo.Search(c.Context(), repository.JobSearchFilter{
		Keyword:   req.Keyword,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
		Tag:       req.Tag,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	type jobWithCompany struct {
		jobSummary
		Company repository.CompanyWithIndustry `json:"company"`
	}

	// Enrich with the owning company; the industry filter applies to the
	// joined company row, not the job itself.
	matches := []jobWithCompany{}
	for _, job := range jobs {
		company, err := s.companyRepo.GetForJob(c.Context(), job.ID)
		if err != nil {
			return models.Respond(c, err)
		}
		if company == nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(nil))
		}
		if req.IndustryID != "" && req.IndustryID != strconv.FormatUint(uint64(company.IndustryID), 10) {
			continue
		}
		matches = append(matches, jobWithCompany{newJobSummary(job), *company})
	}

	pageItems, hasNext := paginate(matches, req.Page, jobSearchPageSize)
	return c.JSON(fiber.Map{
		"jobs":          pageItems,
		"page":          req.Page,
		"has_next_page": hasNext,
	})
}

// ApplyJob handles POST /api/cs/application
func (s *Server) ApplyJob(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCS)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	var req struct {
		JobID uint `json:"job_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	applicationID, err := s.applicationRepo.Apply(c.Context(), req.JobID, user.ID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully applied for the job", "id": applicationID})
}

// ListApplications handles GET /api/cs/applications
func (s *Server) ListApplications(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCS)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	var req struct {
		Page int `query:"page"`
	}
	if err := c.QueryParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	applications, err := s.applicationRepo.ListByUserEmail(c.Context(), user.Email)
	if err != nil {
		return models.Respond(c, err)
	}

	type applicationWithJob struct {
		ID        uint       `json:"id"`
		JobID     uint       `json:"job_id"`
		UserID    uint       `json:"user_id"`
		CreatedAt time.Time  `json:"created_at"`
		Job       jobSummary `json:"job"`
	}

	// Archived jobs stay visible here; only search and the employer list
	// hide them.
	list := make([]applicationWithJob, 0, len(applications))
	for _, application := range applications {
		job, err := s.jobRepo.GetByID(c.Context(), application.JobID)
		if err != nil {
			return models.Respond(c, err)
		}
		if job == nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(nil))
		}
		list = append(list, applicationWithJob{
			ID:        application.ID,
			JobID:     application.JobID,
			UserID:    application.UserID,
			CreatedAt: application.CreatedAt,
			Job:       newJobSummary(*job),
		})
	}

	pageItems, hasNext := paginate(list, req.Page, applicationListPageSize)
	return c.JSON(fiber.Map{
		"applications":  pageItems,
		"page":          req.Page,
		"has_next_page": hasNext,
	})
}

package server

import (
	"strconv"
	"time"

	"risuwork/models"

	"github.com/gofiber/fiber/v2"
)

// jobDetail is the job shape returned on the employer side, where the active
// flag and creator are visible.
type jobDetail struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Salary       int       `json:"salary"`
	Tags         string    `json:"tags"`
	IsActive     bool      `json:"is_active"`
	CreateUserID uint      `json:"create_user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newJobDetail(j models.Job) jobDetail {
	return jobDetail{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Salary:       j.Salary,
		Tags:         j.Tags,
		IsActive:     j.IsActive,
		CreateUserID: j.CreateUserID,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// jobIDParam parses the :jobid route parameter. A non-numeric id can never
// reference a row, so it reads as not found.
func jobIDParam(c *fiber.Ctx) (uint, *models.AppError) {
	id, err := strconv.ParseUint(c.Params("jobid"), 10, 64)
	if err != nil {
		return 0, models.NewNotFoundError("Job")
	}
	return uint(id), nil
}

// CreateCompany handles POST /api/cl/company. Deliberately unauthenticated:
// a company must exist before any employer account can reference it.
func (s *Server) CreateCompany(c *fiber.Ctx) error {
	var req struct {
		Name       string `json:"name"`
		IndustryID string `json:"industry_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	industryID, err := strconv.ParseUint(req.IndustryID, 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Industry not found"))
	}
	industry, lookupErr := s.companyRepo.GetIndustry(c.Context(), uint(industryID))
	if lookupErr != nil {
		return models.Respond(c, lookupErr)
	}
	if industry == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Industry not found"))
	}

	company := &models.Company{Name: req.Name, IndustryID: uint(industryID)}
	if err := s.companyRepo.Create(c.Context(), company); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Company created successfully", "id": company.ID})
}

// CLSignup handles POST /api/cl/signup
func (s *Server) CLSignup(c *fiber.Ctx) error {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		CompanyID uint   `json:"company_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	company, err := s.companyRepo.GetByID(c.Context(), req.CompanyID)
	if err != nil {
		return models.Respond(c, err)
	}
	if company == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Company not found"))
	}

	credential, hashErr := s.hasher.Hash(req.Password)
	if hashErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(hashErr))
	}

	user := &models.User{
		Email:     req.Email,
		Password:  credential,
		Name:      req.Name,
		UserType:  models.UserTypeCL,
		CompanyID: &company.ID,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.Respond(c, err)
	}

	if err := s.setSession(c, user.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Signed up successfully", "id": user.ID})
}

// CLLogin handles POST /api/cl/login. Authenticates only against CL rows.
func (s *Server) CLLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	user, err := s.userRepo.GetByEmailAndType(c.Context(), req.Email, models.UserTypeCL)
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

// CLLogout handles POST /api/cl/logout
func (s *Server) CLLogout(c *fiber.Ctx) error {
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

// CreateJob handles POST /api/cl/job
func (s *Server) CreateJob(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCL)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Salary      int    `json:"salary"`
		Tags        string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	job := &models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Salary:       req.Salary,
		Tags:         req.Tags,
		IsActive:     true,
		CreateUserID: user.ID,
	}
	if err := s.jobRepo.Create(c.Context(), job); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Job created successfully", "id": job.ID})
}

// UpdateJob handles PATCH /api/cl/job/:jobid. Only the supplied fields
// change; a field-less patch is a no-op.
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCL)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Salary      *int    `json:"salary"`
		Tags        *string `json:"tags"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	jobID, appErr := jobIDParam(c)
	if appErr != nil {
		return models.Respond(c, appErr)
	}
	if _, appErr = s.authorizeJob(c, user, jobID, false); appErr != nil {
		return models.Respond(c, appErr)
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Salary != nil {
		fields["salary"] = *req.Salary
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if err := s.jobRepo.Update(c.Context(), jobID, fields); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON("Job updated successfully")
}

// ArchiveJob handles POST /api/cl/job/:jobid/archive. One-way: an archived
// job rejects further archive or update with 422.
func (s *Server) ArchiveJob(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCL)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	jobID, appErr := jobIDParam(c)
	if appErr != nil {
		return models.Respond(c, appErr)
	}
	if _, appErr = s.authorizeJob(c, user, jobID, false); appErr != nil {
		return models.Respond(c, appErr)
	}

	if err := s.jobRepo.Archive(c.Context(), jobID); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON("Job archived successfully")
}

// GetJob handles GET /api/cl/job/:jobid. Archived jobs remain readable here.
func (s *Server) GetJob(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCL)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	jobID, appErr := jobIDParam(c)
	if appErr != nil {
		return models.Respond(c, appErr)
	}
	job, appErr := s.authorizeJob(c, user, jobID, true)
	if appErr != nil {
		return models.Respond(c, appErr)
	}

	applications, err := s.applicationRepo.ListByJob(c.Context(), jobID)
	if err != nil {
		return models.Respond(c, err)
	}

	type applicant struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	type applicationWithApplicant struct {
		ID        uint      `json:"id"`
		JobID     uint      `json:"job_id"`
		CreatedAt time.Time `json:"created_at"`
		Applicant applicant `json:"applicant"`
	}

	list := make([]applicationWithApplicant, 0, len(applications))
	for _, application := range applications {
		seeker, err := s.userRepo.GetByID(c.Context(), application.UserID)
		if err != nil {
			return models.Respond(c, err)
		}
		if seeker == nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(nil))
		}
		list = append(list, applicationWithApplicant{
			ID:        application.ID,
			JobID:     application.JobID,
			CreatedAt: application.CreatedAt,
			Applicant: applicant{ID: seeker.ID, Email: seeker.Email, Name: seeker.Name},
		})
	}

	type jobWithApplications struct {
		jobDetail
		Applications []applicationWithApplicant `json:"applications"`
	}
	return c.JSON(jobWithApplications{newJobDetail(*job), list})
}

// ListJobs handles GET /api/cl/jobs
func (s *Server) ListJobs(c *fiber.Ctx) error {
	user, appErr := s.requireUser(c, models.UserTypeCL)
	if appErr != nil {
		return models.Respond(c, appErr)
	}
	if user.CompanyID == nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(nil))
	}

	var req struct {
		Page int `query:"page"`
	}
	if err := c.QueryParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request payload"))
	}

	jobs, err := s.jobRepo.ListByCompany(c.Context(), *user.CompanyID)
	if err != nil {
		return models.Respond(c, err)
	}

	list := make([]jobDetail, 0, len(jobs))
	for _, job := range jobs {
		list = append(list, newJobDetail(job))
	}

	pageItems, hasNext := paginate(list, req.Page, jobListPageSize)
	return c.JSON(fiber.Map{
		"jobs":          pageItems,
		"page":          req.Page,
		"has_next_page": hasNext,
	})
}

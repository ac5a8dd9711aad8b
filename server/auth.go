package server

import (
	"time"

	"risuwork/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "session_id"
	sessionMaxAge     = 3600
)

// setSession generates a fresh opaque id, binds it to the email and sets the
// cookie.
func (s *Server) setSession(c *fiber.Ctx, email string) error {
	id := uuid.NewString()
	if err := s.sessions.Create(c.Context(), id, email); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return nil
}

// sessionEmail resolves the cookie to the logged-in email. A missing cookie,
// an unknown id and a store error all read as "not logged in".
func (s *Server) sessionEmail(c *fiber.Ctx) (string, bool) {
	id := c.Cookies(sessionCookieName)
	if id == "" {
		return "", false
	}
	email, ok, err := s.sessions.Read(c.Context(), id)
	if err != nil || !ok {
		return "", false
	}
	c.Locals("sessionEmail", email)
	return email, true
}

// clearSession removes the binding and expires the cookie. Idempotent.
func (s *Server) clearSession(c *fiber.Ctx) error {
	if id := c.Cookies(sessionCookieName); id != "" {
		if err := s.sessions.Delete(c.Context(), id); err != nil {
			return err
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return nil
}

// requireUser is steps 1-2 of the authorization gate: resolve the principal
// from the session (401 on failure), then check the role required by the
// endpoint family (403 on mismatch).
func (s *Server) requireUser(c *fiber.Ctx, userType string) (*models.User, *models.AppError) {
	email, ok := s.sessionEmail(c)
	if !ok {
		return nil, models.NewUnauthorizedError("Not logged in")
	}
	user, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Not logged in")
	}
	if user.UserType != userType {
		return nil, models.NewForbiddenError("No permission")
	}
	return user, nil
}

// authorizeJob is steps 3-5 of the gate for job-scoped CL endpoints:
// existence (404) before ownership (403), ownership before business state
// (422). A broken ownership chain is a 500, never a silent 403, so callers
// with no permission cannot probe resource state.
func (s *Server) authorizeJob(c *fiber.Ctx, user *models.User, jobID uint, includeArchived bool) (*models.Job, *models.AppError) {
	job, err := s.jobRepo.GetByID(c.Context(), jobID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if job == nil {
		return nil, models.NewNotFoundError("Job")
	}

	creator, err := s.userRepo.GetByID(c.Context(), job.CreateUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if creator == nil || creator.CompanyID == nil || user.CompanyID == nil {
		return nil, models.NewInternalError(nil)
	}
	if *creator.CompanyID != *user.CompanyID {
		return nil, models.NewForbiddenError("No permission")
	}

	if !includeArchived && job.IsArchived {
		return nil, models.NewUnprocessableError("Job archived")
	}
	return job, nil
}

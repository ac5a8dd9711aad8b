package server

import (
	"os/exec"

	"risuwork/middleware"
	"risuwork/models"

	"github.com/gofiber/fiber/v2"
)

// Initialize handles POST /api/initialize. The benchmarker calls it once at
// startup; it shells out to the reset script and the script's exit code is
// the whole contract (0 = success).
func (s *Server) Initialize(c *fiber.Ctx) error {
	cmd := exec.CommandContext(c.Context(), s.config.InitScript)
	out, err := cmd.CombinedOutput()
	if err != nil {
		middleware.Logger.Error("init script failed", "error", err, "output", string(out))
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"lang": "go"})
}

// Finalize handles POST /api/finalize. Called once when the benchmarker
// finishes; intentionally a no-op.
func (s *Server) Finalize(c *fiber.Ctx) error {
	return c.JSON("ok")
}

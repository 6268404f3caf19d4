package Controllers

import (
	"errors"
	"net/http"

	"Harmony/Models"
	"Harmony/Workflow"

	"github.com/gofiber/fiber/v2"
)

// workflowError maps the Workflow error taxonomy onto HTTP responses. Every
// transition failure is a no-op on stored state, so these are safe to retry
// after the caller refreshes.
func workflowError(c *fiber.Ctx, err error) error {
	var authz *Workflow.AuthorizationError
	if errors.As(err, &authz) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": authz.Reason,
		})
	}

	var invalid *Workflow.ValidationError
	if errors.As(err, &invalid) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"fields":  invalid.Fields,
		})
	}

	var transition *Workflow.InvalidTransitionError
	if errors.As(err, &transition) {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message":        transition.Error(),
			"current_status": transition.Current,
		})
	}

	var conflict *Workflow.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": conflict.Reason,
		})
	}

	var notFound *Workflow.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
		})
	}

	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
		"error":   err.Error(),
	})
}

// currentUser reads the user the Verify middleware stored on the context.
func currentUser(c *fiber.Ctx) Models.User {
	user, _ := c.Locals("user").(Models.User)
	return user
}

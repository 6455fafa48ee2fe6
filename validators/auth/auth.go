package authValidator

import (
	"cqms/middleware"
	"cqms/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Username = strings.TrimSpace(reqData.Username)
		if reqData.Username == "" {
			errors["username"] = "Username is required!"
		}

		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		// Role is optional; when present it must be one of the two known roles
		reqData.Role = strings.TrimSpace(reqData.Role)
		if reqData.Role != "" && reqData.Role != models.RoleSupport && reqData.Role != models.RoleClient {
			errors["role"] = "Invalid role! Allowed: Support, Client"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

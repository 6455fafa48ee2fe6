package authController

import (
	"cqms/database"
	"cqms/middleware"
	authValidator "cqms/validators/auth"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Login verifies the credentials and issues a session token. The failure
// message is deliberately generic: it never says which field was wrong.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	role := reqData.Role
	if role != "" {
		if !database.AuthenticateUser(db, role, reqData.Username, reqData.Password) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password for the selected role!", nil)
		}
	} else {
		resolved, ok := database.LookupRole(db, reqData.Username, reqData.Password)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
		}
		role = resolved
	}

	token, err := middleware.GenerateJWT(reqData.Username, role)
	if err != nil {
		log.Printf("Error generating JWT for %s: %v", reqData.Username, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully.", fiber.Map{
		"token":    token,
		"username": reqData.Username,
		"role":     role,
	})
}

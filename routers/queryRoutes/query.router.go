package queryRoutes

import (
	controller "cqms/controllers/query"
	"cqms/middleware"
	"cqms/models"
	validator "cqms/validators/query"

	"github.com/gofiber/fiber/v2"
)

func SetupQueryRoutes(app *fiber.App) {
	query := app.Group("/query")

	query.Post("/submit", validator.SubmitQuery(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleClient), controller.SubmitQuery)
	query.Get("/list", validator.ListQueries(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleSupport), controller.ListQueries)
	query.Post("/close", validator.CloseQuery(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleSupport), controller.CloseQuery)
	query.Get("/:id/image", middleware.JWTMiddleware, controller.QueryImage)
}

package queryController

import (
	"io"
	"log"

	"cqms/database"
	"cqms/middleware"
	"cqms/models"
	"cqms/utils"
	queryValidator "cqms/validators/query"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// SubmitQuery creates a new query from the validated submission form,
// persisting the optional image attachment alongside it.
func SubmitQuery(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmitQuery").(*queryValidator.SubmitQueryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var image []byte
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			log.Printf("Error opening uploaded image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded image!", nil)
		}
		defer src.Close()

		image, err = io.ReadAll(src)
		if err != nil {
			log.Printf("Error reading uploaded image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded image!", nil)
		}
	}

	query, err := database.InsertQuery(
		database.Database.Db,
		reqData.MailID,
		reqData.MobileNumber,
		reqData.QueryHeading,
		reqData.QueryDescription,
		image,
	)
	if err != nil {
		log.Printf("Error saving query to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit query!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Query "+query.QueryID+" submitted successfully.", query)
}

// ListQueries returns queries for the support dashboard, newest first,
// optionally filtered by status.
func ListQueries(c *fiber.Ctx) error {
	status, ok := c.Locals("validatedStatus").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	queries, err := database.FetchQueries(database.Database.Db, status)
	if err != nil {
		log.Printf("Error fetching queries: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch queries!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Queries fetched successfully.", fiber.Map{
		"queries": queries,
		"count":   len(queries),
	})
}

// CloseQuery marks an open query as Closed. Re-closing an already-closed
// query changes nothing, and an unknown id is reported as not found.
func CloseQuery(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCloseQuery").(*queryValidator.CloseQueryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	closed, found, err := database.CloseQuery(db, reqData.QueryID)
	if err != nil {
		log.Printf("Error closing query %s: %v", reqData.QueryID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to close query!", nil)
	}
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Query not found!", nil)
	}
	if !closed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Query "+reqData.QueryID+" was already closed.", nil)
	}

	// Notify the client by email, best effort
	var query models.Query
	if err := db.Where("query_id = ?", reqData.QueryID).First(&query).Error; err == nil && query.MailID != "" {
		go func(q models.Query) {
			if err := utils.SendQueryClosedEmail(q.MailID, q.QueryID, q.QueryHeading); err != nil {
				log.Printf("Error sending closure email for %s: %v", q.QueryID, err)
			}
		}(query)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Query "+reqData.QueryID+" has been closed.", nil)
}

// QueryImage serves the stored attachment blob for a query.
func QueryImage(c *fiber.Ctx) error {
	queryID := c.Params("id")

	image, found, err := database.GetQueryImage(database.Database.Db, queryID)
	if err != nil {
		log.Printf("Error fetching image for %s: %v", queryID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch image!", nil)
	}
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No image attached to this query!", nil)
	}

	c.Set(fiber.HeaderContentType, mimetype.Detect(image).String())
	return c.Send(image)
}

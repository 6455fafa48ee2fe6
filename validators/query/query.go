package queryValidator

import (
	"cqms/middleware"
	"cqms/models"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MaxImageSize caps uploaded attachments at 5MB.
const MaxImageSize = 5 << 20

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var mobileRe = regexp.MustCompile(`^[0-9+\- ]{3,20}$`)

var allowedImageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

type SubmitQueryRequest struct {
	MailID           string
	MobileNumber     string
	QueryHeading     string
	QueryDescription string
}

// SubmitQuery validates the multipart submission form. All text fields are
// required; the image part is optional.
func SubmitQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &SubmitQueryRequest{
			MailID:           strings.TrimSpace(c.FormValue("mailId")),
			MobileNumber:     strings.TrimSpace(c.FormValue("mobileNumber")),
			QueryHeading:     strings.TrimSpace(c.FormValue("queryHeading")),
			QueryDescription: strings.TrimSpace(c.FormValue("queryDescription")),
		}

		errors := make(map[string]string)

		if reqData.MailID == "" {
			errors["mailId"] = "Email address is required!"
		} else if !emailRe.MatchString(reqData.MailID) {
			errors["mailId"] = "Invalid email address!"
		}

		if reqData.MobileNumber == "" {
			errors["mobileNumber"] = "Mobile number is required!"
		} else if !mobileRe.MatchString(reqData.MobileNumber) {
			errors["mobileNumber"] = "Invalid mobile number!"
		}

		if reqData.QueryHeading == "" {
			errors["queryHeading"] = "Query heading is required!"
		} else if len(reqData.QueryHeading) > 200 {
			errors["queryHeading"] = "Query heading must not exceed 200 characters!"
		}

		if reqData.QueryDescription == "" {
			errors["queryDescription"] = "Query description is required!"
		}

		// Optional image attachment
		if file, err := c.FormFile("image"); err == nil && file != nil {
			ext := strings.ToLower(filepath.Ext(file.Filename))
			if !allowedImageExt[ext] {
				errors["image"] = "Invalid image type! Allowed: png, jpg, jpeg"
			}
			if file.Size > MaxImageSize {
				errors["image"] = "Image must not exceed 5MB!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitQuery", reqData)
		return c.Next()
	}
}

// ListQueries validates the status filter. Absent or "all" means no
// filtering; the value is normalized to the stored casing.
func ListQueries() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := strings.TrimSpace(c.Query("status"))

		switch strings.ToLower(status) {
		case "", "all":
			status = ""
		case "opened":
			status = models.StatusOpened
		case "closed":
			status = models.StatusClosed
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Invalid status! Must be one of: All, Opened, Closed.",
			})
		}

		c.Locals("validatedStatus", status)
		return c.Next()
	}
}

var queryIDRe = regexp.MustCompile(`^Q\d{4,}$`)

type CloseQueryRequest struct {
	QueryID string `json:"queryId"`
}

// CloseQuery validates the close request body.
func CloseQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CloseQueryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.QueryID = strings.TrimSpace(reqData.QueryID)
		if reqData.QueryID == "" {
			errors["queryId"] = "Query ID is required!"
		} else if !queryIDRe.MatchString(reqData.QueryID) {
			errors["queryId"] = "Invalid query ID format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCloseQuery", reqData)
		return c.Next()
	}
}

package courseValidator

import (
	"strings"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// CourseRequest is the body of course create and update.
type CourseRequest struct {
	Title       string `json:"title" form:"title" validate:"max=255"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url" validate:"max=2048"`
	Category    string `json:"category" form:"category" validate:"max=100"`
	Duration    string `json:"duration" form:"duration" validate:"max=100"`
	Level       string `json:"level" form:"level" validate:"max=100"`
}

// Course validates a course create/update body
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ImageURL = strings.TrimSpace(reqData.ImageURL)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :id parameter of course routes
func CourseID() fiber.Handler {
	return validators.IDParam("id", "courseID", "Course")
}

package progressValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type EnrollRequest struct {
	UserID   uint `json:"user_id" validate:"required,gt=0"`
	CourseID uint `json:"course_id" validate:"required,gt=0"`
}

type ProgressRequest struct {
	UserID    uint  `json:"user_id" validate:"required,gt=0"`
	LessonID  uint  `json:"lesson_id" validate:"required,gt=0"`
	Completed *bool `json:"completed" validate:"required"`
}

// Enroll validates POST /api/enroll
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}
		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// ToggleProgress validates POST /api/progress
func ToggleProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// UserCourse validates routes carrying :userId and optionally :courseId
func UserCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := validators.ParseID(c.Params("userId"))
		if !ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid User ID!")
		}
		c.Locals("userID", userID)

		if raw := c.Params("courseId"); raw != "" {
			courseID, ok := validators.ParseID(raw)
			if !ok {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Course ID!")
			}
			c.Locals("courseID", courseID)
		}
		return c.Next()
	}
}

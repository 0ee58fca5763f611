package progressController

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Enroll enrolls a user in a course. Enrolling twice is a no-op.
func Enroll(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnroll").(*progressValidator.EnrollRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}
	if !canActFor(c, reqData.UserID) {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "You can only access your own data!")
	}

	db := database.Database.Db
	if err := db.First(&models.Course{}, reqData.CourseID).Error; err != nil {
		return notFoundOr500(c, err, "Course not found!")
	}
	if err := db.First(&models.User{}, reqData.UserID).Error; err != nil {
		return notFoundOr500(c, err, "User not found!")
	}

	enrollment := models.Enrollment{UserID: reqData.UserID, CourseID: reqData.CourseID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", nil)
}

// CheckEnrollment reports whether the user is enrolled in the course
func CheckEnrollment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	courseID := c.Locals("courseID").(uint)

	var count int64
	if err := database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"enrolled": count > 0})
}

// canActFor is true when the session user is userID or an admin.
func canActFor(c *fiber.Ctx, userID uint) bool {
	user := middleware.SessionUser(c)
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || user.ID == userID
}

func notFoundOr500(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, notFound)
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
}

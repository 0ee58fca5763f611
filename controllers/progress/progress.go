package progressController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// ToggleProgress marks a lesson completed or not completed for a user
func ToggleProgress(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProgress").(*progressValidator.ProgressRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}
	if !canActFor(c, reqData.UserID) {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "You can only access your own data!")
	}

	db := database.Database.Db
	if err := db.First(&models.Lesson{}, reqData.LessonID).Error; err != nil {
		return notFoundOr500(c, err, "Lesson not found!")
	}

	var err error
	if *reqData.Completed {
		progress := models.UserProgress{UserID: reqData.UserID, LessonID: reqData.LessonID}
		err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
	} else {
		err = db.Where("user_id = ? AND lesson_id = ?", reqData.UserID, reqData.LessonID).
			Delete(&models.UserProgress{}).Error
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", nil)
}

// CourseProgress lists the completed lesson ids of a course and the completion percentage
func CourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db
	if err := db.First(&models.Course{}, courseID).Error; err != nil {
		return notFoundOr500(c, err, "Course not found!")
	}

	var total int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	completed := []uint{}
	if err := db.Table("user_progress AS up").
		Joins("JOIN lessons l ON l.id = up.lesson_id").
		Where("up.user_id = ? AND l.course_id = ?", userID, courseID).
		Order("l.order_index asc, l.id asc").
		Pluck("up.lesson_id", &completed).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"completed_lessons": completed,
		"total_lessons":     total,
		"progress":          utils.Percent(int64(len(completed)), total),
	})
}

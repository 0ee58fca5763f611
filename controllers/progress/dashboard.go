package progressController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

const dashboardQuery = `
SELECT c.*,
       e.created_at AS enrolled_at,
       (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id) AS total_lessons,
       (SELECT COUNT(*) FROM user_progress up
          JOIN lessons l2 ON l2.id = up.lesson_id
         WHERE up.user_id = e.user_id AND l2.course_id = c.id) AS completed_lessons
  FROM enrollments e
  JOIN courses c ON c.id = e.course_id
 WHERE e.user_id = ?
 ORDER BY e.created_at DESC, e.id DESC`

// Dashboard returns every course the user is enrolled in with its progress
func Dashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	courses := []models.DashboardCourse{}
	if err := database.Database.Db.Raw(dashboardQuery, userID).Scan(&courses).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	for i := range courses {
		courses[i].Progress = utils.Percent(courses[i].CompletedLessons, courses[i].TotalLessons)
	}

	return c.JSON(courses)
}

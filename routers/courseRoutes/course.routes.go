package courseRoutes

import (
	controllers "lms/controllers/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog routes
func SetupCourseRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/courses", controllers.ListCourses)
	api.Get("/course/:id", validators.CourseID(), controllers.GetCourse)

	setupAdminRoutes(api)
}

package progressRoutes

import (
	progressControllers "lms/controllers/progress"
	"lms/middleware"
	progressValidators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up enrollment, completion and dashboard routes
func SetupProgressRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/enroll", middleware.JWTMiddleware, middleware.RequireUser, progressValidators.Enroll(), progressControllers.Enroll)
	api.Post("/progress", middleware.JWTMiddleware, middleware.RequireUser, progressValidators.ToggleProgress(), progressControllers.ToggleProgress)

	selfOrAdmin := middleware.RequireSelfOrAdmin("userId")
	api.Get("/users/:userId/enrollment/:courseId", middleware.JWTMiddleware, selfOrAdmin, progressValidators.UserCourse(), progressControllers.CheckEnrollment)
	api.Get("/users/:userId/course/:courseId/progress", middleware.JWTMiddleware, selfOrAdmin, progressValidators.UserCourse(), progressControllers.CourseProgress)
	api.Get("/users/:userId/dashboard", middleware.JWTMiddleware, selfOrAdmin, progressValidators.UserCourse(), progressControllers.Dashboard)
}

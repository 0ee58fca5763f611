package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// setupAdminRoutes sets up course, lesson and file management routes
func setupAdminRoutes(api fiber.Router) {
	// Courses
	api.Post("/courses", middleware.JWTMiddleware, middleware.RequireAdmin, validators.Course(), controllers.CreateCourse)
	api.Put("/courses/:id", middleware.JWTMiddleware, middleware.RequireAdmin, validators.CourseID(), validators.Course(), controllers.UpdateCourse)
	api.Delete("/courses/:id", middleware.JWTMiddleware, middleware.RequireAdmin, validators.CourseID(), controllers.DeleteCourse)
	api.Post("/courses/:id/reorder-lessons", middleware.JWTMiddleware, middleware.RequireAdmin, validators.ReorderLessons(), controllers.ReorderLessons)
	api.Post("/upload", middleware.JWTMiddleware, middleware.RequireAdmin, validators.CoverUpload(), controllers.UploadCover)

	// Lessons
	api.Post("/lessons", middleware.JWTMiddleware, middleware.RequireAdmin, validators.CreateLesson(), controllers.CreateLesson)
	api.Put("/lessons/:id", middleware.JWTMiddleware, middleware.RequireAdmin, validators.UpdateLesson(), controllers.UpdateLesson)
	api.Delete("/lessons/:id", middleware.JWTMiddleware, middleware.RequireAdmin, validators.LessonID(), controllers.DeleteLesson)
	api.Post("/lessons/:id/files", middleware.JWTMiddleware, middleware.RequireAdmin, validators.AttachFiles(), controllers.AttachLessonFiles)

	// Files
	api.Delete("/files/:id", middleware.JWTMiddleware, middleware.RequireAdmin, validators.FileID(), controllers.DeleteFile)
}

package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/register", authValidators.Register(), authControllers.Register)
	api.Get("/verify-email", authValidators.VerifyEmail(), authControllers.VerifyEmail)
	api.Post("/resend-verification", authValidators.ResendVerification(), authControllers.ResendVerification)
	api.Post("/login", authValidators.Login(), authControllers.Login)
	api.Get("/me", middleware.JWTMiddleware, middleware.RequireUser, authControllers.Me)
	api.Get("/login/history", middleware.JWTMiddleware, middleware.RequireUser, authControllers.LoginHistory)

	// User management
	api.Get("/users", middleware.JWTMiddleware, middleware.RequireAdmin, authControllers.ListUsers)
	api.Put("/users/:id/role", middleware.JWTMiddleware, middleware.RequireAdmin, authValidators.UpdateRole(), authControllers.UpdateRole)
	api.Delete("/users/:id", middleware.JWTMiddleware, middleware.RequireAdmin, authValidators.UserID(), authControllers.DeleteUser)
}

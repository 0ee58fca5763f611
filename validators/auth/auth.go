package authValidator

import (
	"strings"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student admin"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = normalizeEmail(reqData.Email)

		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		reqData.Email = normalizeEmail(reqData.Email)
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// VerifyEmail requires a non-empty ?token=
func VerifyEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Verification token is required!")
		}
		c.Locals("verificationToken", token)
		return c.Next()
	}
}

// ResendVerification validator middleware
func ResendVerification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EmailRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		reqData.Email = normalizeEmail(reqData.Email)
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}
		c.Locals("validatedEmail", reqData)
		return c.Next()
	}
}

// UpdateRole validates PUT /api/users/:id/role
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := validators.ParseID(c.Params("id"))
		if !ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid User ID!")
		}

		reqData := new(RoleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		reqData.Role = strings.ToLower(strings.TrimSpace(reqData.Role))
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}

		c.Locals("targetUserID", userID)
		c.Locals("validatedRole", reqData.Role)
		return c.Next()
	}
}

// UserID validates the :id parameter of user routes
func UserID() fiber.Handler {
	return validators.IDParam("id", "targetUserID", "User")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

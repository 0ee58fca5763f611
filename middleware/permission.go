package middleware

import (
	"errors"
	"strconv"

	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadSessionUser resolves the token subject against the store so a deleted
// user or a demoted admin loses access immediately.
func loadSessionUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized: User ID not found")
	}

	var user models.User
	err := database.Database.Db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorResponse(c, fiber.StatusUnauthorized, "User not found!")
		}
		return nil, ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Locals("sessionUser", &user)
	return &user, nil
}

// RequireAdmin lets the request through only for admin accounts. Use after JWTMiddleware.
func RequireAdmin(c *fiber.Ctx) error {
	user, err := loadSessionUser(c)
	if user == nil {
		return err
	}
	if user.Role != models.RoleAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "Access denied! Admin only.")
	}
	return c.Next()
}

// RequireSelfOrAdmin guards per-user routes: the :userId path parameter must
// match the token subject unless the caller is an admin.
func RequireSelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := loadSessionUser(c)
		if user == nil {
			return err
		}
		if user.Role == models.RoleAdmin {
			return c.Next()
		}

		target, convErr := strconv.Atoi(c.Params(param))
		if convErr != nil || target <= 0 {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID!")
		}
		if uint(target) != user.ID {
			return ErrorResponse(c, fiber.StatusForbidden, "You can only access your own data!")
		}
		return c.Next()
	}
}

// SessionUser returns the user loaded by RequireAdmin / RequireSelfOrAdmin / RequireUser.
func SessionUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("sessionUser").(*models.User)
	return user
}

// RequireUser loads the token subject for routes whose body names the user.
func RequireUser(c *fiber.Ctx) error {
	user, err := loadSessionUser(c)
	if user == nil {
		return err
	}
	return c.Next()
}

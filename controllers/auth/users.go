package authController

import (
	"errors"
	"strings"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListUsers(c *fiber.Ctx) error {
	users := []models.User{}
	if err := database.Database.Db.Order("id asc").Find(&users).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(users)
}

// UpdateRole sets a user's role to student or admin
func UpdateRole(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)
	role := c.Locals("validatedRole").(string)

	db := database.Database.Db
	user, err := findUser(c, db, userID)
	if user == nil {
		return err
	}

	if isProtectedRoot(user) && role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "The root admin cannot be demoted!")
	}

	if err := db.Model(user).Update("role", role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", nil)
}

// DeleteUser removes a user with their enrollments, progress and login history
func DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	db := database.Database.Db
	user, err := findUser(c, db, userID)
	if user == nil {
		return err
	}

	if isProtectedRoot(user) {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "The root admin cannot be deleted!")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.LoginTracking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// findUser writes the 404/500 response itself and returns a nil user in that case.
func findUser(c *fiber.Ctx, db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found!")
		}
		return nil, middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return &user, nil
}

func isProtectedRoot(user *models.User) bool {
	cfg := config.AppConfig
	return cfg.ProtectRootAdmin && strings.EqualFold(user.Email, cfg.RootAdminEmail)
}

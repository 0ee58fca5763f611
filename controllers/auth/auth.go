package authController

import (
	"errors"
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates an unverified student account and mails the verification link
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered!")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		log.Printf("Error generating verification token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	newUser := models.User{
		Name:               reqData.Name,
		Email:              reqData.Email,
		Password:           string(hashedPassword),
		Role:               models.RoleStudent,
		VerificationStatus: models.StatusUnverified,
		VerificationToken:  &token,
	}

	if err := db.Create(&newUser).Error; err != nil {
		// a concurrent registration can still win the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered!")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := utils.SendVerificationEmail(utils.AppMailer, newUser.Email, newUser.Name, token); err != nil {
		log.Printf("[MAILER] Verification email to %s failed: %v", newUser.Email, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true,
		"Registration successful. Please check your email to verify your account.", nil)
}

// VerifyEmail consumes a verification token. Only an unverified account holding
// the token is flipped, so a token works exactly once.
func VerifyEmail(c *fiber.Ctx) error {
	token := c.Locals("verificationToken").(string)

	result := database.Database.Db.Model(&models.User{}).
		Where("verification_token = ? AND verification_status = ?", token, models.StatusUnverified).
		Updates(map[string]interface{}{
			"verification_status": models.StatusVerified,
			"verification_token":  nil,
		})
	if result.Error != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired verification token")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully! You can now log in.", nil)
}

// ResendVerification issues a fresh token for an unverified account
func ResendVerification(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEmail").(*authValidator.EmailRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	if user.Verified() {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email already verified!")
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	result := db.Model(&models.User{}).
		Where("id = ? AND verification_status = ?", user.ID, models.StatusUnverified).
		Update("verification_token", token)
	if result.Error != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email already verified!")
	}

	if err := utils.SendVerificationEmail(utils.AppMailer, user.Email, user.Name, token); err != nil {
		log.Printf("[MAILER] Verification email to %s failed: %v", user.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send verification email!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification email sent.", nil)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !user.Verified() && user.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Please verify your email before logging in")
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}
	log.Printf("User %d logged in from IP: %s", user.ID, ip)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user.Session(),
		"token": token,
	})
}

// Me returns the account behind the session token
func Me(c *fiber.Ctx) error {
	user := middleware.SessionUser(c)
	if user == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{"user": user})
}

// LoginHistory lists the caller's most recent logins
func LoginHistory(c *fiber.Ctx) error {
	user := middleware.SessionUser(c)
	if user == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	history := []models.LoginTracking{}
	if err := database.Database.Db.Where("user_id = ?", user.ID).
		Order("timestamp desc, id desc").
		Limit(50).
		Find(&history).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(history)
}

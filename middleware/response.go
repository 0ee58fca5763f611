package middleware

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes {"success": ..., "message"|"error": ..., extra...}.
func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, extra fiber.Map) error {
	body := fiber.Map{"success": success}
	if success {
		if message != "" {
			body["message"] = message
		}
	} else {
		body["error"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(statusCode).JSON(body)
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return JsonResponse(c, statusCode, false, message, nil)
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", fiber.Map{"errors": errors})
}

// ValidatorErrorResponse maps validator/v10 failures to a field -> rule map.
func ValidatorErrorResponse(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return ValidationErrorResponse(c, fields)
}

// ErrorHandler renders errors that escape a handler in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}
	return ErrorResponse(c, code, err.Error())
}

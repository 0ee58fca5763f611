// Package validators holds the shared validator/v10 instance used by the
// per-area request validators.
package validators

import (
	"reflect"
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names ("course_id") instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the struct-tag rules on v.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// IDParam parses a positive integer path parameter into c.Locals(local).
func IDParam(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := ParseID(c.Params(param))
		if !ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+label+" ID!")
		}
		c.Locals(local, id)
		return c.Next()
	}
}

// ParseID accepts strictly positive integers.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

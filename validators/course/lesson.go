package courseValidator

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// LessonRequest is a validated lesson creation.
type LessonRequest struct {
	CourseID uint                    `json:"course_id" validate:"required,gt=0"`
	Title    string                  `json:"title" validate:"required,max=255"`
	Content  string                  `json:"content"`
	Files    []*multipart.FileHeader `json:"-"`
}

// LessonUpdateRequest is the body of PUT /api/lessons/:id.
type LessonUpdateRequest struct {
	Title   string  `json:"title" validate:"required,max=255"`
	Content *string `json:"content"`
}

// ReorderRequest is the body of the reorder endpoint.
type ReorderRequest struct {
	Order []struct {
		ID uint `json:"id" validate:"required,gt=0"`
	} `json:"order" validate:"required,min=1,dive"`
}

// IDs returns the lesson ids in their requested order.
func (r *ReorderRequest) IDs() []uint {
	ids := make([]uint, len(r.Order))
	for i, item := range r.Order {
		ids[i] = item.ID
	}
	return ids
}

// uploadError answers 413 for oversize files and 400 for everything else.
func uploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, utils.ErrFileTooLarge) {
		return middleware.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, err.Error())
	}
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
}

// checkFiles applies the count limit, whitelist and per-file ceiling to every
// file before anything is written.
func checkFiles(c *fiber.Ctx, files []*multipart.FileHeader) error {
	if max := config.AppConfig.MaxUploadFiles; max > 0 && len(files) > max {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Too many files in one request!")
	}
	for _, f := range files {
		if err := utils.CheckUpload(f, config.AppConfig.MaxUploadBytes()); err != nil {
			return uploadError(c, err)
		}
	}
	return nil
}

// CreateLesson validates a multipart (or plain form/JSON) lesson creation
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)

		if form, err := c.MultipartForm(); err == nil {
			reqData.CourseID, _ = validators.ParseID(first(form.Value["course_id"]))
			reqData.Title = first(form.Value["title"])
			reqData.Content = first(form.Value["content"])
			reqData.Files = form.File["files"]
		} else {
			body := new(struct {
				CourseID json.Number `json:"course_id" form:"course_id"`
				Title    string      `json:"title" form:"title"`
				Content  string      `json:"content" form:"content"`
			})
			if err := c.BodyParser(body); err != nil {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
			}
			reqData.CourseID, _ = validators.ParseID(body.CourseID.String())
			reqData.Title = body.Title
			reqData.Content = body.Content
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}
		if err := checkFiles(c, reqData.Files); err != nil {
			return err
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// AttachFiles validates POST /api/lessons/:id/files
func AttachFiles() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, ok := validators.ParseID(c.Params("id"))
		if !ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Lesson ID!")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Expected a multipart form!")
		}
		files := form.File["files"]
		if len(files) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No files uploaded!")
		}
		if err := checkFiles(c, files); err != nil {
			return err
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedFiles", files)
		return c.Next()
	}
}

// UpdateLesson validates PUT /api/lessons/:id
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, ok := validators.ParseID(c.Params("id"))
		if !ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Lesson ID!")
		}

		reqData := new(LessonUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// LessonID validates the :id parameter of lesson routes
func LessonID() fiber.Handler {
	return validators.IDParam("id", "lessonID", "Lesson")
}

// FileID validates the :id parameter of file routes
func FileID() fiber.Handler {
	return validators.IDParam("id", "fileID", "File")
}

// ReorderLessons validates POST /api/courses/:id/reorder-lessons
func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParseID(c.Params("id"))
		if !ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Course ID!")
		}

		reqData := new(ReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		if err := validators.Struct(reqData); err != nil {
			return middleware.ValidatorErrorResponse(c, err)
		}

		seen := make(map[uint]bool, len(reqData.Order))
		for _, id := range reqData.IDs() {
			if seen[id] {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Duplicate lesson ID in order!")
			}
			seen[id] = true
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedOrder", reqData.IDs())
		return c.Next()
	}
}

// CoverUpload validates POST /api/upload: exactly one image.
func CoverUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Expected a multipart form!")
		}
		files := append(form.File["files"], form.File["file"]...)
		if len(files) != 1 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Upload exactly one image!")
		}
		if err := utils.CheckUpload(files[0], config.AppConfig.MaxUploadBytes()); err != nil {
			return uploadError(c, err)
		}
		if utils.ClassifyFileType(files[0].Filename) != models.FileTypeImage {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cover must be an image!")
		}

		c.Locals("validatedFile", files[0])
		return c.Next()
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

package controllers

import (
	"errors"
	"log"
	"mime/multipart"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCourses returns every course as a bare array
func ListCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := database.Database.Db.Order("id asc").Find(&courses).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(courses)
}

// CreateCourse creates a new course
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*validators.CourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		ImageURL:    reqData.ImageURL,
		Category:    reqData.Category,
		Duration:    reqData.Duration,
		Level:       reqData.Level,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{"id": course.ID})
}

// UpdateCourse overwrites every editable field of a course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCourse").(*validators.CourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return notFoundOr500(c, err, "Course not found!")
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.ImageURL = reqData.ImageURL
	course.Category = reqData.Category
	course.Duration = reqData.Duration
	course.Level = reqData.Level

	if err := db.Save(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", nil)
}

// GetCourse returns a course with its ordered lessons and their files
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return notFoundOr500(c, err, "Not found")
	}

	var lessons []models.Lesson
	if err := db.Where("course_id = ?", courseID).Order("order_index asc, id asc").Find(&lessons).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	result := make([]models.LessonWithFiles, len(lessons))
	if len(lessons) == 0 {
		return c.JSON(fiber.Map{"course": course, "lessons": result})
	}

	ids := make([]uint, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}

	var files []models.LessonFile
	if err := db.Where("lesson_id IN ?", ids).Order("id asc").Find(&files).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	byLesson := make(map[uint][]models.LessonFile, len(lessons))
	for _, f := range files {
		f.FilePath = utils.NormalizeFilePath(f.FilePath)
		byLesson[f.LessonID] = append(byLesson[f.LessonID], f)
	}

	for i, l := range lessons {
		lessonFiles := byLesson[l.ID]
		if lessonFiles == nil {
			lessonFiles = []models.LessonFile{}
		}
		result[i] = models.LessonWithFiles{Lesson: l, Files: lessonFiles}
	}

	return c.JSON(fiber.Map{"course": course, "lessons": result})
}

// DeleteCourse removes a course, its lessons, their files and the bytes on disk
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	paths, err := deleteCourseRows(database.Database.Db, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	utils.DeleteStoredFiles(paths, config.AppConfig.UploadDir)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// UploadCover stores a course cover image and returns its URL
func UploadCover(c *fiber.Ctx) error {
	file, ok := c.Locals("validatedFile").(*multipart.FileHeader)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	url, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("[FILESTORE] Error saving cover %s: %v", file.Filename, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "", fiber.Map{"url": url})
}

func notFoundOr500(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, notFound)
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
}

package controllers

import (
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

// CreateLesson creates a lesson and stores the files sent with it
func CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*validators.LessonRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return notFoundOr500(c, err, "Course not found!")
	}

	uploadDir := config.AppConfig.UploadDir
	files, err := saveLessonFiles(reqData.Files, uploadDir)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	lesson := models.Lesson{
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Content:  reqData.Content,
	}

	tx := db.Begin()

	var maxOrder int
	if err := tx.Model(&models.Lesson{}).Where("course_id = ?", reqData.CourseID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder).Error; err != nil {
		tx.Rollback()
		utils.DeleteStoredFiles(filePaths(files), uploadDir)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	lesson.OrderIndex = maxOrder + 1

	if err := tx.Create(&lesson).Error; err != nil {
		tx.Rollback()
		utils.DeleteStoredFiles(filePaths(files), uploadDir)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := insertLessonFiles(tx, lesson.ID, files); err != nil {
		tx.Rollback()
		utils.DeleteStoredFiles(filePaths(files), uploadDir)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := tx.Commit().Error; err != nil {
		utils.DeleteStoredFiles(filePaths(files), uploadDir)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", fiber.Map{
		"id":    lesson.ID,
		"files": files,
	})
}

// UpdateLesson changes a lesson's title and, when sent, its content
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)
	reqData, ok := c.Locals("validatedLessonUpdate").(*validators.LessonUpdateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return notFoundOr500(c, err, "Lesson not found!")
	}

	lesson.Title = reqData.Title
	if reqData.Content != nil {
		lesson.Content = *reqData.Content
	}
	if err := db.Save(&lesson).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", nil)
}

// AttachLessonFiles adds files to an existing lesson without touching the old ones
func AttachLessonFiles(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)
	uploads, ok := c.Locals("validatedFiles").([]*multipart.FileHeader)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return notFoundOr500(c, err, "Lesson not found!")
	}

	uploadDir := config.AppConfig.UploadDir
	files, err := saveLessonFiles(uploads, uploadDir)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return insertLessonFiles(tx, lesson.ID, files)
	}); err != nil {
		utils.DeleteStoredFiles(filePaths(files), uploadDir)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Files uploaded successfully!", fiber.Map{"files": files})
}

// DeleteLesson removes a lesson together with its files
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)

	paths, err := deleteLessonRows(database.Database.Db, lessonID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	utils.DeleteStoredFiles(paths, config.AppConfig.UploadDir)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// DeleteFile removes one attachment row and its bytes
func DeleteFile(c *fiber.Ctx) error {
	fileID := c.Locals("fileID").(uint)
	db := database.Database.Db

	var file models.LessonFile
	if err := db.First(&file, fileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "File already deleted.", nil)
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := db.Delete(&models.LessonFile{}, fileID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	utils.DeleteStoredFiles([]string{file.FilePath}, config.AppConfig.UploadDir)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File deleted successfully!", nil)
}

// ReorderLessons sets order_index to each lesson's position in the request, atomically
func ReorderLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	ids, ok := c.Locals("validatedOrder").([]uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return notFoundOr500(c, err, "Course not found!")
	}

	tx := db.Begin()

	var owned int64
	if err := tx.Model(&models.Lesson{}).Where("course_id = ? AND id IN ?", courseID, ids).Count(&owned).Error; err != nil {
		tx.Rollback()
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	if owned != int64(len(ids)) {
		tx.Rollback()
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Order contains lessons that do not belong to this course!")
	}

	for index, id := range ids {
		if err := tx.Model(&models.Lesson{}).Where("id = ?", id).Update("order_index", index).Error; err != nil {
			tx.Rollback()
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}

func insertLessonFiles(tx *gorm.DB, lessonID uint, files []models.LessonFile) error {
	if len(files) == 0 {
		return nil
	}
	for i := range files {
		files[i].LessonID = lessonID
	}
	return tx.Create(&files).Error
}

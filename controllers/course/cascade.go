package controllers

import (
	"log"
	"mime/multipart"

	"lms/models"
	"lms/utils"

	"gorm.io/gorm"
)

// Cascading deletes remove rows in one transaction and hand back the stored
// paths; callers delete the bytes only after the commit so a rolled back
// delete never leaves a row pointing at a missing file.

func deleteCourseRows(db *gorm.DB, courseID uint) ([]string, error) {
	var paths []string

	err := db.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&models.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}

		if len(lessonIDs) > 0 {
			var err error
			if paths, err = deleteLessonContents(tx, lessonIDs); err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, courseID).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func deleteLessonRows(db *gorm.DB, lessonID uint) ([]string, error) {
	var paths []string

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if paths, err = deleteLessonContents(tx, []uint{lessonID}); err != nil {
			return err
		}
		return tx.Delete(&models.Lesson{}, lessonID).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// deleteLessonContents drops the file rows and completion marks of the given lessons.
func deleteLessonContents(tx *gorm.DB, lessonIDs []uint) ([]string, error) {
	var paths []string
	if err := tx.Model(&models.LessonFile{}).Where("lesson_id IN ?", lessonIDs).Pluck("file_path", &paths).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.LessonFile{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.UserProgress{}).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

// saveLessonFiles writes every upload to disk. If one write fails the ones
// already written are removed again.
func saveLessonFiles(files []*multipart.FileHeader, destDir string) ([]models.LessonFile, error) {
	saved := make([]models.LessonFile, 0, len(files))
	for _, fh := range files {
		path, err := utils.SaveUploadedFile(fh, destDir)
		if err != nil {
			log.Printf("[FILESTORE] Error saving %s: %v", fh.Filename, err)
			utils.DeleteStoredFiles(filePaths(saved), destDir)
			return nil, err
		}
		saved = append(saved, models.LessonFile{
			FilePath:     path,
			FileType:     utils.ClassifyFileType(fh.Filename),
			OriginalName: fh.Filename,
		})
	}
	return saved, nil
}

func filePaths(files []models.LessonFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.FilePath
	}
	return paths
}

package models

import "time"

// File types, derived from the upload extension.
const (
	FileTypeVideo = "video"
	FileTypePDF   = "pdf"
	FileTypeImage = "image"
	FileTypePPT   = "ppt"
	FileTypeDoc   = "doc"
)

// LessonFile is an attachment stored in the upload directory.
type LessonFile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	LessonID     uint      `json:"lesson_id" gorm:"index;not null"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	OriginalName string    `json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}

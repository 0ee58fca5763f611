package models

import "time"

type Lesson struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	Title      string    `json:"title"`
	Content    string    `json:"content" gorm:"type:text"`
	OrderIndex int       `json:"order_index" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LessonWithFiles is a lesson as returned by the course player endpoint.
type LessonWithFiles struct {
	Lesson
	Files []LessonFile `json:"files"`
}

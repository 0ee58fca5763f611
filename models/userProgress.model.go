package models

import "time"

// UserProgress marks a lesson as completed by a user. Absence means not completed.
type UserProgress struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID    uint      `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson;index"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// DashboardCourse is one enrolled course on a student's dashboard.
type DashboardCourse struct {
	Course
	EnrolledAt       time.Time `json:"enrolled_at"`
	TotalLessons     int64     `json:"total_lessons"`
	CompletedLessons int64     `json:"completed_lessons"`
	Progress         int       `json:"progress"`
}

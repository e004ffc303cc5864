package models

import "time"

// Progress is the per-user, per-lesson completion record.
// CourseID mirrors the lesson's course at creation time.
type Progress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"userId"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Progress    int        `gorm:"default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	TimeSpent   int        `gorm:"default:0" json:"timeSpent"` // seconds
	CompletedAt *time.Time `json:"completedAt"`
	Course      *Course    `json:"Course,omitempty"`
	Lesson      *Lesson    `json:"Lesson,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Progress) TableName() string { return "progresses" }

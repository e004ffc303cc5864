package models

import "time"

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

type Enrollment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID    uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	Status      string     `gorm:"default:active;not null" json:"status"`
	EnrolledAt  time.Time  `gorm:"not null" json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Course      *Course    `json:"Course,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

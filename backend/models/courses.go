package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"

	DefaultCategory = "General"
)

func ValidCourseLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Level       string    `gorm:"default:Beginner" json:"level"` // Beginner, Intermediate, Advanced
	Duration    string    `json:"duration"`
	Category    string    `gorm:"default:General" json:"category"`
	Image       *string   `json:"image"`
	Lessons     []Lesson  `gorm:"constraint:OnDelete:CASCADE" json:"Lessons,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Lesson struct {
	ID         uint                                   `gorm:"primaryKey" json:"id"`
	CourseID   uint                                   `gorm:"index;not null" json:"courseId"`
	Title      string                                 `gorm:"not null" json:"title"`
	Content    string                                 `gorm:"type:text" json:"content"`
	Order      int                                    `gorm:"column:order;not null" json:"order"`
	Duration   string                                 `json:"duration"`
	VideoURL   *string                                `json:"videoUrl"`
	Thumbnail  *string                                `json:"thumbnail"`
	Transcript datatypes.JSONSlice[TranscriptSegment] `json:"transcript"`
	Data       datatypes.JSONType[LessonData]         `json:"data"`
	Course     *Course                                `json:"Course,omitempty"`
	Progresses []Progress                             `gorm:"constraint:OnDelete:CASCADE" json:"Progresses,omitempty"`
	CreatedAt  time.Time                              `json:"createdAt"`
	UpdatedAt  time.Time                              `json:"updatedAt"`
}

type TranscriptSegment struct {
	ID        int     `json:"id"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
	Speaker   string  `json:"speaker,omitempty"`
}

type VocabularyItem struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Example string `json:"example,omitempty"`
}

// LessonData is the structured bag attached to a lesson. The quiz shape is owned by the client.
type LessonData struct {
	Vocabulary []VocabularyItem `json:"vocabulary,omitempty"`
	Quiz       json.RawMessage  `json:"quiz,omitempty"`
}

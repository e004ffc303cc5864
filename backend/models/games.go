package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GameWordle    = "wordle"
	GameHangman   = "hangman"
	GameScramble  = "scramble"
	GameCrossword = "crossword"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var GameTypes = []string{GameWordle, GameHangman, GameScramble, GameCrossword}

// NormalizeGameType returns the canonical game type, accepting the legacy
// "word-scramble" spelling. ok is false for unknown types.
func NormalizeGameType(gameType string) (string, bool) {
	switch gameType {
	case GameWordle, GameHangman, GameScramble, GameCrossword:
		return gameType, true
	case "word-scramble":
		return GameScramble, true
	}
	return "", false
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type GameScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	GameType  string    `gorm:"index;not null" json:"gameType"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	Level     *string   `json:"level"`
	TimeSpent int       `gorm:"default:0" json:"timeSpent"` // seconds
	User      *User     `json:"User,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GameQuestion is seeded reference data. Content shape depends on GameType:
// {word}, {word, clue}, {word, hint} or a full crossword {gridSize, clues}.
type GameQuestion struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	GameType   string         `gorm:"index;not null" json:"gameType"`
	Content    datatypes.JSON `gorm:"not null" json:"content"`
	Difficulty string         `gorm:"default:medium;not null" json:"difficulty"`
	IsActive   bool           `gorm:"default:true" json:"isActive"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

package services

import (
	"context"
	"fmt"

	"englishhub/backend/models"
	"englishhub/backend/repository"
	"englishhub/backend/utils"

	"gorm.io/gorm"
)

const (
	// LessonXP is granted once per lesson, on its first completion.
	LessonXP = 50

	// Lesson completion and game scores level users on different scales.
	LessonLevelThreshold = 1000
	GameLevelThreshold   = 500
)

// Level is floor(points/threshold) + 1.
func Level(points, threshold int) int {
	if points < 0 || threshold <= 0 {
		return 1
	}
	return points/threshold + 1
}

type LessonReward struct {
	XPAdded  int  `json:"xpAdded"`
	NewLevel int  `json:"newLevel"`
	LevelUp  bool `json:"levelUp"`
}

type GameReward struct {
	XPAdded     int  `json:"xpAdded"`
	TotalPoints int  `json:"totalPoints"`
	OldLevel    int  `json:"oldLevel"`
	NewLevel    int  `json:"newLevel"`
	IsLevelUp   bool `json:"isLevelUp"`
}

type StatsView struct {
	LessonsCompleted      int    `json:"lessonsCompleted"`
	TotalTimeSpent        string `json:"totalTimeSpent"`
	TotalTimeSpentSeconds int    `json:"totalTimeSpentSeconds"`
	CurrentStreak         int    `json:"currentStreak"`
	LongestStreak         int    `json:"longestStreak"`
	Points                int    `json:"points"`
	Level                 int    `json:"level"`
}

// GamificationService owns every write to UserStats. Writers must run inside
// a transaction; the stats row is locked before it is read.
type GamificationService struct {
	store  *repository.Store
	logger *utils.Logger
}

func NewGamificationService(store *repository.Store, logger *utils.Logger) *GamificationService {
	return &GamificationService{store: store, logger: logger}
}

func (s *GamificationService) OnLessonFirstCompletion(ctx context.Context, tx *gorm.DB, userID uint, xp, timeSpentDelta int) (*LessonReward, error) {
	stats, err := s.store.Stats.EnsureForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock stats: %w", err)
	}

	reward := awardLesson(stats, xp, timeSpentDelta)
	if err := s.store.Stats.Save(ctx, tx, stats); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}

	if reward.LevelUp {
		s.logger.Info("level up", "user_id", userID, "level", reward.NewLevel, "source", "lesson")
	}
	return &reward, nil
}

func (s *GamificationService) OnGameScoreSubmitted(ctx context.Context, tx *gorm.DB, userID uint, score int) (*GameReward, error) {
	stats, err := s.store.Stats.EnsureForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock stats: %w", err)
	}

	reward := awardGameScore(stats, score)
	if err := s.store.Stats.Save(ctx, tx, stats); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}

	if reward.IsLevelUp {
		s.logger.Info("level up", "user_id", userID, "level", reward.NewLevel, "source", "game")
	}
	return &reward, nil
}

// AddTimeSpent accumulates study time without granting XP and returns the
// user's lesson level.
func (s *GamificationService) AddTimeSpent(ctx context.Context, tx *gorm.DB, userID uint, seconds int) (int, error) {
	stats, err := s.store.Stats.EnsureForUpdate(ctx, tx, userID)
	if err != nil {
		return 0, fmt.Errorf("lock stats: %w", err)
	}
	if seconds > 0 {
		stats.TotalTimeSpent += seconds
		if err := s.store.Stats.Save(ctx, tx, stats); err != nil {
			return 0, fmt.Errorf("save stats: %w", err)
		}
	}
	return Level(stats.Points, LessonLevelThreshold), nil
}

func (s *GamificationService) GetStats(ctx context.Context, userID uint) (*StatsView, error) {
	stats, err := s.store.Stats.Ensure(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	view := statsView(stats)
	return &view, nil
}

func awardLesson(stats *models.UserStats, xp, timeSpent int) LessonReward {
	previous := Level(stats.Points, LessonLevelThreshold)

	stats.Points += xp
	stats.LessonsCompleted++
	if timeSpent > 0 {
		stats.TotalTimeSpent += timeSpent
	}

	level := Level(stats.Points, LessonLevelThreshold)
	return LessonReward{XPAdded: xp, NewLevel: level, LevelUp: level > previous}
}

func awardGameScore(stats *models.UserStats, score int) GameReward {
	old := Level(stats.Points, GameLevelThreshold)
	stats.Points += score
	level := Level(stats.Points, GameLevelThreshold)

	return GameReward{
		XPAdded:     score,
		TotalPoints: stats.Points,
		OldLevel:    old,
		NewLevel:    level,
		IsLevelUp:   level > old,
	}
}

func statsView(stats *models.UserStats) StatsView {
	return StatsView{
		LessonsCompleted:      stats.LessonsCompleted,
		TotalTimeSpent:        fmt.Sprintf("%.1f hours", round1(float64(stats.TotalTimeSpent)/3600)),
		TotalTimeSpentSeconds: stats.TotalTimeSpent,
		CurrentStreak:         stats.CurrentStreak,
		LongestStreak:         stats.LongestStreak,
		Points:                stats.Points,
		Level:                 Level(stats.Points, LessonLevelThreshold),
	}
}

package repository

import (
	"context"

	"englishhub/backend/models"

	"gorm.io/gorm"
)

// LeaderboardRow is one (user, game type) group of the leaderboard.
type LeaderboardRow struct {
	UserID      uint
	GameType    string
	MaxScore    int
	GamesPlayed int
}

type GameRepo interface {
	CreateScore(ctx context.Context, tx *gorm.DB, score *models.GameScore) error
	// RandomQuestions picks up to limit active questions in random order.
	// An empty difficulty matches every difficulty.
	RandomQuestions(ctx context.Context, tx *gorm.DB, gameType, difficulty string, limit int) ([]models.GameQuestion, error)
	// Leaderboard groups scores by (user, game type), best score first.
	// An empty gameType ranks every game.
	Leaderboard(ctx context.Context, tx *gorm.DB, gameType string, limit int) ([]LeaderboardRow, error)
	ListScores(ctx context.Context, tx *gorm.DB, userID uint, gameType string, limit int) ([]models.GameScore, error)
}

type gameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return &gameRepo{db: db}
}

func (r *gameRepo) CreateScore(ctx context.Context, tx *gorm.DB, score *models.GameScore) error {
	return conn(ctx, r.db, tx).Omit("User").Create(score).Error
}

func (r *gameRepo) RandomQuestions(ctx context.Context, tx *gorm.DB, gameType, difficulty string, limit int) ([]models.GameQuestion, error) {
	q := conn(ctx, r.db, tx).
		Where("game_type = ? AND is_active = ?", gameType, true)
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var questions []models.GameQuestion
	if err := q.Order("RANDOM()").Limit(limit).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *gameRepo) Leaderboard(ctx context.Context, tx *gorm.DB, gameType string, limit int) ([]LeaderboardRow, error) {
	q := conn(ctx, r.db, tx).
		Model(&models.GameScore{}).
		Select("user_id, game_type, MAX(score) AS max_score, COUNT(id) AS games_played")
	if gameType != "" {
		q = q.Where("game_type = ?", gameType)
	}

	var rows []LeaderboardRow
	if err := q.
		Group("user_id, game_type").
		Order("max_score DESC").
		Order("user_id").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gameRepo) ListScores(ctx context.Context, tx *gorm.DB, userID uint, gameType string, limit int) ([]models.GameScore, error) {
	q := conn(ctx, r.db, tx).Where("user_id = ?", userID)
	if gameType != "" {
		q = q.Where("game_type = ?", gameType)
	}

	var scores []models.GameScore
	if err := q.
		Order("score DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

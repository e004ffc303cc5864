package services

import (
	"context"
	"fmt"
	"strings"

	"englishhub/backend/apperr"
	"englishhub/backend/models"
	"englishhub/backend/repository"
	"englishhub/backend/utils"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultQuestionBatch = 10
	MaxQuestionBatch     = 100

	leaderboardSize = 10
	scoreHistoryCap = 50
)

var msgInvalidGameType = "invalid game type, use one of: " + strings.Join(models.GameTypes, ", ")

type QuestionView struct {
	ID         uint           `json:"id"`
	GameType   string         `json:"gameType"`
	Difficulty string         `json:"difficulty"`
	Content    datatypes.JSON `json:"content"`
}

type ScoreInput struct {
	GameType  string  `json:"gameType"`
	Score     *int    `json:"score"`
	Level     *string `json:"level"`
	TimeSpent *int    `json:"timeSpent"`
}

type ScoreResult struct {
	GameScore *models.GameScore `json:"gameScore"`
	GameReward
	Msg string `json:"msg"`
}

type LeaderboardEntry struct {
	UserID      uint               `json:"userId"`
	GameType    string             `json:"gameType"`
	MaxScore    int                `json:"maxScore"`
	GamesPlayed int                `json:"gamesPlayed"`
	User        *models.PublicUser `json:"User"`
}

type GameService struct {
	store        *repository.Store
	gamification *GamificationService
	logger       *utils.Logger
}

func NewGameService(store *repository.Store, gamification *GamificationService, logger *utils.Logger) *GameService {
	return &GameService{store: store, gamification: gamification, logger: logger}
}

func (s *GameService) GetRandomQuestion(ctx context.Context, gameType, difficulty string) (*QuestionView, error) {
	questions, err := s.questions(ctx, gameType, difficulty, 1)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("no questions for game %s", gameType))
	}
	return &questions[0], nil
}

// GetQuestionBatch returns up to limit random questions. Limits outside
// 1..MaxQuestionBatch fall back to DefaultQuestionBatch.
func (s *GameService) GetQuestionBatch(ctx context.Context, gameType, difficulty string, limit int) ([]QuestionView, error) {
	if limit < 1 || limit > MaxQuestionBatch {
		limit = DefaultQuestionBatch
	}
	return s.questions(ctx, gameType, difficulty, limit)
}

func (s *GameService) questions(ctx context.Context, gameType, difficulty string, limit int) ([]QuestionView, error) {
	canonical, ok := models.NormalizeGameType(gameType)
	if !ok {
		return nil, apperr.Validation(msgInvalidGameType)
	}
	if !models.ValidDifficulty(difficulty) {
		difficulty = ""
	}

	rows, err := s.store.Games.RandomQuestions(ctx, nil, canonical, difficulty, limit)
	if err != nil {
		return nil, fmt.Errorf("pick questions: %w", err)
	}
	return lo.Map(rows, func(q models.GameQuestion, _ int) QuestionView {
		return QuestionView{ID: q.ID, GameType: q.GameType, Difficulty: q.Difficulty, Content: q.Content}
	}), nil
}

// SubmitScore appends the score and credits it as XP in one transaction.
func (s *GameService) SubmitScore(ctx context.Context, userID uint, in ScoreInput) (*ScoreResult, error) {
	if in.GameType == "" || in.Score == nil {
		return nil, apperr.Validation("gameType and score are required")
	}
	gameType, ok := models.NormalizeGameType(in.GameType)
	if !ok {
		return nil, apperr.Validation(msgInvalidGameType)
	}
	if *in.Score < 0 {
		return nil, apperr.Validation("score must not be negative")
	}

	score := models.GameScore{
		UserID:    userID,
		GameType:  gameType,
		Score:     *in.Score,
		Level:     emptyToNil(in.Level),
		TimeSpent: intOrZero(in.TimeSpent),
	}

	var reward *GameReward
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.store.Games.CreateScore(ctx, tx, &score); err != nil {
			return fmt.Errorf("save score: %w", err)
		}
		var err error
		reward, err = s.gamification.OnGameScoreSubmitted(ctx, tx, userID, score.Score)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game score saved",
		"user_id", userID,
		"game_type", gameType,
		"score", score.Score,
		"total_points", reward.TotalPoints,
	)

	msg := "score saved successfully"
	if reward.IsLevelUp {
		msg = fmt.Sprintf("Level up! You are now level %d!", reward.NewLevel)
	}
	return &ScoreResult{GameScore: &score, GameReward: *reward, Msg: msg}, nil
}

// Leaderboard ranks (user, game type) pairs by best score. An empty gameType
// ranks every game.
func (s *GameService) Leaderboard(ctx context.Context, gameType string) ([]LeaderboardEntry, error) {
	if canonical, ok := models.NormalizeGameType(gameType); ok {
		gameType = canonical
	}

	rows, err := s.store.Games.Leaderboard(ctx, nil, gameType, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	ids := lo.Uniq(lo.Map(rows, func(r repository.LeaderboardRow, _ int) uint { return r.UserID }))
	users, err := s.store.Users.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboard users: %w", err)
	}
	byID := lo.KeyBy(users, func(u models.User) uint { return u.ID })

	return lo.Map(rows, func(r repository.LeaderboardRow, _ int) LeaderboardEntry {
		entry := LeaderboardEntry{
			UserID:      r.UserID,
			GameType:    r.GameType,
			MaxScore:    r.MaxScore,
			GamesPlayed: r.GamesPlayed,
		}
		if u, ok := byID[r.UserID]; ok {
			public := u.Public()
			entry.User = &public
		}
		return entry
	}), nil
}

// ListScores returns the user's best scores first.
func (s *GameService) ListScores(ctx context.Context, userID uint, gameType string) ([]models.GameScore, error) {
	if canonical, ok := models.NormalizeGameType(gameType); ok {
		gameType = canonical
	}
	scores, err := s.store.Games.ListScores(ctx, nil, userID, gameType, scoreHistoryCap)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}

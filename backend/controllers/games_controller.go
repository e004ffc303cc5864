package controllers

import (
	"englishhub/backend/services"
	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type GamesController struct {
	Games *services.GameService
}

func NewGamesController(games *services.GameService) *GamesController {
	return &GamesController{Games: games}
}

// GetQuestion godoc
// @Summary Random game question
// @Tags games
// @Produce json
// @Param gameType path string true "wordle, hangman, scramble or crossword"
// @Param difficulty query string false "easy, medium or hard"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /games/{gameType}/question [get]
func (gc *GamesController) GetQuestion(c *fiber.Ctx) error {
	question, err := gc.Games.GetRandomQuestion(c.UserContext(), c.Params("gameType"), c.Query("difficulty"))
	if err != nil {
		return err
	}
	return utils.Success(c, question)
}

func (gc *GamesController) GetQuestions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultQuestionBatch)

	questions, err := gc.Games.GetQuestionBatch(c.UserContext(), c.Params("gameType"), c.Query("difficulty"), limit)
	if err != nil {
		return err
	}
	return utils.Success(c, questions)
}

// SubmitScore godoc
// @Summary Save a game score
// @Description Appends the score and credits it as XP
// @Tags games
// @Accept json
// @Produce json
// @Param request body services.ScoreInput true "Score"
// @Success 201 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /games/score [post]
func (gc *GamesController) SubmitScore(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var input services.ScoreInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := gc.Games.SubmitScore(c.UserContext(), id.ID, input)
	if err != nil {
		return err
	}
	return utils.Created(c, result)
}

func (gc *GamesController) GetScores(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	scores, err := gc.Games.ListScores(c.UserContext(), id.ID, c.Query("gameType"))
	if err != nil {
		return err
	}
	return utils.Success(c, scores)
}

func (gc *GamesController) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := gc.Games.Leaderboard(c.UserContext(), c.Query("gameType"))
	if err != nil {
		return err
	}
	return utils.Success(c, entries)
}

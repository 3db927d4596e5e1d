package controller

import (
	"elearning_backend/internal/model"
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary 获取测验
// @Description 返回测验标题与题目，不包含正确答案
// @Tags 测验
// @Produce json
// @Param quizId path string true "测验ID"
// @Success 200 {object} util.Response{data=model.ClientQuiz}
// @Failure 404 {object} util.Response
// @Router /quiz/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID := ctx.Param("quizId")

	quiz, err := c.QuizService.GetClientQuiz(ctx.Request.Context(), quizID)
	if err != nil {
		c.handleQuizError(ctx, quizID, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 提交测验
// @Description 评分并记录结果，得分率不低于 70% 为合格
// @Tags 测验
// @Accept json
// @Produce json
// @Param quizId path string true "测验ID"
// @Param submission body model.QuizSubmission true "答案"
// @Success 200 {object} util.Response{data=model.GradeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quiz/{quizId}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	quizID := ctx.Param("quizId")

	var submission model.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), quizID, submission)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionShape) {
			util.BadRequest(ctx, err.Error())
			return
		}
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
			return
		}
		c.handleQuizError(ctx, quizID, err)
		return
	}

	util.Success(ctx, result)
}

func (c *QuizController) handleQuizError(ctx *gin.Context, quizID string, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, "Quiz not found")
	case errors.Is(err, util.ErrQuizMalformed):
		logger.Log.Error("Invalid quiz data", zap.String("quiz_id", quizID), zap.Error(err))
		util.NotFound(ctx, "Quiz not found or invalid")
	default:
		util.LogInternalError(ctx, err)
	}
}

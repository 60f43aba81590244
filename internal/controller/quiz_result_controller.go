package controller

import (
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizResultController struct {
	ResultService *service.QuizResultService
}

func NewQuizResultController(resultService *service.QuizResultService) *QuizResultController {
	return &QuizResultController{ResultService: resultService}
}

// @Summary Record a quiz attempt
// @Description Appends one graded attempt for the caller
// @Tags quiz-results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RecordAttemptInput true "quiz id and score"
// @Success 201 {object} util.Response{data=model.QuizResultView}
// @Router /api/quiz-results [post]
func (c *QuizResultController) RecordAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.RecordAttemptInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.ResultService.RecordAttempt(user.UserID, &input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Best attempt on a quiz
// @Description Highest score, earliest submission winning ties
// @Tags quiz-results
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz ID"
// @Success 200 {object} util.Response{data=model.QuizResultView}
// @Router /api/quizzes/{id}/results/best [get]
func (c *QuizResultController) BestAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	if quizID == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	view, err := c.ResultService.BestAttempt(user.UserID, quizID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Attempt history on a quiz
// @Description The caller's attempts, newest first
// @Tags quiz-results
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizResultView}
// @Router /api/quizzes/{id}/results [get]
func (c *QuizResultController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	if quizID == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	views, err := c.ResultService.History(user.UserID, quizID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Get a quiz result
// @Tags quiz-results
// @Produce json
// @Security BearerAuth
// @Param id path int true "result ID"
// @Success 200 {object} util.Response{data=model.QuizResultView}
// @Router /api/quiz-results/{id} [get]
func (c *QuizResultController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid result id")
		return
	}

	view, err := c.ResultService.GetByID(id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary List the caller's quiz results
// @Tags quiz-results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizResultView}
// @Router /api/quiz-results/mine [get]
func (c *QuizResultController) ByUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.ResultService.ByUser(user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List all results on a quiz
// @Tags quiz-results
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizResultView}
// @Router /api/quizzes/{id}/results/all [get]
func (c *QuizResultController) ByQuiz(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))
	if quizID == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	views, err := c.ResultService.ByQuiz(quizID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Delete a quiz result
// @Tags quiz-results
// @Produce json
// @Security BearerAuth
// @Param id path int true "result ID"
// @Success 204
// @Router /api/quiz-results/{id} [delete]
func (c *QuizResultController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid result id")
		return
	}

	if err := c.ResultService.Delete(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

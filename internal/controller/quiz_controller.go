package controller

import (
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary Create a quiz
// @Description Creates a quiz with nested questions and answers; one quiz per module
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizInput true "quiz tree"
// @Success 201 {object} util.Response{data=model.QuizView}
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var input service.CreateQuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.Create(&input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz ID"
// @Success 200 {object} util.Response{data=model.QuizView}
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	view, err := c.QuizService.GetByID(id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Get the quiz of a module
// @Tags quizzes
// @Produce json
// @Param id path int true "module ID"
// @Success 200 {object} util.Response{data=model.QuizView}
// @Router /api/modules/{id}/quiz [get]
func (c *QuizController) GetByModule(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("id"))
	if moduleID == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	view, err := c.QuizService.GetByModule(moduleID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Update a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz ID"
// @Param body body service.UpdateQuizInput true "fields to update"
// @Success 200 {object} util.Response{data=model.QuizView}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var input service.UpdateQuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.Update(id, &input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Delete a quiz
// @Description Deletes the quiz with its questions, answers and results
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz ID"
// @Success 204
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	if err := c.QuizService.Delete(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary Add a question
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz ID"
// @Param body body service.QuestionInput true "question fields"
// @Success 201 {object} util.Response{data=model.QuizQuestionView}
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.AddQuestion(id, &input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Update a question
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question ID"
// @Param body body service.QuestionInput true "question fields"
// @Success 200 {object} util.Response{data=model.QuizQuestionView}
// @Router /api/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.UpdateQuestion(id, &input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Delete a question
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "question ID"
// @Success 204
// @Router /api/questions/{id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.QuizService.DeleteQuestion(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary Add an answer
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question ID"
// @Param body body service.AnswerInput true "answer fields"
// @Success 201 {object} util.Response{data=model.QuizAnswerView}
// @Router /api/questions/{id}/answers [post]
func (c *QuizController) AddAnswer(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var input service.AnswerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.AddAnswer(id, &input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Update an answer
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "answer ID"
// @Param body body service.AnswerInput true "answer fields"
// @Success 200 {object} util.Response{data=model.QuizAnswerView}
// @Router /api/answers/{id} [put]
func (c *QuizController) UpdateAnswer(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid answer id")
		return
	}

	var input service.AnswerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.UpdateAnswer(id, &input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Delete an answer
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "answer ID"
// @Success 204
// @Router /api/answers/{id} [delete]
func (c *QuizController) DeleteAnswer(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid answer id")
		return
	}

	if err := c.QuizService.DeleteAnswer(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

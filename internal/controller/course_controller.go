package controller

import (
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary Create a course
// @Description Creates a course owned by the authenticated instructor, DRAFT by default
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCourseInput true "course fields"
// @Success 201 {object} util.Response{data=model.CourseView}
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.CourseService.Create(&input, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Get a course
// @Description Returns one course with its modules; drafts are visible to their instructor only
// @Tags courses
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Router /api/courses/{id} [get]
func (c *CourseController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	view, err := c.CourseService.GetByID(id, util.UserIDFromContext(ctx), true)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary List courses
// @Description Lists published courses plus the caller's own drafts
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	views, err := c.CourseService.List(util.UserIDFromContext(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List courses by instructor
// @Tags courses
// @Produce json
// @Param instructorId path string true "instructor ID"
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses/instructor/{instructorId} [get]
func (c *CourseController) ByInstructor(ctx *gin.Context) {
	instructorID := ctx.Param("instructorId")
	if instructorID == "" {
		util.BadRequest(ctx, "invalid instructor id")
		return
	}

	views, err := c.CourseService.ByInstructor(instructorID, util.UserIDFromContext(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List courses by category
// @Tags courses
// @Produce json
// @Param category path string true "category"
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses/category/{category} [get]
func (c *CourseController) ByCategory(ctx *gin.Context) {
	views, err := c.CourseService.ByCategory(ctx.Param("category"), util.UserIDFromContext(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Search courses
// @Tags courses
// @Produce json
// @Param q query string true "search text"
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses/search [get]
func (c *CourseController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "missing search query")
		return
	}

	views, err := c.CourseService.Search(query, util.UserIDFromContext(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List the caller's enrolled courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses/enrolled [get]
func (c *CourseController) Enrolled(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.CourseService.Enrolled(user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Update a course
// @Description Updates title, description or category; status and instructor never change here
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Param body body service.UpdateCourseInput true "fields to update"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var input service.UpdateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.CourseService.Update(id, &input, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Publish a course
// @Description Transitions the course from DRAFT to PUBLISHED; the only allowed status change
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Router /api/courses/{id}/publish [post]
func (c *CourseController) Publish(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	view, err := c.CourseService.Publish(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Delete a course
// @Description Deletes the course with its modules, quizzes, enrollments and progress
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 204
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.Delete(ctx.Request.Context(), id, user.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary Upload a course thumbnail
// @Description Replaces the course thumbnail image
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Param file formData file true "image file"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Router /api/courses/{id}/thumbnail [post]
func (c *CourseController) UploadThumbnail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	view, err := c.CourseService.UploadThumbnail(ctx.Request.Context(), id, user.UserID, file)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

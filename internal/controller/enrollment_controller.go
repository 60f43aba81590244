package controller

import (
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// @Summary Enroll in a course
// @Description Enrolls the caller; a second enrollment on the same course is a conflict
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 201 {object} util.Response{data=model.EnrollmentView}
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	view, err := c.EnrollmentService.Enroll(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Unenroll from a course
// @Description Removes the enrollment; progress history is retained
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 204
// @Router /api/courses/{id}/enroll [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.EnrollmentService.Unenroll(user.UserID, courseID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary Check enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enrollment [get]
func (c *EnrollmentController) IsEnrolled(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	enrolled, err := c.EnrollmentService.IsEnrolled(user.UserID, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": enrolled})
}

// @Summary List the caller's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.EnrollmentView}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ByUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.EnrollmentService.ByUser(user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List enrollments on a course
// @Description Instructor-only roster for one course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response{data=[]model.EnrollmentView}
// @Router /api/courses/{id}/enrollments [get]
func (c *EnrollmentController) ByCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	views, err := c.EnrollmentService.ByCourse(courseID, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

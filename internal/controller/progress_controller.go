package controller

import (
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Mark a module completed
// @Description Idempotent; repeat calls keep a single progress row
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Success 200 {object} util.Response{data=model.ProgressView}
// @Router /api/modules/{id}/complete [post]
func (c *ProgressController) MarkCompleted(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("id"))
	if moduleID == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	view, err := c.ProgressService.MarkCompleted(ctx.Request.Context(), user.UserID, moduleID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Reset module progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Success 200 {object} util.Response{data=model.ProgressView}
// @Router /api/modules/{id}/complete [delete]
func (c *ProgressController) Reset(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("id"))
	if moduleID == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	view, err := c.ProgressService.Reset(user.UserID, moduleID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Course completion stats
// @Description Completed and total module counts plus the derived percentage
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response{data=model.CourseProgressStats}
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) CourseStats(ctx *gin.Context) {
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

	stats, err := c.ProgressService.CourseStats(user.UserID, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary List the caller's progress rows
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ProgressView}
// @Router /api/progress [get]
func (c *ProgressController) ByUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.ProgressService.ByUser(user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List the caller's progress in one course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response{data=[]model.ProgressView}
// @Router /api/courses/{id}/progress/modules [get]
func (c *ProgressController) ByUserAndCourse(ctx *gin.Context) {
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

	views, err := c.ProgressService.ByUserAndCourse(user.UserID, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Get the caller's progress on a module
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Success 200 {object} util.Response{data=model.ProgressView}
// @Router /api/modules/{id}/progress [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("id"))
	if moduleID == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	view, err := c.ProgressService.Get(user.UserID, moduleID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

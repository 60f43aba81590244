package controller

import (
	"fmt"
	"strconv"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// @Summary Create a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateModuleInput true "module fields"
// @Success 201 {object} util.Response{data=model.ModuleView}
// @Router /api/modules [post]
func (c *ModuleController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateModuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.ModuleService.Create(&input, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Get a module
// @Tags modules
// @Produce json
// @Param id path int true "module ID"
// @Success 200 {object} util.Response{data=model.ModuleView}
// @Router /api/modules/{id} [get]
func (c *ModuleController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	view, err := c.ModuleService.GetByID(id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary List modules of a course
// @Description Modules ordered by their position in the course
// @Tags modules
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response{data=[]model.ModuleView}
// @Router /api/courses/{id}/modules [get]
func (c *ModuleController) ByCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	views, err := c.ModuleService.ByCourse(courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List modules by type
// @Tags modules
// @Produce json
// @Param type path string true "module type" Enums(VIDEO, PDF, QUIZ, OTHER)
// @Success 200 {object} util.Response{data=[]model.ModuleView}
// @Router /api/modules/type/{type} [get]
func (c *ModuleController) ByType(ctx *gin.Context) {
	moduleType := model.ModuleType(ctx.Param("type"))
	if !moduleType.Valid() {
		util.BadRequest(ctx, "invalid module type")
		return
	}

	views, err := c.ModuleService.ByType(moduleType)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary List modules a coin balance can open
// @Tags modules
// @Produce json
// @Param id path int true "course ID"
// @Param coins query int true "coin balance"
// @Success 200 {object} util.Response{data=[]model.ModuleView}
// @Router /api/courses/{id}/modules/available [get]
func (c *ModuleController) AvailableByCoins(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	coins, err := strconv.Atoi(ctx.DefaultQuery("coins", "0"))
	if err != nil || coins < 0 {
		util.BadRequest(ctx, "invalid coin balance")
		return
	}

	views, err := c.ModuleService.AvailableByCoins(courseID, coins)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Param body body service.UpdateModuleInput true "fields to update"
// @Success 200 {object} util.Response{data=model.ModuleView}
// @Router /api/modules/{id} [put]
func (c *ModuleController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var input service.UpdateModuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.ModuleService.Update(id, &input, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Reorder a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Param body body object true "{\"order\": 3}"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/order [put]
func (c *ModuleController) Reorder(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var body struct {
		Order int `json:"order"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ModuleService.Reorder(id, body.Order, user.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id, "order": body.Order})
}

// @Summary Delete a module
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Success 204
// @Router /api/modules/{id} [delete]
func (c *ModuleController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	if err := c.ModuleService.Delete(ctx.Request.Context(), id, user.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary Upload module content
// @Description Replaces the module's content object; videos and PDFs only
// @Tags modules
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Param file formData file true "video or PDF file"
// @Success 200 {object} util.Response{data=model.ContentDescriptor}
// @Router /api/modules/{id}/content [post]
func (c *ModuleController) UploadContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	descriptor, err := c.ModuleService.UploadContent(ctx.Request.Context(), id, user.UserID, file)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, descriptor)
}

// @Summary Download module content
// @Description Streams the stored content object
// @Tags modules
// @Produce octet-stream
// @Param id path int true "module ID"
// @Success 200 {file} binary
// @Router /api/modules/{id}/content [get]
func (c *ModuleController) DownloadContent(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	stream, err := c.ModuleService.DownloadContent(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	defer stream.Reader.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stream.Filename))
	ctx.DataFromReader(200, stream.Size, stream.ContentType, stream.Reader, nil)
}

// @Summary Delete module content
// @Description Removes the stored object and clears the module's content key
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "module ID"
// @Success 200 {object} util.Response{data=model.ModuleView}
// @Router /api/modules/{id}/content [delete]
func (c *ModuleController) DeleteContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	view, err := c.ModuleService.DeleteContent(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

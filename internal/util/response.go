package util

import (
	"errors"
	"net/http"

	"github.com/EduNex-Academy/course-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError maps service sentinel errors to HTTP status codes.
// Anything unrecognized is logged and returned as a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrModuleNotFound),
		errors.Is(err, ErrQuizNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrAnswerNotFound),
		errors.Is(err, ErrEnrollmentNotFound),
		errors.Is(err, ErrProgressNotFound),
		errors.Is(err, ErrQuizResultNotFound),
		errors.Is(err, ErrContentObjectMissing):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyEnrolled):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotCourseOwner):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrCourseAlreadyPublished):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnsupportedContentType),
		errors.Is(err, ErrInvalidThumbnailType):
		Error(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, ErrModuleHasNoContent),
		errors.Is(err, ErrEmptyAnswerText):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		LogInternalError(c, err)
	}
}

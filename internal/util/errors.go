package util

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("quiz question not found")
	ErrAnswerNotFound     = errors.New("quiz answer not found")
	ErrEnrollmentNotFound = errors.New("user is not enrolled in this course")
	ErrProgressNotFound   = errors.New("progress record not found for this user and module")
	ErrQuizResultNotFound = errors.New("no quiz result found")

	ErrAlreadyEnrolled        = errors.New("user already enrolled in this course")
	ErrNotCourseOwner         = errors.New("only the instructor of the course can do this")
	ErrCourseAlreadyPublished = errors.New("course is already published")

	ErrUnsupportedContentType = errors.New("invalid file type, only videos and PDFs are allowed")
	ErrInvalidThumbnailType   = errors.New("invalid file type, only images are allowed")
	ErrModuleHasNoContent     = errors.New("module has no content")
	ErrContentObjectMissing   = errors.New("file not found in storage")
	ErrEmptyAnswerText        = errors.New("answer text cannot be empty")
)

package model

import "time"

// Read-side views. Counts and percentages are computed from the stores on
// every read and never persisted.

// swagger:model
type CourseView struct {
	ID                   uint         `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	InstructorID         string       `json:"instructorId"`
	Category             string       `json:"category"`
	ThumbnailURL         string       `json:"thumbnailUrl,omitempty"`
	Status               CourseStatus `json:"status"`
	CreatedAt            time.Time    `json:"createdAt"`
	ModuleCount          int          `json:"moduleCount"`
	EnrollmentCount      int          `json:"enrollmentCount"`
	UserEnrolled         bool         `json:"userEnrolled"`
	CompletionPercentage float64      `json:"completionPercentage"`
	Modules              []ModuleView `json:"modules,omitempty"`
}

// swagger:model
type ModuleView struct {
	ID                 uint       `json:"id"`
	CourseID           uint       `json:"courseId"`
	CourseTitle        string     `json:"courseTitle,omitempty"`
	Title              string     `json:"title"`
	Type               ModuleType `json:"type"`
	CoinsRequired      int        `json:"coinsRequired"`
	ContentObjectKey   string     `json:"contentObjectKey,omitempty"`
	ContentURL         string     `json:"contentUrl,omitempty"`
	DurationSeconds    float64    `json:"durationSeconds,omitempty"`
	ModuleOrder        int        `json:"moduleOrder"`
	QuizID             uint       `json:"quizId,omitempty"`
	Completed          bool       `json:"completed"`
	ProgressPercentage float64    `json:"progressPercentage"`
}

// ContentDescriptor describes a freshly uploaded module content object.
// swagger:model
type ContentDescriptor struct {
	ModuleID    uint   `json:"moduleId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	ObjectKey   string `json:"objectKey"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
}

// swagger:model
type EnrollmentView struct {
	ID                   uint      `json:"id"`
	UserID               string    `json:"userId"`
	CourseID             uint      `json:"courseId"`
	CourseTitle          string    `json:"courseTitle"`
	EnrolledAt           time.Time `json:"enrolledAt"`
	CompletionPercentage float64   `json:"completionPercentage"`
}

// swagger:model
type ProgressView struct {
	ID          uint       `json:"id"`
	UserID      string     `json:"userId"`
	ModuleID    uint       `json:"moduleId"`
	ModuleTitle string     `json:"moduleTitle,omitempty"`
	ModuleType  ModuleType `json:"moduleType,omitempty"`
	CourseID    uint       `json:"courseId,omitempty"`
	CourseTitle string     `json:"courseTitle,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CourseProgressStats is the completion aggregate for one user and course.
// swagger:model
type CourseProgressStats struct {
	UserID               string  `json:"userId"`
	CourseID             uint    `json:"courseId"`
	CompletedModules     int64   `json:"completedModules"`
	TotalModules         int64   `json:"totalModules"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

// swagger:model
type QuizView struct {
	ID          uint               `json:"id"`
	ModuleID    uint               `json:"moduleId"`
	ModuleTitle string             `json:"moduleTitle,omitempty"`
	Title       string             `json:"title"`
	Questions   []QuizQuestionView `json:"questions,omitempty"`
}

// swagger:model
type QuizQuestionView struct {
	ID            uint             `json:"id"`
	QuizID        uint             `json:"quizId"`
	QuestionText  string           `json:"questionText"`
	QuestionOrder int              `json:"questionOrder"`
	Answers       []QuizAnswerView `json:"answers,omitempty"`
}

// swagger:model
type QuizAnswerView struct {
	ID          uint   `json:"id"`
	QuestionID  uint   `json:"questionId"`
	AnswerText  string `json:"answerText"`
	Correct     bool   `json:"correct"`
	AnswerOrder int    `json:"answerOrder"`
}

// swagger:model
type QuizResultView struct {
	ID          uint      `json:"id"`
	UserID      string    `json:"userId"`
	QuizID      uint      `json:"quizId"`
	QuizTitle   string    `json:"quizTitle,omitempty"`
	ModuleTitle string    `json:"moduleTitle,omitempty"`
	CourseID    uint      `json:"courseId,omitempty"`
	CourseTitle string    `json:"courseTitle,omitempty"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

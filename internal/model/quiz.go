package model

import "time"

// Quiz belongs to exactly one module (unique ModuleID) and owns its questions
// by foreign key; questions own answers the same way. No back-pointers.
type Quiz struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ModuleID  uint      `gorm:"not null;uniqueIndex" json:"moduleId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuizID        uint      `gorm:"not null;index" json:"quizId"`
	QuestionText  string    `gorm:"type:text;not null" json:"questionText"`
	QuestionOrder int       `gorm:"default:0" json:"questionOrder"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizAnswer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QuestionID  uint      `gorm:"not null;index" json:"questionId"`
	AnswerText  string    `gorm:"size:512;not null" json:"answerText"`
	Correct     bool      `gorm:"not null;default:false" json:"correct"`
	AnswerOrder int       `gorm:"default:0" json:"answerOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

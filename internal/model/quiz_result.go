package model

import "time"

// QuizResult is one graded attempt. Attempts are append-only: every
// submission adds a row, history is never rewritten.
type QuizResult struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;not null;index:idx_user_quiz" json:"userId"`
	QuizID      uint      `gorm:"not null;index:idx_user_quiz" json:"quizId"`
	Score       int       `gorm:"not null" json:"score"`
	SubmittedAt time.Time `gorm:"<-:create" json:"submittedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

package model

import "time"

// Enrollment grants a learner access to a course. The composite unique index
// closes the concurrent duplicate-enroll race at the storage layer.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_user_course;index" json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

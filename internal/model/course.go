package model

import "time"

// CourseStatus is a closed enum. DRAFT courses are visible to their
// instructor only; PUBLISHED courses are visible to everyone.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "DRAFT"
	CoursePublished CourseStatus = "PUBLISHED"
)

func (s CourseStatus) Valid() bool {
	return s == CourseDraft || s == CoursePublished
}

// CanTransitionTo admits the single allowed transition DRAFT -> PUBLISHED.
// There is no un-publish.
func (s CourseStatus) CanTransitionTo(next CourseStatus) bool {
	return s == CourseDraft && next == CoursePublished
}

type Course struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Title              string       `gorm:"size:255;not null" json:"title"`
	Description        string       `gorm:"type:text" json:"description"`
	InstructorID       string       `gorm:"size:64;not null;index" json:"instructorId"`
	Category           string       `gorm:"size:100;index" json:"category"`
	ThumbnailObjectKey string       `gorm:"size:512" json:"-"`
	ThumbnailURL       string       `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	Status             CourseStatus `gorm:"size:16;not null;default:DRAFT;index" json:"status"`
	CreatedAt          time.Time    `gorm:"<-:create" json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

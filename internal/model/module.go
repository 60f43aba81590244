package model

import "time"

type ModuleType string

const (
	ModuleVideo ModuleType = "VIDEO"
	ModulePDF   ModuleType = "PDF"
	ModuleQuiz  ModuleType = "QUIZ"
	ModuleOther ModuleType = "OTHER"
)

func (t ModuleType) Valid() bool {
	switch t {
	case ModuleVideo, ModulePDF, ModuleQuiz, ModuleOther:
		return true
	}
	return false
}

// Module is an ordered content unit inside a course. ContentObjectKey points
// at the (at most one) live object in the content store; an empty key means
// the module has no uploaded content.
type Module struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CourseID         uint       `gorm:"not null;index" json:"courseId"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Type             ModuleType `gorm:"size:16;not null;default:OTHER" json:"type"`
	CoinsRequired    int        `gorm:"not null;default:0" json:"coinsRequired"`
	ContentObjectKey string     `gorm:"size:512" json:"contentObjectKey,omitempty"`
	DurationSeconds  float64    `json:"durationSeconds,omitempty"`
	ModuleOrder      int        `gorm:"default:0" json:"moduleOrder"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (Module) TableName() string {
	return "modules"
}

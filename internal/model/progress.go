package model

import "time"

// Progress is the per-user, per-module completion marker. At most one row per
// (user, module); absence of a row means "not completed". CompletedAt is set
// iff Completed is true.
type Progress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"size:64;not null;uniqueIndex:idx_user_module" json:"userId"`
	ModuleID    uint       `gorm:"not null;uniqueIndex:idx_user_module;index" json:"moduleId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Progress) TableName() string {
	return "progress"
}

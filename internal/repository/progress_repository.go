package repository

import (
	"github.com/EduNex-Academy/course-service/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) Update(progress *model.Progress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) FindByID(id uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.First(&progress, id).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUserAndModule(userID string, moduleID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUser(userID string) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) FindByModule(moduleID uint) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.DB.Where("module_id = ?", moduleID).Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) FindByUserAndCourse(userID string, courseID uint) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.DB.
		Joins("JOIN modules ON modules.id = progress.module_id").
		Where("progress.user_id = ? AND modules.course_id = ?", userID, courseID).
		Order("modules.module_order ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountCompletedByUserAndCourse(userID string, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Joins("JOIN modules ON modules.id = progress.module_id").
		Where("progress.user_id = ? AND modules.course_id = ? AND progress.completed = ?", userID, courseID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Progress{}, id).Error
}

package repository

import (
	"github.com/EduNex-Academy/course-service/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) FindByCourse(courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("course_id = ?", courseID).
		Order("module_order ASC, id ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByType(moduleType model.ModuleType) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("type = ?", moduleType).
		Order("course_id ASC, module_order ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByCourseAndMaxCoins(courseID uint, coins int) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("course_id = ? AND coins_required <= ?", courseID, coins).
		Order("module_order ASC, id ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Module{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *ModuleRepository) UpdateOrder(id uint, order int) error {
	return r.DB.Model(&model.Module{}).Where("id = ?", id).Update("module_order", order).Error
}

// Delete removes a module together with its quiz subtree and progress rows.
func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		quizIDs := tx.Model(&model.Quiz{}).Select("id").Where("module_id = ?", id)
		questionIDs := tx.Model(&model.QuizQuestion{}).Select("id").Where("quiz_id IN (?)", quizIDs)

		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", id).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", id).Delete(&model.Progress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Module{}, id).Error
	})
}

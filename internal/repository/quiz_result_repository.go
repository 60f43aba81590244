package repository

import (
	"github.com/EduNex-Academy/course-service/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) FindByID(id uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *QuizResultRepository) FindAll() ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Order("submitted_at DESC").Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) FindByUser(userID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) FindByQuiz(quizID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("quiz_id = ?", quizID).Order("submitted_at DESC").Find(&results).Error
	return results, err
}

// FindBest returns the highest score for the user on the quiz, earliest
// submission winning ties.
func (r *QuizResultRepository) FindBest(userID string, quizID uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("score DESC, submitted_at ASC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *QuizResultRepository) FindHistory(userID string, quizID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("submitted_at DESC, id DESC").
		Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) Delete(id uint) error {
	return r.DB.Delete(&model.QuizResult{}, id).Error
}

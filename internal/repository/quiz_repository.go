package repository

import (
	"github.com/EduNex-Academy/course-service/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// CreateTree inserts a quiz with its questions and answers atomically.
func (r *QuizRepository) CreateTree(quiz *model.Quiz, questions []model.QuizQuestion, answers map[int][]model.QuizAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
			for j := range answers[i] {
				answers[i][j].QuestionID = questions[i].ID
				if err := tx.Create(&answers[i][j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByModule(moduleID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("module_id = ?", moduleID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// Delete removes the quiz with its questions, answers and recorded results.
func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&model.QuizQuestion{}).Select("id").Where("quiz_id = ?", id)

		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuizRepository) FindQuestionsByQuiz(quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("quiz_id = ?", quizID).
		Order("question_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *QuizRepository) UpdateQuestion(question *model.QuizQuestion) error {
	return r.DB.Save(question).Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuizQuestion{}, id).Error
	})
}

func (r *QuizRepository) CreateAnswer(answer *model.QuizAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *QuizRepository) FindAnswerByID(id uint) (*model.QuizAnswer, error) {
	var answer model.QuizAnswer
	err := r.DB.First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *QuizRepository) FindAnswersByQuestion(questionID uint) ([]model.QuizAnswer, error) {
	var answers []model.QuizAnswer
	err := r.DB.Where("question_id = ?", questionID).
		Order("answer_order ASC, id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *QuizRepository) UpdateAnswer(answer *model.QuizAnswer) error {
	return r.DB.Save(answer).Error
}

func (r *QuizRepository) DeleteAnswer(id uint) error {
	return r.DB.Delete(&model.QuizAnswer{}, id).Error
}

package service

import (
	"errors"
	"time"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/internal/util"

	"gorm.io/gorm"
)

type QuizResultService struct {
	ResultRepo *repository.QuizResultRepository
	QuizRepo   *repository.QuizRepository
	ModuleRepo *repository.ModuleRepository
	CourseRepo *repository.CourseRepository
}

func NewQuizResultService(
	resultRepo *repository.QuizResultRepository,
	quizRepo *repository.QuizRepository,
	moduleRepo *repository.ModuleRepository,
	courseRepo *repository.CourseRepository,
) *QuizResultService {
	return &QuizResultService{
		ResultRepo: resultRepo,
		QuizRepo:   quizRepo,
		ModuleRepo: moduleRepo,
		CourseRepo: courseRepo,
	}
}

type RecordAttemptInput struct {
	QuizID uint `json:"quizId" binding:"required"`
	Score  int  `json:"score" binding:"min=0,max=100"`
}

// RecordAttempt appends one graded attempt. History is never rewritten, so
// retakes accumulate.
func (s *QuizResultService) RecordAttempt(userID string, input *RecordAttemptInput) (*model.QuizResultView, error) {
	if _, err := s.QuizRepo.FindByID(input.QuizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	result := &model.QuizResult{
		UserID:      userID,
		QuizID:      input.QuizID,
		Score:       input.Score,
		SubmittedAt: time.Now(),
	}
	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}
	return s.view(result), nil
}

// BestAttempt returns the user's highest score on the quiz, earliest
// submission winning ties.
func (s *QuizResultService) BestAttempt(userID string, quizID uint) (*model.QuizResultView, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	result, err := s.ResultRepo.FindBest(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizResultNotFound
		}
		return nil, err
	}
	return s.view(result), nil
}

// History lists the user's attempts newest first, re-read on every call.
func (s *QuizResultService) History(userID string, quizID uint) ([]model.QuizResultView, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	results, err := s.ResultRepo.FindHistory(userID, quizID)
	if err != nil {
		return nil, err
	}
	return s.views(results), nil
}

func (s *QuizResultService) GetByID(id uint) (*model.QuizResultView, error) {
	result, err := s.ResultRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizResultNotFound
		}
		return nil, err
	}
	return s.view(result), nil
}

func (s *QuizResultService) All() ([]model.QuizResultView, error) {
	results, err := s.ResultRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return s.views(results), nil
}

func (s *QuizResultService) ByUser(userID string) ([]model.QuizResultView, error) {
	results, err := s.ResultRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.views(results), nil
}

func (s *QuizResultService) ByQuiz(quizID uint) ([]model.QuizResultView, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	results, err := s.ResultRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	return s.views(results), nil
}

func (s *QuizResultService) Delete(id uint) error {
	if _, err := s.ResultRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizResultNotFound
		}
		return err
	}
	return s.ResultRepo.Delete(id)
}

func (s *QuizResultService) view(result *model.QuizResult) *model.QuizResultView {
	v := &model.QuizResultView{
		ID:          result.ID,
		UserID:      result.UserID,
		QuizID:      result.QuizID,
		Score:       result.Score,
		SubmittedAt: result.SubmittedAt,
	}

	if quiz, err := s.QuizRepo.FindByID(result.QuizID); err == nil {
		v.QuizTitle = quiz.Title
		if module, err := s.ModuleRepo.FindByID(quiz.ModuleID); err == nil {
			v.ModuleTitle = module.Title
			v.CourseID = module.CourseID
			if course, err := s.CourseRepo.FindByID(module.CourseID); err == nil {
				v.CourseTitle = course.Title
			}
		}
	}
	return v
}

func (s *QuizResultService) views(results []model.QuizResult) []model.QuizResultView {
	out := make([]model.QuizResultView, 0, len(results))
	for i := range results {
		out = append(out, *s.view(&results[i]))
	}
	return out
}

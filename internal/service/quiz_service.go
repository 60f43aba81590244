package service

import (
	"errors"
	"strings"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	ModuleRepo *repository.ModuleRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, moduleRepo *repository.ModuleRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, ModuleRepo: moduleRepo}
}

type CreateQuizInput struct {
	ModuleID  uint                 `json:"moduleId" binding:"required"`
	Title     string               `json:"title" binding:"required"`
	Questions []CreateQuizQuestion `json:"questions"`
}

type CreateQuizQuestion struct {
	QuestionText  string             `json:"questionText" binding:"required"`
	QuestionOrder int                `json:"questionOrder"`
	Answers       []CreateQuizAnswer `json:"answers"`
}

type CreateQuizAnswer struct {
	AnswerText  string `json:"answerText"`
	Correct     bool   `json:"correct"`
	AnswerOrder int    `json:"answerOrder"`
}

type UpdateQuizInput struct {
	Title    *string `json:"title"`
	ModuleID *uint   `json:"moduleId"`
}

type QuestionInput struct {
	QuestionText  string `json:"questionText" binding:"required"`
	QuestionOrder int    `json:"questionOrder"`
}

type AnswerInput struct {
	AnswerText  string `json:"answerText"`
	Correct     bool   `json:"correct"`
	AnswerOrder int    `json:"answerOrder"`
}

// Create builds a quiz together with its question and answer tree in one
// transaction. Answers need non-empty text; one quiz per module is enforced
// by the unique ModuleID index.
func (s *QuizService) Create(input *CreateQuizInput) (*model.QuizView, error) {
	module, err := s.ModuleRepo.FindByID(input.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	questions := make([]model.QuizQuestion, len(input.Questions))
	answers := make(map[int][]model.QuizAnswer, len(input.Questions))
	for i, q := range input.Questions {
		questions[i] = model.QuizQuestion{
			QuestionText:  q.QuestionText,
			QuestionOrder: q.QuestionOrder,
		}
		for _, a := range q.Answers {
			if strings.TrimSpace(a.AnswerText) == "" {
				return nil, util.ErrEmptyAnswerText
			}
			answers[i] = append(answers[i], model.QuizAnswer{
				AnswerText:  a.AnswerText,
				Correct:     a.Correct,
				AnswerOrder: a.AnswerOrder,
			})
		}
	}

	quiz := &model.Quiz{
		ModuleID: module.ID,
		Title:    input.Title,
	}
	if err := s.QuizRepo.CreateTree(quiz, questions, answers); err != nil {
		return nil, err
	}

	return s.GetByID(quiz.ID)
}

func (s *QuizService) GetByID(id uint) (*model.QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.buildView(quiz)
}

func (s *QuizService) GetByModule(moduleID uint) (*model.QuizView, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByModule(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.buildView(quiz)
}

func (s *QuizService) Update(id uint, input *UpdateQuizInput) (*model.QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		quiz.Title = *input.Title
	}
	if input.ModuleID != nil && *input.ModuleID != quiz.ModuleID {
		if _, err := s.ModuleRepo.FindByID(*input.ModuleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrModuleNotFound
			}
			return nil, err
		}
		quiz.ModuleID = *input.ModuleID
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return s.buildView(quiz)
}

func (s *QuizService) Delete(id uint) error {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	return s.QuizRepo.Delete(id)
}

func (s *QuizService) AddQuestion(quizID uint, input *QuestionInput) (*model.QuizQuestionView, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	question := &model.QuizQuestion{
		QuizID:        quizID,
		QuestionText:  input.QuestionText,
		QuestionOrder: input.QuestionOrder,
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return s.questionView(question)
}

func (s *QuizService) UpdateQuestion(id uint, input *QuestionInput) (*model.QuizQuestionView, error) {
	question, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	question.QuestionText = input.QuestionText
	question.QuestionOrder = input.QuestionOrder
	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return s.questionView(question)
}

func (s *QuizService) DeleteQuestion(id uint) error {
	if _, err := s.QuizRepo.FindQuestionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuizRepo.DeleteQuestion(id)
}

func (s *QuizService) AddAnswer(questionID uint, input *AnswerInput) (*model.QuizAnswerView, error) {
	if _, err := s.QuizRepo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.AnswerText) == "" {
		return nil, util.ErrEmptyAnswerText
	}

	answer := &model.QuizAnswer{
		QuestionID:  questionID,
		AnswerText:  input.AnswerText,
		Correct:     input.Correct,
		AnswerOrder: input.AnswerOrder,
	}
	if err := s.QuizRepo.CreateAnswer(answer); err != nil {
		return nil, err
	}
	return answerView(answer), nil
}

func (s *QuizService) UpdateAnswer(id uint, input *AnswerInput) (*model.QuizAnswerView, error) {
	answer, err := s.QuizRepo.FindAnswerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.AnswerText) == "" {
		return nil, util.ErrEmptyAnswerText
	}

	answer.AnswerText = input.AnswerText
	answer.Correct = input.Correct
	answer.AnswerOrder = input.AnswerOrder
	if err := s.QuizRepo.UpdateAnswer(answer); err != nil {
		return nil, err
	}
	return answerView(answer), nil
}

func (s *QuizService) DeleteAnswer(id uint) error {
	if _, err := s.QuizRepo.FindAnswerByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAnswerNotFound
		}
		return err
	}
	return s.QuizRepo.DeleteAnswer(id)
}

func (s *QuizService) buildView(quiz *model.Quiz) (*model.QuizView, error) {
	view := &model.QuizView{
		ID:       quiz.ID,
		ModuleID: quiz.ModuleID,
		Title:    quiz.Title,
	}

	if module, err := s.ModuleRepo.FindByID(quiz.ModuleID); err == nil {
		view.ModuleTitle = module.Title
	}

	questions, err := s.QuizRepo.FindQuestionsByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		qv, err := s.questionView(&questions[i])
		if err != nil {
			return nil, err
		}
		view.Questions = append(view.Questions, *qv)
	}
	return view, nil
}

func (s *QuizService) questionView(question *model.QuizQuestion) (*model.QuizQuestionView, error) {
	view := &model.QuizQuestionView{
		ID:            question.ID,
		QuizID:        question.QuizID,
		QuestionText:  question.QuestionText,
		QuestionOrder: question.QuestionOrder,
	}

	answers, err := s.QuizRepo.FindAnswersByQuestion(question.ID)
	if err != nil {
		return nil, err
	}
	for i := range answers {
		view.Answers = append(view.Answers, *answerView(&answers[i]))
	}
	return view, nil
}

func answerView(answer *model.QuizAnswer) *model.QuizAnswerView {
	return &model.QuizAnswerView{
		ID:          answer.ID,
		QuestionID:  answer.QuestionID,
		AnswerText:  answer.AnswerText,
		Correct:     answer.Correct,
		AnswerOrder: answer.AnswerOrder,
	}
}

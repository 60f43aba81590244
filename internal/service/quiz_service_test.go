package service

import (
	"errors"
	"testing"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/util"
)

func quizFixtureInput(moduleID uint) *CreateQuizInput {
	return &CreateQuizInput{
		ModuleID: moduleID,
		Title:    "Checkpoint",
		Questions: []CreateQuizQuestion{
			{
				QuestionText:  "What does SELECT do?",
				QuestionOrder: 1,
				Answers: []CreateQuizAnswer{
					{AnswerText: "Reads rows", Correct: true, AnswerOrder: 1},
					{AnswerText: "Deletes rows", AnswerOrder: 2},
				},
			},
			{
				QuestionText:  "What does DELETE do?",
				QuestionOrder: 2,
				Answers: []CreateQuizAnswer{
					{AnswerText: "Removes rows", Correct: true, AnswerOrder: 1},
				},
			},
		},
	}
}

func TestQuizCreate_BuildsFullTree(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	view, err := env.quizzes.Create(quizFixtureInput(module.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.ModuleID != module.ID || view.Title != "Checkpoint" {
		t.Fatalf("unexpected quiz view %+v", view)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(view.Questions))
	}
	if view.Questions[0].QuestionText != "What does SELECT do?" {
		t.Fatalf("questions out of order: %q", view.Questions[0].QuestionText)
	}
	if len(view.Questions[0].Answers) != 2 || len(view.Questions[1].Answers) != 1 {
		t.Fatalf("answers not attached to their questions")
	}
	if !view.Questions[0].Answers[0].Correct {
		t.Fatalf("correct flag lost")
	}
}

func TestQuizCreate_RejectsBlankAnswerText(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	input := quizFixtureInput(module.ID)
	input.Questions[0].Answers[1].AnswerText = "   "

	if _, err := env.quizzes.Create(input); !errors.Is(err, util.ErrEmptyAnswerText) {
		t.Fatalf("expected ErrEmptyAnswerText, got %v", err)
	}

	// Validation failed before the transaction, nothing must be persisted.
	var count int64
	if err := env.db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected quiz must not persist, got %d rows", count)
	}
}

func TestQuizCreate_MissingModule(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.quizzes.Create(quizFixtureInput(404)); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestQuizGetByModule(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	bare := env.seedModule(t, course.ID, "No quiz here", 2)

	created, err := env.quizzes.Create(quizFixtureInput(module.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := env.quizzes.GetByModule(module.ID)
	if err != nil {
		t.Fatalf("get by module: %v", err)
	}
	if view.ID != created.ID {
		t.Fatalf("expected quiz %d, got %d", created.ID, view.ID)
	}

	if _, err := env.quizzes.GetByModule(bare.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound for module without quiz, got %v", err)
	}
	if _, err := env.quizzes.GetByModule(404); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestQuizUpdate_ReattachValidatesModule(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	quiz := env.seedQuiz(t, module.ID, "Checkpoint")

	title := "Final exam"
	view, err := env.quizzes.Update(quiz.ID, &UpdateQuizInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Title != "Final exam" {
		t.Fatalf("title not updated: %q", view.Title)
	}

	missing := uint(404)
	if _, err := env.quizzes.Update(quiz.ID, &UpdateQuizInput{ModuleID: &missing}); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound for bad reattach, got %v", err)
	}
}

func TestQuizDelete_CascadesQuestionsAndAnswers(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	view, err := env.quizzes.Create(quizFixtureInput(module.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.quizzes.Delete(view.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var questions, answers int64
	if err := env.db.Model(&model.QuizQuestion{}).Count(&questions).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if err := env.db.Model(&model.QuizAnswer{}).Count(&answers).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if questions != 0 || answers != 0 {
		t.Fatalf("expected empty quiz tree, got %d questions, %d answers", questions, answers)
	}
	if err := env.quizzes.Delete(view.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound on repeat delete, got %v", err)
	}
}

func TestQuizQuestionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	quiz := env.seedQuiz(t, module.ID, "Checkpoint")

	question, err := env.quizzes.AddQuestion(quiz.ID, &QuestionInput{QuestionText: "Why?", QuestionOrder: 1})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	updated, err := env.quizzes.UpdateQuestion(question.ID, &QuestionInput{QuestionText: "Why not?", QuestionOrder: 2})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.QuestionText != "Why not?" || updated.QuestionOrder != 2 {
		t.Fatalf("question not updated: %+v", updated)
	}

	answer, err := env.quizzes.AddAnswer(question.ID, &AnswerInput{AnswerText: "Because", Correct: true})
	if err != nil {
		t.Fatalf("add answer: %v", err)
	}
	if _, err := env.quizzes.AddAnswer(question.ID, &AnswerInput{AnswerText: "  "}); !errors.Is(err, util.ErrEmptyAnswerText) {
		t.Fatalf("expected ErrEmptyAnswerText, got %v", err)
	}
	if _, err := env.quizzes.UpdateAnswer(answer.ID, &AnswerInput{AnswerText: ""}); !errors.Is(err, util.ErrEmptyAnswerText) {
		t.Fatalf("expected ErrEmptyAnswerText on update, got %v", err)
	}

	if err := env.quizzes.DeleteQuestion(question.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	// Answers go with their question.
	var answers int64
	if err := env.db.Model(&model.QuizAnswer{}).Count(&answers).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answers != 0 {
		t.Fatalf("expected answers to cascade, got %d", answers)
	}
	if _, err := env.quizzes.UpdateQuestion(question.ID, &QuestionInput{QuestionText: "x"}); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

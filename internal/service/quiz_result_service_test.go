package service

import (
	"errors"
	"testing"
	"time"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/util"
)

func (e *testEnv) seedQuizWithContext(t *testing.T) *model.Quiz {
	t.Helper()
	course := e.seedCourse(t, "inst-1", model.CoursePublished)
	module := e.seedModule(t, course.ID, "Lesson", 1)
	return e.seedQuiz(t, module.ID, "Checkpoint")
}

func TestRecordAttempt_AppendsHistory(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	for _, score := range []int{60, 95, 80} {
		if _, err := env.results.RecordAttempt("user-1", &RecordAttemptInput{QuizID: quiz.ID, Score: score}); err != nil {
			t.Fatalf("record attempt %d: %v", score, err)
		}
	}

	history, err := env.results.History("user-1", quiz.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(history))
	}
	// Newest first.
	if history[0].Score != 80 || history[2].Score != 60 {
		t.Fatalf("history out of order: %d, %d, %d", history[0].Score, history[1].Score, history[2].Score)
	}
}

func TestRecordAttempt_MissingQuiz(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.results.RecordAttempt("user-1", &RecordAttemptInput{QuizID: 404, Score: 50}); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestBestAttempt_PicksHighestScore(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	for _, score := range []int{60, 95, 80} {
		if _, err := env.results.RecordAttempt("user-1", &RecordAttemptInput{QuizID: quiz.ID, Score: score}); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	best, err := env.results.BestAttempt("user-1", quiz.ID)
	if err != nil {
		t.Fatalf("best attempt: %v", err)
	}
	if best.Score != 95 {
		t.Fatalf("expected best score 95, got %d", best.Score)
	}
}

func TestBestAttempt_EarliestWinsTies(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	earlier := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)
	rows := []model.QuizResult{
		{UserID: "user-1", QuizID: quiz.ID, Score: 90, SubmittedAt: later},
		{UserID: "user-1", QuizID: quiz.ID, Score: 90, SubmittedAt: earlier},
	}
	for i := range rows {
		if err := env.db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed result: %v", err)
		}
	}

	best, err := env.results.BestAttempt("user-1", quiz.ID)
	if err != nil {
		t.Fatalf("best attempt: %v", err)
	}
	if !best.SubmittedAt.Equal(earlier) {
		t.Fatalf("expected earliest submission to win the tie, got %v", best.SubmittedAt)
	}
}

func TestBestAttempt_NoAttempts(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	if _, err := env.results.BestAttempt("user-1", quiz.ID); !errors.Is(err, util.ErrQuizResultNotFound) {
		t.Fatalf("expected ErrQuizResultNotFound, got %v", err)
	}
	if _, err := env.results.BestAttempt("user-1", 404); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizResultView_CarriesContext(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	view, err := env.results.RecordAttempt("user-1", &RecordAttemptInput{QuizID: quiz.ID, Score: 70})
	if err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if view.QuizTitle != "Checkpoint" || view.ModuleTitle != "Lesson" {
		t.Fatalf("view should carry quiz and module titles, got %+v", view)
	}
	if view.CourseTitle == "" {
		t.Fatalf("view should carry the course title")
	}
}

func TestQuizResultDelete(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	view, err := env.results.RecordAttempt("user-1", &RecordAttemptInput{QuizID: quiz.ID, Score: 70})
	if err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if err := env.results.Delete(view.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.results.Delete(view.ID); !errors.Is(err, util.ErrQuizResultNotFound) {
		t.Fatalf("expected ErrQuizResultNotFound on repeat delete, got %v", err)
	}
}

func TestQuizResultsByUserAndQuiz(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.seedQuizWithContext(t)

	if _, err := env.results.RecordAttempt("user-1", &RecordAttemptInput{QuizID: quiz.ID, Score: 40}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := env.results.RecordAttempt("user-2", &RecordAttemptInput{QuizID: quiz.ID, Score: 90}); err != nil {
		t.Fatalf("record: %v", err)
	}

	mine, err := env.results.ByUser("user-1")
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(mine) != 1 || mine[0].Score != 40 {
		t.Fatalf("unexpected results for user-1: %+v", mine)
	}

	all, err := env.results.ByQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("by quiz: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 results, got %d", len(all))
	}
}

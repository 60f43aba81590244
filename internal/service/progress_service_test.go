package service

import (
	"context"
	"errors"
	"testing"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/util"
)

func TestMarkCompleted_UpsertsSingleRow(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	view, err := env.progress.MarkCompleted(ctx, "user-1", module.ID)
	if err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if !view.Completed || view.CompletedAt == nil {
		t.Fatalf("expected completed view with timestamp, got %+v", view)
	}

	// Marking again is idempotent: still one row.
	if _, err := env.progress.MarkCompleted(ctx, "user-1", module.ID); err != nil {
		t.Fatalf("repeat mark: %v", err)
	}
	var count int64
	if err := env.db.Model(&model.Progress{}).Where("user_id = ? AND module_id = ?", "user-1", module.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one progress row, got %d", count)
	}
}

func TestMarkCompleted_MissingModule(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.progress.MarkCompleted(context.Background(), "user-1", 404); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestReset_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	if _, err := env.progress.MarkCompleted(ctx, "user-1", module.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	view, err := env.progress.Reset("user-1", module.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if view.Completed || view.CompletedAt != nil {
		t.Fatalf("expected reset view, got %+v", view)
	}
	if env.progress.ModuleCompleted("user-1", module.ID) {
		t.Fatalf("module should read as not completed after reset")
	}

	// Reset without a row is a not-found, not a silent no-op.
	if _, err := env.progress.Reset("user-2", module.ID); !errors.Is(err, util.ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound, got %v", err)
	}
}

func TestCourseStats_EmptyCourseIsZeroPercent(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)

	stats, err := env.progress.CourseStats("user-1", course.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalModules != 0 || stats.CompletedModules != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	// Never NaN from 0/0.
	if stats.CompletionPercentage != 0 {
		t.Fatalf("expected 0%% for empty course, got %v", stats.CompletionPercentage)
	}
}

func TestCourseStats_TracksCompletion(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	var modules []*model.Module
	for i := 1; i <= 4; i++ {
		modules = append(modules, env.seedModule(t, course.ID, "Lesson", i))
	}
	ctx := context.Background()

	for _, m := range modules[:2] {
		if _, err := env.progress.MarkCompleted(ctx, "user-1", m.ID); err != nil {
			t.Fatalf("mark completed: %v", err)
		}
	}
	stats, err := env.progress.CourseStats("user-1", course.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletionPercentage != 50 {
		t.Fatalf("expected 50%%, got %v", stats.CompletionPercentage)
	}

	if _, err := env.progress.MarkCompleted(ctx, "user-1", modules[2].ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	stats, err = env.progress.CourseStats("user-1", course.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletionPercentage != 75 {
		t.Fatalf("expected 75%%, got %v", stats.CompletionPercentage)
	}
	if stats.CompletedModules != 3 || stats.TotalModules != 4 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if len(env.sink.ofType(EventCourseCompleted)) != 0 {
		t.Fatalf("no completion event before 100%%")
	}
}

func TestCourseCompletedEvent_OnlyAtFullCompletion(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	first := env.seedModule(t, course.ID, "Lesson 1", 1)
	second := env.seedModule(t, course.ID, "Lesson 2", 2)
	ctx := context.Background()

	if _, err := env.progress.MarkCompleted(ctx, "user-1", first.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if len(env.sink.ofType(EventCourseCompleted)) != 0 {
		t.Fatalf("course.completed must not fire at partial completion")
	}

	if _, err := env.progress.MarkCompleted(ctx, "user-1", second.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	events := env.sink.ofType(EventCourseCompleted)
	if len(events) != 1 {
		t.Fatalf("expected 1 course.completed event, got %d", len(events))
	}
	if got := events[0].Payload["userId"].(string); got != "user-1" {
		t.Fatalf("event carries userId %q", got)
	}

	// Completion is derived, not latched: repeating the final module while the
	// aggregate is still at 100% emits again.
	if _, err := env.progress.MarkCompleted(ctx, "user-1", second.ID); err != nil {
		t.Fatalf("repeat mark: %v", err)
	}
	if len(env.sink.ofType(EventCourseCompleted)) != 2 {
		t.Fatalf("expected repeated completion to re-emit")
	}
}

func TestProgressGetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	if _, err := env.progress.Get("user-1", module.ID); !errors.Is(err, util.ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound, got %v", err)
	}

	marked, err := env.progress.MarkCompleted(ctx, "user-1", module.ID)
	if err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	view, err := env.progress.Get("user-1", module.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ModuleTitle != module.Title || view.CourseID != course.ID {
		t.Fatalf("view should carry module context, got %+v", view)
	}

	if err := env.progress.Delete(marked.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.progress.Delete(marked.ID); !errors.Is(err, util.ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound on repeat delete, got %v", err)
	}
}

func TestProgressByUserAndCourse(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	other := env.seedCourse(t, "inst-1", model.CoursePublished)
	m1 := env.seedModule(t, course.ID, "Lesson 1", 1)
	m2 := env.seedModule(t, other.ID, "Elsewhere", 1)
	ctx := context.Background()

	if _, err := env.progress.MarkCompleted(ctx, "user-1", m1.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if _, err := env.progress.MarkCompleted(ctx, "user-1", m2.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	views, err := env.progress.ByUserAndCourse("user-1", course.ID)
	if err != nil {
		t.Fatalf("by user and course: %v", err)
	}
	if len(views) != 1 || views[0].ModuleID != m1.ID {
		t.Fatalf("expected only the course's own progress, got %+v", views)
	}

	if _, err := env.progress.ByUserAndCourse("user-1", 404); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/util"
)

func TestEnroll_HappyPathEmitsEvent(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)

	view, err := env.enroll.Enroll(context.Background(), "user-1", course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if view.UserID != "user-1" || view.CourseID != course.ID {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.CourseTitle != course.Title {
		t.Fatalf("expected course title on view, got %q", view.CourseTitle)
	}
	if view.EnrolledAt.IsZero() {
		t.Fatalf("expected EnrolledAt to be set")
	}

	events := env.sink.ofType(EventCourseEnrolled)
	if len(events) != 1 {
		t.Fatalf("expected 1 course.enrolled event, got %d", len(events))
	}
	if got := events[0].Payload["userId"].(string); got != "user-1" {
		t.Fatalf("event carries userId %q", got)
	}
}

func TestEnroll_DuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	ctx := context.Background()

	if _, err := env.enroll.Enroll(ctx, "user-1", course.ID); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if _, err := env.enroll.Enroll(ctx, "user-1", course.ID); !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	// The rejected attempt must not disturb the existing enrollment.
	enrolled, err := env.enroll.IsEnrolled("user-1", course.ID)
	if err != nil {
		t.Fatalf("is enrolled: %v", err)
	}
	if !enrolled {
		t.Fatalf("user should still be enrolled")
	}
	if len(env.sink.ofType(EventCourseEnrolled)) != 1 {
		t.Fatalf("duplicate enroll must not emit a second event")
	}
}

func TestEnroll_MissingCourse(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.enroll.Enroll(context.Background(), "user-1", 404); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestUnenroll_RetainsProgress(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	if _, err := env.enroll.Enroll(ctx, "user-1", course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := env.progress.MarkCompleted(ctx, "user-1", module.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	if err := env.enroll.Unenroll("user-1", course.ID); err != nil {
		t.Fatalf("unenroll: %v", err)
	}

	enrolled, err := env.enroll.IsEnrolled("user-1", course.ID)
	if err != nil {
		t.Fatalf("is enrolled: %v", err)
	}
	if enrolled {
		t.Fatalf("user should no longer be enrolled")
	}

	// Progress survives so a returning learner resumes where they left off.
	if !env.progress.ModuleCompleted("user-1", module.ID) {
		t.Fatalf("progress should survive unenrollment")
	}

	if err := env.enroll.Unenroll("user-1", course.ID); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound on repeat unenroll, got %v", err)
	}
}

func TestEnrollmentsByCourse_InstructorOnly(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	ctx := context.Background()

	for _, user := range []string{"user-1", "user-2"} {
		if _, err := env.enroll.Enroll(ctx, user, course.ID); err != nil {
			t.Fatalf("enroll %s: %v", user, err)
		}
	}

	views, err := env.enroll.ByCourse(course.ID, "inst-1")
	if err != nil {
		t.Fatalf("by course: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 enrollments, got %d", len(views))
	}

	if _, err := env.enroll.ByCourse(course.ID, "user-1"); !errors.Is(err, util.ErrNotCourseOwner) {
		t.Fatalf("expected ErrNotCourseOwner for non-instructor, got %v", err)
	}
	if _, err := env.enroll.ByCourse(course.ID, ""); !errors.Is(err, util.ErrNotCourseOwner) {
		t.Fatalf("expected ErrNotCourseOwner for anonymous, got %v", err)
	}
}

func TestEnrollmentsByUser_CarriesCompletion(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CoursePublished)
	first := env.seedModule(t, course.ID, "Lesson 1", 1)
	env.seedModule(t, course.ID, "Lesson 2", 2)
	ctx := context.Background()

	if _, err := env.enroll.Enroll(ctx, "user-1", course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := env.progress.MarkCompleted(ctx, "user-1", first.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	views, err := env.enroll.ByUser("user-1")
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(views))
	}
	if views[0].CompletionPercentage != 50 {
		t.Fatalf("expected 50%% completion, got %v", views[0].CompletionPercentage)
	}
}

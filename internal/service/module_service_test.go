package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/util"
)

func TestModuleCreate_RequiresCourseOwnership(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)

	view, err := env.modules.Create(&CreateModuleInput{CourseID: course.ID, Title: "Lesson 1", ModuleOrder: 1}, "inst-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Type != model.ModuleOther {
		t.Fatalf("expected default type OTHER, got %q", view.Type)
	}

	if _, err := env.modules.Create(&CreateModuleInput{CourseID: course.ID, Title: "Rogue"}, "inst-2"); !errors.Is(err, util.ErrNotCourseOwner) {
		t.Fatalf("expected ErrNotCourseOwner, got %v", err)
	}
	if _, err := env.modules.Create(&CreateModuleInput{CourseID: 999, Title: "Nowhere"}, "inst-1"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestModuleCreate_SanitizesInput(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)

	view, err := env.modules.Create(&CreateModuleInput{
		CourseID:      course.ID,
		Title:         "Lesson",
		Type:          "HOLOGRAM",
		CoinsRequired: -5,
	}, "inst-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Type != model.ModuleOther {
		t.Fatalf("unknown type should fall back to OTHER, got %q", view.Type)
	}
	if view.CoinsRequired != 0 {
		t.Fatalf("negative coins should clamp to 0, got %d", view.CoinsRequired)
	}
}

func TestModuleByCourse_OrderedByModuleOrder(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	env.seedModule(t, course.ID, "Third", 3)
	env.seedModule(t, course.ID, "First", 1)
	env.seedModule(t, course.ID, "Second", 2)

	views, err := env.modules.ByCourse(course.ID)
	if err != nil {
		t.Fatalf("by course: %v", err)
	}
	var titles []string
	for _, v := range views {
		titles = append(titles, v.Title)
	}
	if got := strings.Join(titles, ","); got != "First,Second,Third" {
		t.Fatalf("wrong order: %s", got)
	}
}

func TestModuleAvailableByCoins(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	free := env.seedModule(t, course.ID, "Free", 1)
	cheap := &model.Module{CourseID: course.ID, Title: "Cheap", Type: model.ModuleOther, CoinsRequired: 10, ModuleOrder: 2}
	pricey := &model.Module{CourseID: course.ID, Title: "Pricey", Type: model.ModuleOther, CoinsRequired: 100, ModuleOrder: 3}
	for _, m := range []*model.Module{cheap, pricey} {
		if err := env.db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	views, err := env.modules.AvailableByCoins(course.ID, 10)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 affordable modules, got %d", len(views))
	}
	if views[0].ID != free.ID || views[1].ID != cheap.ID {
		t.Fatalf("unexpected modules: %d, %d", views[0].ID, views[1].ID)
	}
}

func TestModuleReorder(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	if err := env.modules.Reorder(module.ID, 7, "inst-1"); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	var stored model.Module
	if err := env.db.First(&stored, module.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ModuleOrder != 7 {
		t.Fatalf("expected order 7, got %d", stored.ModuleOrder)
	}

	if err := env.modules.Reorder(module.ID, 1, "inst-2"); !errors.Is(err, util.ErrNotCourseOwner) {
		t.Fatalf("expected ErrNotCourseOwner, got %v", err)
	}
}

func TestModuleUpdate_MoveRequiresOwningDestination(t *testing.T) {
	env := newTestEnv(t)
	mine := env.seedCourse(t, "inst-1", model.CourseDraft)
	theirs := env.seedCourse(t, "inst-2", model.CourseDraft)
	module := env.seedModule(t, mine.ID, "Lesson", 1)

	if _, err := env.modules.Update(module.ID, &UpdateModuleInput{CourseID: &theirs.ID}, "inst-1"); !errors.Is(err, util.ErrNotCourseOwner) {
		t.Fatalf("expected ErrNotCourseOwner moving into foreign course, got %v", err)
	}

	other := env.seedCourse(t, "inst-1", model.CourseDraft)
	view, err := env.modules.Update(module.ID, &UpdateModuleInput{CourseID: &other.ID}, "inst-1")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if view.CourseID != other.ID {
		t.Fatalf("expected module moved to course %d, got %d", other.ID, view.CourseID)
	}
}

func TestModuleUploadContent_RejectsUnsupportedTypes(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	_, err := env.modules.UploadContent(context.Background(), module.ID, "inst-1", multipartFile(t, "notes.txt", "text/plain", []byte("hello")))
	if !errors.Is(err, util.ErrUnsupportedContentType) {
		t.Fatalf("expected ErrUnsupportedContentType, got %v", err)
	}
	if len(env.storage.puts) != 0 {
		t.Fatalf("rejected upload must not store objects")
	}
}

func TestModuleUploadContent_PDFSetsTypeAndKey(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	desc, err := env.modules.UploadContent(context.Background(), module.ID, "inst-1", multipartFile(t, "slides.pdf", "application/pdf", []byte("%PDF-1.4 content")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	prefix := fmt.Sprintf("module-%d/", module.ID)
	if !strings.HasPrefix(desc.ObjectKey, prefix) || !strings.HasSuffix(desc.ObjectKey, ".pdf") {
		t.Fatalf("unexpected object key %q", desc.ObjectKey)
	}

	var stored model.Module
	if err := env.db.First(&stored, module.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Type != model.ModulePDF {
		t.Fatalf("expected module type PDF, got %q", stored.Type)
	}
	if stored.ContentObjectKey != desc.ObjectKey {
		t.Fatalf("stored key %q != descriptor key %q", stored.ContentObjectKey, desc.ObjectKey)
	}
}

func TestModuleUploadContent_VideoSetsTypeVideo(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)

	desc, err := env.modules.UploadContent(context.Background(), module.ID, "inst-1", multipartFile(t, "clip.mp4", "video/mp4", []byte("not really a video")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(desc.ObjectKey, ".mp4") {
		t.Fatalf("unexpected object key %q", desc.ObjectKey)
	}

	var stored model.Module
	if err := env.db.First(&stored, module.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Type != model.ModuleVideo {
		t.Fatalf("expected module type VIDEO, got %q", stored.Type)
	}
	if _, live := env.storage.objects[desc.ObjectKey]; !live {
		t.Fatalf("video object missing from store")
	}
}

func TestModuleUploadContent_ReplaceDeletesOldObject(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	first, err := env.modules.UploadContent(ctx, module.ID, "inst-1", multipartFile(t, "v1.pdf", "application/pdf", []byte("%PDF-1.4 v1")))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := env.modules.UploadContent(ctx, module.ID, "inst-1", multipartFile(t, "v2.pdf", "application/pdf", []byte("%PDF-1.4 v2")))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	if len(env.storage.deletes) != 1 || env.storage.deletes[0] != first.ObjectKey {
		t.Fatalf("expected exactly one delete of %q, got %v", first.ObjectKey, env.storage.deletes)
	}
	if len(env.storage.puts) != 2 {
		t.Fatalf("expected two puts, got %v", env.storage.puts)
	}
	if _, live := env.storage.objects[second.ObjectKey]; !live {
		t.Fatalf("replacement object missing from store")
	}
	if _, live := env.storage.objects[first.ObjectKey]; live {
		t.Fatalf("old object should be gone")
	}
}

func TestModuleDownloadContent(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	// No content yet.
	if _, err := env.modules.DownloadContent(ctx, module.ID); !errors.Is(err, util.ErrContentObjectMissing) {
		t.Fatalf("expected ErrContentObjectMissing without content, got %v", err)
	}

	desc, err := env.modules.UploadContent(ctx, module.ID, "inst-1", multipartFile(t, "slides.pdf", "application/pdf", []byte("%PDF-1.4 body")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	stream, err := env.modules.DownloadContent(ctx, module.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer stream.Reader.Close()

	data, err := io.ReadAll(stream.Reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 body" {
		t.Fatalf("unexpected content %q", data)
	}
	if stream.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", stream.ContentType)
	}
	if stream.Filename != util.FilenameFromObjectKey(desc.ObjectKey) {
		t.Fatalf("unexpected filename %q", stream.Filename)
	}

	// A stale key reads as missing content.
	delete(env.storage.objects, desc.ObjectKey)
	if _, err := env.modules.DownloadContent(ctx, module.ID); !errors.Is(err, util.ErrContentObjectMissing) {
		t.Fatalf("expected ErrContentObjectMissing for stale key, got %v", err)
	}
}

func TestModuleDeleteContent(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	if _, err := env.modules.DeleteContent(ctx, module.ID, "inst-1"); !errors.Is(err, util.ErrModuleHasNoContent) {
		t.Fatalf("expected ErrModuleHasNoContent, got %v", err)
	}

	desc, err := env.modules.UploadContent(ctx, module.ID, "inst-1", multipartFile(t, "slides.pdf", "application/pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	view, err := env.modules.DeleteContent(ctx, module.ID, "inst-1")
	if err != nil {
		t.Fatalf("delete content: %v", err)
	}
	if view.ContentObjectKey != "" || view.DurationSeconds != 0 {
		t.Fatalf("expected content fields cleared, got key=%q duration=%v", view.ContentObjectKey, view.DurationSeconds)
	}
	if _, live := env.storage.objects[desc.ObjectKey]; live {
		t.Fatalf("object should be removed from store")
	}
}

func TestModuleDeleteContent_ToleratesStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	ctx := context.Background()

	if _, err := env.modules.UploadContent(ctx, module.ID, "inst-1", multipartFile(t, "slides.pdf", "application/pdf", []byte("%PDF-1.4"))); err != nil {
		t.Fatalf("upload: %v", err)
	}

	env.storage.failDelete = true
	view, err := env.modules.DeleteContent(ctx, module.ID, "inst-1")
	if err != nil {
		t.Fatalf("delete content should swallow storage failure, got %v", err)
	}
	if view.ContentObjectKey != "" {
		t.Fatalf("key must be cleared even when the store delete fails")
	}
}

func TestModuleDelete_RemovesObjectAndQuizTree(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "inst-1", model.CourseDraft)
	module := env.seedModule(t, course.ID, "Lesson", 1)
	env.seedQuiz(t, module.ID, "Checkpoint")
	ctx := context.Background()

	desc, err := env.modules.UploadContent(ctx, module.ID, "inst-1", multipartFile(t, "slides.pdf", "application/pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := env.modules.Delete(ctx, module.ID, "inst-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, live := env.storage.objects[desc.ObjectKey]; live {
		t.Fatalf("content object should be deleted with the module")
	}

	var quizCount int64
	if err := env.db.Model(&model.Quiz{}).Count(&quizCount).Error; err != nil {
		t.Fatalf("count quizzes: %v", err)
	}
	if quizCount != 0 {
		t.Fatalf("quiz should cascade with module delete, %d left", quizCount)
	}
	if _, err := env.modules.GetByID(module.ID); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound after delete, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/internal/util"
	"github.com/EduNex-Academy/course-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	QuizRepo       *repository.QuizRepository
	Storage        *StorageService
	Events         EventSink
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	quizRepo *repository.QuizRepository,
	storage *StorageService,
	events EventSink,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		QuizRepo:       quizRepo,
		Storage:        storage,
		Events:         events,
	}
}

type CreateCourseInput struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Status      model.CourseStatus `json:"status"`
}

type UpdateCourseInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (s *CourseService) Create(input *CreateCourseInput, instructorID string) (*model.CourseView, error) {
	status := input.Status
	if status == "" {
		status = model.CourseDraft
	}
	if !status.Valid() {
		status = model.CourseDraft
	}

	course := &model.Course{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		InstructorID: instructorID,
		Status:       status,
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	return s.buildView(course, instructorID, false)
}

// GetByID enforces draft visibility: a DRAFT course can be read by its
// instructor only.
func (s *CourseService) GetByID(id uint, actorID string, includeModules bool) (*model.CourseView, error) {
	course, err := s.findVisible(id, actorID)
	if err != nil {
		return nil, err
	}
	return s.buildView(course, actorID, includeModules)
}

func (s *CourseService) List(actorID string) ([]model.CourseView, error) {
	courses, err := s.CourseRepo.FindVisible(actorID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(courses, actorID)
}

func (s *CourseService) ByInstructor(instructorID, actorID string) ([]model.CourseView, error) {
	var courses []model.Course
	var err error
	if actorID != "" && actorID == instructorID {
		courses, err = s.CourseRepo.FindByInstructor(instructorID)
	} else {
		courses, err = s.CourseRepo.FindByInstructorAndStatus(instructorID, model.CoursePublished)
	}
	if err != nil {
		return nil, err
	}
	return s.buildViews(courses, actorID)
}

func (s *CourseService) ByCategory(category, actorID string) ([]model.CourseView, error) {
	courses, err := s.CourseRepo.FindByCategory(category, actorID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(courses, actorID)
}

func (s *CourseService) Search(query, actorID string) ([]model.CourseView, error) {
	courses, err := s.CourseRepo.Search(query, actorID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(courses, actorID)
}

func (s *CourseService) Enrolled(userID string) ([]model.CourseView, error) {
	courses, err := s.CourseRepo.FindEnrolledByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(courses, userID)
}

func (s *CourseService) Update(id uint, input *UpdateCourseInput, actorID string) (*model.CourseView, error) {
	course, err := s.findOwned(id, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		course.Category = *input.Category
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return s.buildView(course, actorID, false)
}

// Publish performs the single allowed lifecycle transition DRAFT -> PUBLISHED.
func (s *CourseService) Publish(ctx context.Context, id uint, actorID string) (*model.CourseView, error) {
	course, err := s.findOwned(id, actorID)
	if err != nil {
		return nil, err
	}

	if !course.Status.CanTransitionTo(model.CoursePublished) {
		return nil, util.ErrCourseAlreadyPublished
	}

	course.Status = model.CoursePublished
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	s.Events.Emit(ctx, EventCoursePublished, map[string]interface{}{
		"courseId":     course.ID,
		"courseTitle":  course.Title,
		"instructorId": course.InstructorID,
	})

	return s.buildView(course, actorID, false)
}

func (s *CourseService) Delete(ctx context.Context, id uint, actorID string) error {
	course, err := s.findOwned(id, actorID)
	if err != nil {
		return err
	}

	if course.ThumbnailObjectKey != "" {
		if err := s.Storage.Delete(ctx, course.ThumbnailObjectKey); err != nil {
			logger.Log.Warn("Failed to delete course thumbnail object",
				zap.Uint("courseId", course.ID),
				zap.String("objectKey", course.ThumbnailObjectKey),
				zap.Error(err))
		}
	}

	return s.CourseRepo.Delete(id)
}

// UploadThumbnail replaces the course thumbnail. The old object is deleted
// before the new one is stored; the two steps are not atomic.
func (s *CourseService) UploadThumbnail(ctx context.Context, id uint, actorID string, file *multipart.FileHeader) (*model.CourseView, error) {
	course, err := s.findOwned(id, actorID)
	if err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if !util.IsImage(contentType) {
		return nil, util.ErrInvalidThumbnailType
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImagePrefix}); err != nil {
		return nil, util.ErrInvalidThumbnailType
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	if course.ThumbnailObjectKey != "" {
		if err := s.Storage.Delete(ctx, course.ThumbnailObjectKey); err != nil {
			logger.Log.Warn("Failed to delete old thumbnail object",
				zap.Uint("courseId", course.ID),
				zap.String("objectKey", course.ThumbnailObjectKey),
				zap.Error(err))
		}
	}

	key := fmt.Sprintf("course-%d/thumbnails/%s.%s", course.ID, uuid.New().String(), util.ExtensionForContentType(contentType))
	url, err := s.Storage.Upload(ctx, key, src, file.Size, contentType)
	if err != nil {
		return nil, err
	}

	course.ThumbnailObjectKey = key
	course.ThumbnailURL = url
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	return s.buildView(course, actorID, false)
}

// findVisible loads a course and hides drafts from everyone but the owner.
func (s *CourseService) findVisible(id uint, actorID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if course.Status == model.CourseDraft && course.InstructorID != actorID {
		return nil, util.ErrNotCourseOwner
	}
	return course, nil
}

// findOwned loads a course and requires the actor to be its instructor.
// Anonymous actors never own anything.
func (s *CourseService) findOwned(id uint, actorID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if actorID == "" || course.InstructorID != actorID {
		return nil, util.ErrNotCourseOwner
	}
	return course, nil
}

func (s *CourseService) buildView(course *model.Course, actorID string, includeModules bool) (*model.CourseView, error) {
	moduleCount, err := s.ModuleRepo.CountByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	enrollmentCount, err := s.EnrollmentRepo.CountByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	view := &model.CourseView{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		InstructorID:    course.InstructorID,
		Category:        course.Category,
		ThumbnailURL:    course.ThumbnailURL,
		Status:          course.Status,
		CreatedAt:       course.CreatedAt,
		ModuleCount:     int(moduleCount),
		EnrollmentCount: int(enrollmentCount),
	}

	if actorID != "" {
		enrolled, err := s.EnrollmentRepo.Exists(actorID, course.ID)
		if err != nil {
			return nil, err
		}
		view.UserEnrolled = enrolled

		if enrolled && moduleCount > 0 {
			completed, err := s.ProgressRepo.CountCompletedByUserAndCourse(actorID, course.ID)
			if err != nil {
				return nil, err
			}
			view.CompletionPercentage = float64(completed) / float64(moduleCount) * 100
		}
	}

	if includeModules {
		modules, err := s.ModuleRepo.FindByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		views := make([]model.ModuleView, 0, len(modules))
		for i := range modules {
			mv := s.moduleView(&modules[i], actorID)
			views = append(views, *mv)
		}
		view.Modules = views
	}

	return view, nil
}

func (s *CourseService) buildViews(courses []model.Course, actorID string) ([]model.CourseView, error) {
	views := make([]model.CourseView, 0, len(courses))
	for i := range courses {
		v, err := s.buildView(&courses[i], actorID, false)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// moduleView assembles the per-module read model, including the actor's
// binary completion state (a module is 0% or 100%, nothing in between).
func (s *CourseService) moduleView(module *model.Module, actorID string) *model.ModuleView {
	view := &model.ModuleView{
		ID:               module.ID,
		CourseID:         module.CourseID,
		Title:            module.Title,
		Type:             module.Type,
		CoinsRequired:    module.CoinsRequired,
		ContentObjectKey: module.ContentObjectKey,
		ContentURL:       s.Storage.GetURL(module.ContentObjectKey),
		DurationSeconds:  module.DurationSeconds,
		ModuleOrder:      module.ModuleOrder,
	}

	if quiz, err := s.QuizRepo.FindByModule(module.ID); err == nil {
		view.QuizID = quiz.ID
	}

	if actorID != "" {
		progress, err := s.ProgressRepo.FindByUserAndModule(actorID, module.ID)
		if err == nil && progress.Completed {
			view.Completed = true
			view.ProgressPercentage = 100
		}
	}

	return view
}

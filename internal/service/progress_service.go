package service

import (
	"context"
	"errors"
	"time"

	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	ModuleRepo   *repository.ModuleRepository
	CourseRepo   *repository.CourseRepository
	Events       EventSink
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	moduleRepo *repository.ModuleRepository,
	courseRepo *repository.CourseRepository,
	events EventSink,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ModuleRepo:   moduleRepo,
		CourseRepo:   courseRepo,
		Events:       events,
	}
}

// MarkCompleted upserts the (user, module) progress row and re-derives the
// course completion aggregate. Reaching 100% emits course.completed, also on
// repeat completions of the final module, since completion state is derived,
// not latched.
func (s *ProgressService) MarkCompleted(ctx context.Context, userID string, moduleID uint) (*model.ProgressView, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	now := time.Now()
	progress, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	switch {
	case err == nil:
		progress.Completed = true
		progress.CompletedAt = &now
		if err := s.ProgressRepo.Update(progress); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = &model.Progress{
			UserID:      userID,
			ModuleID:    moduleID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			// Concurrent upsert lost the insert race; reload and update.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				progress, err = s.ProgressRepo.FindByUserAndModule(userID, moduleID)
				if err != nil {
					return nil, err
				}
				progress.Completed = true
				progress.CompletedAt = &now
				if err := s.ProgressRepo.Update(progress); err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	if err := s.emitIfCourseCompleted(ctx, userID, module.CourseID); err != nil {
		return nil, err
	}

	return s.view(progress, module), nil
}

// Reset flips an existing progress row back to not-completed. Without a row
// there is nothing to reset.
func (s *ProgressService) Reset(userID string, moduleID uint) (*model.ProgressView, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	progress.Completed = false
	progress.CompletedAt = nil
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	return s.view(progress, module), nil
}

// ModuleCompleted reports the binary completion state. Missing rows and
// lookup failures both read as not completed; this path never errors.
func (s *ProgressService) ModuleCompleted(userID string, moduleID uint) bool {
	progress, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	if err != nil {
		return false
	}
	return progress.Completed
}

// CourseStats derives the completion aggregate for one user and course.
// A course with no modules is 0% complete, never a division by zero.
func (s *ProgressService) CourseStats(userID string, courseID uint) (*model.CourseProgressStats, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	total, err := s.ModuleRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}

	var completed int64
	var percentage float64
	if total > 0 {
		completed, err = s.ProgressRepo.CountCompletedByUserAndCourse(userID, courseID)
		if err != nil {
			return nil, err
		}
		percentage = float64(completed) / float64(total) * 100
	}

	return &model.CourseProgressStats{
		UserID:               userID,
		CourseID:             courseID,
		CompletedModules:     completed,
		TotalModules:         total,
		CompletionPercentage: percentage,
	}, nil
}

func (s *ProgressService) ByUser(userID string) ([]model.ProgressView, error) {
	rows, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.views(rows), nil
}

func (s *ProgressService) ByUserAndCourse(userID string, courseID uint) ([]model.ProgressView, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	rows, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.views(rows), nil
}

func (s *ProgressService) ByModule(moduleID uint) ([]model.ProgressView, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	rows, err := s.ProgressRepo.FindByModule(moduleID)
	if err != nil {
		return nil, err
	}
	return s.views(rows), nil
}

func (s *ProgressService) Get(userID string, moduleID uint) (*model.ProgressView, error) {
	progress, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	module, err := s.ModuleRepo.FindByID(progress.ModuleID)
	if err != nil {
		return nil, err
	}
	return s.view(progress, module), nil
}

func (s *ProgressService) Delete(id uint) error {
	if _, err := s.ProgressRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgressNotFound
		}
		return err
	}
	return s.ProgressRepo.Delete(id)
}

func (s *ProgressService) emitIfCourseCompleted(ctx context.Context, userID string, courseID uint) error {
	total, err := s.ModuleRepo.CountByCourse(courseID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	completed, err := s.ProgressRepo.CountCompletedByUserAndCourse(userID, courseID)
	if err != nil {
		return err
	}
	if completed < total {
		return nil
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}

	s.Events.Emit(ctx, EventCourseCompleted, map[string]interface{}{
		"userId":           userID,
		"courseId":         course.ID,
		"courseTitle":      course.Title,
		"completedModules": completed,
		"totalModules":     total,
	})
	return nil
}

func (s *ProgressService) view(progress *model.Progress, module *model.Module) *model.ProgressView {
	v := &model.ProgressView{
		ID:          progress.ID,
		UserID:      progress.UserID,
		ModuleID:    progress.ModuleID,
		Completed:   progress.Completed,
		CompletedAt: progress.CompletedAt,
	}
	if module != nil {
		v.ModuleTitle = module.Title
		v.ModuleType = module.Type
		v.CourseID = module.CourseID
		if course, err := s.CourseRepo.FindByID(module.CourseID); err == nil {
			v.CourseTitle = course.Title
		}
	}
	return v
}

func (s *ProgressService) views(rows []model.Progress) []model.ProgressView {
	out := make([]model.ProgressView, 0, len(rows))
	for i := range rows {
		var module *model.Module
		if m, err := s.ModuleRepo.FindByID(rows[i].ModuleID); err == nil {
			module = m
		}
		out = append(out, *s.view(&rows[i], module))
	}
	return out
}

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

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	ProgressRepo   *repository.ProgressRepository
	Events         EventSink
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	progressRepo *repository.ProgressRepository,
	events EventSink,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		ProgressRepo:   progressRepo,
		Events:         events,
	}
}

// Enroll registers a user on a course. Duplicates are rejected twice: a
// pre-check for the common case and the unique index for the concurrent one,
// both surfacing as the same conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, userID string, courseID uint) (*model.EnrollmentView, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.Events.Emit(ctx, EventCourseEnrolled, map[string]interface{}{
		"userId":      userID,
		"courseId":    course.ID,
		"courseTitle": course.Title,
	})

	return s.view(enrollment, course)
}

// Unenroll removes the enrollment only. Progress history is retained so a
// returning learner resumes where they left off.
func (s *EnrollmentService) Unenroll(userID string, courseID uint) error {
	affected, err := s.EnrollmentRepo.Delete(userID, courseID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrEnrollmentNotFound
	}
	return nil
}

func (s *EnrollmentService) IsEnrolled(userID string, courseID uint) (bool, error) {
	return s.EnrollmentRepo.Exists(userID, courseID)
}

func (s *EnrollmentService) ByUser(userID string) ([]model.EnrollmentView, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]model.EnrollmentView, 0, len(enrollments))
	for i := range enrollments {
		course, err := s.CourseRepo.FindByID(enrollments[i].CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		v, err := s.view(&enrollments[i], course)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *EnrollmentService) ByCourse(courseID uint, actorID string) ([]model.EnrollmentView, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if actorID == "" || course.InstructorID != actorID {
		return nil, util.ErrNotCourseOwner
	}

	enrollments, err := s.EnrollmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	views := make([]model.EnrollmentView, 0, len(enrollments))
	for i := range enrollments {
		v, err := s.view(&enrollments[i], course)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *EnrollmentService) view(enrollment *model.Enrollment, course *model.Course) (*model.EnrollmentView, error) {
	total, err := s.ModuleRepo.CountByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	var percentage float64
	if total > 0 {
		completed, err := s.ProgressRepo.CountCompletedByUserAndCourse(enrollment.UserID, course.ID)
		if err != nil {
			return nil, err
		}
		percentage = float64(completed) / float64(total) * 100
	}

	return &model.EnrollmentView{
		ID:                   enrollment.ID,
		UserID:               enrollment.UserID,
		CourseID:             enrollment.CourseID,
		CourseTitle:          course.Title,
		EnrolledAt:           enrollment.EnrolledAt,
		CompletionPercentage: percentage,
	}, nil
}

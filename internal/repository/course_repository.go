package repository

import (
	"github.com/EduNex-Academy/course-service/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByStatus(status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ?", status).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// FindVisible returns all published courses plus the actor's own drafts.
func (r *CourseRepository) FindVisible(actorID string) ([]model.Course, error) {
	var courses []model.Course
	q := r.DB.Where("status = ?", model.CoursePublished)
	if actorID != "" {
		q = r.DB.Where("status = ? OR instructor_id = ?", model.CoursePublished, actorID)
	}
	err := q.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByInstructor(instructorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByInstructorAndStatus(instructorID string, status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ? AND status = ?", instructorID, status).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByCategory(category, actorID string) ([]model.Course, error) {
	var courses []model.Course
	q := r.DB.Where("category = ?", category)
	if actorID != "" {
		q = q.Where("status = ? OR instructor_id = ?", model.CoursePublished, actorID)
	} else {
		q = q.Where("status = ?", model.CoursePublished)
	}
	err := q.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Search(query, actorID string) ([]model.Course, error) {
	var courses []model.Course
	pattern := "%" + query + "%"
	q := r.DB.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	if actorID != "" {
		q = q.Where("status = ? OR instructor_id = ?", model.CoursePublished, actorID)
	} else {
		q = q.Where("status = ?", model.CoursePublished)
	}
	err := q.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindEnrolledByUser(userID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.enrolled_at DESC").
		Find(&courses).Error
	return courses, err
}

// Delete removes a course and its whole subtree: quiz answers, questions,
// quizzes, progress rows, modules and enrollments, in one transaction.
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		moduleIDs := tx.Model(&model.Module{}).Select("id").Where("course_id = ?", id)
		quizIDs := tx.Model(&model.Quiz{}).Select("id").Where("module_id IN (?)", moduleIDs)
		questionIDs := tx.Model(&model.QuizQuestion{}).Select("id").Where("quiz_id IN (?)", quizIDs)

		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&model.Progress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

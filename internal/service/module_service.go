package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/EduNex-Academy/course-service/internal/config"
	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/internal/util"
	"github.com/EduNex-Academy/course-service/pkg/logger"
	"github.com/EduNex-Academy/course-service/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
	Cfg        *config.Config
}

func NewModuleService(
	moduleRepo *repository.ModuleRepository,
	courseRepo *repository.CourseRepository,
	storage *StorageService,
	cfg *config.Config,
) *ModuleService {
	return &ModuleService{
		ModuleRepo: moduleRepo,
		CourseRepo: courseRepo,
		Storage:    storage,
		Cfg:        cfg,
	}
}

type CreateModuleInput struct {
	CourseID      uint             `json:"courseId" binding:"required"`
	Title         string           `json:"title" binding:"required"`
	Type          model.ModuleType `json:"type"`
	CoinsRequired int              `json:"coinsRequired"`
	ModuleOrder   int              `json:"moduleOrder"`
}

type UpdateModuleInput struct {
	CourseID      *uint             `json:"courseId"`
	Title         *string           `json:"title"`
	Type          *model.ModuleType `json:"type"`
	CoinsRequired *int              `json:"coinsRequired"`
	ModuleOrder   *int              `json:"moduleOrder"`
}

// ContentStream is an open handle on a module's stored content object.
type ContentStream struct {
	Reader      io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
}

func (s *ModuleService) Create(input *CreateModuleInput, actorID string) (*model.ModuleView, error) {
	course, err := s.ownedCourse(input.CourseID, actorID)
	if err != nil {
		return nil, err
	}

	moduleType := input.Type
	if moduleType == "" || !moduleType.Valid() {
		moduleType = model.ModuleOther
	}
	if input.CoinsRequired < 0 {
		input.CoinsRequired = 0
	}

	module := &model.Module{
		CourseID:      course.ID,
		Title:         input.Title,
		Type:          moduleType,
		CoinsRequired: input.CoinsRequired,
		ModuleOrder:   input.ModuleOrder,
	}

	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return s.view(module), nil
}

func (s *ModuleService) GetByID(id uint) (*model.ModuleView, error) {
	module, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.view(module), nil
}

func (s *ModuleService) ByCourse(courseID uint) ([]model.ModuleView, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.ModuleRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return s.views(modules), nil
}

func (s *ModuleService) ByType(moduleType model.ModuleType) ([]model.ModuleView, error) {
	modules, err := s.ModuleRepo.FindByType(moduleType)
	if err != nil {
		return nil, err
	}
	return s.views(modules), nil
}

// AvailableByCoins lists the modules of a course a learner holding the given
// coin balance can open.
func (s *ModuleService) AvailableByCoins(courseID uint, coins int) ([]model.ModuleView, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.ModuleRepo.FindByCourseAndMaxCoins(courseID, coins)
	if err != nil {
		return nil, err
	}
	return s.views(modules), nil
}

func (s *ModuleService) Update(id uint, input *UpdateModuleInput, actorID string) (*model.ModuleView, error) {
	module, err := s.findOwned(id, actorID)
	if err != nil {
		return nil, err
	}

	if input.CourseID != nil && *input.CourseID != module.CourseID {
		// Moving a module requires owning the destination course too.
		if _, err := s.ownedCourse(*input.CourseID, actorID); err != nil {
			return nil, err
		}
		module.CourseID = *input.CourseID
	}
	if input.Title != nil {
		module.Title = *input.Title
	}
	if input.Type != nil && input.Type.Valid() {
		module.Type = *input.Type
	}
	if input.CoinsRequired != nil && *input.CoinsRequired >= 0 {
		module.CoinsRequired = *input.CoinsRequired
	}
	if input.ModuleOrder != nil {
		module.ModuleOrder = *input.ModuleOrder
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return s.view(module), nil
}

func (s *ModuleService) Reorder(id uint, order int, actorID string) error {
	if _, err := s.findOwned(id, actorID); err != nil {
		return err
	}
	return s.ModuleRepo.UpdateOrder(id, order)
}

func (s *ModuleService) Delete(ctx context.Context, id uint, actorID string) error {
	module, err := s.findOwned(id, actorID)
	if err != nil {
		return err
	}

	if module.ContentObjectKey != "" {
		if err := s.Storage.Delete(ctx, module.ContentObjectKey); err != nil {
			logger.Log.Warn("Failed to delete module content object",
				zap.Uint("moduleId", module.ID),
				zap.String("objectKey", module.ContentObjectKey),
				zap.Error(err))
		}
	}

	return s.ModuleRepo.Delete(id)
}

// UploadContent replaces the module's content object. The declared content
// type must be video/* or application/pdf. The previous object is deleted
// before the new one is stored; the two steps are not atomic, so a stale key
// surfaces as a 404 on download rather than being silently healed.
func (s *ModuleService) UploadContent(ctx context.Context, moduleID uint, actorID string, file *multipart.FileHeader) (*model.ContentDescriptor, error) {
	module, err := s.findOwned(moduleID, actorID)
	if err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}
	if !util.IsVideo(contentType) && !util.IsPDF(contentType) {
		return nil, util.ErrUnsupportedContentType
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if module.ContentObjectKey != "" {
		if err := s.Storage.Delete(ctx, module.ContentObjectKey); err != nil {
			logger.Log.Warn("Failed to delete old content object",
				zap.Uint("moduleId", module.ID),
				zap.String("objectKey", module.ContentObjectKey),
				zap.Error(err))
		}
	}

	key := fmt.Sprintf("module-%d/%s.%s", module.ID, uuid.New().String(), util.ExtensionForContentType(contentType))

	var url string
	var duration float64
	if util.IsVideo(contentType) {
		url, duration, err = s.uploadVideo(ctx, key, src, file.Size, contentType)
	} else {
		url, err = s.Storage.Upload(ctx, key, src, file.Size, contentType)
	}
	if err != nil {
		return nil, err
	}

	module.ContentObjectKey = key
	module.DurationSeconds = duration
	if util.IsVideo(contentType) {
		module.Type = model.ModuleVideo
	} else {
		module.Type = model.ModulePDF
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}

	monitoring.ContentBytesUploaded.Add(float64(file.Size))

	return &model.ContentDescriptor{
		ModuleID:    module.ID,
		Filename:    file.Filename,
		ContentType: contentType,
		ObjectKey:   key,
		URL:         url,
		Size:        file.Size,
	}, nil
}

// uploadVideo stages the stream in a temp file so the duration can be probed
// before the object is stored. Probe failures are tolerated: the module just
// carries no duration.
func (s *ModuleService) uploadVideo(ctx context.Context, key string, src multipart.File, size int64, contentType string) (string, float64, error) {
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", 0, err
	}

	tempFile, err := os.CreateTemp(tempDir, "upload_video_*")
	if err != nil {
		return "", 0, err
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, src); err != nil {
		tempFile.Close()
		return "", 0, err
	}
	tempFile.Close()

	var duration float64
	if info, err := util.GetVideoInfo(tempPath); err != nil {
		logger.Log.Warn("Failed to probe video duration", zap.String("objectKey", key), zap.Error(err))
	} else {
		duration = info.Duration
	}

	url, err := s.Storage.UploadFile(ctx, key, tempPath, contentType)
	if err != nil {
		return "", 0, err
	}
	return url, duration, nil
}

// DownloadContent opens the module's stored object for streaming. A module
// without content, or one whose key no longer resolves in the store, is a
// not-found.
func (s *ModuleService) DownloadContent(ctx context.Context, moduleID uint) (*ContentStream, error) {
	module, err := s.find(moduleID)
	if err != nil {
		return nil, err
	}

	if module.ContentObjectKey == "" {
		return nil, util.ErrContentObjectMissing
	}

	exists, err := s.Storage.Exists(ctx, module.ContentObjectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrContentObjectMissing
	}

	reader, contentType, size, err := s.Storage.Download(ctx, module.ContentObjectKey)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	return &ContentStream{
		Reader:      reader,
		ContentType: contentType,
		Filename:    util.FilenameFromObjectKey(module.ContentObjectKey),
		Size:        size,
	}, nil
}

func (s *ModuleService) DeleteContent(ctx context.Context, moduleID uint, actorID string) (*model.ModuleView, error) {
	module, err := s.findOwned(moduleID, actorID)
	if err != nil {
		return nil, err
	}

	if module.ContentObjectKey == "" {
		return nil, util.ErrModuleHasNoContent
	}

	if err := s.Storage.Delete(ctx, module.ContentObjectKey); err != nil {
		logger.Log.Warn("Failed to delete content object",
			zap.Uint("moduleId", module.ID),
			zap.String("objectKey", module.ContentObjectKey),
			zap.Error(err))
	}

	module.ContentObjectKey = ""
	module.DurationSeconds = 0
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return s.view(module), nil
}

// ContentURL derives the public URL for a stored key without touching the
// store. Empty key yields an empty URL.
func (s *ModuleService) ContentURL(key string) string {
	return s.Storage.GetURL(key)
}

func (s *ModuleService) find(id uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) findOwned(id uint, actorID string) (*model.Module, error) {
	module, err := s.find(id)
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if actorID == "" || course.InstructorID != actorID {
		return nil, util.ErrNotCourseOwner
	}
	return module, nil
}

func (s *ModuleService) ownedCourse(id uint, actorID string) (*model.Course, error) {
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

func (s *ModuleService) view(module *model.Module) *model.ModuleView {
	return &model.ModuleView{
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
}

func (s *ModuleService) views(modules []model.Module) []model.ModuleView {
	out := make([]model.ModuleView, 0, len(modules))
	for i := range modules {
		out = append(out, *s.view(&modules[i]))
	}
	return out
}

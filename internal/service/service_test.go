package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"testing"

	"github.com/EduNex-Academy/course-service/internal/config"
	"github.com/EduNex-Academy/course-service/internal/model"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/pkg/database"
	"github.com/EduNex-Academy/course-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A second connection to :memory: would see an empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeObject struct {
	data        []byte
	contentType string
}

// fakeStorage is an in-memory StorageProvider that records every put and
// delete so tests can assert on object lifecycle.
type fakeStorage struct {
	objects    map[string]fakeObject
	puts       []string
	deletes    []string
	failDelete bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]fakeObject)}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[key] = fakeObject{data: data, contentType: contentType}
	f.puts = append(f.puts, key)
	return f.GetURL(key), nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, key string, localPath string, contentType string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	f.objects[key] = fakeObject{data: data, contentType: contentType}
	f.puts = append(f.puts, key)
	return f.GetURL(key), nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, string, int64, error) {
	obj, ok := f.objects[key]
	if !ok {
		return nil, "", 0, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, int64(len(obj.data)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	if f.failDelete {
		return errors.New("storage unavailable")
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) GetURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://cdn.test/" + key
}

type recordedEvent struct {
	Type    string
	Payload map[string]interface{}
}

// recordingSink captures emitted events in order.
type recordingSink struct {
	events []recordedEvent
}

func (s *recordingSink) Emit(ctx context.Context, eventType string, payload map[string]interface{}) {
	s.events = append(s.events, recordedEvent{Type: eventType, Payload: payload})
}

func (s *recordingSink) ofType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, e := range s.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// testEnv wires the full service layer over an in-memory database, a fake
// object store and a recording event sink.
type testEnv struct {
	db      *gorm.DB
	storage *fakeStorage
	sink    *recordingSink

	courses  *CourseService
	modules  *ModuleService
	enroll   *EnrollmentService
	progress *ProgressService
	quizzes  *QuizService
	results  *QuizResultService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	storage := newFakeStorage()
	sink := &recordingSink{}
	storageSvc := &StorageService{Provider: storage}

	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	resultRepo := repository.NewQuizResultRepository(db)

	return &testEnv{
		db:       db,
		storage:  storage,
		sink:     sink,
		courses:  NewCourseService(courseRepo, moduleRepo, enrollmentRepo, progressRepo, quizRepo, storageSvc, sink),
		modules:  NewModuleService(moduleRepo, courseRepo, storageSvc, cfg),
		enroll:   NewEnrollmentService(enrollmentRepo, courseRepo, moduleRepo, progressRepo, sink),
		progress: NewProgressService(progressRepo, moduleRepo, courseRepo, sink),
		quizzes:  NewQuizService(quizRepo, moduleRepo),
		results:  NewQuizResultService(resultRepo, quizRepo, moduleRepo, courseRepo),
	}
}

func (e *testEnv) seedCourse(t *testing.T, instructorID string, status model.CourseStatus) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:        "Go for Backend Engineers",
		Description:  "From zero to production",
		InstructorID: instructorID,
		Category:     "programming",
		Status:       status,
	}
	if err := e.db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func (e *testEnv) seedModule(t *testing.T, courseID uint, title string, order int) *model.Module {
	t.Helper()
	module := &model.Module{
		CourseID:    courseID,
		Title:       title,
		Type:        model.ModuleOther,
		ModuleOrder: order,
	}
	if err := e.db.Create(module).Error; err != nil {
		t.Fatalf("seed module: %v", err)
	}
	return module
}

func (e *testEnv) seedQuiz(t *testing.T, moduleID uint, title string) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{ModuleID: moduleID, Title: title}
	if err := e.db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

// multipartFile builds a parsed *multipart.FileHeader the way gin receives
// uploads, with the declared content type on the part header.
func multipartFile(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(len(data)) + 10240)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected 1 file in form, got %d", len(files))
	}
	return files[0]
}

// pngBytes carries a real PNG signature so content sniffing resolves it to
// image/png.
func pngBytes() []byte {
	return append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, bytes.Repeat([]byte{0}, 64)...)
}

package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EduNex-Academy/course-service/internal/config"
	"github.com/EduNex-Academy/course-service/internal/controller"
	"github.com/EduNex-Academy/course-service/internal/repository"
	"github.com/EduNex-Academy/course-service/internal/service"
	"github.com/EduNex-Academy/course-service/internal/util"
	"github.com/EduNex-Academy/course-service/pkg/database"
	"github.com/EduNex-Academy/course-service/pkg/logger"
	"github.com/EduNex-Academy/course-service/pkg/monitoring"
	"github.com/EduNex-Academy/course-service/pkg/security"
	"github.com/EduNex-Academy/course-service/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	quiz       *repository.QuizRepository
	quizResult *repository.QuizResultRepository
}

type services struct {
	storage    *service.StorageService
	events     service.EventSink
	course     *service.CourseService
	module     *service.ModuleService
	enrollment *service.EnrollmentService
	progress   *service.ProgressService
	quiz       *service.QuizService
	quizResult *service.QuizResultService
}

type controllers struct {
	course     *controller.CourseController
	module     *controller.ModuleController
	enrollment *controller.EnrollmentController
	progress   *controller.ProgressController
	quiz       *controller.QuizController
	quizResult *controller.QuizResultController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded configuration and notifies subscribers.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewProgressRepository(db),
		quiz:       repository.NewQuizRepository(db),
		quizResult: repository.NewQuizResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.events = service.NewRedisEventSink(rdb, &cfg.Notify)

	s.course = service.NewCourseService(
		repos.course,
		repos.module,
		repos.enrollment,
		repos.progress,
		repos.quiz,
		s.storage,
		s.events,
	)
	s.module = service.NewModuleService(repos.module, repos.course, s.storage, cfg)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.module, repos.progress, s.events)
	s.progress = service.NewProgressService(repos.progress, repos.module, repos.course, s.events)
	s.quiz = service.NewQuizService(repos.quiz, repos.module)
	s.quizResult = service.NewQuizResultService(repos.quizResult, repos.quiz, repos.module, repos.course)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		course:     controller.NewCourseController(s.course),
		module:     controller.NewModuleController(s.module),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		progress:   controller.NewProgressController(s.progress),
		quiz:       controller.NewQuizController(s.quiz),
		quizResult: controller.NewQuizResultController(s.quizResult),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("course-service", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

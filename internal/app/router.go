package app

import (
	"github.com/EduNex-Academy/course-service/docs"
	"github.com/EduNex-Academy/course-service/internal/config"
	"github.com/EduNex-Academy/course-service/internal/middleware"
	"github.com/EduNex-Academy/course-service/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerBrowseRoutes(router, c, cfg)
	a.registerAuthorizedRoutes(router, c, cfg)
}

// registerBrowseRoutes covers the public read surface. TryAuth resolves the
// caller when a token is present so instructors see their own drafts.
func (a *App) registerBrowseRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.GET("/health", c.health.HealthCheck)

		public.GET("/courses", c.course.List)
		public.GET("/courses/search", c.course.Search)
		public.GET("/courses/category/:category", c.course.ByCategory)
		public.GET("/courses/instructor/:instructorId", c.course.ByInstructor)
		public.GET("/courses/:id", c.course.GetByID)
		public.GET("/courses/:id/modules", c.module.ByCourse)
		public.GET("/courses/:id/modules/available", c.module.AvailableByCoins)

		public.GET("/modules/type/:type", c.module.ByType)
		public.GET("/modules/:id", c.module.GetByID)
		public.GET("/modules/:id/content", c.module.DownloadContent)
		public.GET("/modules/:id/quiz", c.quiz.GetByModule)

		public.GET("/quizzes/:id", c.quiz.GetByID)
	}
}

func (a *App) registerAuthorizedRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		// Course authoring
		auth.POST("/courses", c.course.Create)
		auth.PUT("/courses/:id", c.course.Update)
		auth.DELETE("/courses/:id", c.course.Delete)
		auth.POST("/courses/:id/publish", c.course.Publish)
		auth.POST("/courses/:id/thumbnail", c.course.UploadThumbnail)
		auth.GET("/courses/enrolled", c.course.Enrolled)

		// Enrollment registry
		auth.POST("/courses/:id/enroll", c.enrollment.Enroll)
		auth.DELETE("/courses/:id/enroll", c.enrollment.Unenroll)
		auth.GET("/courses/:id/enrollment", c.enrollment.IsEnrolled)
		auth.GET("/courses/:id/enrollments", c.enrollment.ByCourse)
		auth.GET("/enrollments", c.enrollment.ByUser)

		// Module authoring and content
		auth.POST("/modules", c.module.Create)
		auth.PUT("/modules/:id", c.module.Update)
		auth.PUT("/modules/:id/order", c.module.Reorder)
		auth.DELETE("/modules/:id", c.module.Delete)
		auth.POST("/modules/:id/content", c.module.UploadContent)
		auth.DELETE("/modules/:id/content", c.module.DeleteContent)

		// Progress
		auth.POST("/modules/:id/complete", c.progress.MarkCompleted)
		auth.DELETE("/modules/:id/complete", c.progress.Reset)
		auth.GET("/modules/:id/progress", c.progress.Get)
		auth.GET("/courses/:id/progress", c.progress.CourseStats)
		auth.GET("/courses/:id/progress/modules", c.progress.ByUserAndCourse)
		auth.GET("/progress", c.progress.ByUser)

		// Quiz authoring
		auth.POST("/quizzes", c.quiz.Create)
		auth.PUT("/quizzes/:id", c.quiz.Update)
		auth.DELETE("/quizzes/:id", c.quiz.Delete)
		auth.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		auth.PUT("/questions/:id", c.quiz.UpdateQuestion)
		auth.DELETE("/questions/:id", c.quiz.DeleteQuestion)
		auth.POST("/questions/:id/answers", c.quiz.AddAnswer)
		auth.PUT("/answers/:id", c.quiz.UpdateAnswer)
		auth.DELETE("/answers/:id", c.quiz.DeleteAnswer)

		// Quiz grading store
		auth.POST("/quiz-results", c.quizResult.RecordAttempt)
		auth.GET("/quiz-results/mine", c.quizResult.ByUser)
		auth.GET("/quiz-results/:id", c.quizResult.GetByID)
		auth.DELETE("/quiz-results/:id", c.quizResult.Delete)
		auth.GET("/quizzes/:id/results", c.quizResult.History)
		auth.GET("/quizzes/:id/results/best", c.quizResult.BestAttempt)
		auth.GET("/quizzes/:id/results/all", c.quizResult.ByQuiz)
	}
}

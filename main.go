// @title EduNex Course Service API
// @version 1.0
// @description Course lifecycle, module content and progress tracking service for the EduNex platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/EduNex-Academy/course-service/internal/app"
	"github.com/EduNex-Academy/course-service/internal/config"
	"github.com/EduNex-Academy/course-service/pkg/configwatcher"
	"github.com/EduNex-Academy/course-service/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration complete, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		if newCfg, ok := raw.(*config.Config); ok {
			application.ApplyConfig(newCfg)
		}
	})

	application.Run()
}

package main

import (
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/config"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/database"
	logger "github.com/shouta0715/shunsaku-monorepo-sub001/internal/logging"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/repository"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/router"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/services"
)

func main() {
	projectRoot := "."

	// The real logger needs the logging config, so configuration loads
	// against a bootstrap console logger first.
	bootstrap, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}
	if err := config.Init(projectRoot, bootstrap); err != nil {
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(projectRoot, config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	db, err := database.Init(log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Load the question catalog at startup; weights are fixed for the
	// lifetime of the process.
	catalog, err := models.LoadCatalog(config.Conf.Survey.QuestionsPath)
	if err != nil {
		log.Fatal("Failed to load question catalog", zap.Error(err))
	}

	stores := repository.NewStores(db)

	emailService := services.NewEmailService(log)
	scheduler := services.NewScheduler(log, emailService, stores.Users, stores.Surveys, stores.Alerts)
	scheduler.Start()

	r := router.Setup(log, catalog, stores)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}

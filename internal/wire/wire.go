package wire

import (
	"SMMBoard/internal/api"
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/api/handler"
	"SMMBoard/internal/job"
	"SMMBoard/internal/pkg/cron"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/scraper"
	"SMMBoard/internal/service"

	"github.com/gin-gonic/gin"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer top level components of the running application
type ApplicationContainer struct {
	Router    *gin.Engine
	CronMgr   *cron.Manager
	IngestJob *job.IngestJob
}

func BuildApplication(db *mongoDB.Database, cfg *config.Config) (*ApplicationContainer, error) {
	// repositories
	postRepo := mongo.NewSmmPostRepo(db)
	accountRepo := mongo.NewSocialAccountRepo(db)
	sysBoxRepo := mongo.NewSysBoxRepo(db)

	// services
	scraperClient := scraper.NewClient(cfg.Scraper)
	sysBoxSvc := service.NewSysBoxService(sysBoxRepo)
	accountSvc := service.NewAccountService(accountRepo)
	recorder := service.NewMetricsRecorder(postRepo, cfg.Metrics.HistoryLimit)
	postSvc := service.NewPostService(postRepo, recorder, accountSvc, sysBoxSvc, cfg.Metrics)
	ingestSvc := service.NewIngestService(accountRepo, postRepo, postSvc, sysBoxSvc, scraperClient, cfg.Ingest, cfg.Scraper)

	// jobs
	ingestJob := job.NewIngestJob(ingestSvc, cfg.Ingest)
	cronMgr := cron.NewCronManager(ingestJob, cfg.Ingest)

	handlers := &api.HandlersGroup{
		AccountHandler: handler.NewAccountHandler(accountSvc),
		PostHandler:    handler.NewPostHandler(postSvc),
		IngestHandler:  handler.NewIngestHandler(ingestJob),
		SysBoxHandler:  handler.NewSysBoxHandler(sysBoxSvc),
	}
	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:    router,
		CronMgr:   cronMgr,
		IngestJob: ingestJob,
	}, nil
}

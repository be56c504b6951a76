package cron

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/job"
	"SMMBoard/internal/pkg/logger"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine    *cron.Cron
	ingestJob *job.IngestJob
	cfg       config.IngestConfig
}

func NewCronManager(ingestJob *job.IngestJob, cfg config.IngestConfig) *Manager {
	cronLogger := logger.CronLogger{}
	return &Manager{
		engine: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		ingestJob: ingestJob,
		cfg:       cfg,
	}
}

// RegisterJobs registers the ingestion pass at ingest.spec
func (s *Manager) RegisterJobs() error {
	spec := s.cfg.Spec
	if spec == "" {
		spec = "@every 30m"
	}
	if _, err := s.engine.AddJob(spec, s.ingestJob); err != nil {
		return err
	}
	log.Info("cron job registered", "job", "ingest", "spec", spec)
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine started")
	s.engine.Start()
	if s.cfg.RunOnStart {
		s.ingestJob.RunInBackground()
	}
}

// Stop cancels the pass in progress, then waits for cron entries and background passes to return
func (s *Manager) Stop() {
	s.ingestJob.Stop()
	<-s.engine.Stop().Done()
	s.ingestJob.Wait()
	log.Info("cron engine stopped")
}

package job

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/consts"
	"SMMBoard/internal/pkg/logger"
	"SMMBoard/internal/pkg/redis"
	"SMMBoard/internal/service"
	"context"
	"errors"
	log "log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// lockMarginDivisor a tenth of the lock ttl is kept for releasing the lock
const lockMarginDivisor = 10

// IngestJob runs ingestion passes, at most one at a time.
// The in-process flag is shared by cron ticks and manual triggers; the redis lock covers other instances.
type IngestJob struct {
	ingestSvc service.IngestService
	lockTTL   time.Duration
	deadline  time.Duration

	running atomic.Bool
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewIngestJob(ingestSvc service.IngestService, cfg config.IngestConfig) *IngestJob {
	ctx, cancel := context.WithCancel(context.Background())
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 30 * time.Minute
	}
	return &IngestJob{
		ingestSvc: ingestSvc,
		lockTTL:   lockTTL,
		deadline:  cfg.PassDeadline,
		baseCtx:   ctx,
		cancel:    cancel,
	}
}

// Run cron entry point
func (s *IngestJob) Run() {
	ctx := logger.NewTraceContext(s.baseCtx, consts.TraceIngestJobPrefix)
	if ctx.Err() != nil {
		log.InfoContext(ctx, "ingest pass skipped, job stopped")
		return
	}
	if !s.running.CompareAndSwap(false, true) {
		log.WarnContext(ctx, "ingest pass skipped, previous pass still running")
		return
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer s.running.Store(false)

	if _, err := s.pass(ctx); err != nil && !errors.Is(err, service.ErrIngestRunning) {
		log.ErrorContext(ctx, "ingest pass failed", "err", err)
	}
}

// RunInBackground runs a pass on its own goroutine; Wait covers it from the moment this returns
func (s *IngestJob) RunInBackground() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()
}

// Trigger starts a pass in the background and returns its trace id
func (s *IngestJob) Trigger(ctx context.Context) (string, error) {
	if !s.running.CompareAndSwap(false, true) {
		log.InfoContext(ctx, "manual ingest rejected, pass already running")
		return "", service.ErrIngestRunning
	}

	passCtx := logger.NewTraceContext(s.baseCtx, consts.TraceIngestManualPrefix)
	traceID := logger.TraceID(passCtx)
	log.InfoContext(ctx, "manual ingest triggered", "pass_trace_id", traceID)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)
		if _, err := s.pass(passCtx); err != nil && !errors.Is(err, service.ErrIngestRunning) {
			log.ErrorContext(passCtx, "manual ingest pass failed", "err", err)
		}
	}()
	return traceID, nil
}

// RunAccount ingests a single account synchronously under the same single-flight guard
func (s *IngestJob) RunAccount(ctx context.Context, accountID string) (*dto.AccountIngestDTO, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, service.ErrIngestRunning
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.passDeadline())
	defer cancel()

	var res *dto.AccountIngestDTO
	err := s.withLock(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.ingestSvc.IngestAccountByID(ctx, accountID)
		return err
	})
	return res, err
}

// Running reports whether a pass is in progress in this process
func (s *IngestJob) Running() bool {
	return s.running.Load()
}

// Stop cancels the pass in progress
func (s *IngestJob) Stop() {
	s.cancel()
}

// Wait blocks until background passes return
func (s *IngestJob) Wait() {
	s.wg.Wait()
}

func (s *IngestJob) pass(ctx context.Context) (*dto.IngestResultDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, s.passDeadline())
	defer cancel()

	var res *dto.IngestResultDTO
	err := s.withLock(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.ingestSvc.RunPass(ctx)
		return err
	})
	return res, err
}

// passDeadline bounds a pass so it ends before the ingest lock expires
func (s *IngestJob) passDeadline() time.Duration {
	limit := s.lockTTL - s.lockTTL/lockMarginDivisor
	if s.deadline > 0 && s.deadline < limit {
		return s.deadline
	}
	return limit
}

// withLock runs fn while holding the cluster wide ingest lock
func (s *IngestJob) withLock(ctx context.Context, fn func(ctx context.Context) error) error {
	token := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.IngestPassLock, token, s.lockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire ingest lock failed", "err", err)
		return err
	}
	if !ok {
		log.WarnContext(ctx, "ingest skipped, lock held by another instance")
		return service.ErrIngestRunning
	}
	defer func() {
		// the pass context may already be cancelled here
		if err := redis.UnLock(context.WithoutCancel(ctx), consts.IngestPassLock, token); err != nil {
			log.WarnContext(ctx, "release ingest lock failed", "err", err)
		}
	}()
	return fn(ctx)
}

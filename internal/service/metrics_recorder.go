package service

import (
	"SMMBoard/internal/pkg/consts"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/redis"
	"SMMBoard/internal/pkg/util"
	"context"
	log "log/slog"
	"time"
)

// MetricsRecorder maintains the embedded metrics history of a post
type MetricsRecorder interface {
	// RecordCreated seeds the history of a freshly inserted post with one snapshot, unconditionally
	RecordCreated(ctx context.Context, post *mongo.SmmPostModel) error
	// RecordUpdated appends a snapshot when likes, comments or shares differ between before and after
	RecordUpdated(ctx context.Context, before, after *mongo.SmmPostModel) (bool, error)
}

type metricsRecorderImpl struct {
	postRepo     mongo.SmmPostRepo
	historyLimit int
	now          func() time.Time
}

func NewMetricsRecorder(postRepo mongo.SmmPostRepo, historyLimit int) MetricsRecorder {
	return &metricsRecorderImpl{
		postRepo:     postRepo,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

func (s *metricsRecorderImpl) RecordCreated(ctx context.Context, post *mongo.SmmPostModel) error {
	snap := s.snapshotOf(post)
	if err := s.postRepo.AppendSnapshot(ctx, post.ID, snap, s.historyLimit); err != nil {
		return err
	}
	post.MetricsHistory = append(post.MetricsHistory, snap)
	s.invalidate(ctx, post)
	return nil
}

func (s *metricsRecorderImpl) RecordUpdated(ctx context.Context, before, after *mongo.SmmPostModel) (bool, error) {
	if !metricsChanged(before, after) {
		return false, nil
	}

	snap := s.snapshotOf(after)
	if err := s.postRepo.AppendSnapshot(ctx, after.ID, snap, s.historyLimit); err != nil {
		return false, err
	}
	after.MetricsHistory = append(after.MetricsHistory, snap)
	s.invalidate(ctx, after)

	log.InfoContext(ctx, "metrics snapshot appended",
		"post_id", after.ID.Hex(),
		"likes", snap.Likes,
		"comments", snap.Comments,
		"shares", snap.Shares)
	return true, nil
}

// snapshotOf takes the counters of post at the current time, never earlier than the last snapshot
func (s *metricsRecorderImpl) snapshotOf(post *mongo.SmmPostModel) mongo.MetricsSnapshot {
	ts := s.now()
	if n := len(post.MetricsHistory); n > 0 && post.MetricsHistory[n-1].Timestamp.After(ts) {
		ts = post.MetricsHistory[n-1].Timestamp
	}
	return mongo.MetricsSnapshot{
		Timestamp: ts,
		Likes:     util.Int64OrZero(post.Likes),
		Comments:  util.Int64OrZero(post.Comments),
		Shares:    util.Int64OrZero(post.Shares),
	}
}

func (s *metricsRecorderImpl) invalidate(ctx context.Context, post *mongo.SmmPostModel) {
	if err := redis.DeleteKey(ctx, consts.PostMetricsHistoryKey+post.ID.Hex()); err != nil {
		log.WarnContext(ctx, "invalidate metrics history cache failed", "post_id", post.ID.Hex(), "err", err)
	}
}

// metricsChanged compares the previous document with the saved one; an unset counter equals 0
func metricsChanged(before, after *mongo.SmmPostModel) bool {
	return util.Int64OrZero(before.Likes) != util.Int64OrZero(after.Likes) ||
		util.Int64OrZero(before.Comments) != util.Int64OrZero(after.Comments) ||
		util.Int64OrZero(before.Shares) != util.Int64OrZero(after.Shares)
}

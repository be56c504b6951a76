package service

import (
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/jinzhu/copier"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// SysBoxService in-app notifications about content changes. Notify* never fail the caller.
type SysBoxService interface {
	NotifyNewPost(ctx context.Context, post *mongo.SmmPostModel)
	NotifyMetricsChanged(ctx context.Context, before, after *mongo.SmmPostModel)
	NotifyPostUpdated(ctx context.Context, post *mongo.SmmPostModel, fields []string)
	NotifyPostDeleted(ctx context.Context, post *mongo.SmmPostModel)
	GetNotificationList(ctx context.Context, query *dto.SysBoxQueryDTO) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, msgID string) error
	MarkAllRead(ctx context.Context) (*dto.MarkAllReadDTO, error)
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
}

func NewSysBoxService(sysBox mongo.SysBoxRepo) SysBoxService {
	return &sysBoxServiceImpl{
		sysBoxRepo: sysBox,
	}
}

func (s *sysBoxServiceImpl) NotifyNewPost(ctx context.Context, post *mongo.SmmPostModel) {
	s.create(ctx, &mongo.SysBoxModel{
		Type:     mongo.SysBoxTypeNewPost,
		TargetID: post.ID.Hex(),
		Account:  post.Account,
		Content:  fmt.Sprintf("New %s post from %s", post.Platform, post.Account),
		Payload: map[string]any{
			"link":     post.Link,
			"likes":    util.Int64OrZero(post.Likes),
			"comments": util.Int64OrZero(post.Comments),
			"shares":   util.Int64OrZero(post.Shares),
		},
	})
}

func (s *sysBoxServiceImpl) NotifyMetricsChanged(ctx context.Context, before, after *mongo.SmmPostModel) {
	s.create(ctx, &mongo.SysBoxModel{
		Type:     mongo.SysBoxTypeMetricsChanged,
		TargetID: after.ID.Hex(),
		Account:  after.Account,
		Content:  fmt.Sprintf("Engagement of a %s post changed", after.Account),
		Payload: map[string]any{
			"link": after.Link,
			"before": map[string]int64{
				"likes":    util.Int64OrZero(before.Likes),
				"comments": util.Int64OrZero(before.Comments),
				"shares":   util.Int64OrZero(before.Shares),
			},
			"after": map[string]int64{
				"likes":    util.Int64OrZero(after.Likes),
				"comments": util.Int64OrZero(after.Comments),
				"shares":   util.Int64OrZero(after.Shares),
			},
		},
	})
}

func (s *sysBoxServiceImpl) NotifyPostUpdated(ctx context.Context, post *mongo.SmmPostModel, fields []string) {
	s.create(ctx, &mongo.SysBoxModel{
		Type:     mongo.SysBoxTypePostUpdated,
		TargetID: post.ID.Hex(),
		Account:  post.Account,
		Content:  fmt.Sprintf("A %s post was edited", post.Account),
		Payload:  map[string]any{"link": post.Link, "fields": fields},
	})
}

func (s *sysBoxServiceImpl) NotifyPostDeleted(ctx context.Context, post *mongo.SmmPostModel) {
	s.create(ctx, &mongo.SysBoxModel{
		Type:     mongo.SysBoxTypePostDeleted,
		TargetID: post.ID.Hex(),
		Account:  post.Account,
		Content:  fmt.Sprintf("A %s post was removed", post.Account),
		Payload:  map[string]any{"link": post.Link},
	})
}

func (s *sysBoxServiceImpl) create(ctx context.Context, msg *mongo.SysBoxModel) {
	if err := s.sysBoxRepo.CreateNotification(ctx, msg); err != nil {
		log.WarnContext(ctx, "create notification failed", "type", msg.Type, "target_id", msg.TargetID, "err", err)
	}
}

// GetNotificationList newest first
func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, query *dto.SysBoxQueryDTO) ([]*dto.SysBoxDTO, error) {
	_, _, limit, offset := pageBounds(query.Page, query.PageSize)

	list, err := s.sysBoxRepo.GetNotificationList(ctx, query.UnreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SysBoxDTO, 0, len(list))
	for _, m := range list {
		d := &dto.SysBoxDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.CreatedAt = formatTime(m.CreatedAt)
		res = append(res, d)
	}
	return res, nil
}

func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context) (*dto.SysBoxUnreadDTO, error) {
	count, err := s.sysBoxRepo.GetUnreadCount(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, msgID string) error {
	oid, err := parseObjectID(msgID)
	if err != nil {
		return err
	}
	if err = s.sysBoxRepo.MarkAsRead(ctx, oid); err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrSysBoxNotFound
		}
		return err
	}
	return nil
}

func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context) (*dto.MarkAllReadDTO, error) {
	n, err := s.sysBoxRepo.MarkAllAsRead(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadDTO{Marked: n}, nil
}

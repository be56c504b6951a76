package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SysBoxCollection = "sys_box"

type SysBoxRepo interface {
	CreateNotification(ctx context.Context, msg *SysBoxModel) error
	GetNotificationList(ctx context.Context, unreadOnly bool, limit, offset int64) ([]*SysBoxModel, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	GetUnreadCount(ctx context.Context) (int64, error)
}

type sysBoxRepoImpl struct {
	col *mongo.Collection
}

func NewSysBoxRepo(db *mongo.Database) SysBoxRepo {
	return &sysBoxRepoImpl{
		col: db.Collection(SysBoxCollection),
	}
}

func (s *sysBoxRepoImpl) CreateNotification(ctx context.Context, msg *SysBoxModel) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return wrapErr("insert notification", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

// GetNotificationList newest first
func (s *sysBoxRepoImpl) GetNotificationList(ctx context.Context, unreadOnly bool, limit, offset int64) ([]*SysBoxModel, error) {
	filter := bson.M{}
	if unreadOnly {
		filter["is_read"] = false
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr("find notifications", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*SysBoxModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, wrapErr("decode notifications", err)
	}
	return list, nil
}

func (s *sysBoxRepoImpl) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return wrapErr("mark notification read", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *sysBoxRepoImpl) MarkAllAsRead(ctx context.Context) (int64, error) {
	result, err := s.col.UpdateMany(ctx, bson.M{"is_read": false}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, wrapErr("mark all notifications read", err)
	}
	return result.ModifiedCount, nil
}

func (s *sysBoxRepoImpl) GetUnreadCount(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"is_read": false})
	if err != nil {
		return 0, wrapErr("count unread notifications", err)
	}
	return n, nil
}

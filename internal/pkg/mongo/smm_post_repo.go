package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SmmPostCollection = "smm_posts"

type SmmPostRepo interface {
	Create(ctx context.Context, post *SmmPostModel) error
	FindByLink(ctx context.Context, link string) (*SmmPostModel, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*SmmPostModel, error)
	List(ctx context.Context, filter PostFilter, limit, offset int64) ([]*SmmPostModel, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*SmmPostModel, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AppendSnapshot(ctx context.Context, id primitive.ObjectID, snap MetricsSnapshot, limit int) error
	GetHistory(ctx context.Context, id primitive.ObjectID) ([]MetricsSnapshot, error)
}

type smmPostRepoImpl struct {
	col *mongo.Collection
}

func NewSmmPostRepo(db *mongo.Database) SmmPostRepo {
	return &smmPostRepoImpl{
		col: db.Collection(SmmPostCollection),
	}
}

// Create inserts the post and writes the generated id back; the history is seeded separately
func (s *smmPostRepoImpl) Create(ctx context.Context, post *SmmPostModel) error {
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.MetricsHistory == nil {
		post.MetricsHistory = []MetricsSnapshot{}
	}

	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return wrapErr("insert smm post", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// FindByLink exact match on the canonical link, only the latest snapshot of the history is loaded
func (s *smmPostRepoImpl) FindByLink(ctx context.Context, link string) (*SmmPostModel, error) {
	opts := options.FindOne().SetProjection(bson.M{"metrics_history": bson.M{"$slice": -1}})
	var post SmmPostModel
	if err := s.col.FindOne(ctx, bson.M{"link": link}, opts).Decode(&post); err != nil {
		return nil, wrapErr("find smm post by link", err)
	}
	return &post, nil
}

func (s *smmPostRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*SmmPostModel, error) {
	var post SmmPostModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, wrapErr("find smm post", err)
	}
	return &post, nil
}

// List newest first, without the metrics history
func (s *smmPostRepoImpl) List(ctx context.Context, filter PostFilter, limit, offset int64) ([]*SmmPostModel, int64, error) {
	query := bson.M{}
	if filter.Account != "" {
		query["account"] = filter.Account
	}
	if filter.Platform != "" {
		query["platform"] = filter.Platform
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapErr("count smm posts", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"metrics_history": 0}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, wrapErr("find smm posts", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*SmmPostModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, wrapErr("decode smm posts", err)
	}
	return list, total, nil
}

// Update applies $set and returns the saved document
func (s *smmPostRepoImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*SmmPostModel, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post SmmPostModel
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		return nil, wrapErr("update smm post", err)
	}
	return &post, nil
}

// Delete removes the post together with its embedded history
func (s *smmPostRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr("delete smm post", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AppendSnapshot pushes snap to the end of metrics_history, keeping the newest limit entries when limit > 0
func (s *smmPostRepoImpl) AppendSnapshot(ctx context.Context, id primitive.ObjectID, snap MetricsSnapshot, limit int) error {
	push := bson.M{"$each": bson.A{snap}}
	if limit > 0 {
		push["$slice"] = -limit
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"metrics_history": push}})
	if err != nil {
		return wrapErr("append metrics snapshot", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *smmPostRepoImpl) GetHistory(ctx context.Context, id primitive.ObjectID) ([]MetricsSnapshot, error) {
	var doc struct {
		MetricsHistory []MetricsSnapshot `bson:"metrics_history"`
	}
	opts := options.FindOne().SetProjection(bson.M{"metrics_history": 1})
	if err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return nil, wrapErr("find metrics history", err)
	}
	if doc.MetricsHistory == nil {
		return []MetricsSnapshot{}, nil
	}
	return doc.MetricsHistory, nil
}

package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SocialAccountCollection = "social_accounts"

type SocialAccountRepo interface {
	Create(ctx context.Context, account *SocialAccountModel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*SocialAccountModel, error)
	GetByName(ctx context.Context, name string) (*SocialAccountModel, error)
	ListAll(ctx context.Context) ([]*SocialAccountModel, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*SocialAccountModel, error)
}

type socialAccountRepoImpl struct {
	col *mongo.Collection
}

func NewSocialAccountRepo(db *mongo.Database) SocialAccountRepo {
	return &socialAccountRepoImpl{
		col: db.Collection(SocialAccountCollection),
	}
}

func (s *socialAccountRepoImpl) Create(ctx context.Context, account *SocialAccountModel) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Links == nil {
		account.Links = []PlatformLink{}
	}

	res, err := s.col.InsertOne(ctx, account)
	if err != nil {
		return wrapErr("insert social account", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid
	}
	return nil
}

func (s *socialAccountRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*SocialAccountModel, error) {
	var account SocialAccountModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		return nil, wrapErr("find social account", err)
	}
	return &account, nil
}

func (s *socialAccountRepoImpl) GetByName(ctx context.Context, name string) (*SocialAccountModel, error) {
	var account SocialAccountModel
	if err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&account); err != nil {
		return nil, wrapErr("find social account by name", err)
	}
	return &account, nil
}

// ListAll in creation order, this is the order an ingestion pass walks accounts
func (s *socialAccountRepoImpl) ListAll(ctx context.Context) ([]*SocialAccountModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr("find social accounts", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*SocialAccountModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, wrapErr("decode social accounts", err)
	}
	return list, nil
}

func (s *socialAccountRepoImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*SocialAccountModel, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var account SocialAccountModel
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&account)
	if err != nil {
		return nil, wrapErr("update social account", err)
	}
	return &account, nil
}

package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialAccountModel a tracked source of posts
type SocialAccountModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Links     []PlatformLink     `bson:"links" json:"links"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type PlatformLink struct {
	Platform string `bson:"platform" json:"platform"`
	URL      string `bson:"url" json:"url"`
}

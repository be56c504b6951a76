package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SysBoxTypeNewPost        int8 = 1
	SysBoxTypeMetricsChanged int8 = 2
	SysBoxTypePostUpdated    int8 = 3
	SysBoxTypePostDeleted    int8 = 4
)

// SysBoxModel dashboard notification about a content change
type SysBoxModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      int8               `bson:"type" json:"type"`
	TargetID  string             `bson:"target_id" json:"targetId"`
	Account   string             `bson:"account" json:"account"`
	Content   string             `bson:"content" json:"content"`
	Payload   map[string]any     `bson:"payload" json:"payload"`
	IsRead    bool               `bson:"is_read" json:"isRead"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

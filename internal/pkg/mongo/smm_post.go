package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PlatformInstagram = "Instagram"

// SmmPostModel one catalogued social media post.
// Link is the canonical link and the dedup key; AccountID is set when Account resolves to a tracked account.
type SmmPostModel struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Account        string              `bson:"account" json:"account"`
	AccountID      *primitive.ObjectID `bson:"account_id,omitempty" json:"accountId,omitempty"`
	Link           string              `bson:"link" json:"link"`
	Platform       string              `bson:"platform" json:"platform"`
	Likes          *int64              `bson:"likes" json:"likes"`
	Comments       *int64              `bson:"comments" json:"comments"`
	Shares         *int64              `bson:"shares" json:"shares"`
	IsSponsored    bool                `bson:"is_sponsored" json:"isSponsored"`
	Date           string              `bson:"date" json:"date"`
	Hour           string              `bson:"hour" json:"hour"`
	DayOfTheWeek   string              `bson:"day_of_the_week" json:"dayOfTheWeek"`
	Type           string              `bson:"type" json:"type"`
	Category       *string             `bson:"category" json:"category"`
	SubCategory    *string             `bson:"sub_category" json:"subCategory"`
	Tags           []string            `bson:"tags" json:"tags"`
	Description    string              `bson:"description" json:"description"`
	Images         []string            `bson:"images" json:"images"`
	TopComments    []CommentSnapshot   `bson:"top_comments" json:"topComments"`
	MetricsHistory []MetricsSnapshot   `bson:"metrics_history" json:"metricsHistory"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updatedAt"`
}

// MetricsSnapshot counters of a post at Timestamp
type MetricsSnapshot struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Likes     int64     `bson:"likes" json:"likes"`
	Comments  int64     `bson:"comments" json:"comments"`
	Shares    int64     `bson:"shares" json:"shares"`
}

type CommentSnapshot struct {
	Username string `bson:"username" json:"username"`
	Text     string `bson:"text" json:"text"`
	Likes    int64  `bson:"likes" json:"likes"`
}

// PostFilter list conditions, empty fields are ignored
type PostFilter struct {
	Account  string
	Platform string
	Category string
}

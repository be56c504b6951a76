package dto

// PostDTO smm post as returned by the API
type PostDTO struct {
	ID             string               `json:"id" copier:"-"`
	Account        string               `json:"account"`
	AccountID      string               `json:"accountId,omitempty" copier:"-"`
	AccountTracked bool                 `json:"accountTracked"`
	Link           string               `json:"link"`
	Platform       string               `json:"platform"`
	Likes          *int64               `json:"likes"`
	Comments       *int64               `json:"comments"`
	Shares         *int64               `json:"shares"`
	IsSponsored    bool                 `json:"isSponsored"`
	Date           string               `json:"date"`
	Hour           string               `json:"hour"`
	DayOfTheWeek   string               `json:"dayOfTheWeek"`
	Type           string               `json:"type"`
	Category       *string              `json:"category"`
	SubCategory    *string              `json:"subCategory"`
	Tags           []string             `json:"tags"`
	Description    string               `json:"description"`
	Images         []string             `json:"images"`
	TopComments    []CommentDTO         `json:"topComments"`
	MetricsHistory []MetricsSnapshotDTO `json:"metricsHistory,omitempty" copier:"-"`
	CreatedAt      string               `json:"createdAt" copier:"-"`
	UpdatedAt      string               `json:"updatedAt" copier:"-"`
}

type CommentDTO struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Likes    int64  `json:"likes"`
}

// CreatePostDTO manual cataloguing of a post
type CreatePostDTO struct {
	Account     string       `json:"account" binding:"required" validate:"required,min=1,max=128"`
	Link        string       `json:"link" binding:"required" validate:"required,url"`
	Platform    string       `json:"platform" binding:"required" validate:"required,max=32"`
	Likes       *int64       `json:"likes" validate:"omitempty,min=0"`
	Comments    *int64       `json:"comments" validate:"omitempty,min=0"`
	Shares      *int64       `json:"shares" validate:"omitempty,min=0"`
	IsSponsored bool         `json:"isSponsored"`
	Date        string       `json:"date"`
	Hour        string       `json:"hour"`
	Type        string       `json:"type"`
	Category    *string      `json:"category"`
	SubCategory *string      `json:"subCategory"`
	Tags        []string     `json:"tags"`
	Description string       `json:"description"`
	Images      []string     `json:"images"`
	TopComments []CommentDTO `json:"topComments"`
}

// UpdatePostDTO partial update, nil fields are left untouched
type UpdatePostDTO struct {
	Account     *string       `json:"account" validate:"omitempty,min=1,max=128"`
	Likes       *int64        `json:"likes" validate:"omitempty,min=0"`
	Comments    *int64        `json:"comments" validate:"omitempty,min=0"`
	Shares      *int64        `json:"shares" validate:"omitempty,min=0"`
	IsSponsored *bool         `json:"isSponsored"`
	Date        *string       `json:"date"`
	Hour        *string       `json:"hour"`
	Type        *string       `json:"type"`
	Category    *string       `json:"category"`
	SubCategory *string       `json:"subCategory"`
	Tags        *[]string     `json:"tags"`
	Description *string       `json:"description"`
	Images      *[]string     `json:"images"`
	TopComments *[]CommentDTO `json:"topComments"`
}

type PostQueryDTO struct {
	PageQuery
	Account  string `form:"account"`
	Platform string `form:"platform"`
	Category string `form:"category"`
}

type PostPageDTO struct {
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	List     []*PostDTO `json:"list"`
}

package dto

// SysBoxDTO dashboard notification
type SysBoxDTO struct {
	ID        string         `json:"id" copier:"-"`
	Type      int8           `json:"type"`     // 1-new post, 2-metrics changed, 3-post updated, 4-post deleted
	TargetID  string         `json:"targetId"` // post id
	Account   string         `json:"account"`
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload"`
	IsRead    bool           `json:"isRead"`
	CreatedAt string         `json:"createdAt" copier:"-"`
}

type SysBoxUnreadDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}

type SysBoxQueryDTO struct {
	PageQuery
	UnreadOnly bool `form:"unread_only"`
}

type MarkReadDTO struct {
	MsgID string `json:"msgId" binding:"required"`
}

type MarkAllReadDTO struct {
	Marked int64 `json:"marked"`
}

package dto

type MetricsSnapshotDTO struct {
	Timestamp string `json:"timestamp"`
	Likes     int64  `json:"likes"`
	Comments  int64  `json:"comments"`
	Shares    int64  `json:"shares"`
}

// MetricsHistoryDTO snapshot series of one post, oldest first
type MetricsHistoryDTO struct {
	PostID    string               `json:"postId"`
	Snapshots []MetricsSnapshotDTO `json:"snapshots"`
}

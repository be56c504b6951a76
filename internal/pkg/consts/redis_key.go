package consts

const (
	PostMetricsHistoryKey = "smm:post:metrics:"
)

const (
	IngestPassLock = "smm:ingest:lock"
)

package consts

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	TraceIngestJobPrefix    = "job-ingest-"
	TraceIngestManualPrefix = "manual-ingest-"
)

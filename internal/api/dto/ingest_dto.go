package dto

// AccountIngestDTO outcome of ingesting one account
type AccountIngestDTO struct {
	Account string `json:"account"`
	Checked int    `json:"checked"`
	Existed int    `json:"existed"`
	Created int    `json:"created"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"` // links on other platforms or unusable profile links
}

// IngestResultDTO outcome of one ingestion pass
type IngestResultDTO struct {
	TraceID    string              `json:"traceId"`
	StartedAt  string              `json:"startedAt"`
	FinishedAt string              `json:"finishedAt"`
	Accounts   []*AccountIngestDTO `json:"accounts"`
	Created    int                 `json:"created"`
	Failed     int                 `json:"failed"`
}

type IngestTriggerDTO struct {
	TraceID string `json:"traceId"`
}

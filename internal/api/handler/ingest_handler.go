package handler

import (
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/response"
	"context"

	"github.com/gin-gonic/gin"
)

// IngestRunner starts ingestion passes under the single-flight guard
type IngestRunner interface {
	Trigger(ctx context.Context) (string, error)
	RunAccount(ctx context.Context, accountID string) (*dto.AccountIngestDTO, error)
}

type IngestHandler struct {
	runner IngestRunner
}

func NewIngestHandler(runner IngestRunner) *IngestHandler {
	return &IngestHandler{
		runner: runner,
	}
}

// RunPass starts a full pass in the background
func (s *IngestHandler) RunPass(c *gin.Context) {
	traceID, err := s.runner.Trigger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IngestTriggerDTO{TraceID: traceID})
}

// RunAccount ingests one account and waits for the result
func (s *IngestHandler) RunAccount(c *gin.Context) {
	res, err := s.runner.RunAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

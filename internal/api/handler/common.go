package handler

import (
	"SMMBoard/internal/pkg/response"
	"SMMBoard/internal/service"
	"errors"

	"github.com/gin-gonic/gin"
)

// bindFailed reports a request that could not be bound as a parameter error
func bindFailed(c *gin.Context, err error) {
	response.Error(c, errors.Join(service.ErrParamInvalid, err))
}

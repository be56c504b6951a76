package handler

import (
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/response"
	"SMMBoard/internal/service"

	"github.com/gin-gonic/gin"
)

type SysBoxHandler struct {
	sysBoxService service.SysBoxService
}

func NewSysBoxHandler(s service.SysBoxService) *SysBoxHandler {
	return &SysBoxHandler{
		sysBoxService: s,
	}
}

func (h *SysBoxHandler) GetNotificationList(c *gin.Context) {
	var query dto.SysBoxQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.sysBoxService.GetNotificationList(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (h *SysBoxHandler) GetUnreadCount(c *gin.Context) {
	unread, err := h.sysBoxService.GetUnreadCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

func (h *SysBoxHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.sysBoxService.MarkRead(c.Request.Context(), req.MsgID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *SysBoxHandler) MarkAllRead(c *gin.Context) {
	res, err := h.sysBoxService.MarkAllRead(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

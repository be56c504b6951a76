package handler

import (
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/response"
	"SMMBoard/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
	}
}

func (s *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	account, err := s.accountSvc.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) ListAccounts(c *gin.Context) {
	list, err := s.accountSvc.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AccountHandler) GetAccount(c *gin.Context) {
	account, err := s.accountSvc.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	account, err := s.accountSvc.UpdateAccount(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/shop-platform-api/internal/api/dto"
	"github.com/kingrain94/shop-platform-api/internal/domain"
)

//go:generate mockery --name AggregatorService --output ../mocks
type AggregatorService interface {
	SearchAccounts(ctx context.Context, filter domain.AccountFilter) ([]dto.AccountResponse, error)
}

type AccountHandler struct {
	*BaseHandler
	service AggregatorService
}

func NewAccountHandler(service AggregatorService) *AccountHandler {
	return &AccountHandler{BaseHandler: &BaseHandler{}, service: service}
}

// SearchAccounts lists accounts across every tenant, applying the optional
// keyword/active/role filters inside each tenant database.
func (h *AccountHandler) SearchAccounts(c *gin.Context) {
	var req dto.SearchAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	accounts, err := h.service.SearchAccounts(h.RequestCtx(c), domain.AccountFilter{
		Keyword: req.Keyword,
		Role:    req.Role,
		Active:  req.Active,
		Limit:   req.Limit,
	})
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

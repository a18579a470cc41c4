package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/shop-platform-api/internal/api/dto"
	"github.com/kingrain94/shop-platform-api/internal/service"
	"github.com/kingrain94/shop-platform-api/internal/utils"
)

type BaseHandler struct{}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// RespondError maps the service error taxonomy onto HTTP status codes.
// Conflicts and not-found are caller-correctable; a partial success means
// the tenant exists but needs reconciliation, reported as 202.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	var partialErr *service.PartialSuccessError

	switch {
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, dto.Error{Error: conflictErr.Error()})
	case errors.Is(err, service.ErrTenantNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.As(err, &partialErr):
		c.JSON(http.StatusAccepted, dto.Error{Error: partialErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
	}
}

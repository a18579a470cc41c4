package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/shop-platform-api/internal/middleware"
)

type Server struct {
	tenant          *TenantHandler
	account         *AccountHandler
	auth            *middleware.AuthMiddleware
	rateLimit       *middleware.RateLimitMiddleware
	globalRateLimit int
}

func NewServer(
	tenantService TenantService,
	aggregatorService AggregatorService,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	globalRateLimit int,
) *Server {
	return &Server{
		tenant:          NewTenantHandler(tenantService),
		account:         NewAccountHandler(aggregatorService),
		auth:            auth,
		rateLimit:       rateLimit,
		globalRateLimit: globalRateLimit,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.rateLimit.GlobalRateLimit(s.globalRateLimit))

	{
		tenants := api.Group("/tenants", s.auth.JWTAuth(), s.auth.RequireRole("admin"))
		{
			tenants.POST("", s.tenant.CreateTenant)
			tenants.GET("", s.tenant.ListTenants)
			tenants.GET("/:id", s.tenant.GetTenant)
			tenants.GET("/code/:code", s.tenant.GetTenantByCode)
			tenants.PUT("/:id", s.tenant.UpdateTenant)
			tenants.PUT("/:id/status", s.tenant.UpdateTenantStatus)
			tenants.DELETE("/:id", s.tenant.DeleteTenant)
			tenants.POST("/pools/evict", s.tenant.EvictInactivePools)
		}

		accounts := api.Group("/accounts", s.auth.JWTAuth(), s.auth.RequireRole("admin"))
		{
			accounts.GET("/search", s.account.SearchAccounts)
		}
	}
}

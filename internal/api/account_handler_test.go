package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/shop-platform-api/internal/api/dto"
	"github.com/kingrain94/shop-platform-api/internal/domain"
)

type MockAggregatorService struct {
	mock.Mock
}

func (m *MockAggregatorService) SearchAccounts(ctx context.Context, filter domain.AccountFilter) ([]dto.AccountResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AccountResponse), args.Error(1)
}

func setupAccountRouter(svc AggregatorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAccountHandler(svc)

	router := gin.New()
	router.GET("/accounts/search", handler.SearchAccounts)
	return router
}

func TestSearchAccounts_Success(t *testing.T) {
	mockService := new(MockAggregatorService)
	router := setupAccountRouter(mockService)

	accounts := []dto.AccountResponse{
		{ID: "a1", TenantID: "t1", TenantCode: "SHOP01", Username: "alice"},
		{ID: "a2", TenantID: "t2", TenantCode: "SHOP02", Username: "aline"},
	}
	mockService.On("SearchAccounts", mock.Anything, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return f.Keyword == "ali" && f.Role == "owner" && f.Limit == 10
	})).Return(accounts, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/search?keyword=ali&role=owner&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "SHOP01", resp[0].TenantCode)
	assert.Equal(t, "SHOP02", resp[1].TenantCode)
	mockService.AssertExpectations(t)
}

func TestSearchAccounts_ActiveFilter(t *testing.T) {
	mockService := new(MockAggregatorService)
	router := setupAccountRouter(mockService)

	mockService.On("SearchAccounts", mock.Anything, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return f.Active != nil && !*f.Active
	})).Return([]dto.AccountResponse{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/search?active=false", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearchAccounts_ServiceError(t *testing.T) {
	mockService := new(MockAggregatorService)
	router := setupAccountRouter(mockService)

	mockService.On("SearchAccounts", mock.Anything, mock.AnythingOfType("domain.AccountFilter")).
		Return(nil, errors.New("master database down"))

	req := httptest.NewRequest(http.MethodGet, "/accounts/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package api

import (
	"bytes"
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
	"github.com/kingrain94/shop-platform-api/internal/service"
)

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantDetailResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantDetailResponse), args.Error(1)
}

func (m *MockTenantService) GetByID(ctx context.Context, id string) (*dto.TenantDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantDetailResponse), args.Error(1)
}

func (m *MockTenantService) GetByCode(ctx context.Context, code string) (*dto.TenantDetailResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantDetailResponse), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context) ([]dto.TenantResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TenantResponse), args.Error(1)
}

func (m *MockTenantService) Update(ctx context.Context, id string, req dto.UpdateTenantRequest) (*dto.TenantDetailResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantDetailResponse), args.Error(1)
}

func (m *MockTenantService) UpdateStatus(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockTenantService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantService) EvictInactivePools(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func setupTenantRouter(svc TenantService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTenantHandler(svc)

	router := gin.New()
	tenants := router.Group("/tenants")
	{
		tenants.POST("", handler.CreateTenant)
		tenants.GET("", handler.ListTenants)
		tenants.GET("/:id", handler.GetTenant)
		tenants.GET("/code/:code", handler.GetTenantByCode)
		tenants.PUT("/:id", handler.UpdateTenant)
		tenants.PUT("/:id/status", handler.UpdateTenantStatus)
		tenants.DELETE("/:id", handler.DeleteTenant)
		tenants.POST("/pools/evict", handler.EvictInactivePools)
	}
	return router
}

func createTenantBody() map[string]interface{} {
	return map[string]interface{}{
		"code": "SHOP01",
		"name": "Shop 01",
		"owner": map[string]interface{}{
			"username":  "alice",
			"password":  "s3cret-pass",
			"full_name": "Alice Nguyen",
			"email":     "alice@shop01.example",
			"phone":     "+84901234567",
		},
	}
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTenant_Success(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	detail := &dto.TenantDetailResponse{
		TenantResponse: dto.TenantResponse{ID: "t1", Code: "SHOP01", Status: "active", IsActive: true},
		Owner:          &dto.OwnerResponse{Username: "alice"},
	}
	mockService.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateTenantRequest")).Return(detail, nil)

	w := performJSON(router, http.MethodPost, "/tenants", createTenantBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.TenantDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SHOP01", resp.Code)
	assert.Equal(t, "alice", resp.Owner.Username)
	mockService.AssertExpectations(t)
}

func TestCreateTenant_MissingOwner(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	body := createTenantBody()
	delete(body, "owner")

	w := performJSON(router, http.MethodPost, "/tenants", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTenant_Conflict(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateTenantRequest")).
		Return(nil, &service.ConflictError{Field: "tenant_code", Value: "SHOP01"})

	w := performJSON(router, http.MethodPost, "/tenants", createTenantBody())

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "tenant_code")
}

func TestCreateTenant_PartialSuccess(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateTenantRequest")).
		Return(nil, &service.PartialSuccessError{TenantID: "t1", Err: errors.New("tenant database unreachable")})

	w := performJSON(router, http.MethodPost, "/tenants", createTenantBody())

	// The tenant exists but its owner mirror is pending reconciliation.
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestGetTenant_NotFound(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("GetByID", mock.Anything, "missing").Return(nil, service.ErrTenantNotFound)

	w := performJSON(router, http.MethodGet, "/tenants/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTenantByCode_Success(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	detail := &dto.TenantDetailResponse{
		TenantResponse: dto.TenantResponse{ID: "t1", Code: "SHOP01"},
	}
	mockService.On("GetByCode", mock.Anything, "SHOP01").Return(detail, nil)

	w := performJSON(router, http.MethodGet, "/tenants/code/SHOP01", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.TenantDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp.ID)
}

func TestListTenants_Success(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	tenants := []dto.TenantResponse{
		{ID: "t1", Code: "SHOP01", Stats: &dto.TenantStatsResponse{UserCount: 2}},
		{ID: "t2", Code: "SHOP02", Stats: &dto.TenantStatsResponse{}},
	}
	mockService.On("List", mock.Anything).Return(tenants, nil)

	w := performJSON(router, http.MethodGet, "/tenants", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.TenantResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[0].Stats.UserCount)
}

func TestUpdateTenantStatus_Success(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("UpdateStatus", mock.Anything, "t1", false).Return(nil)

	w := performJSON(router, http.MethodPut, "/tenants/t1/status", map[string]interface{}{"active": false})

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestUpdateTenantStatus_MissingActive(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	w := performJSON(router, http.MethodPut, "/tenants/t1/status", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTenant_Success(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("Delete", mock.Anything, "t1").Return(nil)

	w := performJSON(router, http.MethodDelete, "/tenants/t1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteTenant_DropFailure(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("Delete", mock.Anything, "t1").Return(errors.New("failed to drop tenant database"))

	w := performJSON(router, http.MethodDelete, "/tenants/t1", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEvictInactivePools_Success(t *testing.T) {
	mockService := new(MockTenantService)
	router := setupTenantRouter(mockService)

	mockService.On("EvictInactivePools", mock.Anything).Return(2, nil)

	w := performJSON(router, http.MethodPost, "/tenants/pools/evict", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"evicted": 2}`, w.Body.String())
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/export"
	facilityapp "github.com/hms/backend/internal/application/facility"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockBedTypeRepo struct {
	mock.Mock
}

func (m *mockBedTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*facility.BedType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.BedType), args.Error(1)
}

func (m *mockBedTypeRepo) FindAll(ctx context.Context, filter shared.Filter) ([]facility.BedType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]facility.BedType), args.Error(1)
}

func (m *mockBedTypeRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]facility.BedType, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]facility.BedType), args.Error(1)
}

func (m *mockBedTypeRepo) Save(ctx context.Context, entity *facility.BedType) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockBedTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBedTypeRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBedTypeRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func newBedTypeRouter(repo *mockBedTypeRepo) *gin.Engine {
	service := facilityapp.NewBedTypeService(repo, nil)
	h := NewBedTypeHandler(service)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func mustBedType(t *testing.T, name string) facility.BedType {
	t.Helper()
	bt, err := facility.NewBedType(name, "")
	require.NoError(t, err)
	return *bt
}

func TestBedTypeHandler_Create(t *testing.T) {
	repo := new(mockBedTypeRepo)
	repo.On("ExistsByName", mock.Anything, "VIP Ward").Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	r := newBedTypeRouter(repo)

	body := `{"name":"VIP Ward","description":"Private rooms"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/facility/bed-types", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestBedTypeHandler_Create_ValidationError(t *testing.T) {
	r := newBedTypeRouter(new(mockBedTypeRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/facility/bed-types", strings.NewReader(`{"description":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBedTypeHandler_Create_Duplicate(t *testing.T) {
	repo := new(mockBedTypeRepo)
	repo.On("ExistsByName", mock.Anything, "General").Return(true, nil)

	r := newBedTypeRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/facility/bed-types", strings.NewReader(`{"name":"General"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeConflict)
}

func TestBedTypeHandler_List_SearchAndPagination(t *testing.T) {
	records := []facility.BedType{
		mustBedType(t, "General Ward"),
		mustBedType(t, "ICU"),
		mustBedType(t, "VIP Ward"),
	}

	repo := new(mockBedTypeRepo)
	repo.On("FindAll", mock.Anything, mock.Anything).Return(records, nil)

	r := newBedTypeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facility/bed-types?search=ward", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.TotalItems)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
}

func TestBedTypeHandler_GetByID_NotFound(t *testing.T) {
	repo := new(mockBedTypeRepo)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	r := newBedTypeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facility/bed-types/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeNotFound)
}

func TestBedTypeHandler_GetByID_InvalidID(t *testing.T) {
	r := newBedTypeRouter(new(mockBedTypeRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facility/bed-types/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBedTypeHandler_Export(t *testing.T) {
	records := []facility.BedType{mustBedType(t, "General Ward")}

	repo := new(mockBedTypeRepo)
	repo.On("FindAll", mock.Anything, mock.Anything).Return(records, nil)

	r := newBedTypeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facility/bed-types/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Bed_Types_All_Data_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestBedTypeHandler_Export_Empty(t *testing.T) {
	repo := new(mockBedTypeRepo)
	repo.On("FindAll", mock.Anything, mock.Anything).Return([]facility.BedType{}, nil)

	r := newBedTypeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facility/bed-types/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeEmptyExport)
}

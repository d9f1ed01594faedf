package handlers_test

import (
	"Fresh-Reminder-Backend/domain"
	"Fresh-Reminder-Backend/internal/api/handlers"
	"Fresh-Reminder-Backend/internal/api/routes"
	"Fresh-Reminder-Backend/internal/middleware"
	"Fresh-Reminder-Backend/pkg/jwt"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) AddFood(ctx context.Context, req domain.AddFoodRequest, userEmail string) (domain.AddFoodResponse, error) {
	args := m.Called(ctx, req, userEmail)
	return args.Get(0).(domain.AddFoodResponse), args.Error(1)
}

func (m *MockFoodService) GetFoods(ctx context.Context, userEmail string) ([]domain.FoodResponse, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FoodResponse), args.Error(1)
}

func (m *MockFoodService) GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.FoodResponse), args.Error(1)
}

func (m *MockFoodService) ReplaceFood(ctx context.Context, id string, req domain.ReplaceFoodRequest, userEmail string) error {
	args := m.Called(ctx, id, req, userEmail)
	return args.Error(0)
}

func (m *MockFoodService) UpdateFoodNote(ctx context.Context, id string, note json.RawMessage, userEmail string) error {
	args := m.Called(ctx, id, note, userEmail)
	return args.Error(0)
}

func (m *MockFoodService) DeleteFood(ctx context.Context, id string, userEmail string) error {
	args := m.Called(ctx, id, userEmail)
	return args.Error(0)
}

func (m *MockFoodService) GetExpiringSoon(ctx context.Context) ([]domain.FoodResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FoodResponse), args.Error(1)
}

func (m *MockFoodService) SendExpiryReminder(ctx context.Context, userEmail string) (domain.SendReminderResponse, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).(domain.SendReminderResponse), args.Error(1)
}

func (m *MockFoodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userEmail string) error {
	args := m.Called(ctx, req, userEmail)
	return args.Error(0)
}

type responseBody struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T, svc *MockFoodService) (*fiber.App, jwt.JWTService) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	jwtService := jwt.NewJWTService()

	routesConfig := routes.Config{
		App:         app,
		FoodHandler: handlers.NewFoodHandler(svc, validator.New()),
		Middleware:  middleware.NewMiddleware(),
		JWTService:  jwtService,
	}
	routesConfig.Setup()

	return app, jwtService
}

func decodeBody(t *testing.T, resp *http.Response) responseBody {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body responseBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestOwnerListingRequiresBearerToken(t *testing.T) {
	svc := new(MockFoodService)
	app, _ := setupApp(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/food?email=alice@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, domain.MessageUnauthorized, decodeBody(t, resp).Message)
	svc.AssertNotCalled(t, "GetFoods", mock.Anything, mock.Anything)
}

func TestOwnerListingRejectsMalformedHeader(t *testing.T) {
	svc := new(MockFoodService)
	app, jwtService := setupApp(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/food?email=alice@example.com", nil)
	req.Header.Set("Authorization", jwtService.GenerateToken("alice@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, domain.MessageUnauthorized, decodeBody(t, resp).Message)
}

func TestOwnerListingForbiddenOnEmailMismatch(t *testing.T) {
	svc := new(MockFoodService)
	app, jwtService := setupApp(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/food?email=mallory@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+jwtService.GenerateToken("alice@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, domain.MessageForbidden, decodeBody(t, resp).Message)
	svc.AssertNotCalled(t, "GetFoods", mock.Anything, mock.Anything)
}

func TestOwnerListingReturnsOwnerRecords(t *testing.T) {
	svc := new(MockFoodService)
	app, jwtService := setupApp(t, svc)

	svc.On("GetFoods", mock.Anything, "alice@example.com").Return([]domain.FoodResponse{
		{ID: "1", UserEmail: "alice@example.com", Name: "Milk"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/food?email=alice@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+jwtService.GenerateToken("alice@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var foods []domain.FoodResponse
	require.NoError(t, json.Unmarshal(decodeBody(t, resp).Data, &foods))
	require.Len(t, foods, 1)
	assert.Equal(t, "Milk", foods[0].Name)
	svc.AssertExpectations(t)
}

func TestGetFoodByIDNotFound(t *testing.T) {
	svc := new(MockFoodService)
	app, _ := setupApp(t, svc)

	svc.On("GetFoodByID", mock.Anything, "missing").
		Return(domain.FoodResponse{}, domain.ErrFoodNotFound)

	req := httptest.NewRequest(http.MethodGet, "/foods/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpiringSoonIsOpenAndOrdered(t *testing.T) {
	svc := new(MockFoodService)
	app, _ := setupApp(t, svc)

	now := time.Now()
	svc.On("GetExpiringSoon", mock.Anything).Return([]domain.FoodResponse{
		{ID: "1", Name: "Yogurt", ExpiryDate: now},
		{ID: "2", Name: "Cheese", ExpiryDate: now.AddDate(0, 0, 3)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/food/expiring-soon", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var foods []domain.FoodResponse
	require.NoError(t, json.Unmarshal(decodeBody(t, resp).Data, &foods))
	require.Len(t, foods, 2)
	assert.Equal(t, "Yogurt", foods[0].Name)
	svc.AssertExpectations(t)
}

func TestAddFoodRequiresBearerToken(t *testing.T) {
	svc := new(MockFoodService)
	app, _ := setupApp(t, svc)

	payload := `{"name":"Milk","quantity":1,"expiryDate":"2025-01-10"}`
	req := httptest.NewRequest(http.MethodPost, "/foods", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	svc.AssertNotCalled(t, "AddFood", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFoodUsesClaimEmailAsOwner(t *testing.T) {
	svc := new(MockFoodService)
	app, jwtService := setupApp(t, svc)

	svc.On("AddFood", mock.Anything, mock.AnythingOfType("domain.AddFoodRequest"), "alice@example.com").
		Return(domain.AddFoodResponse{ID: "1", UserEmail: "alice@example.com", Name: "Milk"}, nil)

	payload := `{"name":"Milk","quantity":1,"expiryDate":"2025-01-10"}`
	req := httptest.NewRequest(http.MethodPost, "/foods", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwtService.GenerateToken("alice@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestUpdateNoteForbiddenSurfacesFixedBody(t *testing.T) {
	svc := new(MockFoodService)
	app, jwtService := setupApp(t, svc)

	svc.On("UpdateFoodNote", mock.Anything, "42", mock.Anything, "mallory@example.com").
		Return(domain.ErrForbiddenAccess)

	req := httptest.NewRequest(http.MethodPatch, "/foods/42", bytes.NewBufferString(`{"b":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwtService.GenerateToken("mallory@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, domain.MessageForbidden, decodeBody(t, resp).Message)
}

func TestLiveness(t *testing.T) {
	svc := new(MockFoodService)
	app, _ := setupApp(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Food Server is running", string(raw))
}

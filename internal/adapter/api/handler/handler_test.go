package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunumarche/internal/adapter/api"
	"sunumarche/internal/adapter/repository"
	"sunumarche/internal/domain/entity"
	domainrepo "sunumarche/internal/domain/repository"
	"sunumarche/internal/usecase"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

// fakeAuth stamps a fixed uid, standing in for the token middleware.
func fakeAuth(uid string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", uid)
			return next(c)
		}
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	e.GET("/health", HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestGetTrends(t *testing.T) {
	e := newTestEcho()

	trendUC := usecase.NewTrendUseCase(repository.NewMemoryPriceSubmissionRepository(), nil, time.Minute, false)
	h := NewTrendHandler(trendUC)

	e.GET("/v1/trends", h.GetTrends)
	e.POST("/v1/trends/submissions", h.SubmitPrice, fakeAuth("user-1"))

	submit := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/trends/submissions", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := submit(`{"category":"Fruits","city":"Dakar","region":"Dakar","country":"Sénégal","price":750,"unit":"kg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = submit(`{"category":"Fruits","city":"Dakar","region":"Dakar","country":"Sénégal","price":850,"unit":"kg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/trends?days=30&limit=5", nil)
	getRec := httptest.NewRecorder()
	e.ServeHTTP(getRec, req)

	require.Equal(t, http.StatusOK, getRec.Code)
	body := decodeEnvelope(t, getRec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["fallback"])

	trends := data["trends"].([]interface{})
	require.Len(t, trends, 1)
	first := trends[0].(map[string]interface{})
	assert.Equal(t, "Fruits", first["category"])
	assert.EqualValues(t, 800, first["average_price"])
}

func TestGetTrendsRejectsBadParams(t *testing.T) {
	e := newTestEcho()

	trendUC := usecase.NewTrendUseCase(repository.NewMemoryPriceSubmissionRepository(), nil, time.Minute, false)
	h := NewTrendHandler(trendUC)
	e.GET("/v1/trends", h.GetTrends)

	for _, query := range []string{"?days=abc", "?limit=abc", "?days=-1", "?limit=0"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/trends"+query, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", query)

		body := decodeEnvelope(t, rec)
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errInfo["code"])
	}
}

func TestSubmitPriceRejectsMissingFields(t *testing.T) {
	e := newTestEcho()

	trendUC := usecase.NewTrendUseCase(repository.NewMemoryPriceSubmissionRepository(), nil, time.Minute, false)
	h := NewTrendHandler(trendUC)
	e.POST("/v1/trends/submissions", h.SubmitPrice, fakeAuth("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/v1/trends/submissions", strings.NewReader(`{"city":"Dakar","price":800}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedUsers(t *testing.T, userRepo domainrepo.UserRepository) {
	t.Helper()
	for _, u := range []*entity.User{
		{ID: "alice", Email: "alice@example.com", FullName: "Alice", Role: "buyer"},
		{ID: "bob", Email: "bob@example.com", FullName: "Bob", Role: "farmer"},
	} {
		require.NoError(t, userRepo.Create(context.Background(), u))
	}
}

func TestChatEndpoints(t *testing.T) {
	e := newTestEcho()

	userRepo := repository.NewMemoryUserRepository()
	chatRepo := repository.NewMemoryChatRepository()
	listingRepo := repository.NewMemoryListingRepository()

	seedUsers(t, userRepo)

	chatUC := usecase.NewChatUseCase(chatRepo, userRepo, listingRepo)
	h := NewChatHandler(chatUC)

	e.POST("/v1/chats", h.CreateChat, fakeAuth("alice"))
	e.GET("/v1/chats", h.GetUserChats, fakeAuth("alice"))

	req := httptest.NewRequest(http.MethodPost, "/v1/chats", strings.NewReader(`{"recipient_id":"bob","initial_message":"Bonjour"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "alice-bob", data["id"])
	assert.Equal(t, "Bonjour", data["last_message"])

	req = httptest.NewRequest(http.MethodGet, "/v1/chats", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeEnvelope(t, rec)
	page := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, page["total"])
}

package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodmarket/api-gateway/internal/gateway"
	"foodmarket/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = gateway.Config{
	APISvcURL:       "http://api-svc",
	AnalyticsSvcURL: "http://analytics-svc",
}

func okResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Targets(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "orders", path: "/api/orders/7", want: "http://api-svc/api/orders/7"},
		{name: "restaurants search", path: "/api/restaurants/search/pizza", want: "http://api-svc/api/restaurants/search/pizza"},
		{name: "admin verify", path: "/api/admin/verify", want: "http://api-svc/api/admin/verify"},
		{name: "analytics", path: "/api/analytics/popular-items?period=today", want: "http://analytics-svc/api/analytics/popular-items?period=today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient, nil)

			mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
				return r.URL.String() == tt.want
			})).Return(okResponse(http.StatusOK, `[]`), nil).Once()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "[]", rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestGateway_RouteHandler_ForwardsMethodHeadersAndBody(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		if r.Method != http.MethodPatch || r.Header.Get("X-Admin-Token") != "admin123" {
			return false
		}
		body, err := io.ReadAll(r.Body)
		return err == nil && string(body) == `{"status":"on_the_way"}`
	})).Return(okResponse(http.StatusOK, `{"id":1,"status":"on_the_way"}`), nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{"status":"on_the_way"}`))
	req.Header.Set("X-Admin-Token", "admin123")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"status":"on_the_way"}`, rr.Body.String())
}

func TestGateway_RouteHandler_PassesUpstreamErrors(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(okResponse(http.StatusNotFound, `{"error":"Order not found"}`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/99", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, rr.Body.String())
}

func TestGateway_RouteHandler_UpstreamDown(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"Upstream service unavailable"}`, rr.Body.String())
}

func TestGateway_RouteHandler_NonAPIPath(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin.html", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rr.Body.String())
	mockClient.AssertNotCalled(t, "Do", mock.Anything)
}

func TestGateway_SetupRoutes(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)
	router := gw.SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	mockClient.On("Do", mock.Anything).Return(okResponse(http.StatusCreated, `{"id":3}`), nil).Once()

	req = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

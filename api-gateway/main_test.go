package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodmarket/config"
	"foodmarket/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHandler_ForwardsToConfiguredServices(t *testing.T) {
	var apiPath, analyticsPath string
	apiSvc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiPath = r.URL.RequestURI()
		w.WriteHeader(http.StatusOK)
	}))
	defer apiSvc.Close()
	analyticsSvc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		analyticsPath = r.URL.RequestURI()
		w.WriteHeader(http.StatusOK)
	}))
	defer analyticsSvc.Close()

	handler := buildHandler(config.Config{APISvcURL: apiSvc.URL, AnalyticsSvcURL: analyticsSvc.URL}, logger.Nop())
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/orders/7", apiPath)

	resp, err = http.Get(srv.URL + "/api/analytics/popular-items?period=today")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/analytics/popular-items?period=today", analyticsPath)
}

func TestBuildHandler_AnswersPreflight(t *testing.T) {
	handler := buildHandler(config.Config{}, logger.Nop())

	req := httptest.NewRequest(http.MethodOptions, "/api/orders/1/status", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "X-Admin-Token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

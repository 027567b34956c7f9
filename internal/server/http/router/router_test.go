package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gazetka/loyalty/internal/server/http/handlers"
	"github.com/gazetka/loyalty/internal/server/http/middleware"
	testhelpers "github.com/gazetka/loyalty/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.LoyaltyFacadeStub{}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]any{"name": "biedronka", "location": []float64{52.4, 16.9}, "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/stores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "identity")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for store registration, got %d", resp.Code)
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected request id header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/ranking/stores?from=global", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for ranking, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/users/alice/qr", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for token issue, got %d", resp.Code)
	}
}

var _ handlers.LoyaltyFacade = (*testhelpers.LoyaltyFacadeStub)(nil)

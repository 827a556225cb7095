package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taxidesk/internal/fare"

	"github.com/gin-gonic/gin"
)

func fareTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/fare/quote", Quote)
	r.GET("/api/fare/vehicles", GetVehicleClasses)
	r.GET("/api/fare/permits", GetPermitStates)
	return r
}

func TestQuoteEndpoint(t *testing.T) {
	r := fareTestRouter()

	body := `{"startKm":100,"endKm":250,"mode":"drop","vehicleId":"sedan"}`
	req := httptest.NewRequest(http.MethodPost, "/api/fare/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 150 km x 16 = 2400 distance + 300 batta
	if resp.Breakdown.Total != 2700 {
		t.Fatalf("total = %v, want 2700", resp.Breakdown.Total)
	}
	if resp.Breakdown.Mode != fare.ModeDrop {
		t.Fatalf("mode = %s, want drop", resp.Breakdown.Mode)
	}
	if resp.Advisory != "" {
		t.Fatalf("unexpected advisory %q", resp.Advisory)
	}
}

func TestQuoteEndpointAdvisory(t *testing.T) {
	r := fareTestRouter()

	// heavy vehicle short drop triggers the package note
	body := `{"startKm":0,"endKm":40,"mode":"drop","vehicleId":"tempo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/fare/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Breakdown.DistanceCharge != 5500 {
		t.Fatalf("distance charge = %v, want 5500", resp.Breakdown.DistanceCharge)
	}
	if resp.Advisory == "" {
		t.Fatal("expected advisory text on heavy-vehicle package fare")
	}
}

func TestQuoteEndpointUnknownVehicle(t *testing.T) {
	r := fareTestRouter()

	body := `{"startKm":0,"endKm":100,"mode":"drop","vehicleId":"rickshaw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/fare/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestQuoteEndpointBadPayload(t *testing.T) {
	r := fareTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/fare/quote", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestVehicleCatalogEndpoint(t *testing.T) {
	r := fareTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/fare/vehicles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var vehicles []fare.VehicleClass
	if err := json.Unmarshal(w.Body.Bytes(), &vehicles); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(vehicles) == 0 {
		t.Fatal("expected a non-empty vehicle catalog")
	}
}

func TestPermitStatesEndpoint(t *testing.T) {
	r := fareTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/fare/permits", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var states []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &states); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(states) == 0 {
		t.Fatal("expected permit states")
	}
}

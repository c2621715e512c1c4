package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oceanworks/fleet-roi/internal/roi"
	"github.com/oceanworks/fleet-roi/pkg/mathutil"
	"github.com/oceanworks/fleet-roi/pkg/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, maxBodySize int64) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	return NewHandler(logger, maxBodySize, "test")
}

func referenceRequest(threeYear bool) roiRequest {
	return roiRequest{
		Fleet: testutil.ReferenceFleet(),
		Applications: []applicationPayload{
			{Name: "Hull Maintainance App", Selected: true, SavingPercent: 3.0},
		},
		ThreeYearView: threeYear,
	}
}

func postROI(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/roi", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleROI(t *testing.T) {
	handler := newTestHandler(t, 0)
	rec := postROI(t, handler, referenceRequest(false))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp roiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	m := resp.Metrics
	if m.LicenseCostAnnual != 36000 {
		t.Errorf("LicenseCostAnnual = %.2f, expected 36000", m.LicenseCostAnnual)
	}
	if m.BaselineFuelCost != 90750000 {
		t.Errorf("BaselineFuelCost = %.2f, expected 90750000", m.BaselineFuelCost)
	}
	if m.TotalSavingsAnnual != 2722500 {
		t.Errorf("TotalSavingsAnnual = %.2f, expected 2722500", m.TotalSavingsAnnual)
	}
	if !m.ROIPercentAnnual.Valid || m.ROIPercentAnnual.Value != 7462.5 {
		t.Errorf("ROIPercentAnnual = %+v, expected 7462.5", m.ROIPercentAnnual)
	}
	if !mathutil.WithinTolerance(m.EmissionsReducedTons, 15414.3, 1e-6) {
		t.Errorf("EmissionsReducedTons = %.4f, expected 15414.3", m.EmissionsReducedTons)
	}
	if m.ThreeYear != nil {
		t.Error("ThreeYear should be nil when not requested")
	}

	// Zero-saving applications are excluded from the chart breakdown.
	if len(resp.Breakdown) != 1 {
		t.Fatalf("Breakdown = %+v, expected a single slice", resp.Breakdown)
	}
	if resp.Breakdown[0].Application != "Hull Maintainance App" || resp.Breakdown[0].Savings != 2722500 {
		t.Errorf("Breakdown[0] = %+v", resp.Breakdown[0])
	}
	if resp.Duration == "" {
		t.Error("Duration should be populated")
	}
}

func TestHandleROIThreeYear(t *testing.T) {
	handler := newTestHandler(t, 0)
	rec := postROI(t, handler, referenceRequest(true))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp roiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Metrics.ThreeYear == nil {
		t.Fatal("ThreeYear should be populated")
	}
	if resp.Metrics.ThreeYear.TotalSavings != 3*2722500 {
		t.Errorf("TotalSavings = %.2f, expected %d", resp.Metrics.ThreeYear.TotalSavings, 3*2722500)
	}
	if len(resp.Metrics.ThreeYear.YearlySeries) != 3 {
		t.Errorf("YearlySeries length = %d, expected 3", len(resp.Metrics.ThreeYear.YearlySeries))
	}
}

func TestHandleROINoSavings(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := roiRequest{Fleet: testutil.ReferenceFleet()}
	rec := postROI(t, handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp roiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Metrics.PaybackMonths.Valid {
		t.Error("PaybackMonths should be undefined with no selected applications")
	}
	if len(resp.Breakdown) != 0 {
		t.Errorf("Breakdown = %+v, expected empty", resp.Breakdown)
	}
}

func TestBreakdownExcludesSubCentSavings(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := roiRequest{
		Fleet: roi.FleetParameters{
			FleetSize:                1,
			FuelPricePerTon:          1,
			DailyFuelConsumptionTons: 1,
			OperatingDays:            1,
		},
		Applications: []applicationPayload{
			{Name: "Hull Maintainance App", Selected: true, SavingPercent: 0.5},
		},
	}
	rec := postROI(t, handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp roiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Savings below currency tolerance still count toward the totals but do
	// not earn a chart slice.
	if resp.Metrics.TotalSavingsAnnual <= 0 {
		t.Errorf("TotalSavingsAnnual = %v, expected positive", resp.Metrics.TotalSavingsAnnual)
	}
	if len(resp.Breakdown) != 0 {
		t.Errorf("Breakdown = %+v, expected sub-cent savings to be excluded", resp.Breakdown)
	}
}

func TestHandleROIValidation(t *testing.T) {
	handler := newTestHandler(t, 0)

	tests := []struct {
		name     string
		mutate   func(*roiRequest)
		wantText string
	}{
		{
			name:     "negative fleet size",
			mutate:   func(r *roiRequest) { r.Fleet.FleetSize = -1 },
			wantText: "fleetSize",
		},
		{
			name: "saving percent out of range",
			mutate: func(r *roiRequest) {
				r.Applications[0].SavingPercent = 20
			},
			wantText: "outside allowed range",
		},
		{
			name: "unknown application",
			mutate: func(r *roiRequest) {
				r.Applications = append(r.Applications, applicationPayload{Name: "Mystery App", Selected: true, SavingPercent: 1})
			},
			wantText: "unknown application",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := referenceRequest(false)
			tt.mutate(&req)
			rec := postROI(t, handler, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, expected 400 (body: %s)", rec.Code, rec.Body.String())
			}
			var resp map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if !strings.Contains(resp["error"], tt.wantText) {
				t.Errorf("error %q does not mention %q", resp["error"], tt.wantText)
			}
		})
	}
}

func TestHandleROIMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/roi", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

func TestHandleROIBodyTooLarge(t *testing.T) {
	handler := newTestHandler(t, 64)
	req := referenceRequest(false)
	req.Applications = append(req.Applications, applicationPayload{Name: strings.Repeat("x", 256)})
	rec := postROI(t, handler, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected 413 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleROIMalformedJSON(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/roi", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestHandleCatalog(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Applications []catalogEntry `json:"applications"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Applications) != 6 {
		t.Fatalf("catalog size = %d, expected 6", len(resp.Applications))
	}
	first := resp.Applications[0]
	if first.Name != "Hull Maintainance App" || first.MaxSavingPct != 15 || !first.DefaultSelected {
		t.Errorf("first catalog entry = %+v", first)
	}
}

func TestHandleExport(t *testing.T) {
	handler := newTestHandler(t, 0)
	payload, _ := json.Marshal(referenceRequest(true))
	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	yaml := resp["configYaml"]
	for _, expected := range []string{
		"fleetSize: 10",
		"Hull Maintainance App",
		"savingPercent: 3",
		"threeYearView: true",
	} {
		if !strings.Contains(yaml, expected) {
			t.Errorf("exported YAML missing %q:\n%s", expected, yaml)
		}
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %q, expected test", resp["version"])
	}
}

func TestStaticIndexServed(t *testing.T) {
	handler := newTestHandler(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Applications ROI Calculator") {
		t.Error("index page missing dashboard title")
	}
}

func TestBuildSelectionsCoversCatalog(t *testing.T) {
	selections := buildSelections([]applicationPayload{
		{Name: "Emission App", Selected: true, SavingPercent: 1.5},
	})

	if len(selections) != 6 {
		t.Fatalf("selections length = %d, expected 6", len(selections))
	}
	if sel := selections["Emission App"]; !sel.Selected || sel.SavingPercent != 1.5 {
		t.Errorf("Emission App selection = %+v", sel)
	}
	if sel := selections["Hull Maintainance App"]; sel != (roi.Selection{}) {
		t.Errorf("unlisted application should be unselected, got %+v", sel)
	}
}

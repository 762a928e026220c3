package plans

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"precal/core/fleet"
	"precal/core/planner"
)

type directPlanner struct {
	table *fleet.PolicyTable
}

func (p directPlanner) Plan(year int, volumes map[string]float64) planner.Report {
	return planner.Plan(p.table, year, volumes)
}

func newTestTable(t *testing.T) *fleet.PolicyTable {
	t.Helper()
	table, err := fleet.NewPolicyTable(fleet.DefaultRoutes(), fleet.DefaultSchedule())
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

func TestRoutesHandler(t *testing.T) {
	h := NewRoutesHandler(newTestTable(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/routes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp RoutesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Routes) != 3 || resp.Routes[0].Key != "vlcc_china" {
		t.Fatalf("unexpected routes %#v", resp.Routes)
	}
	if len(resp.YearOptions) != 3 || resp.YearOptions[0] != 2030 {
		t.Fatalf("unexpected year options %v", resp.YearOptions)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/routes", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestCalculateHandler(t *testing.T) {
	h := NewCalculateHandler(newTestTable(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/calculate?route=vlcc_china&year=2030&volume=289.4", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res planner.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.TotalVessels != 30 || res.Charter != 12 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCalculateHandler_Errors(t *testing.T) {
	h := NewCalculateHandler(newTestTable(t))
	cases := []struct {
		name  string
		query string
		code  int
	}{
		{"unknown route", "route=ghost&year=2030&volume=100", http.StatusNotFound},
		{"zero volume", "route=vlcc_china&year=2030&volume=0", http.StatusBadRequest},
		{"bad year", "route=vlcc_china&year=soon&volume=100", http.StatusBadRequest},
		{"bad volume", "route=vlcc_china&year=2030&volume=lots", http.StatusBadRequest},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/calculate?"+c.query, nil))
		if rec.Code != c.code {
			t.Errorf("%s: expected %d got %d", c.name, c.code, rec.Code)
		}
	}
}

func TestPlanHandler(t *testing.T) {
	h := NewPlanHandler(directPlanner{table: newTestTable(t)})
	body := `{"year":2030,"volumes":{"vlcc_china":289.4,"suez_sing":-1}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp PlanResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PlanID == "" {
		t.Fatalf("plan id missing")
	}
	if resp.Results["vlcc_china"].TotalVessels != 30 {
		t.Fatalf("valid route missing: %#v", resp.Results)
	}
	if _, ok := resp.Errors["suez_sing"]; !ok {
		t.Fatalf("invalid route not reported: %#v", resp.Errors)
	}
}

func TestPlanHandler_BadRequests(t *testing.T) {
	h := NewPlanHandler(directPlanner{table: newTestTable(t)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader("not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(`{"year":2030}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty volumes, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plans", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

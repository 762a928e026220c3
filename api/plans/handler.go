package plans

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"precal/core/fleet"
	"precal/core/planner"
)

// Planner computes batch plans. Implemented by app.Service.
type Planner interface {
	Plan(year int, volumes map[string]float64) planner.Report
}

// RoutesResponse lists the selectable routes and supported target years.
type RoutesResponse struct {
	Routes      []fleet.RouteDefinition `json:"routes"`
	YearOptions []int                   `json:"year_options"`
}

// NewRoutesHandler returns an HTTP handler exposing the selectable routes via
// GET /api/routes.
func NewRoutesHandler(table *fleet.PolicyTable) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := RoutesResponse{Routes: table.Routes(), YearOptions: planner.YearOptions()}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewCalculateHandler returns an HTTP handler computing a single route via
// GET /api/calculate?route=...&year=...&volume=...
func NewCalculateHandler(table *fleet.PolicyTable) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		route := r.URL.Query().Get("route")
		year, err := strconv.Atoi(r.URL.Query().Get("year"))
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		volume, err := strconv.ParseFloat(r.URL.Query().Get("volume"), 64)
		if err != nil {
			http.Error(w, "invalid volume", http.StatusBadRequest)
			return
		}
		res, err := planner.Calculate(table, route, year, volume)
		if err != nil {
			var unknown fleet.UnknownRouteError
			if errors.As(err, &unknown) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// PlanRequest is the body of POST /api/plans: one shared target year and a
// per-route export volume.
type PlanRequest struct {
	Year    int                `json:"year"`
	Volumes map[string]float64 `json:"volumes"`
}

// PlanResponse mirrors planner.Report with per-route error messages.
type PlanResponse struct {
	PlanID  string                    `json:"plan_id"`
	Year    int                       `json:"year"`
	Results map[string]planner.Result `json:"results"`
	Errors  map[string]string         `json:"errors,omitempty"`
}

// NewPlanHandler returns an HTTP handler computing a batch plan via
// POST /api/plans. A route with invalid input is reported in the errors map
// without aborting the remaining routes.
func NewPlanHandler(p Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.Volumes) == 0 {
			http.Error(w, "volumes are required", http.StatusBadRequest)
			return
		}
		rep := p.Plan(req.Year, req.Volumes)
		resp := PlanResponse{PlanID: rep.PlanID, Year: rep.Year, Results: rep.Results}
		if len(rep.Errors) > 0 {
			resp.Errors = make(map[string]string, len(rep.Errors))
			for k, err := range rep.Errors {
				resp.Errors[k] = err.Error()
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

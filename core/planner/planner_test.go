package planner

import (
	"errors"
	"math"
	"testing"

	"precal/core/fleet"
)

func testTable(t *testing.T) *fleet.PolicyTable {
	t.Helper()
	table, err := fleet.NewPolicyTable(fleet.DefaultRoutes(), fleet.DefaultSchedule())
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

func TestCalculate_VLCCChina2030(t *testing.T) {
	res, err := Calculate(testTable(t), "vlcc_china", 2030, 289.4)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalVessels != 30 {
		t.Fatalf("expected 30 total, got %d", res.TotalVessels)
	}
	if res.NewBuilds != 18 || res.Existing != 0 || res.Charter != 12 {
		t.Fatalf("unexpected breakdown %+v", res)
	}
}

func TestCalculate_VLCCChina2040(t *testing.T) {
	res, err := Calculate(testTable(t), "vlcc_china", 2040, 289.4)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalVessels != 30 || res.NewBuilds != 0 || res.Existing != 18 || res.Charter != 12 {
		t.Fatalf("unexpected breakdown %+v", res)
	}
}

func TestCalculate_SuezSing2050(t *testing.T) {
	res, err := Calculate(testTable(t), "suez_sing", 2050, 123.3)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalVessels != 20 || res.NewBuilds != 0 || res.Existing != 17 || res.Charter != 3 {
		t.Fatalf("unexpected breakdown %+v", res)
	}
}

func TestCalculate_ExactDivision(t *testing.T) {
	// 99.5 / 9.95 is exactly 10: no rounding artifact allowed.
	res, err := Calculate(testTable(t), "vlcc_china", 2050, 99.5)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalVessels != 10 {
		t.Fatalf("expected exactly 10 vessels, got %d", res.TotalVessels)
	}
}

func TestCalculate_CharterClampedAtZero(t *testing.T) {
	// 50 / 9.95 needs 6 vessels; 18 are committed for 2030.
	res, err := Calculate(testTable(t), "vlcc_china", 2030, 50)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalVessels != 6 {
		t.Fatalf("expected 6 total, got %d", res.TotalVessels)
	}
	if res.Charter != 0 {
		t.Fatalf("overprovisioning must clamp charter to zero, got %d", res.Charter)
	}
}

func TestCalculate_Invariant(t *testing.T) {
	table := testTable(t)
	for _, vol := range []float64{1, 9.95, 50, 123.3, 289.4, 1000} {
		for _, year := range []int{2030, 2040, 2050} {
			res, err := Calculate(table, "suez_sing", year, vol)
			if err != nil {
				t.Fatalf("calculate %v/%d: %v", vol, year, err)
			}
			fixed := res.NewBuilds + res.Existing
			if fixed <= res.TotalVessels {
				if res.TotalVessels != fixed+res.Charter {
					t.Fatalf("breakdown does not sum: %+v", res)
				}
			} else if res.Charter != 0 {
				t.Fatalf("expected zero charter when overprovisioned: %+v", res)
			}
		}
	}
}

func TestCalculate_Monotonic(t *testing.T) {
	table := testTable(t)
	prev := 0
	for vol := 1.0; vol <= 500; vol += 7.3 {
		res, err := Calculate(table, "vlcc_china", 2030, vol)
		if err != nil {
			t.Fatalf("calculate %v: %v", vol, err)
		}
		if res.TotalVessels < prev {
			t.Fatalf("total decreased at volume %v: %d < %d", vol, res.TotalVessels, prev)
		}
		if want := int(math.Ceil(vol / 9.95)); res.TotalVessels != want {
			t.Fatalf("volume %v: expected %d got %d", vol, want, res.TotalVessels)
		}
		prev = res.TotalVessels
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	table := testTable(t)
	first, err := Calculate(table, "prod_seasia", 2030, 77.7)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Calculate(table, "prod_seasia", 2030, 77.7)
		if err != nil {
			t.Fatalf("calculate: %v", err)
		}
		if again != first {
			t.Fatalf("results differ: %+v vs %+v", first, again)
		}
	}
}

func TestCalculate_InvalidVolume(t *testing.T) {
	table := testTable(t)
	for _, vol := range []float64{0, -1, -289.4} {
		_, err := Calculate(table, "vlcc_china", 2030, vol)
		var invalid InvalidVolumeError
		if !errors.As(err, &invalid) {
			t.Fatalf("volume %v: expected InvalidVolumeError, got %v", vol, err)
		}
		if invalid.Volume != vol {
			t.Fatalf("wrong volume in error: %v", invalid.Volume)
		}
	}
}

func TestCalculate_UnknownRoute(t *testing.T) {
	_, err := Calculate(testTable(t), "aframax_usgc", 2030, 100)
	var unknown fleet.UnknownRouteError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRouteError, got %v", err)
	}
}

func TestCalculate_UnsupportedYearDegrades(t *testing.T) {
	res, err := Calculate(testTable(t), "vlcc_china", 2035, 289.4)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.NewBuilds != 0 || res.Existing != 0 {
		t.Fatalf("off-schedule year must default to zero fixed supply: %+v", res)
	}
	if res.Charter != res.TotalVessels {
		t.Fatalf("all demand should be charter: %+v", res)
	}
}

func TestPlan_IsolatesFailures(t *testing.T) {
	volumes := map[string]float64{
		"vlcc_china":  289.4,
		"suez_sing":   -5,
		"prod_seasia": 77.7,
		"ghost_route": 10,
	}
	rep := Plan(testTable(t), 2030, volumes)
	if rep.PlanID == "" {
		t.Fatalf("plan id missing")
	}
	if len(rep.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(rep.Results))
	}
	if len(rep.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(rep.Errors))
	}
	var invalid InvalidVolumeError
	if !errors.As(rep.Errors["suez_sing"], &invalid) {
		t.Fatalf("expected InvalidVolumeError for suez_sing, got %v", rep.Errors["suez_sing"])
	}
	var unknown fleet.UnknownRouteError
	if !errors.As(rep.Errors["ghost_route"], &unknown) {
		t.Fatalf("expected UnknownRouteError for ghost_route, got %v", rep.Errors["ghost_route"])
	}
	if rep.Results["vlcc_china"].TotalVessels != 30 {
		t.Fatalf("valid route not computed: %+v", rep.Results["vlcc_china"])
	}
	keys := rep.RouteKeys()
	if len(keys) != 2 || keys[0] != "prod_seasia" || keys[1] != "vlcc_china" {
		t.Fatalf("unexpected key order %v", keys)
	}
}

func TestSupportedYear(t *testing.T) {
	for _, y := range YearOptions() {
		if !SupportedYear(y) {
			t.Fatalf("year %d should be supported", y)
		}
	}
	if SupportedYear(2025) {
		t.Fatalf("2025 is not a planning horizon")
	}
}

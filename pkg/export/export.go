package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"precal/core/planner"
)

// WriteJSON writes the plan report to w in JSON format.
func WriteJSON(w io.Writer, rep planner.Report) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rep)
}

// WriteCSV writes the plan report to w in CSV format, one row per route in
// sorted key order.
func WriteCSV(w io.Writer, rep planner.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"route", "year", "export_volume", "total_vessels", "new_builds", "existing", "charter"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, key := range rep.RouteKeys() {
		r := rep.Results[key]
		rec := []string{
			r.RouteKey,
			strconv.Itoa(r.Year),
			strconv.FormatFloat(r.ExportVolume, 'f', -1, 64),
			strconv.Itoa(r.TotalVessels),
			strconv.Itoa(r.NewBuilds),
			strconv.Itoa(r.Existing),
			strconv.Itoa(r.Charter),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

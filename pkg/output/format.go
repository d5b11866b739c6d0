// Package output provides utilities for formatting and displaying optimization results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/boiler-optimizer/pkg/api"
	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/plot"
	"github.com/iwvelando/boiler-optimizer/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders resp in the named format.
func Write(w io.Writer, format string, resp *api.OptimizationResponse) error {
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}
	if resp == nil || resp.Results == nil {
		return fmt.Errorf("no results to output")
	}

	switch format {
	case constants.OutputFormatCSV:
		return CsvFormat(w, resp)
	case constants.OutputFormatJSON:
		return JSONFormat(w, resp)
	}
	return PrettyFormat(w, resp)
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, resp *api.OptimizationResponse) error {
	p := message.NewPrinter(language.English)
	r := resp.Results

	lines := []struct {
		label string
		value float64
		unit  string
	}{
		{"Current energy", r.CurrentEnergy, constants.EnergyUnit},
		{"Output energy", r.OutputEnergy, constants.EnergyUnit},
		{"Potential savings", r.Savings, constants.EnergyUnit},
		{"Optimized efficiency", r.OptimizedEfficiency, "%"},
	}

	if _, err := fmt.Fprintf(w, "--- Optimization results ---\n"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := p.Fprintf(w, "%-21s | %12.2f %s\n", line.label, line.value, line.unit); err != nil {
			return err
		}
	}

	if t := resp.Thermodynamics; t != nil {
		if _, err := fmt.Fprintf(w, "\n--- Steam state ---\n"); err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "Steam temperature     | %12.2f °C\nSteam enthalpy        | %12.2f kJ/kg\nFeedwater enthalpy    | %12.2f kJ/kg\nEnthalpy rise         | %12.2f kJ/kg\n",
			t.SteamTempC, t.SteamEnthalpy, t.FeedwaterEnthalpy, t.EnthalpyRise); err != nil {
			return err
		}
	}

	temps, savings := Series(resp.SensitivityJSON)
	if len(temps) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n--- Savings vs. feedwater temperature ---\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Temp (°C) | Savings (%s)\n", constants.EnergyUnit); err != nil {
		return err
	}
	for i := range temps {
		if _, err := p.Fprintf(w, "%9.2f | %.2f\n", temps[i], savings[i]); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format: the four results, then
// the sensitivity series.
func CsvFormat(w io.Writer, resp *api.OptimizationResponse) error {
	r := resp.Results
	if _, err := fmt.Fprintf(w, "\"current_energy\",\"output_energy\",\"savings\",\"optimized_efficiency\"\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
		r.CurrentEnergy, r.OutputEnergy, r.Savings, r.OptimizedEfficiency); err != nil {
		return err
	}

	temps, savings := Series(resp.SensitivityJSON)
	if len(temps) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n\"feedwater_temp\",\"savings\"\n"); err != nil {
		return err
	}
	for i := range temps {
		if _, err := fmt.Fprintf(w, "\"%.2f\",\"%.2f\"\n", temps[i], savings[i]); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat outputs the response as indented JSON.
func JSONFormat(w io.Writer, resp *api.OptimizationResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Series extracts the x and y values of the first trace of spec. Values may
// be typed slices or decoded JSON arrays; mismatched lengths are truncated.
func Series(spec *plot.Spec) ([]float64, []float64) {
	if !spec.Valid() || len(spec.Data) == 0 {
		return nil, nil
	}
	xs := toFloats(spec.Data[0]["x"])
	ys := toFloats(spec.Data[0]["y"])
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	return xs[:n], ys[:n]
}

func toFloats(v interface{}) []float64 {
	switch values := v.(type) {
	case []float64:
		return values
	case []interface{}:
		out := make([]float64, 0, len(values))
		for _, item := range values {
			f, ok := item.(float64)
			if !ok {
				return nil
			}
			out = append(out, f)
		}
		return out
	}
	return nil
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/boiler-optimizer/internal/boiler"
	"github.com/iwvelando/boiler-optimizer/pkg/api"
	"github.com/iwvelando/boiler-optimizer/pkg/plot"
)

func testResponse() *api.OptimizationResponse {
	return &api.OptimizationResponse{
		Status: api.StatusSuccess,
		Results: &boiler.Results{
			CurrentEnergy:       1200,
			OutputEnergy:        1020,
			Savings:             126.3158,
			OptimizedEfficiency: 95,
		},
		SensitivityJSON: plot.Line("Savings", "T", "S", []float64{40, 60}, []float64{1.5, 2.25}, "#4682B4"),
		Thermodynamics:  &boiler.Thermodynamics{SteamTempC: 190, SteamEnthalpy: 3051.2, FeedwaterEnthalpy: 334.4, EnthalpyRise: 2716.8},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, testResponse()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- Optimization results ---",
		"1,200.00 MJ/s",
		"126.32 MJ/s",
		"95.00 %",
		"Steam temperature",
		"3,051.20 kJ/kg",
		"Savings vs. feedwater temperature",
		"40.00 | 1.50",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected pretty output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, testResponse()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		`"current_energy","output_energy","savings","optimized_efficiency"`,
		`"1200.00","1020.00","126.32","95.00"`,
		``,
		`"feedwater_temp","savings"`,
		`"40.00","1.50"`,
		`"60.00","2.25"`,
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testResponse()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded api.OptimizationResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Results == nil || decoded.Results.OptimizedEfficiency != 95 {
		t.Errorf("unexpected decoded results: %+v", decoded.Results)
	}

	temps, savings := Series(decoded.SensitivityJSON)
	if len(temps) != 2 || savings[1] != 2.25 {
		t.Errorf("expected series to survive a JSON round trip, got %v %v", temps, savings)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "xml", testResponse()); err == nil {
		t.Error("expected error for unsupported format")
	}
	if err := Write(&buf, "pretty", &api.OptimizationResponse{Status: api.StatusSuccess}); err == nil {
		t.Error("expected error for response without results")
	}

	buf.Reset()
	if err := Write(&buf, "csv", testResponse()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), `"current_energy"`) {
		t.Errorf("expected CSV output, got %q", buf.String())
	}
}

func TestSeries(t *testing.T) {
	if xs, ys := Series(nil); xs != nil || ys != nil {
		t.Error("expected nil series for nil spec")
	}

	spec := &plot.Spec{
		Data:   []map[string]interface{}{{"x": []interface{}{1.0, 2.0, 3.0}, "y": []interface{}{4.0, 5.0}}},
		Layout: map[string]interface{}{},
	}
	xs, ys := Series(spec)
	if len(xs) != 2 || len(ys) != 2 {
		t.Errorf("expected truncation to 2 points, got %v %v", xs, ys)
	}

	spec.Data[0]["x"] = []interface{}{"a", "b"}
	if xs, _ := Series(spec); len(xs) != 0 {
		t.Errorf("expected non-numeric x values to be dropped, got %v", xs)
	}
}

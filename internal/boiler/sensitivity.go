package boiler

import (
	"fmt"

	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/mathutil"
)

// SensitivityPoint is the savings at one feedwater temperature.
type SensitivityPoint struct {
	FeedwaterTemp float64 `json:"feedwater_temp"`
	Savings       float64 `json:"savings"`
}

// Sensitivity sweeps the feedwater temperature over ±20°C around the input in
// ten evenly spaced steps, holding every other input fixed.
func Sensitivity(in Inputs) ([]SensitivityPoint, error) {
	temps := mathutil.Linspace(
		in.FeedwaterTemp-constants.SensitivitySpanC,
		in.FeedwaterTemp+constants.SensitivitySpanC,
		constants.SensitivityPoints,
	)

	points := make([]SensitivityPoint, 0, len(temps))
	for _, temp := range temps {
		sample := in
		sample.FeedwaterTemp = temp
		res, err := Calculate(sample)
		if err != nil {
			return nil, fmt.Errorf("sensitivity at %.2f°C: %w", temp, err)
		}
		points = append(points, SensitivityPoint{FeedwaterTemp: temp, Savings: res.Savings})
	}
	return points, nil
}

// Series splits points into x and y slices for charting.
func Series(points []SensitivityPoint) (temps, savings []float64) {
	temps = make([]float64, len(points))
	savings = make([]float64, len(points))
	for i, p := range points {
		temps[i] = p.FeedwaterTemp
		savings[i] = p.Savings
	}
	return temps, savings
}

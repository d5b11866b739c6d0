// Package api defines the JSON contract of the optimization endpoint.
package api

import (
	"github.com/iwvelando/boiler-optimizer/internal/boiler"
	"github.com/iwvelando/boiler-optimizer/pkg/plot"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OptimizationRequest is the POST body of the optimization endpoint.
type OptimizationRequest struct {
	FeedwaterTemp float64 `json:"feedwater_temp"`
	SteamPressure float64 `json:"steam_pressure"`
	FuelFlow      float64 `json:"fuel_flow"`
	Efficiency    float64 `json:"efficiency"`
}

// Inputs converts the request to model inputs.
func (r OptimizationRequest) Inputs() boiler.Inputs {
	return boiler.Inputs{
		FeedwaterTemp: r.FeedwaterTemp,
		SteamPressure: r.SteamPressure,
		FuelFlow:      r.FuelFlow,
		Efficiency:    r.Efficiency,
	}
}

// OptimizationResponse is the body returned by the optimization endpoint.
type OptimizationResponse struct {
	Status          string                 `json:"status"`
	Error           string                 `json:"error,omitempty"`
	Results         *boiler.Results        `json:"results,omitempty"`
	PlotJSON        *plot.Spec             `json:"plot_json,omitempty"`
	SensitivityJSON *plot.Spec             `json:"sensitivity_json,omitempty"`
	Thermodynamics  *boiler.Thermodynamics `json:"thermodynamics,omitempty"`
}

// Failure returns the failure message of an application-level error and
// whether the response signals one. A response fails when it carries an
// error field or its status is not "success".
func (r *OptimizationResponse) Failure() (string, bool) {
	if r == nil {
		return "", true
	}
	if r.Error != "" {
		return r.Error, true
	}
	if r.Status != StatusSuccess {
		return "", true
	}
	return "", false
}

// ErrorResponse builds a failed response carrying msg.
func ErrorResponse(msg string) *OptimizationResponse {
	return &OptimizationResponse{Status: StatusError, Error: msg}
}

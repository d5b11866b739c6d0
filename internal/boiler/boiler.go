// Package boiler implements the boiler energy balance and the feedwater
// temperature sensitivity sweep.
package boiler

import (
	"fmt"

	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/mathutil"
	"github.com/iwvelando/boiler-optimizer/pkg/validation"
)

// Inputs are the operating parameters of one boiler.
type Inputs struct {
	FeedwaterTemp float64 // °C
	SteamPressure float64 // bar
	FuelFlow      float64 // kg/s
	Efficiency    float64 // percent
}

// Results holds the energy figures for the current and optimized operating points.
type Results struct {
	CurrentEnergy       float64 `json:"current_energy"`
	OutputEnergy        float64 `json:"output_energy"`
	Savings             float64 `json:"savings"`
	OptimizedEfficiency float64 `json:"optimized_efficiency"`
}

// OptimizedEnergy is the fuel energy needed at the optimized efficiency.
func (r Results) OptimizedEnergy() float64 {
	return r.CurrentEnergy - r.Savings
}

// Thermodynamics holds the steam-side state derived from the inputs.
type Thermodynamics struct {
	SteamTempC        float64 `json:"steam_temp_c"`
	SteamEnthalpy     float64 `json:"steam_enthalpy_kj_kg"`
	FeedwaterEnthalpy float64 `json:"feedwater_enthalpy_kj_kg"`
	EnthalpyRise      float64 `json:"enthalpy_rise_kj_kg"`
}

// Calculate computes the energy balance. Inputs must be finite, with a
// positive fuel flow and an efficiency in (0, 100].
func Calculate(in Inputs) (Results, error) {
	if err := validation.CheckInputs(in.FeedwaterTemp, in.SteamPressure, in.FuelFlow, in.Efficiency); err != nil {
		return Results{}, fmt.Errorf("invalid boiler inputs: %w", err)
	}

	energyIn := in.FuelFlow * constants.HigherHeatingValue
	energyOut := mathutil.FromPercent(in.Efficiency) * energyIn

	optimized := OptimizedEfficiency(in.Efficiency)
	optimizedIn := energyOut / mathutil.FromPercent(optimized)
	savings := energyIn - optimizedIn

	if err := validation.CheckComputed(validation.FieldFuelFlow, in.FuelFlow, energyIn, energyOut, optimizedIn, savings); err != nil {
		return Results{}, fmt.Errorf("invalid boiler inputs: %w", err)
	}

	return Results{
		CurrentEnergy:       energyIn,
		OutputEnergy:        energyOut,
		Savings:             savings,
		OptimizedEfficiency: optimized,
	}, nil
}

// OptimizedEfficiency is the efficiency reachable after tuning: ten points
// higher, capped at 95%.
func OptimizedEfficiency(efficiency float64) float64 {
	return mathutil.Min(efficiency+constants.EfficiencyImprovement, constants.MaxOptimizedEfficiency)
}

// SteamState derives the saturation temperature and enthalpies. Saturation
// temperature is approximated as 100°C plus 10°C per bar above 1 bar.
func SteamState(in Inputs) (Thermodynamics, error) {
	steamTemp := constants.BoilingPointC + (in.SteamPressure-1)*constants.SteamTempPerBar
	steamEnthalpy := constants.WaterSpecificHeat*steamTemp + constants.LatentHeatVaporization
	if err := validation.CheckComputed(validation.FieldSteamPressure, in.SteamPressure, steamTemp, steamEnthalpy); err != nil {
		return Thermodynamics{}, fmt.Errorf("invalid steam state: %w", err)
	}

	feedwaterEnthalpy := constants.WaterSpecificHeat * in.FeedwaterTemp
	rise := steamEnthalpy - feedwaterEnthalpy
	if err := validation.CheckComputed(validation.FieldFeedwaterTemp, in.FeedwaterTemp, feedwaterEnthalpy, rise); err != nil {
		return Thermodynamics{}, fmt.Errorf("invalid steam state: %w", err)
	}

	return Thermodynamics{
		SteamTempC:        steamTemp,
		SteamEnthalpy:     steamEnthalpy,
		FeedwaterEnthalpy: feedwaterEnthalpy,
		EnthalpyRise:      rise,
	}, nil
}

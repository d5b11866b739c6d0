package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/boiler-optimizer/pkg/mathutil"
)

// Input field names, shared by the wire format and the page element ids.
const (
	FieldFeedwaterTemp = "feedwater_temp"
	FieldSteamPressure = "steam_pressure"
	FieldFuelFlow      = "fuel_flow"
	FieldEfficiency    = "efficiency"
)

// Fields lists the input fields in form order.
var Fields = []string{FieldFeedwaterTemp, FieldSteamPressure, FieldFuelFlow, FieldEfficiency}

// User-facing messages for the two input failure classes.
const (
	MessageNotNumeric = "All inputs must be valid numbers"
	MessageOutOfRange = "Fuel flow must be positive and efficiency must be between 0 and 100"
	MessageOverflow   = "Inputs are too large to produce finite results"
)

var (
	// ErrNotNumeric marks a field that is empty, unparsable or not finite.
	ErrNotNumeric = errors.New("value is not a finite number")

	// ErrOutOfRange marks a field outside its physical domain.
	ErrOutOfRange = errors.New("value out of range")
)

// InputError reports a rejected input field.
type InputError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Detail describes the offending field for logs.
func (e *InputError) Detail() string {
	return fmt.Sprintf("%s=%q: %v", e.Field, e.Value, e.Err)
}

// ParseNumber parses a raw form value. Surrounding whitespace is ignored;
// empty, non-numeric and non-finite values are rejected.
func ParseNumber(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !mathutil.IsFinite(value) {
		return 0, &InputError{Field: field, Value: raw, Message: MessageNotNumeric, Err: ErrNotNumeric}
	}
	return value, nil
}

// CheckFinite rejects NaN and infinite values, in Fields order.
func CheckFinite(feedwaterTemp, steamPressure, fuelFlow, efficiency float64) error {
	values := []float64{feedwaterTemp, steamPressure, fuelFlow, efficiency}
	for i, v := range values {
		if !mathutil.IsFinite(v) {
			return &InputError{
				Field:   Fields[i],
				Value:   strconv.FormatFloat(v, 'g', -1, 64),
				Message: MessageNotNumeric,
				Err:     ErrNotNumeric,
			}
		}
	}
	return nil
}

// CheckRange enforces fuelFlow > 0 and 0 < efficiency <= 100.
func CheckRange(fuelFlow, efficiency float64) error {
	if fuelFlow <= 0 {
		return &InputError{
			Field:   FieldFuelFlow,
			Value:   strconv.FormatFloat(fuelFlow, 'g', -1, 64),
			Message: MessageOutOfRange,
			Err:     ErrOutOfRange,
		}
	}
	if efficiency <= 0 || efficiency > 100 {
		return &InputError{
			Field:   FieldEfficiency,
			Value:   strconv.FormatFloat(efficiency, 'g', -1, 64),
			Message: MessageOutOfRange,
			Err:     ErrOutOfRange,
		}
	}
	return nil
}

// CheckInputs runs CheckFinite then CheckRange.
func CheckInputs(feedwaterTemp, steamPressure, fuelFlow, efficiency float64) error {
	if err := CheckFinite(feedwaterTemp, steamPressure, fuelFlow, efficiency); err != nil {
		return err
	}
	return CheckRange(fuelFlow, efficiency)
}

// CheckComputed rejects derived values that overflowed. The input named by
// field and value is reported as the cause.
func CheckComputed(field string, value float64, computed ...float64) error {
	if mathutil.AllFinite(computed...) {
		return nil
	}
	return &InputError{
		Field:   field,
		Value:   strconv.FormatFloat(value, 'g', -1, 64),
		Message: MessageOverflow,
		Err:     ErrOutOfRange,
	}
}

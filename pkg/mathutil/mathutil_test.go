package mathutil

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Zero", 0, true},
		{"Negative", -40, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}

	if !AllFinite(1, 2, 3) {
		t.Error("AllFinite(1, 2, 3) = false, expected true")
	}
	if AllFinite(1, math.NaN()) {
		t.Error("AllFinite(1, NaN) = true, expected false")
	}
	if !AllFinite() {
		t.Error("AllFinite() = false, expected true")
	}
}

func TestMinAndTolerance(t *testing.T) {
	if Min(95, 96) != 95 {
		t.Errorf("Min(95, 96) = %v", Min(95, 96))
	}
	if Min(-1, -2) != -2 {
		t.Errorf("Min(-1, -2) = %v", Min(-1, -2))
	}
	if !WithinTolerance(1.0, 1.005, 0.01) {
		t.Error("expected 1.0 and 1.005 to be within 0.01")
	}
	if WithinTolerance(1.0, 1.02, 0.01) {
		t.Error("expected 1.0 and 1.02 to differ by more than 0.01")
	}
}

func TestLinspace(t *testing.T) {
	t.Run("Ten points over forty degrees", func(t *testing.T) {
		got := Linspace(40, 80, 10)
		if len(got) != 10 {
			t.Fatalf("expected 10 samples, got %d", len(got))
		}
		if got[0] != 40 || got[9] != 80 {
			t.Fatalf("expected endpoints 40 and 80, got %v and %v", got[0], got[9])
		}
		step := 40.0 / 9
		for i := 1; i < len(got); i++ {
			if !WithinTolerance(got[i]-got[i-1], step, 1e-9) {
				t.Errorf("sample %d step = %v, expected %v", i, got[i]-got[i-1], step)
			}
		}
	})

	t.Run("Single point", func(t *testing.T) {
		got := Linspace(5, 10, 1)
		if len(got) != 1 || got[0] != 5 {
			t.Fatalf("expected [5], got %v", got)
		}
	})

	t.Run("No points", func(t *testing.T) {
		if got := Linspace(5, 10, 0); len(got) != 0 {
			t.Fatalf("expected empty slice, got %v", got)
		}
		if got := Linspace(5, 10, -3); len(got) != 0 {
			t.Fatalf("expected empty slice, got %v", got)
		}
	})

	t.Run("Descending range", func(t *testing.T) {
		got := Linspace(10, 0, 3)
		expected := []float64{10, 5, 0}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("sample %d = %v, expected %v", i, got[i], expected[i])
			}
		}
	})
}

func TestFromPercent(t *testing.T) {
	if got := FromPercent(85); !WithinTolerance(got, 0.85, 1e-12) {
		t.Errorf("FromPercent(85) = %v, expected 0.85", got)
	}
}

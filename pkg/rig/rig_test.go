package rig

import (
	"math"
	"testing"
)

func TestSignalClamp_Saturates(t *testing.T) {
	sig := Signal{Param: "p", Min: -30, Max: 30}

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "below range", in: -70, want: -30},
		{name: "above range", in: 45, want: 30},
		{name: "in range", in: 12.5, want: 12.5},
		{name: "at lower edge", in: -30, want: -30},
		{name: "at upper edge", in: 30, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sig.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSignalClamp_Idempotent(t *testing.T) {
	sig := Signal{Param: "p", Min: 0, Max: 1}
	for _, v := range []float64{-3, 0, 0.4, 1, 7} {
		once := sig.Clamp(v)
		twice := sig.Clamp(once)
		if once != twice {
			t.Errorf("Clamp not idempotent for %v: %v then %v", v, once, twice)
		}
	}
}

func TestSignalClamp_Monotonic(t *testing.T) {
	sig := Signal{Param: "p", Min: -1, Max: 1}
	inputs := []float64{-5, -1, -0.5, 0, 0.5, 1, 5}
	prev := math.Inf(-1)
	for _, v := range inputs {
		got := sig.Clamp(v)
		if got < prev {
			t.Errorf("Clamp order violated at %v: %v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestSignalClamp_Unbounded(t *testing.T) {
	sig := unboundedSignal("p", 0)
	for _, v := range []float64{-1e6, 0, 42.5, 1e6} {
		if got := sig.Clamp(v); got != v {
			t.Errorf("unbounded Clamp(%v) = %v", v, got)
		}
	}
}

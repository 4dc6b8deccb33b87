package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistanceStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, std, p10, p50, p90 := ComputeDistanceStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Population std of 1..10
	if want := math.Sqrt(8.25); math.Abs(std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", std, want)
	}
	if p10 != 1 || p50 != 5 || p90 != 9 {
		t.Errorf("percentiles = (%v, %v, %v), want (1, 5, 9)", p10, p50, p90)
	}

	// Input must not be reordered
	if values[0] != 10 {
		t.Error("ComputeDistanceStats sorted its input")
	}
}

func TestComputeDistanceStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistanceStats([]float64{42})
	if mean != 42 || std != 0 || p10 != 42 || p50 != 42 || p90 != 42 {
		t.Errorf("got (%v, %v, %v, %v, %v), want 42 with zero spread", mean, std, p10, p50, p90)
	}
}

func TestComputeDistanceStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistanceStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

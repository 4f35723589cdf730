package geo

import (
	"math"
	"testing"
)

func TestDistanceSamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.758, -73.9855},
		{-33.8688, 151.2093},
		{90, 0},
	}

	for _, p := range points {
		if d := DistanceMeters(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("distance from (%v,%v) to itself should be 0, got %v", p[0], p[1], d)
		}
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Times Square to the Empire State Building, roughly 1.1 km.
	d := DistanceMeters(40.758, -73.9855, 40.7484, -73.9857)
	if d < 1000 || d > 1200 {
		t.Fatalf("expected roughly 1.1km, got %vm", d)
	}
}

func TestDistanceInvariantUnderFullSwap(t *testing.T) {
	d1 := DistanceMeters(40.758, -73.9855, 48.8566, 2.3522)
	d2 := DistanceMeters(48.8566, 2.3522, 40.758, -73.9855)

	if math.Abs(d1-d2) > 1e-6 {
		t.Fatalf("swapping center and point together should not change distance: %v vs %v", d1, d2)
	}
}

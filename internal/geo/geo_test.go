package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDistance(t *testing.T) {
	tests := []struct {
		name string
		from Coordinates
		to   Coordinates
		want float64
		tol  float64
	}{
		{name: "same point", from: Coordinates{Lat: 55.6, Lng: 37.2}, to: Coordinates{Lat: 55.6, Lng: 37.2}, want: 0, tol: 0},
		{name: "one hundredth degree on equator", from: Coordinates{Lat: 0, Lng: 0}, to: Coordinates{Lat: 0, Lng: 0.01}, want: 1111.95, tol: 0.1},
		{name: "one degree of latitude", from: Coordinates{Lat: 10, Lng: 20}, to: Coordinates{Lat: 11, Lng: 20}, want: 111194.9, tol: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDistance(tt.from, tt.to)
			assert.InDelta(t, tt.want, got, tt.tol)
		})
	}
}

func TestComputeDistanceIsSymmetric(t *testing.T) {
	a := Coordinates{Lat: 43.587795, Lng: 39.716901}
	b := Coordinates{Lat: 43.581969, Lng: 39.719848}

	assert.InDelta(t, ComputeDistance(a, b), ComputeDistance(b, a), 1e-9)
}

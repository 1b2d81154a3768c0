/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0.0},
		{"single", []float64{7.5}, 7.5},
		{"odd", []float64{9.0, 7.0, 8.0}, 8.0},
		{"even", []float64{7.0, 9.0}, 8.0},
		{"unsorted even", []float64{10.0, 6.0, 8.0, 7.0}, 7.5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := median(test.xs); !almostEqual(got, test.want) {
				t.Errorf("median(%v) = %f, wanted %f", test.xs, got, test.want)
			}
		})
	}
}

func TestMedianDoesNotMutate(t *testing.T) {
	xs := []float64{3.0, 1.0, 2.0}
	_ = median(xs)
	if xs[0] != 3.0 || xs[1] != 1.0 || xs[2] != 2.0 {
		t.Errorf("median mutated its input: %v", xs)
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0.0},
		{"single", []float64{5.0}, 0.0},
		{"spread", []float64{8.0, 9.0, 10.0}, 1.0},
		{"constant", []float64{4.0, 4.0, 4.0}, 0.0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := stdDev(test.xs); !almostEqual(got, test.want) {
				t.Errorf("stdDev(%v) = %f, wanted %f", test.xs, got, test.want)
			}
		})
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"inverse", []float64{1, 2, 3}, []float64{3, 2, 1}, -1.0},
		{"scaled", []float64{1, 2, 3}, []float64{10, 20, 30}, 1.0},
		{"zero variance", []float64{5, 5, 5}, []float64{1, 2, 3}, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
		{"too short", []float64{1}, []float64{2}, 0.0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := pearson(test.x, test.y); !almostEqual(got, test.want) {
				t.Errorf("pearson(%v, %v) = %f, wanted %f", test.x, test.y, got, test.want)
			}
		})
	}
}

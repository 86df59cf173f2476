// Package testutil provides shared test helpers.
//
// The numeric assertions exist because most packages in this module compare
// floating-point results of closed-form expressions, where == is too strict
// and a per-test epsilon constant is noise.
package testutil

import (
	"math"
	"testing"
)

// Tolerance is the default absolute tolerance for float comparisons.
const Tolerance = 1e-9

// AssertNear fails the test unless got is within tol of want.
func AssertNear(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tolerance %v)", got, want, tol)
	}
}

// AssertNearSlice fails the test unless got and want have equal length and
// agree element-wise within tol.
func AssertNearSlice(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.IsNaN(got[i]) || math.Abs(got[i]-want[i]) > tol {
			t.Errorf("index %d: got %v, want %v (tolerance %v)", i, got[i], want[i], tol)
		}
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

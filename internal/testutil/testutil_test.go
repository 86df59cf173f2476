package testutil

import (
	"math"
	"testing"
)

func TestAssertNear(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		got        float64
		want       float64
		tol        float64
		shouldFail bool
	}{
		{name: "exact match", got: 0.5, want: 0.5, tol: 1e-12, shouldFail: false},
		{name: "within tolerance", got: 0.5000000001, want: 0.5, tol: 1e-9, shouldFail: false},
		{name: "outside tolerance", got: 0.501, want: 0.5, tol: 1e-9, shouldFail: true},
		{name: "nan never passes", got: math.NaN(), want: 0.5, tol: 1e-9, shouldFail: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// A zero testing.T records Errorf calls without ending the test,
			// which is enough to observe whether the assertion tripped.
			probe := &testing.T{}
			AssertNear(probe, tc.got, tc.want, tc.tol)
			if probe.Failed() != tc.shouldFail {
				t.Errorf("AssertNear(%v, %v, %v): failed = %v, want %v",
					tc.got, tc.want, tc.tol, probe.Failed(), tc.shouldFail)
			}
		})
	}
}

func TestAssertNearSlice(t *testing.T) {
	t.Parallel()

	probe := &testing.T{}
	AssertNearSlice(probe, []float64{0.1, 0.2}, []float64{0.1, 0.2}, 1e-12)
	if probe.Failed() {
		t.Error("equal slices should pass")
	}

	probe = &testing.T{}
	AssertNearSlice(probe, []float64{0.1, 0.3}, []float64{0.1, 0.2}, 1e-9)
	if !probe.Failed() {
		t.Error("mismatched values should fail")
	}
}

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}



package grid

import (
	"reflect"
	"testing"
)

func TestParseRangeSpec(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  RangeSpec
		expectErr bool
	}{
		{name: "simple range", input: "0:1:0.25", expected: RangeSpec{Min: 0, Max: 1, Step: 0.25}},
		{name: "with spaces", input: " 0.1 : 0.9 : 0.2 ", expected: RangeSpec{Min: 0.1, Max: 0.9, Step: 0.2}},
		{name: "fine step", input: "0:1:0.001", expected: RangeSpec{Min: 0, Max: 1, Step: 0.001}},
		{name: "missing part", input: "0:1", expectErr: true},
		{name: "too many parts", input: "0:1:0.1:0.2", expectErr: true},
		{name: "non-numeric min", input: "x:1:0.1", expectErr: true},
		{name: "non-numeric max", input: "0:y:0.1", expectErr: true},
		{name: "non-numeric step", input: "0:1:z", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRangeSpec(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error for input %q, got nil", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestRangeSpecValues(t *testing.T) {
	testCases := []struct {
		name      string
		spec      RangeSpec
		expected  []float64
		expectErr bool
	}{
		{
			name:     "quarter steps",
			spec:     RangeSpec{Min: 0, Max: 1, Step: 0.25},
			expected: []float64{0, 0.25, 0.5, 0.75, 1},
		},
		{
			name:     "endpoint not a multiple",
			spec:     RangeSpec{Min: 0, Max: 1, Step: 0.3},
			expected: []float64{0, 0.3, 0.6, 0.9},
		},
		{
			name:     "tenth steps stop short of the degenerate corner",
			spec:     RangeSpec{Min: 0, Max: 0.9, Step: 0.1},
			expected: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		},
		{
			name:     "single point",
			spec:     RangeSpec{Min: 0.5, Max: 0.5, Step: 0.1},
			expected: []float64{0.5},
		},
		{
			name:     "offset range",
			spec:     RangeSpec{Min: 0.2, Max: 0.6, Step: 0.2},
			expected: []float64{0.2, 0.4, 0.6},
		},
		{name: "zero step", spec: RangeSpec{Min: 0, Max: 1, Step: 0}, expectErr: true},
		{name: "negative step", spec: RangeSpec{Min: 0, Max: 1, Step: -0.1}, expectErr: true},
		{name: "max below min", spec: RangeSpec{Min: 1, Max: 0, Step: 0.1}, expectErr: true},
		{name: "too many values", spec: RangeSpec{Min: 0, Max: 20, Step: 0.001}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.spec.Values()
			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error for spec %+v, got nil", tc.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestRangeSpecValuesFineGrid(t *testing.T) {
	values, err := RangeSpec{Min: 0, Max: 1, Step: 0.001}.Values()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(values) != 1001 {
		t.Fatalf("Expected 1001 values, got %d", len(values))
	}
	if values[0] != 0 || values[len(values)-1] != 1 {
		t.Errorf("Expected endpoints 0 and 1, got %v and %v", values[0], values[len(values)-1])
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			t.Fatalf("Values not strictly increasing at index %d: %v <= %v", i, values[i], values[i-1])
		}
	}
}

func TestRangeSpecValuesReachExactEndpoint(t *testing.T) {
	// 0.05 is not exactly representable; the rounding pass must still land
	// the final sample exactly on 1.
	values, err := RangeSpec{Min: 0, Max: 1, Step: 0.05}.Values()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(values) != 21 {
		t.Fatalf("Expected 21 values, got %d", len(values))
	}
	if values[20] != 1 {
		t.Errorf("Expected final value exactly 1, got %v", values[20])
	}
}

func TestNewSequence(t *testing.T) {
	seq, err := NewSequence("alpha", RangeSpec{Min: 0, Max: 1, Step: 0.5})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if seq.Name != "alpha" {
		t.Errorf("Expected name alpha, got %q", seq.Name)
	}
	if !reflect.DeepEqual(seq.Values, []float64{0, 0.5, 1}) {
		t.Errorf("Expected [0 0.5 1], got %v", seq.Values)
	}

	if _, err := NewSequence("bad", RangeSpec{Min: 1, Max: 0, Step: 0.1}); err == nil {
		t.Error("Expected error for invalid spec, got nil")
	}
}

func TestParseParamList(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []float64
		expectErr bool
	}{
		{name: "comma list", input: "0.1,0.2,0.3", expected: []float64{0.1, 0.2, 0.3}},
		{name: "single value", input: "0.5", expected: []float64{0.5}},
		{name: "range spec", input: "0:1:0.5", expected: []float64{0, 0.5, 1}},
		{name: "empty defaults to zero", input: "", expected: []float64{0}},
		{name: "spaces around values", input: " 0.1 , 0.2 ", expected: []float64{0.1, 0.2}},
		{name: "invalid value", input: "0.1,abc", expectErr: true},
		{name: "invalid range", input: "0:1:abc", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseParamList(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error for input %q, got nil", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

package utils

import (
	"math"
	"testing"
)

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 10, 10},
		{"abc", 10, 10},
		{"2.5", 1, 1},
		{"0", 10, 1},
		{"-4", 10, 1},
		{"3", 10, 3},
	}

	for _, tt := range tests {
		if got := ParsePositiveInt(tt.in, tt.def); got != tt.want {
			t.Errorf("ParsePositiveInt(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := CalculateTotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	if got := CalculateOffset(3, 10); got != 20 {
		t.Errorf("expected 20, got %d", got)
	}
	if got := CalculateOffset(0, 10); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestCalculateOffsetSaturates(t *testing.T) {
	if got := CalculateOffset(922337203685477590, 10); got != math.MaxInt {
		t.Errorf("expected math.MaxInt, got %d", got)
	}
	if got := CalculateOffset(math.MaxInt, math.MaxInt); got != math.MaxInt {
		t.Errorf("expected math.MaxInt, got %d", got)
	}
	if got := CalculateOffset(3, 0); got != 0 {
		t.Errorf("expected 0 for a non-positive limit, got %d", got)
	}
}

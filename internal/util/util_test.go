package util

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		expected  float64
	}{
		{"below range", -5, 0, 10, 0},
		{"above range", 15, 0, 10, 10},
		{"inside range", 5, 0, 10, 5},
		{"at lower bound", 0, 0, 10, 0},
		{"at upper bound", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.v, tt.lo, tt.hi)
			if result != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, result, tt.expected)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"zero", 0, 0},
		{"pi stays pi", math.Pi, math.Pi},
		{"negative pi wraps to pi", -math.Pi, math.Pi},
		{"full turn", 2 * math.Pi, 0},
		{"one and a half turns", 3 * math.Pi, math.Pi},
		{"small negative", -0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeAngle(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestStepAngle(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		expected                 float64
	}{
		{"reaches target within step", 0, 0.1, 0.5, 0.1},
		{"limited by step", 0, 1.0, 0.25, 0.25},
		{"turns negative way", 0, -1.0, 0.25, -0.25},
		{"shorter way across pi", 3.0, -3.0, 0.1, 3.1},
		{"zero step holds", 1.0, 2.0, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StepAngle(tt.current, tt.target, tt.maxStep)
			if math.Abs(NormalizeAngle(result-tt.expected)) > 1e-9 {
				t.Errorf("StepAngle(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.maxStep, result, tt.expected)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"plain name", "Ironclad", 32, "Ironclad"},
		{"control chars stripped", "Iron\x00clad\n", 32, "Ironclad"},
		{"surrounding space trimmed", "  Ironclad  ", 32, "Ironclad"},
		{"capped length", "abcdefghij", 4, "abcd"},
		{"zero max keeps all", "abcdefghij", 0, "abcdefghij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeName(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("SanitizeName(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

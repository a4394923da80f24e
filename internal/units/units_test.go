package units

import (
	"math"
	"testing"
)

func TestFormatHeight(t *testing.T) {
	tests := []struct {
		name string
		dm   int
		sys  System
		want string
	}{
		{"metric small", 7, Metric, "0.7m"},
		{"metric large", 145, Metric, "14.5m"},
		{"metric zero", 0, Metric, "0.0m"},
		{"imperial small", 7, Imperial, "2'4\""},
		{"imperial six feet", 18, Imperial, "5'11\""},
		{"imperial zero", 0, Imperial, "0'0\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHeight(tt.dm, tt.sys); got != tt.want {
				t.Errorf("FormatHeight(%d, %v) = %q, want %q", tt.dm, tt.sys, got, tt.want)
			}
		})
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		name string
		hg   int
		sys  System
		want string
	}{
		{"metric", 700, Metric, "70.0kg"},
		{"metric fraction", 69, Metric, "6.9kg"},
		{"imperial", 700, Imperial, "154.3lbs"},
		{"imperial zero", 0, Imperial, "0.0lbs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWeight(tt.hg, tt.sys); got != tt.want {
				t.Errorf("FormatWeight(%d, %v) = %q, want %q", tt.hg, tt.sys, got, tt.want)
			}
		})
	}
}

func TestMetersToFeetInchesCarries(t *testing.T) {
	// 1.8288m is exactly 6'0"; rounding just below must not yield 5'12".
	if got := MetersToFeetInches(1.8285); got != "6'0\"" {
		t.Errorf("MetersToFeetInches(1.8285) = %q, want 6'0\"", got)
	}
}

func TestFeetInchesToMeters(t *testing.T) {
	got := FeetInchesToMeters(2, 3)
	if math.Abs(got-0.6858) > 1e-9 {
		t.Errorf("FeetInchesToMeters(2, 3) = %v, want 0.6858", got)
	}
}

func TestFromMetric(t *testing.T) {
	if FromMetric(true) != Metric || FromMetric(false) != Imperial {
		t.Fatal("FromMetric mapping is wrong")
	}
	if Metric.String() != "metric" || Imperial.String() != "imperial" {
		t.Fatal("System.String mismatch")
	}
}

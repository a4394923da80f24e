// Package units formats creature heights and weights for display in
// either metric or imperial units.
package units

import (
	"fmt"
	"math"
)

// System selects the unit system used for display strings.
type System int

const (
	Metric System = iota
	Imperial
)

const (
	inchesPerMeter = 39.3701
	metersPerInch  = 0.0254
	poundsPerKg    = 2.20462
)

// FromMetric maps a stored "use metric" preference to a System.
func FromMetric(useMetric bool) System {
	if useMetric {
		return Metric
	}
	return Imperial
}

func (s System) IsMetric() bool { return s == Metric }

func (s System) String() string {
	if s == Imperial {
		return "imperial"
	}
	return "metric"
}

// MetersToFeetInches renders a length as feet'inches".
func MetersToFeetInches(meters float64) string {
	total := meters * inchesPerMeter
	feet := int(math.Floor(total / 12))
	inches := int(math.Round(math.Mod(total, 12)))
	if inches == 12 {
		feet++
		inches = 0
	}
	return fmt.Sprintf("%d'%d\"", feet, inches)
}

// FeetInchesToMeters converts an imperial length to meters.
func FeetInchesToMeters(feet, inches float64) float64 {
	return (feet*12 + inches) * metersPerInch
}

func KgToLbs(kg float64) float64 {
	return kg * poundsPerKg
}

// FormatHeight formats a height stored in decimetres.
func FormatHeight(decimetres int, s System) string {
	meters := float64(decimetres) / 10
	if s == Imperial {
		return MetersToFeetInches(meters)
	}
	return fmt.Sprintf("%.1fm", meters)
}

// FormatWeight formats a weight stored in hectograms. The stored value is
// divided by ten exactly once to reach kilograms.
func FormatWeight(hectograms int, s System) string {
	kg := float64(hectograms) / 10
	if s == Imperial {
		return fmt.Sprintf("%.1flbs", KgToLbs(kg))
	}
	return fmt.Sprintf("%.1fkg", kg)
}

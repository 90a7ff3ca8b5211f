// Package clinical holds pure metric computations shared by the registry
// services and the seeder.
package clinical

import "math"

// BMI computes body mass index from weight in kilograms and height in
// centimeters, rounded to one decimal. Returns 0 when either input is
// missing or non-positive, so a half-filled form never divides by zero.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}

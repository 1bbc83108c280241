package utils

import "math"

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// RoundMoney rounds a monetary amount to two decimal places. Applied at
// output boundaries only, never on intermediate accumulations.
func RoundMoney(val float64) float64 {
	return RoundFloat(val, 2)
}

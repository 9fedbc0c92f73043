package domain

// CelsiusToFahrenheit converts a temperature using c*9/5 + 32 in plain
// float64 arithmetic, so repeated runs produce bit-identical results.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

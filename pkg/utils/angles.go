package utils

import "math"

// DegToRad converte graus para radianos
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadToDeg converte radianos para graus
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// WrapDegrees normaliza um ângulo para o intervalo [-180, 180)
func WrapDegrees(deg float64) float64 {
	wrapped := math.Mod(deg+180.0, 360.0)
	if wrapped < 0 {
		wrapped += 360.0
	}
	return wrapped - 180.0
}

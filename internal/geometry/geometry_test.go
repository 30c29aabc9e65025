package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestRotation2DFromDegrees(t *testing.T) {
	rot := NewRotation2DFromDegrees(180)
	assert.InDelta(t, math.Pi, rot.Radians(), epsilon)
	assert.InDelta(t, 180.0, rot.Degrees(), epsilon)
}

func TestRotation2DFromComponents(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected float64 // radianos
	}{
		{"eixo x positivo", 1, 0, 0},
		{"eixo y positivo", 0, 1, math.Pi / 2},
		{"diagonal", 1, 1, math.Pi / 4},
		{"vetor nulo resolve para zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rot := NewRotation2DFromComponents(tt.x, tt.y)
			assert.InDelta(t, tt.expected, rot.Radians(), epsilon)
		})
	}
}

func TestTranslation2D(t *testing.T) {
	tr := NewTranslation2D(3, 4)
	assert.Equal(t, 3.0, tr.X())
	assert.Equal(t, 4.0, tr.Y())
	assert.InDelta(t, 5.0, tr.Norm(), epsilon)
}

func TestTranslation2DRotateBy(t *testing.T) {
	tr := NewTranslation2D(1, 0).RotateBy(NewRotation2DFromDegrees(90))
	assert.InDelta(t, 0.0, tr.X(), epsilon)
	assert.InDelta(t, 1.0, tr.Y(), epsilon)
}

func TestTransform2DPreservesComponents(t *testing.T) {
	translation := NewTranslation2D(2.0, 3.0)
	rotation := NewRotation2DFromComponents(
		NewRotation2DFromDegrees(10).Radians(),
		NewRotation2DFromDegrees(20).Radians(),
	)

	transform := NewTransform2D(translation, rotation)

	// A composição não altera nenhum dos dois valores
	assert.Equal(t, translation, transform.Translation())
	assert.Equal(t, rotation, transform.Rotation())
}

func TestTransform2DThen(t *testing.T) {
	first := NewTransform2D(NewTranslation2D(1, 0), NewRotation2DFromDegrees(90))
	second := NewTransform2D(NewTranslation2D(1, 0), NewRotation2D(0))

	combined := first.Then(second)

	// Andar 1m, girar 90° e andar mais 1m termina em (1, 1) virado a 90°
	assert.InDelta(t, 1.0, combined.Translation().X(), epsilon)
	assert.InDelta(t, 1.0, combined.Translation().Y(), epsilon)
	assert.InDelta(t, math.Pi/2, combined.Rotation().Radians(), epsilon)
}

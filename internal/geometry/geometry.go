// Package geometry contém os tipos de pose 2D usados pelo estimador de visão:
// rotação, translação e a transformação rígida que combina as duas.
package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"vision_go/pkg/utils"
)

// Rotation2D representa uma rotação no plano, armazenada em radianos
type Rotation2D struct {
	radians float64
}

// NewRotation2D cria uma rotação a partir de um ângulo em radianos
func NewRotation2D(radians float64) Rotation2D {
	return Rotation2D{radians: radians}
}

// NewRotation2DFromDegrees cria uma rotação a partir de um ângulo em graus
func NewRotation2DFromDegrees(degrees float64) Rotation2D {
	return Rotation2D{radians: utils.DegToRad(degrees)}
}

// NewRotation2DFromComponents cria uma rotação a partir de um par de
// componentes (x, y); o ângulo resultante é atan2(y, x). O vetor nulo
// resolve para rotação zero.
func NewRotation2DFromComponents(x, y float64) Rotation2D {
	if x == 0 && y == 0 {
		return Rotation2D{}
	}
	return Rotation2D{radians: math.Atan2(y, x)}
}

// Radians retorna o ângulo em radianos
func (r Rotation2D) Radians() float64 {
	return r.radians
}

// Degrees retorna o ângulo em graus
func (r Rotation2D) Degrees() float64 {
	return utils.RadToDeg(r.radians)
}

// Cos retorna o cosseno do ângulo
func (r Rotation2D) Cos() float64 {
	return math.Cos(r.radians)
}

// Sin retorna o seno do ângulo
func (r Rotation2D) Sin() float64 {
	return math.Sin(r.radians)
}

// RotateBy soma outra rotação a esta
func (r Rotation2D) RotateBy(other Rotation2D) Rotation2D {
	return Rotation2D{radians: r.radians + other.radians}
}

func (r Rotation2D) String() string {
	return fmt.Sprintf("Rotation2D(%.4f rad)", r.radians)
}

// Translation2D representa um deslocamento no plano
type Translation2D struct {
	point r2.Point
}

// NewTranslation2D cria uma translação a partir das componentes x e y
func NewTranslation2D(x, y float64) Translation2D {
	return Translation2D{point: r2.Point{X: x, Y: y}}
}

// X retorna a componente x
func (t Translation2D) X() float64 {
	return t.point.X
}

// Y retorna a componente y
func (t Translation2D) Y() float64 {
	return t.point.Y
}

// Norm retorna a magnitude do deslocamento
func (t Translation2D) Norm() float64 {
	return t.point.Norm()
}

// Plus soma outra translação a esta
func (t Translation2D) Plus(other Translation2D) Translation2D {
	return Translation2D{point: t.point.Add(other.point)}
}

// RotateBy aplica uma rotação a esta translação
func (t Translation2D) RotateBy(r Rotation2D) Translation2D {
	cos, sin := r.Cos(), r.Sin()
	return NewTranslation2D(
		t.point.X*cos-t.point.Y*sin,
		t.point.X*sin+t.point.Y*cos,
	)
}

func (t Translation2D) String() string {
	return fmt.Sprintf("Translation2D(%.3f, %.3f)", t.point.X, t.point.Y)
}

// Transform2D combina uma translação e uma rotação em um único mapeamento
// rígido. A composição não altera nenhum dos dois valores.
type Transform2D struct {
	translation Translation2D
	rotation    Rotation2D
}

// NewTransform2D cria uma transformação a partir de uma translação e uma rotação
func NewTransform2D(translation Translation2D, rotation Rotation2D) Transform2D {
	return Transform2D{
		translation: translation,
		rotation:    rotation,
	}
}

// Translation retorna a componente de translação
func (t Transform2D) Translation() Translation2D {
	return t.translation
}

// Rotation retorna a componente de rotação
func (t Transform2D) Rotation() Rotation2D {
	return t.rotation
}

// Then encadeia outra transformação após esta
func (t Transform2D) Then(other Transform2D) Transform2D {
	return Transform2D{
		translation: t.translation.Plus(other.translation.RotateBy(t.rotation)),
		rotation:    t.rotation.RotateBy(other.rotation),
	}
}

func (t Transform2D) String() string {
	return fmt.Sprintf("Transform2D(%s, %s)", t.translation, t.rotation)
}

package entity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CameraMatrix матрица камеры 3x3 (внутренние параметры)
type CameraMatrix struct {
	m *mat.Dense
}

// NewCameraMatrix создаёт матрицу 3x3 из 9 значений построчно
func NewCameraMatrix(values []float64) (*CameraMatrix, error) {
	if len(values) != 9 {
		return nil, fmt.Errorf("camera matrix needs 9 values, got %d", len(values))
	}
	data := make([]float64, 9)
	copy(data, values)
	return &CameraMatrix{m: mat.NewDense(3, 3, data)}, nil
}

// IdentityCameraMatrix возвращает единичную матрицу
func IdentityCameraMatrix() *CameraMatrix {
	cm, _ := NewCameraMatrix([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	return cm
}

// At возвращает элемент матрицы
func (c *CameraMatrix) At(row, col int) float64 {
	return c.m.At(row, col)
}

// Fx фокусное расстояние по X в пикселях
func (c *CameraMatrix) Fx() float64 { return c.m.At(0, 0) }

// Fy фокусное расстояние по Y в пикселях
func (c *CameraMatrix) Fy() float64 { return c.m.At(1, 1) }

// Cx координата X главной точки
func (c *CameraMatrix) Cx() float64 { return c.m.At(0, 2) }

// Cy координата Y главной точки
func (c *CameraMatrix) Cy() float64 { return c.m.At(1, 2) }

// Values возвращает копию значений построчно
func (c *CameraMatrix) Values() []float64 {
	out := make([]float64, 0, 9)
	for r := 0; r < 3; r++ {
		out = append(out, c.m.RawRowView(r)...)
	}
	return out
}

// Equal сравнивает матрицы поэлементно
func (c *CameraMatrix) Equal(other *CameraMatrix) bool {
	if c == nil || other == nil {
		return c == other
	}
	return mat.Equal(c.m, other.m)
}

// EqualApprox сравнивает матрицы с допуском
func (c *CameraMatrix) EqualApprox(other *CameraMatrix, tol float64) bool {
	if c == nil || other == nil {
		return c == other
	}
	return mat.EqualApprox(c.m, other.m, tol)
}

func (c *CameraMatrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(c.m, mat.Squeeze()))
}

//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"undistort-player/internal/domain/entity"
)

// MatFrame кадр поверх gocv.Mat; память принадлежит тому, кто его выдал
type MatFrame struct {
	mat *gocv.Mat
}

// NewMatFrame оборачивает матрицу без копирования
func NewMatFrame(mat *gocv.Mat) MatFrame {
	return MatFrame{mat: mat}
}

// Size возвращает ширину и высоту кадра
func (f MatFrame) Size() image.Point {
	return image.Pt(f.mat.Cols(), f.mat.Rows())
}

// Mat возвращает исходную матрицу
func (f MatFrame) Mat() *gocv.Mat {
	return f.mat
}

// matOf достаёт gocv.Mat из кадра
func matOf(frame entity.Frame) (*gocv.Mat, error) {
	f, ok := frame.(MatFrame)
	if !ok || f.mat == nil {
		return nil, fmt.Errorf("unsupported frame type %T", frame)
	}
	if f.mat.Empty() {
		return nil, fmt.Errorf("empty frame")
	}
	return f.mat, nil
}

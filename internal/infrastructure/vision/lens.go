//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// LensModel считает матрицы и исправляет дисторсию средствами OpenCV
type LensModel struct{}

// NewLensModel создаёт модель линзы
func NewLensModel() *LensModel {
	return &LensModel{}
}

// OptimalCameraMatrix подбирает новую матрицу камеры для заявленного размера кадра.
// alpha=0 обрезает все невалидные пиксели, alpha=1 сохраняет их вместе с чёрными краями.
func (m *LensModel) OptimalCameraMatrix(cal *entity.Calibration, alpha float64) (*entity.CameraMatrix, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("alpha must be within [0, 1], got %v", alpha)
	}

	cameraMat := cameraMatrixToMat(cal.CameraMatrix)
	defer cameraMat.Close()
	distMat := distortionToMat(cal.Distortion)
	defer distMat.Close()

	size := cal.ImageSize()
	adjusted, _ := gocv.GetOptimalNewCameraMatrixWithParams(cameraMat, distMat, size, alpha, size, false)
	defer adjusted.Close()

	if adjusted.Empty() || adjusted.Rows() != 3 || adjusted.Cols() != 3 {
		return nil, errors.New("opencv returned an invalid camera matrix")
	}
	return matToCameraMatrix(adjusted)
}

// NewCorrector готовит матрицы OpenCV один раз на весь запуск
func (m *LensModel) NewCorrector(cal *entity.Calibration, adjusted *entity.CameraMatrix) (port.Corrector, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if adjusted == nil {
		return nil, errors.New("adjusted camera matrix is required")
	}
	return &Corrector{
		cameraMat:   cameraMatrixToMat(cal.CameraMatrix),
		distMat:     distortionToMat(cal.Distortion),
		adjustedMat: cameraMatrixToMat(adjusted),
		dst:         gocv.NewMat(),
	}, nil
}

// Corrector исправляет кадры; результат перезаписывается при каждом вызове
type Corrector struct {
	cameraMat   gocv.Mat
	distMat     gocv.Mat
	adjustedMat gocv.Mat
	dst         gocv.Mat
}

// Undistort переносит пиксели через обратную модель дисторсии в координаты новой матрицы
func (c *Corrector) Undistort(frame entity.Frame) (entity.Frame, error) {
	src, err := matOf(frame)
	if err != nil {
		return nil, err
	}
	gocv.Undistort(*src, &c.dst, c.cameraMat, c.distMat, c.adjustedMat)
	if c.dst.Empty() {
		return nil, errors.New("undistort produced an empty frame")
	}
	return NewMatFrame(&c.dst), nil
}

// Close освобождает все матрицы
func (c *Corrector) Close() error {
	return errors.Join(
		c.cameraMat.Close(),
		c.distMat.Close(),
		c.adjustedMat.Close(),
		c.dst.Close(),
	)
}

func cameraMatrixToMat(cm *entity.CameraMatrix) gocv.Mat {
	mat := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			mat.SetDoubleAt(r, c, cm.At(r, c))
		}
	}
	return mat
}

func distortionToMat(coeffs []float64) gocv.Mat {
	mat := gocv.NewMatWithSize(1, len(coeffs), gocv.MatTypeCV64F)
	for i, v := range coeffs {
		mat.SetDoubleAt(0, i, v)
	}
	return mat
}

func matToCameraMatrix(mat gocv.Mat) (*entity.CameraMatrix, error) {
	values := make([]float64, 0, 9)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			values = append(values, mat.GetDoubleAt(r, c))
		}
	}
	return entity.NewCameraMatrix(values)
}

var _ port.LensModel = (*LensModel)(nil)

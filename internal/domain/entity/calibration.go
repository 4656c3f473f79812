package entity

import (
	"fmt"
	"image"
)

// Имена полей файла калибровки OpenCV
const (
	FieldCameraMatrix = "Camera_Matrix"
	FieldDistortion   = "Distortion_Coefficients"
	FieldImageWidth   = "image_Width"
	FieldImageHeight  = "image_Height"
)

// Calibration параметры калибровки камеры, загружаются один раз за запуск
type Calibration struct {
	CameraMatrix *CameraMatrix // внутренняя матрица камеры
	Distortion   []float64     // коэффициенты дисторсии (k1, k2, p1, p2[, k3...])
	ImageWidth   int           // заявленная ширина кадра
	ImageHeight  int           // заявленная высота кадра
}

// ImageSize возвращает заявленный размер кадра
func (c *Calibration) ImageSize() image.Point {
	return image.Pt(c.ImageWidth, c.ImageHeight)
}

// ValidDistortionLength проверяет длину вектора коэффициентов,
// OpenCV принимает только 4, 5, 8, 12 или 14 значений.
func ValidDistortionLength(n int) bool {
	switch n {
	case 4, 5, 8, 12, 14:
		return true
	}
	return false
}

// Validate проверяет полноту и форму параметров
func (c *Calibration) Validate() error {
	if c.CameraMatrix == nil {
		return fmt.Errorf("%s: missing", FieldCameraMatrix)
	}
	if !ValidDistortionLength(len(c.Distortion)) {
		return fmt.Errorf("%s: unsupported length %d", FieldDistortion, len(c.Distortion))
	}
	if c.ImageWidth <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", FieldImageWidth, c.ImageWidth)
	}
	if c.ImageHeight <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", FieldImageHeight, c.ImageHeight)
	}
	return nil
}

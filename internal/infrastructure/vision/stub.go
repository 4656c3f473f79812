//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"github.com/sirupsen/logrus"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// ErrNoGoCV сборка без тега gocv
var ErrNoGoCV = errors.New("gocv build tag is not enabled")

// VideoOpener заглушка без OpenCV
type VideoOpener struct{}

// NewVideoOpener создаёт открыватель-заглушку (без OpenCV).
func NewVideoOpener() *VideoOpener { return &VideoOpener{} }

// Open возвращает ошибку, если сборка без тега gocv.
func (o *VideoOpener) Open(path string) (port.FrameSource, error) {
	_ = path
	return nil, ErrNoGoCV
}

// LensModel заглушка без OpenCV
type LensModel struct{}

// NewLensModel создаёт модель-заглушку (без OpenCV).
func NewLensModel() *LensModel { return &LensModel{} }

// OptimalCameraMatrix возвращает ошибку, если сборка без тега gocv.
func (m *LensModel) OptimalCameraMatrix(cal *entity.Calibration, alpha float64) (*entity.CameraMatrix, error) {
	_ = cal
	_ = alpha
	return nil, ErrNoGoCV
}

// NewCorrector возвращает ошибку, если сборка без тега gocv.
func (m *LensModel) NewCorrector(cal *entity.Calibration, adjusted *entity.CameraMatrix) (port.Corrector, error) {
	_ = cal
	_ = adjusted
	return nil, ErrNoGoCV
}

// WindowFactory заглушка без OpenCV
type WindowFactory struct{}

// NewWindowFactory создаёт фабрику-заглушку (без OpenCV).
func NewWindowFactory(log logrus.FieldLogger) *WindowFactory {
	_ = log
	return &WindowFactory{}
}

// Open возвращает ошибку, если сборка без тега gocv.
func (f *WindowFactory) Open(title string) (port.Display, error) {
	_ = title
	return nil, ErrNoGoCV
}

var (
	_ port.VideoOpener    = (*VideoOpener)(nil)
	_ port.LensModel      = (*LensModel)(nil)
	_ port.DisplayFactory = (*WindowFactory)(nil)
)

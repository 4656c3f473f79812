package port

import "undistort-player/internal/domain/entity"

// CalibrationLoader читает параметры калибровки из файла
type CalibrationLoader interface {
	Load(path string) (*entity.Calibration, error)
}

// LensModel вычисляет матрицы и создаёт корректор дисторсии
type LensModel interface {
	// OptimalCameraMatrix подбирает новую матрицу камеры с учётом alpha (0 — обрезать, 1 — сохранить всё)
	OptimalCameraMatrix(cal *entity.Calibration, alpha float64) (*entity.CameraMatrix, error)

	// NewCorrector готовит корректор для всех кадров запуска
	NewCorrector(cal *entity.Calibration, adjusted *entity.CameraMatrix) (Corrector, error)
}

// Corrector устраняет дисторсию кадра
type Corrector interface {
	// Undistort возвращает исправленный кадр, действителен до следующего вызова
	Undistort(frame entity.Frame) (entity.Frame, error)

	Close() error
}

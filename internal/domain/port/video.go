package port

import (
	"time"

	"undistort-player/internal/domain/entity"
)

// FrameSource источник кадров видео
type FrameSource interface {
	// FPS возвращает заявленную частоту кадров
	FPS() float64

	// Read возвращает следующий кадр; false означает конец потока или ошибку декодирования
	Read() (entity.Frame, bool)

	Close() error
}

// VideoOpener открывает видеофайл для последовательного чтения
type VideoOpener interface {
	Open(path string) (FrameSource, error)
}

// Display окно для показа исправленных кадров
type Display interface {
	// Show выводит кадр в окно
	Show(frame entity.Frame) error

	// WaitKey ждёт нажатия клавиши не дольше timeout, -1 если клавиши не было
	WaitKey(timeout time.Duration) int

	// IsOpen сообщает, не закрыл ли пользователь окно
	IsOpen() bool

	Close() error
}

// DisplayFactory создаёт окно с заданным заголовком
type DisplayFactory interface {
	Open(title string) (Display, error)
}

package entity

import (
	"image"
	"time"
)

// Frame декодированный кадр, действителен до следующего чтения из источника
type Frame interface {
	Size() image.Point
}

// PlaybackState состояние цикла воспроизведения
type PlaybackState string

const (
	StateRunning       PlaybackState = "running"        // Идёт воспроизведение
	StateEndOfStream   PlaybackState = "end_of_stream"  // Кадры закончились
	StateQuitRequested PlaybackState = "quit_requested" // Нажата клавиша выхода
	StateWindowClosed  PlaybackState = "window_closed"  // Окно закрыто пользователем
	StateInterrupted   PlaybackState = "interrupted"    // Получен сигнал завершения
	StateFailed        PlaybackState = "failed"         // Ошибка исправления или показа кадра
)

// Terminal сообщает, завершён ли цикл
func (s PlaybackState) Terminal() bool {
	return s != StateRunning
}

// PlaybackResult итог одного запуска
type PlaybackResult struct {
	RunID         string
	VideoPath     string
	State         PlaybackState
	FramesShown   int
	Elapsed       time.Duration
	FPS           int
	FrameInterval time.Duration
}

// FrameInterval считает интервал кадра как 1000 / FPS миллисекунд (целочисленно).
// Дробная частота отбрасывается; при FPS <= 0 берётся fallback.
func FrameInterval(fps float64, fallback int) (int, time.Duration) {
	rate := int(fps)
	if rate <= 0 {
		rate = fallback
	}
	if rate <= 0 {
		rate = 1
	}
	return rate, time.Duration(1000/rate) * time.Millisecond
}

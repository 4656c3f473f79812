//go:build gocv
// +build gocv

package vision

import (
	"errors"

	"gocv.io/x/gocv"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// VideoOpener открывает видеофайлы через OpenCV
type VideoOpener struct{}

// NewVideoOpener создаёт открыватель видео
func NewVideoOpener() *VideoOpener {
	return &VideoOpener{}
}

// Open открывает файл; неподдерживаемый формат тоже даёт ошибку
func (o *VideoOpener) Open(path string) (port.FrameSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		if capture != nil {
			capture.Close()
		}
		return nil, err
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.New("capture is not opened")
	}
	return &VideoSource{capture: capture, buf: gocv.NewMat()}, nil
}

// VideoSource последовательное чтение кадров; кадр перезаписывается при каждом Read
type VideoSource struct {
	capture *gocv.VideoCapture
	buf     gocv.Mat
}

// FPS заявленная частота кадров
func (s *VideoSource) FPS() float64 {
	return s.capture.Get(gocv.VideoCaptureFPS)
}

// Read читает следующий кадр; ошибка декодирования неотличима от конца потока
func (s *VideoSource) Read() (entity.Frame, bool) {
	if ok := s.capture.Read(&s.buf); !ok || s.buf.Empty() {
		return nil, false
	}
	return NewMatFrame(&s.buf), true
}

// Close освобождает захват и буфер кадра
func (s *VideoSource) Close() error {
	return errors.Join(s.buf.Close(), s.capture.Close())
}

var _ port.VideoOpener = (*VideoOpener)(nil)

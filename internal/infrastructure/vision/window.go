//go:build gocv
// +build gocv

package vision

import (
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// WindowFactory создаёт окна HighGUI
type WindowFactory struct {
	log logrus.FieldLogger
}

// NewWindowFactory создаёт фабрику окон
func NewWindowFactory(log logrus.FieldLogger) *WindowFactory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &WindowFactory{log: log}
}

// Open создаёт окно с размером по содержимому.
// gocv создаёт окно как WINDOW_NORMAL; переключение в autosize принимает не каждый бэкенд.
func (f *WindowFactory) Open(title string) (port.Display, error) {
	w := gocv.NewWindow(title)
	w.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowAutosize)
	if got := w.GetWindowProperty(gocv.WindowPropertyAutosize); !autosizeHeld(got) {
		f.log.WithFields(logrus.Fields{
			"window":   title,
			"autosize": got,
		}).Warn("HighGUI backend ignored autosize, window keeps its own size")
	}
	return &Window{w: w}, nil
}

// Window окно показа кадров
type Window struct {
	w *gocv.Window
}

// Show выводит кадр
func (w *Window) Show(frame entity.Frame) error {
	mat, err := matOf(frame)
	if err != nil {
		return err
	}
	w.w.IMShow(*mat)
	return nil
}

// WaitKey обрабатывает события окна и ждёт клавишу не дольше timeout
func (w *Window) WaitKey(timeout time.Duration) int {
	return w.w.WaitKey(waitMillis(timeout))
}

// IsOpen false, если пользователь закрыл окно.
// Флаг gocv меняется только в Close, поэтому спрашиваем HighGUI о видимости.
func (w *Window) IsOpen() bool {
	if !w.w.IsOpen() {
		return false
	}
	return windowVisible(w.w.GetWindowProperty(gocv.WindowPropertyVisible))
}

// Close закрывает окно
func (w *Window) Close() error {
	return w.w.Close()
}

var _ port.DisplayFactory = (*WindowFactory)(nil)

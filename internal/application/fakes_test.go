package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

type fakeFrame struct {
	index int
}

func (f fakeFrame) Size() image.Point { return image.Pt(64, 48) }

type fakeSource struct {
	frames int
	fps    float64
	read   int
	closed bool
}

func (s *fakeSource) FPS() float64 { return s.fps }

func (s *fakeSource) Read() (entity.Frame, bool) {
	if s.read >= s.frames {
		return nil, false
	}
	s.read++
	return fakeFrame{index: s.read}, true
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeOpener struct {
	source *fakeSource
	err    error
	opened []string
}

func (o *fakeOpener) Open(path string) (port.FrameSource, error) {
	o.opened = append(o.opened, path)
	if o.err != nil {
		return nil, o.err
	}
	return o.source, nil
}

type fakeCorrector struct {
	calls  int
	failAt int
	closed bool
}

func (c *fakeCorrector) Undistort(frame entity.Frame) (entity.Frame, error) {
	c.calls++
	if c.failAt > 0 && c.calls == c.failAt {
		return nil, errors.New("remap failed")
	}
	return frame, nil
}

func (c *fakeCorrector) Close() error {
	c.closed = true
	return nil
}

type fakeLens struct {
	corrector *fakeCorrector
	alpha     float64
	err       error
}

func (l *fakeLens) OptimalCameraMatrix(cal *entity.Calibration, alpha float64) (*entity.CameraMatrix, error) {
	l.alpha = alpha
	if l.err != nil {
		return nil, l.err
	}
	return cal.CameraMatrix, nil
}

func (l *fakeLens) NewCorrector(cal *entity.Calibration, adjusted *entity.CameraMatrix) (port.Corrector, error) {
	return l.corrector, nil
}

type fakeLoader struct {
	cal *entity.Calibration
	err error
}

func (l *fakeLoader) Load(path string) (*entity.Calibration, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.cal, nil
}

// fakeDisplay «нажимает» клавиши по номеру показанного кадра
type fakeDisplay struct {
	keys       map[int]int
	closeAfter int
	shown      []int
	waits      []time.Duration
	closed     bool
	title      string
}

func (d *fakeDisplay) Show(frame entity.Frame) error {
	d.shown = append(d.shown, frame.(fakeFrame).index)
	return nil
}

func (d *fakeDisplay) WaitKey(timeout time.Duration) int {
	d.waits = append(d.waits, timeout)
	if key, ok := d.keys[len(d.shown)]; ok {
		return key
	}
	return keyNone
}

func (d *fakeDisplay) IsOpen() bool {
	return d.closeAfter == 0 || len(d.shown) < d.closeAfter
}

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

type fakeDisplays struct {
	display *fakeDisplay
	err     error
}

func (f *fakeDisplays) Open(title string) (port.Display, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.display.title = title
	return f.display, nil
}

type recordingObserver struct {
	mu        sync.Mutex
	started   int
	corrected int
	shown     int
	finished  []*entity.PlaybackResult
}

func (o *recordingObserver) PlaybackStarted(int, time.Duration) {
	o.mu.Lock()
	o.started++
	o.mu.Unlock()
}

func (o *recordingObserver) FrameCorrected(time.Duration) {
	o.mu.Lock()
	o.corrected++
	o.mu.Unlock()
}

func (o *recordingObserver) FrameShown() {
	o.mu.Lock()
	o.shown++
	o.mu.Unlock()
}

func (o *recordingObserver) PlaybackFinished(r *entity.PlaybackResult) {
	o.mu.Lock()
	o.finished = append(o.finished, r)
	o.mu.Unlock()
}

type fakeNotifier struct {
	results []*entity.PlaybackResult
	err     error
}

func (n *fakeNotifier) NotifyPlayback(ctx context.Context, r *entity.PlaybackResult) error {
	n.results = append(n.results, r)
	return n.err
}

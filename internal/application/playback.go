package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// keyNone WaitKey вернул без нажатия
const keyNone = -1

// PlaybackConfig параметры цикла воспроизведения
type PlaybackConfig struct {
	Pacing  PacingMode
	QuitKey byte
}

// PlaybackService крутит цикл: кадр → исправление → показ → опрос клавиши.
type PlaybackService struct {
	cfg      PlaybackConfig
	observer port.PlaybackObserver
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewPlaybackService создаёт сервис воспроизведения
func NewPlaybackService(cfg PlaybackConfig, observer port.PlaybackObserver, log logrus.FieldLogger) *PlaybackService {
	if observer == nil {
		observer = NopObserver{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Pacing == "" {
		cfg.Pacing = PacingRealtime
	}
	if cfg.QuitKey == 0 {
		cfg.QuitKey = 'q'
	}
	return &PlaybackService{cfg: cfg, observer: observer, log: log, now: time.Now}
}

// Play воспроизводит источник до конца потока, клавиши выхода, закрытия окна или отмены ctx.
// Ресурсы не закрывает: ими владеет вызывающий.
func (s *PlaybackService) Play(
	ctx context.Context,
	src port.FrameSource,
	corrector port.Corrector,
	display port.Display,
	interval time.Duration,
) (*entity.PlaybackResult, error) {
	result := &entity.PlaybackResult{State: entity.StateRunning, FrameInterval: interval}
	started := s.now()
	defer func() {
		result.Elapsed = s.now().Sub(started)
	}()

	pacer := NewPacer(s.cfg.Pacing, interval, s.now)
	pacer.Start()

	for !result.State.Terminal() {
		if ctx.Err() != nil {
			result.State = entity.StateInterrupted
			break
		}

		frame, ok := src.Read()
		if !ok {
			result.State = entity.StateEndOfStream
			break
		}

		t0 := s.now()
		corrected, err := corrector.Undistort(frame)
		if err != nil {
			result.State = entity.StateFailed
			return result, fmt.Errorf("undistort frame %d: %w", result.FramesShown+1, err)
		}
		s.observer.FrameCorrected(s.now().Sub(t0))

		if err := display.Show(corrected); err != nil {
			result.State = entity.StateFailed
			return result, fmt.Errorf("show frame %d: %w", result.FramesShown+1, err)
		}
		result.FramesShown++
		s.observer.FrameShown()

		key := display.WaitKey(pacer.Wait())
		switch {
		case s.isQuitKey(key):
			result.State = entity.StateQuitRequested
		case !display.IsOpen():
			result.State = entity.StateWindowClosed
		}
	}

	s.log.WithFields(logrus.Fields{
		"state":  result.State,
		"frames": result.FramesShown,
	}).Debug("Playback loop finished")

	return result, nil
}

// isQuitKey сравнивает младший байт кода клавиши, как это делает HighGUI
func (s *PlaybackService) isQuitKey(key int) bool {
	if key == keyNone {
		return false
	}
	return byte(key&0xFF) == s.cfg.QuitKey
}

// NopObserver наблюдатель, который ничего не делает
type NopObserver struct{}

func (NopObserver) PlaybackStarted(int, time.Duration)      {}
func (NopObserver) FrameCorrected(time.Duration)            {}
func (NopObserver) FrameShown()                             {}
func (NopObserver) PlaybackFinished(*entity.PlaybackResult) {}

var _ port.PlaybackObserver = NopObserver{}

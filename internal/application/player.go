package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// DefaultAlpha компромисс между обрезкой чёрных краёв и сохранением всего поля зрения
const DefaultAlpha = 0.5

// PlayerConfig параметры запуска
type PlayerConfig struct {
	Alpha      float64
	DefaultFPS int
}

// PlayerService собирает весь конвейер: видео, калибровка, матрица, окно, цикл.
type PlayerService struct {
	cfg          PlayerConfig
	videos       port.VideoOpener
	calibrations port.CalibrationLoader
	lens         port.LensModel
	displays     port.DisplayFactory
	playback     *PlaybackService
	observer     port.PlaybackObserver
	notifier     port.PlaybackNotifier
	log          logrus.FieldLogger
	out          io.Writer
}

// PlayerDeps адаптеры, нужные сервису
type PlayerDeps struct {
	Videos       port.VideoOpener
	Calibrations port.CalibrationLoader
	Lens         port.LensModel
	Displays     port.DisplayFactory
	Playback     *PlaybackService
	Observer     port.PlaybackObserver
	Notifier     port.PlaybackNotifier // может быть nil
	Log          logrus.FieldLogger
	Out          io.Writer // сюда печатаются FPS и длительность кадра
}

// NewPlayerService создаёт сервис
func NewPlayerService(cfg PlayerConfig, deps PlayerDeps) *PlayerService {
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Playback == nil {
		deps.Playback = NewPlaybackService(PlaybackConfig{}, deps.Observer, deps.Log)
	}
	return &PlayerService{
		cfg:          cfg,
		videos:       deps.Videos,
		calibrations: deps.Calibrations,
		lens:         deps.Lens,
		displays:     deps.Displays,
		playback:     deps.Playback,
		observer:     deps.Observer,
		notifier:     deps.Notifier,
		log:          deps.Log,
		out:          deps.Out,
	}
}

// Run открывает видео и калибровку и воспроизводит видео с исправлением дисторсии.
// Все открытые ресурсы закрываются на любом пути выхода.
func (s *PlayerService) Run(ctx context.Context, videoPath, calibrationPath string) (*entity.PlaybackResult, error) {
	if videoPath == "" || calibrationPath == "" {
		return nil, entity.ErrUsage
	}

	runID := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{
		"run_id": runID,
		"video":  videoPath,
	})

	src, err := s.videos.Open(videoPath)
	if err != nil {
		return nil, &entity.SourceOpenError{Path: videoPath, Err: err}
	}
	defer closeLogged(log, "video source", src)

	cal, err := s.calibrations.Load(calibrationPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"calibration": calibrationPath,
		"width":       cal.ImageWidth,
		"height":      cal.ImageHeight,
		"distortion":  len(cal.Distortion),
	}).Info("Calibration loaded")

	adjusted, err := s.lens.OptimalCameraMatrix(cal, s.cfg.Alpha)
	if err != nil {
		return nil, fmt.Errorf("derive camera matrix: %w", err)
	}
	log.WithFields(logrus.Fields{
		"alpha":  s.cfg.Alpha,
		"matrix": adjusted.String(),
	}).Debug("Adjusted camera matrix")

	declared := src.FPS()
	fps, interval := entity.FrameInterval(declared, s.cfg.DefaultFPS)
	if int(declared) <= 0 {
		log.WithFields(logrus.Fields{
			"declared_fps": declared,
			"fallback_fps": fps,
		}).Warn("Source does not declare a frame rate, using fallback")
	}
	fmt.Fprintf(s.out, "FPS: %d\n", fps)
	fmt.Fprintf(s.out, "frame duration: %d ms\n", interval.Milliseconds())

	corrector, err := s.lens.NewCorrector(cal, adjusted)
	if err != nil {
		return nil, fmt.Errorf("prepare corrector: %w", err)
	}
	defer closeLogged(log, "corrector", corrector)

	display, err := s.displays.Open(videoPath)
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}
	defer closeLogged(log, "window", display)

	s.observer.PlaybackStarted(fps, interval)
	log.Info("Playback started")

	result, err := s.playback.Play(ctx, src, corrector, display, interval)
	if result != nil {
		result.RunID = runID
		result.VideoPath = videoPath
		result.FPS = fps
		s.observer.PlaybackFinished(result)
	}
	if err != nil {
		log.WithError(err).Error("Playback failed")
		return result, err
	}

	log.WithFields(logrus.Fields{
		"state":   result.State,
		"frames":  result.FramesShown,
		"elapsed": result.Elapsed,
	}).Info("Playback finished")

	s.notify(ctx, log, result)
	return result, nil
}

// notify отправляет отчёт, ошибка отправки не влияет на результат
func (s *PlayerService) notify(ctx context.Context, log logrus.FieldLogger, result *entity.PlaybackResult) {
	if s.notifier == nil {
		return
	}
	// отчёт отправляем даже после прерывания
	if err := s.notifier.NotifyPlayback(context.WithoutCancel(ctx), result); err != nil {
		log.WithError(err).Warn("Failed to send playback report")
	}
}

func closeLogged(log logrus.FieldLogger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.WithError(err).Warnf("Error closing %s", what)
	}
}

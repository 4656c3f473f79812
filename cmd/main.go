package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"undistort-player/config"
	telegram "undistort-player/internal/api"
	app "undistort-player/internal/application"
	"undistort-player/internal/container"
	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
	"undistort-player/internal/infrastructure/calibration"
	"undistort-player/internal/infrastructure/logging"
	"undistort-player/internal/infrastructure/metrics"
	"undistort-player/internal/infrastructure/vision"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 3 {
		fmt.Fprintf(stderr, "usage: %s <video-file> <calibration-file>\n", programName(args))
		fmt.Fprintln(stderr, "Please give the video filename and calibration settings filename as arguments")
		return exitFailure
	}
	videoPath, calibrationPath := args[1], args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}

	log, err := logging.NewWithOutput(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return exitFailure
	}

	pacing, err := app.ParsePacingMode(cfg.Pacing)
	if err != nil {
		log.WithError(err).Error("Invalid configuration")
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observer := metrics.NewObserver()
	if cfg.MetricsAddr != "" {
		metrics.StartServer(ctx, cfg.MetricsAddr, observer.Registry(), log)
	}

	var notifier port.PlaybackNotifier
	if cfg.TelegramToken != "" {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			// без отчётов видео всё равно воспроизводим
			log.WithError(err).Warn("Telegram notifier disabled")
		} else {
			notifier = n
		}
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Settings{
		Alpha:      cfg.Alpha,
		DefaultFPS: cfg.DefaultFPS,
		Pacing:     pacing,
		QuitKey:    cfg.QuitKeyByte(),
	}, container.Adapters{
		Videos:       vision.NewVideoOpener(),
		Calibrations: calibration.NewFileLoader(),
		Lens:         vision.NewLensModel(),
		Displays:     vision.NewWindowFactory(log),
		Observer:     observer,
		Notifier:     notifier,
	}, log, stdout)

	result, err := appContainer.PlayerService.Run(ctx, videoPath, calibrationPath)
	if err != nil {
		fmt.Fprintln(stderr, diagnostic(err))
		return exitFailure
	}
	return exitCode(result.State)
}

// exitCode код выхода по итоговому состоянию воспроизведения
func exitCode(state entity.PlaybackState) int {
	switch state {
	case entity.StateEndOfStream, entity.StateQuitRequested, entity.StateWindowClosed:
		return exitOK
	case entity.StateInterrupted:
		return exitInterrupted
	}
	return exitFailure
}

// diagnostic одна строка для stderr по типу ошибки
func diagnostic(err error) string {
	var (
		openErr  *entity.SourceOpenError
		parseErr *entity.CalibrationParseError
	)
	switch {
	case errors.Is(err, entity.ErrUsage):
		return "Please give the video filename and calibration settings filename as arguments"
	case errors.As(err, &openErr):
		return fmt.Sprintf("Error when reading video file: %v", err)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Error when reading calibration settings: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

func programName(args []string) string {
	if len(args) == 0 {
		return "undistort-player"
	}
	return filepath.Base(args[0])
}

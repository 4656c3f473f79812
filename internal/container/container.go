package container

import (
	"io"

	"github.com/sirupsen/logrus"

	app "undistort-player/internal/application"
	"undistort-player/internal/domain/port"
)

type Container struct {
	PlaybackService *app.PlaybackService
	PlayerService   *app.PlayerService
}

// Adapters внешние зависимости конвейера
type Adapters struct {
	Videos       port.VideoOpener
	Calibrations port.CalibrationLoader
	Lens         port.LensModel
	Displays     port.DisplayFactory
	Observer     port.PlaybackObserver
	Notifier     port.PlaybackNotifier
}

// Settings параметры сервисов из конфигурации
type Settings struct {
	Alpha      float64
	DefaultFPS int
	Pacing     app.PacingMode
	QuitKey    byte
}

func New(settings Settings, adapters Adapters, log logrus.FieldLogger, out io.Writer) *Container {
	playbackService := app.NewPlaybackService(app.PlaybackConfig{
		Pacing:  settings.Pacing,
		QuitKey: settings.QuitKey,
	}, adapters.Observer, log)

	playerService := app.NewPlayerService(app.PlayerConfig{
		Alpha:      settings.Alpha,
		DefaultFPS: settings.DefaultFPS,
	}, app.PlayerDeps{
		Videos:       adapters.Videos,
		Calibrations: adapters.Calibrations,
		Lens:         adapters.Lens,
		Displays:     adapters.Displays,
		Playback:     playbackService,
		Observer:     adapters.Observer,
		Notifier:     adapters.Notifier,
		Log:          log,
		Out:          out,
	})

	return &Container{
		PlaybackService: playbackService,
		PlayerService:   playerService,
	}
}

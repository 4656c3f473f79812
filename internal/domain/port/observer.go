package port

import (
	"context"
	"time"

	"undistort-player/internal/domain/entity"
)

// PlaybackObserver получает события воспроизведения (метрики)
type PlaybackObserver interface {
	PlaybackStarted(fps int, interval time.Duration)
	FrameCorrected(took time.Duration)
	FrameShown()
	PlaybackFinished(result *entity.PlaybackResult)
}

// PlaybackNotifier отправляет отчёт о воспроизведении
type PlaybackNotifier interface {
	NotifyPlayback(ctx context.Context, result *entity.PlaybackResult) error
}

package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

const (
	msgReportTitle = "🎬 Воспроизведение завершено"

	stateEndOfStream   = "✅ видео закончилось"
	stateQuitRequested = "⏹ остановлено клавишей"
	stateWindowClosed  = "🪟 окно закрыто"
	stateInterrupted   = "⚠️ прервано сигналом"
	stateFailed        = "❌ ошибка воспроизведения"
)

// Notifier отправляет отчёты о воспроизведении в Telegram-чат
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    logrus.FieldLogger
}

// NewNotifier авторизуется в Telegram и создаёт отправителя отчётов
func NewNotifier(token string, chatID int64, log logrus.FieldLogger) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, tgbotapi.APIEndpoint, chatID, &http.Client{Timeout: 10 * time.Second}, log)
}

// NewNotifierWithEndpoint то же, но с другим адресом API (для тестов и прокси)
func NewNotifierWithEndpoint(token, endpoint string, chatID int64, client *http.Client, log logrus.FieldLogger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}

	log.WithField("account", api.Self.UserName).Info("Telegram notifier authorized")

	return &Notifier{
		api:    api,
		chatID: chatID,
		log:    log,
	}, nil
}

// NotifyPlayback отправляет итог запуска
func (n *Notifier) NotifyPlayback(ctx context.Context, result *entity.PlaybackResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, FormatReport(result))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// FormatReport собирает текст отчёта
func FormatReport(result *entity.PlaybackResult) string {
	return fmt.Sprintf("%s\n\n📁 %s\n🔖 %s\n%s\n🖼 Кадров: %d\n⏱ Время: %s\n🎞 FPS: %d (кадр %d мс)",
		msgReportTitle,
		result.VideoPath,
		result.RunID,
		stateText(result.State),
		result.FramesShown,
		result.Elapsed.Round(time.Millisecond),
		result.FPS,
		result.FrameInterval.Milliseconds(),
	)
}

func stateText(s entity.PlaybackState) string {
	switch s {
	case entity.StateEndOfStream:
		return stateEndOfStream
	case entity.StateQuitRequested:
		return stateQuitRequested
	case entity.StateWindowClosed:
		return stateWindowClosed
	case entity.StateInterrupted:
		return stateInterrupted
	case entity.StateFailed:
		return stateFailed
	}
	return string(s)
}

// Проверка реализации интерфейса
var _ port.PlaybackNotifier = (*Notifier)(nil)

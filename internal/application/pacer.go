package app

import (
	"fmt"
	"time"
)

// PacingMode режим ожидания между кадрами
type PacingMode string

const (
	// PacingRealtime вычитает время обработки кадра из ожидания
	PacingRealtime PacingMode = "realtime"
	// PacingFixed ждёт полный интервал после каждого кадра, воспроизведение отстаёт под нагрузкой
	PacingFixed PacingMode = "fixed"
)

// MinKeyWait минимальное ожидание клавиши: окну нужен хотя бы один цикл событий
const MinKeyWait = time.Millisecond

// ParsePacingMode разбирает режим из конфигурации
func ParsePacingMode(s string) (PacingMode, error) {
	switch PacingMode(s) {
	case PacingRealtime, PacingFixed:
		return PacingMode(s), nil
	}
	return "", fmt.Errorf("unknown pacing mode %q", s)
}

// Pacer ведёт расписание кадров отдельно от опроса клавиатуры.
type Pacer struct {
	mode     PacingMode
	interval time.Duration
	now      func() time.Time
	next     time.Time
}

// NewPacer создаёт планировщик; now можно подменить в тестах
func NewPacer(mode PacingMode, interval time.Duration, now func() time.Time) *Pacer {
	if now == nil {
		now = time.Now
	}
	return &Pacer{mode: mode, interval: interval, now: now}
}

// Start отмечает начало воспроизведения
func (p *Pacer) Start() {
	p.next = p.now().Add(p.interval)
}

// Wait возвращает, сколько ждать клавишу после показа текущего кадра,
// и сдвигает расписание на следующий кадр.
func (p *Pacer) Wait() time.Duration {
	if p.mode == PacingFixed {
		return maxDuration(p.interval, MinKeyWait)
	}

	now := p.now()
	wait := p.next.Sub(now)
	switch {
	case wait < MinKeyWait:
		// Отстали: долг не копим, отсчитываем заново
		wait = MinKeyWait
		p.next = now.Add(wait + p.interval)
		return wait
	case wait > p.interval:
		// WaitKey вернулся раньше срока (нажата клавиша): больше интервала не ждём
		wait = maxDuration(p.interval, MinKeyWait)
		p.next = now.Add(wait + p.interval)
		return wait
	}
	p.next = p.next.Add(p.interval)
	return wait
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

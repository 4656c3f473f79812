package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

// Observer собирает метрики воспроизведения в собственный реестр
type Observer struct {
	registry *prometheus.Registry

	framesShown    prometheus.Counter
	correctionTime prometheus.Histogram
	runs           *prometheus.CounterVec
	frameInterval  prometheus.Gauge
	declaredFPS    prometheus.Gauge
}

// NewObserver регистрирует метрики
func NewObserver() *Observer {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Observer{
		registry: reg,
		framesShown: factory.NewCounter(prometheus.CounterOpts{
			Name: "undistort_frames_displayed_total",
			Help: "Total number of corrected frames shown in the window",
		}),
		correctionTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "undistort_frame_correction_seconds",
			Help:    "Time spent undistorting a single frame",
			Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.04, 0.08, 0.16},
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "undistort_playback_runs_total",
			Help: "Finished playback runs, by terminal state",
		}, []string{"state"}),
		frameInterval: factory.NewGauge(prometheus.GaugeOpts{
			Name: "undistort_frame_interval_milliseconds",
			Help: "Frame interval derived from the source frame rate",
		}),
		declaredFPS: factory.NewGauge(prometheus.GaugeOpts{
			Name: "undistort_source_fps",
			Help: "Frame rate used for playback",
		}),
	}
}

// Registry реестр для HTTP-обработчика
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

func (o *Observer) PlaybackStarted(fps int, interval time.Duration) {
	o.declaredFPS.Set(float64(fps))
	o.frameInterval.Set(float64(interval.Milliseconds()))
}

func (o *Observer) FrameCorrected(took time.Duration) {
	o.correctionTime.Observe(took.Seconds())
}

func (o *Observer) FrameShown() {
	o.framesShown.Inc()
}

func (o *Observer) PlaybackFinished(result *entity.PlaybackResult) {
	o.runs.WithLabelValues(string(result.State)).Inc()
}

var _ port.PlaybackObserver = (*Observer)(nil)

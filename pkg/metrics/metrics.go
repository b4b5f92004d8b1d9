package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the playback gateway.
type Metrics struct {
	registry             *prometheus.Registry
	commandsTotal        prometheus.Counter
	progressUpdatesTotal prometheus.Counter
	errorsTotal          prometheus.Counter
	wsConnections        prometheus.Gauge
	playingVideos        prometheus.Gauge
	playingTracks        prometheus.Gauge
}

// New creates and registers Prometheus metrics for the gateway.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	commandsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_commands_total",
		Help: "Total number of playback commands handled",
	})
	progressUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_progress_updates_total",
		Help: "Total number of progress tick writes",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_errors_total",
		Help: "Total number of rejected or failed commands",
	})
	wsConnections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playback_ws_connections",
		Help: "Number of open websocket client connections",
	})
	playingVideos := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playback_playing_videos",
		Help: "Number of video instances currently marked playing",
	})
	playingTracks := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playback_playing_tracks",
		Help: "Number of audio tracks currently marked playing",
	})

	registry.MustRegister(
		commandsTotal,
		progressUpdatesTotal,
		errorsTotal,
		wsConnections,
		playingVideos,
		playingTracks,
	)

	return &Metrics{
		registry:             registry,
		commandsTotal:        commandsTotal,
		progressUpdatesTotal: progressUpdatesTotal,
		errorsTotal:          errorsTotal,
		wsConnections:        wsConnections,
		playingVideos:        playingVideos,
		playingTracks:        playingTracks,
	}
}

func (m *Metrics) IncCommands() {
	m.commandsTotal.Inc()
}

func (m *Metrics) IncProgressUpdates() {
	m.progressUpdatesTotal.Inc()
}

func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

func (m *Metrics) IncWSConnections() {
	m.wsConnections.Inc()
}

func (m *Metrics) DecWSConnections() {
	m.wsConnections.Dec()
}

func (m *Metrics) SetPlayingVideos(n int) {
	m.playingVideos.Set(float64(n))
}

func (m *Metrics) SetPlayingTracks(n int) {
	m.playingTracks.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}

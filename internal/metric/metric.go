package metric

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "band_updater_updates_total",
			Help: "Total number of pullDataAndCache attempts per contract",
		},
		[]string{"contract", "result", "kind"},
	)

	updateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "band_updater_update_duration_seconds",
			Help:    "Time from signing to broadcast acknowledgment",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	cyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "band_updater_cycles_total",
			Help: "Total number of update cycles",
		},
		[]string{"result"},
	)

	cycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "band_updater_cycle_duration_seconds",
			Help:    "Duration of a full pass over all contracts",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	lastCycleTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "band_updater_last_cycle_timestamp_seconds",
			Help: "Unix time the last cycle finished",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "band_updater_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

type Server struct {
	conf   *Config
	server *http.Server
}

type Config struct {
	Port int `default:"4014"`
}

func New(conf *Config) *Server {
	if conf == nil {
		conf = &Config{}
		envconfig.MustProcess("metric", conf)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		conf: conf,
		server: &http.Server{
			Addr:              fmt.Sprintf("0.0.0.0:%d", conf.Port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// RecordUpdate records one pullDataAndCache attempt; kind is empty on success
func RecordUpdate(contract, kind string, duration time.Duration) {
	result := ResultSuccess
	if kind != "" {
		result = ResultFailure
	}
	updatesTotal.WithLabelValues(contract, result, kind).Inc()
	updateDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordCycle records a finished cycle. failed is true only for cycle-level errors.
func RecordCycle(failed bool, duration time.Duration) {
	result := ResultSuccess
	if failed {
		result = ResultFailure
	}
	cyclesTotal.WithLabelValues(result).Inc()
	cycleDuration.Observe(duration.Seconds())
	lastCycleTimestamp.SetToCurrentTime()
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}

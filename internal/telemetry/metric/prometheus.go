package metric

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
)

const namespace = "confloader"

var _ confloader.Recorder = (*Registry)(nil)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Load metrics
	FilesLoaded  *prometheus.CounterVec
	KeysLoaded   *prometheus.CounterVec
	LoadDuration *prometheus.HistogramVec

	// Error metrics
	ParseErrors *prometheus.CounterVec
}

var (
	global     *Registry
	globalOnce sync.Once
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// NewRegistry creates a registry with the load metrics plus the Go runtime
// and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		FilesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Configuration files added to a store, by resolving driver",
		}, []string{"driver"}),

		KeysLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_loaded_total",
			Help:      "Leaf keys read from configuration files, by resolving driver",
		}, []string{"driver"}),

		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent resolving and merging one configuration file",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"driver"}),

		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Configuration files rejected as malformed, by format",
		}, []string{"format"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.FilesLoaded,
		r.KeysLoaded,
		r.LoadDuration,
		r.ParseErrors,
	)

	return r
}

// FileLoaded implements confloader.Recorder.
func (r *Registry) FileLoaded(driver string, keys int, d time.Duration) {
	r.FilesLoaded.WithLabelValues(driver).Inc()
	r.KeysLoaded.WithLabelValues(driver).Add(float64(keys))
	r.LoadDuration.WithLabelValues(driver).Observe(d.Seconds())
}

// ParseFailed implements confloader.Recorder.
func (r *Registry) ParseFailed(format string) {
	r.ParseErrors.WithLabelValues(format).Inc()
}

// Watch registers a Collector reporting the size of src on every scrape.
// A registry watches at most one source.
func (r *Registry) Watch(src StatsSource) error {
	return r.registry.Register(NewCollector(src))
}

// Gatherer returns the underlying Prometheus gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteText writes the families whose name starts with the package
// namespace in the Prometheus text format. Runtime and process metrics are
// only served by Handler.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the /metrics handler of the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

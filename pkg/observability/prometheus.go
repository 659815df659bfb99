package observability

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports Metrics to a Prometheus registry. Collectors are
// created on first use; the label names of a metric are fixed by the tags
// passed the first time it is recorded.
type PrometheusMetrics struct {
	registerer prometheus.Registerer
	logger     *slog.Logger

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusMetrics creates a Metrics that registers its collectors with
// registerer, or with the default registry when registerer is nil.
func NewPrometheusMetrics(registerer prometheus.Registerer, logger *slog.Logger) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PrometheusMetrics{
		registerer: registerer,
		logger:     logger,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func (m *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	keys, values := splitTags(tags)
	name = PrometheusName(name) + "_total"

	m.mu.Lock()
	vec, ok := m.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: helpFor(name)}, keys)
		if !m.register(vec, name) {
			m.mu.Unlock()
			return
		}
		m.counters[name] = vec
	}
	m.mu.Unlock()

	counter, err := vec.GetMetricWithLabelValues(values...)
	if err != nil {
		m.logger.Warn("dropping counter sample", "metric", name, "error", err)
		return
	}
	counter.Add(float64(value))
}

func (m *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	keys, values := splitTags(tags)
	name = PrometheusName(name)

	m.mu.Lock()
	vec, ok := m.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: helpFor(name)}, keys)
		if !m.register(vec, name) {
			m.mu.Unlock()
			return
		}
		m.gauges[name] = vec
	}
	m.mu.Unlock()

	gauge, err := vec.GetMetricWithLabelValues(values...)
	if err != nil {
		m.logger.Warn("dropping gauge sample", "metric", name, "error", err)
		return
	}
	gauge.Set(value)
}

func (m *PrometheusMetrics) Histogram(name string, value float64, tags ...Tag) {
	m.observe(PrometheusName(name), value, tags)
}

// Timing records the duration in seconds, following Prometheus conventions.
func (m *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.observe(PrometheusName(name)+"_seconds", duration.Seconds(), tags)
}

func (m *PrometheusMetrics) observe(name string, value float64, tags []Tag) {
	keys, values := splitTags(tags)

	m.mu.Lock()
	vec, ok := m.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    helpFor(name),
			Buckets: prometheus.DefBuckets,
		}, keys)
		if !m.register(vec, name) {
			m.mu.Unlock()
			return
		}
		m.histograms[name] = vec
	}
	m.mu.Unlock()

	observer, err := vec.GetMetricWithLabelValues(values...)
	if err != nil {
		m.logger.Warn("dropping histogram sample", "metric", name, "error", err)
		return
	}
	observer.Observe(value)
}

func (m *PrometheusMetrics) register(c prometheus.Collector, name string) bool {
	if err := m.registerer.Register(c); err != nil {
		m.logger.Warn("failed to register metric", "metric", name, "error", err)
		return false
	}
	return true
}

// PrometheusName converts a dotted metric name into a Prometheus name.
func PrometheusName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

func helpFor(name string) string {
	return "gym metric " + name
}

// splitTags returns label names and values ordered by name, so the same
// tags in any order address the same series.
func splitTags(tags []Tag) ([]string, []string) {
	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	keys := make([]string, len(sorted))
	values := make([]string, len(sorted))
	for i, t := range sorted {
		keys[i] = PrometheusName(t.Key)
		values[i] = t.Value
	}
	return keys, values
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Source metrics
	SourceLines = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "logweave_source_lines",
			Help: "Number of parsed lines held for a source in the last merge",
		},
		[]string{"source"},
	)
	LinesScannedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logweave_lines_scanned_total",
			Help: "Total lines a cursor advanced past, matched or not",
		},
		[]string{"source"},
	)
	LinesDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logweave_lines_delivered_total",
			Help: "Total lines delivered into sessions",
		},
		[]string{"source"},
	)
	SourcesEmptyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logweave_sources_empty_total",
			Help: "Total referenced sources that resolved to zero lines",
		},
	)

	// Session metrics
	SessionsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logweave_sessions_opened_total",
			Help: "Total sessions opened by new_session rules",
		},
	)

	// Run metrics
	MergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "logweave_merge_duration_seconds",
			Help:    "Wall time of a merge run",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)
)

// Recorder feeds merge statistics into the package collectors.
// It satisfies correlate.Recorder.
// Recorder 将合并统计写入本包的采集器。
type Recorder struct{}

// NewRecorder creates a Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveSource records one cursor's totals.
func (r *Recorder) ObserveSource(source string, lines, scanned, delivered int) {
	SourceLines.WithLabelValues(source).Set(float64(lines))
	LinesScannedTotal.WithLabelValues(source).Add(float64(scanned))
	LinesDeliveredTotal.WithLabelValues(source).Add(float64(delivered))
}

// ObserveEmptySource counts a referenced source with no lines.
func (r *Recorder) ObserveEmptySource(string) {
	SourcesEmptyTotal.Inc()
}

// ObserveSessions counts sessions opened by rules.
func (r *Recorder) ObserveSessions(opened int) {
	SessionsOpenedTotal.Add(float64(opened))
}

// ObserveDuration records the merge wall time.
func (r *Recorder) ObserveDuration(d time.Duration) {
	MergeDuration.Observe(d.Seconds())
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for the node_exporter textfile collector.
// WriteTextfile 以 Prometheus 文本格式将所有已注册指标写入 path。
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

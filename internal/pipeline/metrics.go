package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fluxbit/logfold/internal/model"
)

// Metrics instruments the pipeline. The core stays uninstrumented; per
// its contract it is a pure function, so everything observable happens at
// this layer.
type Metrics struct {
	linesTotal      prometheus.Counter
	batchesTotal    prometheus.Counter
	rejectionsTotal *prometheus.CounterVec
	batchSeconds    prometheus.Histogram
}

// NewMetrics registers the pipeline metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		linesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "logfold_lines_total",
			Help: "Raw lines handed to the processing core.",
		}),
		batchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "logfold_batches_total",
			Help: "Batches processed.",
		}),
		rejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logfold_rejections_total",
			Help: "Validation rejections by reason.",
		}, []string{"reason"}),
		batchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "logfold_batch_duration_seconds",
			Help:    "Wall time per batch.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeBatch(lines int, rejections []model.Rejection, elapsed time.Duration) {
	m.linesTotal.Add(float64(lines))
	m.batchesTotal.Inc()
	for _, rej := range rejections {
		m.rejectionsTotal.WithLabelValues(rej.Reason.String()).Inc()
	}
	m.batchSeconds.Observe(elapsed.Seconds())
}

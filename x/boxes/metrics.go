package boxes

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type engineMetrics struct {
	created  prometheus.Counter
	opened   prometheus.Counter
	rejected *prometheus.CounterVec
	excess   prometheus.Counter
}

var (
	metricsOnce     sync.Once
	metricsRegistry *engineMetrics
)

func defaultMetrics() *engineMetrics {
	metricsOnce.Do(func() {
		metricsRegistry = &engineMetrics{
			created: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "junobox",
				Subsystem: "boxes",
				Name:      "created_total",
				Help:      "Total boxes created.",
			}),
			opened: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "junobox",
				Subsystem: "boxes",
				Name:      "opened_total",
				Help:      "Total successful box opens, including repeated opens of the same box.",
			}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "junobox",
				Subsystem: "boxes",
				Name:      "open_rejected_total",
				Help:      "Total rejected box opens by reason.",
			}, []string{"reason"}),
			excess: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "junobox",
				Subsystem: "boxes",
				Name:      "excess_payment_total",
				Help:      "Total create requests that attached more than the boxes hold.",
			}),
		}
		prometheus.MustRegister(
			metricsRegistry.created,
			metricsRegistry.opened,
			metricsRegistry.rejected,
			metricsRegistry.excess,
		)
	})
	return metricsRegistry
}

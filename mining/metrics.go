package mining

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusMiningHashes       prometheus.Counter
	prometheusMiningBlocksFound  prometheus.Counter
	prometheusMiningSearchFailed *prometheus.CounterVec
	prometheusMiningDuration     prometheus.Histogram
	prometheusBlockAssembled     prometheus.Counter
	prometheusBlockTransactions  prometheus.Gauge
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusMiningHashes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockminer",
			Subsystem: "mining",
			Name:      "hashes",
			Help:      "Number of header hashes computed",
		},
	)

	prometheusMiningBlocksFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockminer",
			Subsystem: "mining",
			Name:      "blocks_found",
			Help:      "Number of nonces found that satisfy the pow check",
		},
	)

	prometheusMiningSearchFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blockminer",
			Subsystem: "mining",
			Name:      "search_failed",
			Help:      "Number of nonce searches stopped without a result",
		},
		[]string{"reason"},
	)

	prometheusMiningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blockminer",
			Subsystem: "mining",
			Name:      "duration_seconds",
			Help:      "Duration of a nonce search",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	prometheusBlockAssembled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockminer",
			Subsystem: "assembly",
			Name:      "blocks",
			Help:      "Number of candidate blocks assembled",
		},
	)

	prometheusBlockTransactions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blockminer",
			Subsystem: "assembly",
			Name:      "transactions",
			Help:      "Number of transactions in the last candidate block, coinbase included",
		},
	)
}

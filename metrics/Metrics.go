package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TotalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upwardright_http_requests_total",
		Help: "Number of http requests.",
	},
	[]string{"path", "code", "method"},
)

var HttpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "upwardright_http_request_duration_seconds_historgram",
		Buckets: []float64{
			0.1, // 100 ms
			0.2,
			0.25,
			0.5,
			1,
			1.5,
			3,
			5,
			10,
		},
	},
	[]string{"path", "code", "method"},
)

var AccountLinkTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upwardright_account_link_total",
		Help: "Account link attempts by result.",
	},
	[]string{"result"},
)

var AggregatorCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "upwardright_aggregator_call_duration_seconds",
		Buckets: []float64{
			0.1,
			0.25,
			0.5,
			1,
			2,
			5,
			10,
		},
	},
	[]string{},
)

func RegisterAllPrometheusApplicationMetrics() {
	prometheus.Register(TotalRequests)
	prometheus.Register(HttpDuration)
	prometheus.Register(AccountLinkTotal)
	prometheus.Register(AggregatorCallDuration)
}

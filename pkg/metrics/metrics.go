package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betstack_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "betstack_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DepositsInitiatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betstack_deposits_initiated_total",
			Help: "Total number of deposit requests created",
		},
		[]string{"provider"},
	)

	WithdrawalsInitiatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betstack_withdrawals_initiated_total",
			Help: "Total number of withdrawal requests created",
		},
		[]string{"provider"},
	)

	CallbacksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betstack_callbacks_processed_total",
			Help: "Total number of provider callbacks processed",
		},
		[]string{"type", "outcome"},
	)

	CallbackReplaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betstack_callback_replays_total",
			Help: "Total number of duplicate provider callbacks ignored",
		},
	)

	BonusClaimsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betstack_bonus_claims_total",
			Help: "Total number of bonus claims",
		},
	)

	BonusConversionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betstack_bonus_conversions_total",
			Help: "Total number of completed bonuses converted to cash",
		},
	)

	StakesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betstack_stakes_total",
			Help: "Total number of stakes debited",
		},
		[]string{"source"},
	)

	WinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betstack_wins_total",
			Help: "Total number of win credits",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordDeposit(provider string) {
	DepositsInitiatedTotal.WithLabelValues(provider).Inc()
}

func RecordWithdrawal(provider string) {
	WithdrawalsInitiatedTotal.WithLabelValues(provider).Inc()
}

func RecordCallback(callbackType, outcome string) {
	CallbacksProcessedTotal.WithLabelValues(callbackType, outcome).Inc()
}

func RecordCallbackReplay() {
	CallbackReplaysTotal.Inc()
}

func RecordBonusClaim() {
	BonusClaimsTotal.Inc()
}

func RecordBonusConversion() {
	BonusConversionsTotal.Inc()
}

func RecordStake(source string) {
	StakesTotal.WithLabelValues(source).Inc()
}

func RecordWin() {
	WinsTotal.Inc()
}

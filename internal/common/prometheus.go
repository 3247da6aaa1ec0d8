package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal             = "http_requests_total"
	BlockchainTransactionFailure = "blockchain_transaction_failure"
	HTTPRequestDurationSeconds   = "http_request_duration_seconds"
	ContractReadsTotal           = "contract_reads_total"
	ClaimsTotal                  = "claims_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"route", "method", "status", "error_code"}),
		BlockchainTransactionFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BlockchainTransactionFailure,
			Help: "Count of all blockchain transaction failure",
		}, []string{"reason"}),
		ContractReadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ContractReadsTotal,
			Help: "Count of all vault contract reads",
		}, []string{"result"}),
		ClaimsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ClaimsTotal,
			Help: "Count of all claim attempts",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help:    "Duration of all HTTP requests",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 30, 120},
		}, []string{"route", "method", "status"}),
	}
)

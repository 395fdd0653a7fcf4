package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters holds the prometheus counters named in spec.md §7. Grounded on
// prysm's promauto idiom (other_examples/...powchain-service.go).
var Counters = struct {
	Eth1APIErrors *prometheus.CounterVec
	Eth1APIResets prometheus.Counter
}{
	Eth1APIErrors: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eth1_api_errors_count",
		Help: "Number of errors returned by an eth1 (execution) RPC endpoint, by method.",
	}, []string{"method"}),
	Eth1APIResets: promauto.NewCounter(prometheus.CounterOpts{
		Name: "eth1_api_reset_count",
		Help: "Number of times the eth1 endpoint pool was exhausted and reset.",
	}),
}

// ConnectivityEvent mirrors the Rust original's Eth1ApiToMetrics side
// channel (SPEC_FULL.md "Connectivity telemetry channel"): an optional
// event-level observation independent of the counters above, emitted once
// per request_with_fallback attempt.
type ConnectivityEvent struct {
	Connected bool
	Fallback  bool
}

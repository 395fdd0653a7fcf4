// Package client implements the Execution API Client (spec.md §4.2-§4.4):
// the fallback-capable JSON-RPC client that speaks the Engine API and
// supplies deposit-contract history from the execution chain.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sentineld/beacon-execd/config/params"
	"github.com/sentineld/beacon-execd/execution/auth"
	"github.com/sentineld/beacon-execd/execution/endpoints"
	"github.com/sentineld/beacon-execd/execution/jsonrpc"
	"github.com/sentineld/beacon-execd/execution/metrics"
	"github.com/sentineld/beacon-execd/network/authorization"
)

var log = logrus.WithField("prefix", "execution")

const (
	engineForkchoiceUpdatedTimeout = 8 * time.Second
	engineNewPayloadTimeout        = 8 * time.Second
	engineGetPayloadTimeout        = 1 * time.Second
)

// Client is the Execution API Client. Construct with New; it is safe for
// concurrent use from multiple goroutines (spec.md §5).
type Client struct {
	config *params.Config
	pool   *endpoints.Pool
	auth   auth.HeaderSource
	rpc    *jsonrpc.Client
	timing *metrics.Registry

	// connectivity, if non-nil, receives one ConnectivityEvent per
	// request_with_fallback attempt (SPEC_FULL.md "Connectivity telemetry
	// channel"). Sends are non-blocking: a full channel drops the event
	// rather than stalling the request.
	connectivity chan<- metrics.ConnectivityEvent
}

// Option configures an optional Client field.
type Option func(*Client)

// WithConnectivityChannel attaches an optional side channel for
// event-level connectivity telemetry, independent of the prometheus
// counters.
func WithConnectivityChannel(ch chan<- metrics.ConnectivityEvent) Option {
	return func(c *Client) { c.connectivity = ch }
}

// New builds a Client over the given endpoint specifications
// (most-preferred first). Each entry may carry a per-endpoint static
// authorization suffix understood by network/authorization.HTTPEndpoint
// ("url,Basic user:pass" / "url,Bearer token"); an endpoint without one
// falls back to headerSource for every request. An empty urls slice is
// accepted; the error is deferred to the first call (spec.md §4.2
// "Edge-case policies").
func New(config *params.Config, urls []string, headerSource auth.HeaderSource, opts ...Option) *Client {
	c := &Client{
		config: config,
		pool:   endpoints.New(urls),
		auth:   headerSource,
		rpc:    jsonrpc.NewClient(),
		timing: metrics.NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timing exposes the per-method Timing Metrics registry, e.g. for an admin
// endpoint or periodic logging.
func (c *Client) Timing() *metrics.Registry {
	return c.timing
}

func (c *Client) emitConnectivity(ev metrics.ConnectivityEvent) {
	if c.connectivity == nil {
		return
	}
	select {
	case c.connectivity <- ev:
	default:
	}
}

// headersFor resolves the headers for one request against ep: a static
// per-endpoint auth suffix (spec.md §4.1, "HTTPEndpoint") takes precedence
// over the Client's shared HeaderSource.
func (c *Client) headersFor(ep authorization.Endpoint) (http.Header, error) {
	if h, ok := auth.StaticHeaders(ep.Auth); ok {
		return h, nil
	}
	return c.auth.Headers()
}

// requestWithFallback is the generic "try one RPC call, failing over
// across endpoints" primitive described in spec.md §4.2. call is invoked
// with the current endpoint's URL and a freshly fetched header set; it
// should perform exactly one RPC attempt and return its typed result.
func requestWithFallback[T any](ctx context.Context, c *Client, method string, call func(ctx context.Context, url string, headers http.Header) (T, error)) (T, error) {
	var zero T

	start := time.Now()
	defer func() { c.timing.Record(method, time.Since(start)) }()

	for {
		ep, ok := c.pool.Current()
		if !ok {
			break
		}
		url := ep.Url

		headers, err := c.headersFor(ep)
		if err != nil {
			return zero, errors.Wrap(err, "build authorization headers")
		}

		result, err := call(ctx, url, headers)
		if err == nil {
			fallback := false
			if original := c.pool.Original(); len(original) > 0 {
				fallback = original[0].Url != url
			}
			c.emitConnectivity(metrics.ConnectivityEvent{Connected: true, Fallback: fallback})
			return result, nil
		}

		metrics.Counters.Eth1APIErrors.WithLabelValues(method).Inc()

		if next, ok := c.pool.PeekNext(); ok {
			log.Warnf("endpoint %s returned %v; switching to %s", url, err, next.Url)
		} else {
			log.Warnf("last available endpoint %s returned %v", url, err)
		}

		c.emitConnectivity(metrics.ConnectivityEvent{Connected: false, Fallback: false})
		c.pool.Advance()
	}

	c.pool.Reset()
	metrics.Counters.Eth1APIResets.Inc()

	if len(c.pool.Original()) == 0 {
		return zero, ErrNoEndpointsProvided
	}
	return zero, ErrEndpointsExhausted
}

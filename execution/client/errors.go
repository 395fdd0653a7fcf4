package client

import "github.com/pkg/errors"

// Error kinds at the core boundary (spec.md §7). Configuration errors are
// surfaced to the caller unchanged; network/deserialization errors are
// recovered locally via endpoint failover and never reach the caller as
// these sentinels.
var (
	// ErrEndpointsExhausted means every endpoint in the pool failed
	// consecutively during a single logical request.
	ErrEndpointsExhausted = errors.New("execution client: all endpoints exhausted")

	// ErrNoEndpointsProvided means the pool was empty at call time.
	ErrNoEndpointsProvided = errors.New("execution client: no endpoints provided")

	// ErrInvalidParameters means the payload phase and companion params
	// passed to NewPayload didn't match any row of the dispatch table.
	ErrInvalidParameters = errors.New("execution client: invalid parameters for new_payload")

	// ErrPhasePreBellatrix means ForkchoiceUpdated was called for a phase
	// that predates Bellatrix.
	ErrPhasePreBellatrix = errors.New("execution client: forkchoice_updated called for a pre-Bellatrix phase")
)

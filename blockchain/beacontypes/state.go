// Package beacontypes holds the minimal consensus-object shapes the Block
// Processor operates on. The beacon-state transition rules themselves are
// out of scope (spec.md §1); these types exist only so the external
// collaborator interfaces in blockchain/statecache, blockchain/forkchoice,
// and blockchain/transition have something concrete to pass around.
package beacontypes

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/sentineld/beacon-execd/config/phase"
)

// BeaconState is the cached, versioned consensus state the Block Processor
// reads and produces new copies of. LatestExecutionPayloadBlockHash is the
// zero hash until the first execution payload has been included; it is the
// state the merge-transition predicate inspects.
type BeaconState struct {
	SlotNumber                      uint64
	PhaseTag                        phase.Phase
	LatestExecutionPayloadBlockHash common.Hash
}

// Slot returns the state's slot.
func (s *BeaconState) Slot() uint64 { return s.SlotNumber }

// Phase returns the state's active protocol phase.
func (s *BeaconState) Phase() phase.Phase { return s.PhaseTag }

// Clone returns an independent copy, the Go analogue of the Rust source's
// Arc<BeaconState>::make_mut() copy-on-write.
func (s *BeaconState) Clone() *BeaconState {
	cp := *s
	return &cp
}

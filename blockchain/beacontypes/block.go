package beacontypes

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/sentineld/beacon-execd/config/phase"
)

// BeaconBlockBody carries the fields the Block Processor needs to inspect
// without depending on the full beacon-block schema (out of scope,
// spec.md §1).
type BeaconBlockBody struct {
	ExecutionPayloadBlockHash common.Hash
}

// BeaconBlock is the unsigned consensus block the cache-keyed transition
// operations consume.
type BeaconBlock struct {
	SlotNumber uint64
	PhaseTag   phase.Phase
	Root       [32]byte
	ParentRoot [32]byte
	Body       BeaconBlockBody
}

func (b *BeaconBlock) Slot() uint64          { return b.SlotNumber }
func (b *BeaconBlock) Phase() phase.Phase    { return b.PhaseTag }
func (b *BeaconBlock) HashTreeRoot() [32]byte { return b.Root }

// BlindedBeaconBlock is the blinded-body counterpart of BeaconBlock (the
// execution payload is replaced by its header in the real protocol; that
// distinction is immaterial here since payload bodies are out of scope).
type BlindedBeaconBlock struct {
	SlotNumber uint64
	PhaseTag   phase.Phase
	Root       [32]byte
	ParentRoot [32]byte
	Body       BeaconBlockBody
}

func (b *BlindedBeaconBlock) Slot() uint64          { return b.SlotNumber }
func (b *BlindedBeaconBlock) Phase() phase.Phase    { return b.PhaseTag }
func (b *BlindedBeaconBlock) HashTreeRoot() [32]byte { return b.Root }

// SignedBeaconBlock pairs a BeaconBlock with its signature, the unit
// PerformStateTransition/ValidateBlock operate on.
type SignedBeaconBlock struct {
	Message   *BeaconBlock
	Signature []byte
}

func (b *SignedBeaconBlock) Slot() uint64           { return b.Message.Slot() }
func (b *SignedBeaconBlock) Phase() phase.Phase     { return b.Message.Phase() }
func (b *SignedBeaconBlock) HashTreeRoot() [32]byte { return b.Message.HashTreeRoot() }

// IsMergeTransitionBlock reports whether block is the first block to
// include an execution payload on top of state: the state carries no prior
// payload hash, but this block's body does. This mirrors consensus-specs'
// is_merge_transition_block predicate (imported from helper_functions in
// the original source), scoped down to what the Block Processor's
// merge-transition gate needs.
func IsMergeTransitionBlock(state *BeaconState, body BeaconBlockBody) bool {
	return body.ExecutionPayloadBlockHash != (common.Hash{}) && state.LatestExecutionPayloadBlockHash == (common.Hash{})
}

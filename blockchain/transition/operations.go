// Package transition defines the external beacon-state transition
// operations the Block Processor treats as opaque collaborators (spec.md
// §1, "the beacon-state transition functions themselves, consumed as
// opaque operations"). Their actual rule implementation is out of scope;
// this package only types the boundary and provides a deterministic fake
// for tests.
package transition

import (
	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
	"github.com/sentineld/beacon-execd/blockchain/forkchoice"
	"github.com/sentineld/beacon-execd/config/params"
)

// ProcessSlotsPolicy mirrors the Rust source's ProcessSlots enum: whether
// CustomStateTransition should advance slots only when the state lags the
// block, or unconditionally.
type ProcessSlotsPolicy int

const (
	// IfNeeded advances slots only if state.Slot() < block.Slot().
	IfNeeded ProcessSlotsPolicy = iota
	// Always advances slots unconditionally before applying the block.
	Always
)

// StateRootPolicy mirrors the Rust source's StateRootPolicy enum:
// whether the block's claimed state root is trusted or must be verified
// against the locally computed one.
type StateRootPolicy int

const (
	// Verify recomputes the post-state root and compares it to the
	// block's claim.
	Verify StateRootPolicy = iota
	// Trust skips recomputation (trusted/blinded-block paths).
	Trust
)

// Operations is the external transition collaborator the Block Processor
// calls through. The block-applying methods, CustomStateTransition and
// ProcessSlots mutate state in place and report into report where
// applicable; ProcessBlockForGossip and ValidateMergeBlock only check; config carries the chain parameters the rules
// need (fork epochs, phase schedule).
type Operations interface {
	ProcessUntrustedBlock(config *params.Config, state *beacontypes.BeaconState, block *beacontypes.BeaconBlock, report *beacontypes.RealSlotReport, skipRandaoVerification bool) error
	ProcessTrustedBlock(config *params.Config, state *beacontypes.BeaconState, block *beacontypes.BeaconBlock, report *beacontypes.RealSlotReport) error
	ProcessUntrustedBlindedBlock(config *params.Config, state *beacontypes.BeaconState, block *beacontypes.BlindedBeaconBlock, report *beacontypes.RealSlotReport, skipRandaoVerification bool) error
	ProcessTrustedBlindedBlock(config *params.Config, state *beacontypes.BeaconState, block *beacontypes.BlindedBeaconBlock, report *beacontypes.RealSlotReport) error
	CustomStateTransition(
		config *params.Config,
		state *beacontypes.BeaconState,
		signedBlock *beacontypes.SignedBeaconBlock,
		processSlots ProcessSlotsPolicy,
		stateRootPolicy StateRootPolicy,
		engine beacontypes.ExecutionEngine,
		verifier beacontypes.Verifier,
		report beacontypes.SlotReport,
	) error
	ProcessSlots(config *params.Config, state *beacontypes.BeaconState, targetSlot uint64) error
	ProcessBlockForGossip(config *params.Config, state *beacontypes.BeaconState, block *beacontypes.SignedBeaconBlock) error
	ValidateMergeBlock(config *params.Config, block *beacontypes.SignedBeaconBlock, body beacontypes.BeaconBlockBody, engine beacontypes.ExecutionEngine) (forkchoice.PartialBlockAction, error)
}

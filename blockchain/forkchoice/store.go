// Package forkchoice defines the minimal fork-choice Store contract the
// Block Processor drives: gossip-validation and full-validation hooks that
// accept a closure to run against an acceptable parent. The Store and its
// block-acceptance rules are out of scope (spec.md §1, "the fork-choice
// Store and its block-acceptance rules"); this package only stubs the
// surface validate_block_for_gossip/validate_block need.
package forkchoice

import (
	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
)

// BlockActionKind is the outcome of a full block validation.
type BlockActionKind int

const (
	// Accept means the block was applied and should be adopted by fork
	// choice.
	Accept BlockActionKind = iota
	// Ignore means the block was not applied; Publish records whether it
	// should still be gossiped onward.
	Ignore
)

// BlockAction is the result of Store.ValidateBlockWithCustomStateTransition.
type BlockAction struct {
	Kind    BlockActionKind
	Publish bool
}

// PartialBlockActionKind is the outcome of the merge-transition check.
type PartialBlockActionKind int

const (
	// PartialAccept means the merge-transition block passed validation;
	// the ordinary state transition should proceed.
	PartialAccept PartialBlockActionKind = iota
	// PartialIgnore means the merge-transition block was rejected and the
	// state transition must not run (spec.md §4.7 "this must be performed
	// before the transition because the post-state would no longer show
	// the transition").
	PartialIgnore
)

// PartialBlockAction is the result of validate_merge_block.
type PartialBlockAction struct {
	Kind PartialBlockActionKind
}

// Parent is the accepted parent block handed to a Store validation
// closure. StateAt resolves the parent's own state lazily, mirroring the
// Rust source's `parent.state(store)`.
type Parent struct {
	BlockRoot [32]byte
	StateAt   func() *beacontypes.BeaconState
}

// State returns the parent's materialized state.
func (p Parent) State() *beacontypes.BeaconState {
	return p.StateAt()
}

// Store is the external fork-choice collaborator. ValidateBlockForGossip
// invokes accept once per acceptable parent and returns whatever action
// the closure (or the Store's own rejection rules) produces; the closure
// for gossip validation always returns a nil BlockAction on success (no
// state is persisted for gossip). ValidateBlockWithCustomStateTransition
// invokes accept with the block's own root plus its parent, for full
// validation.
type Store interface {
	ValidateBlockForGossip(
		block *beacontypes.SignedBeaconBlock,
		accept func(parent Parent) (*BlockAction, error),
	) (*BlockAction, error)

	ValidateBlockWithCustomStateTransition(
		block *beacontypes.SignedBeaconBlock,
		accept func(blockRoot [32]byte, parent Parent) (*beacontypes.BeaconState, *BlockAction, error),
	) (*BlockAction, error)
}

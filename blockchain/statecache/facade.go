// Package statecache defines the State Cache Facade contract the Block
// Processor delegates to for every cache-keyed transition operation
// (spec.md §1, "the StateCache, consumed via get_or_insert_with and
// before_or_at_slot"). Ownership and synchronization of the cache are the
// facade's own responsibility; the Block Processor calls it without
// holding any other lock (spec.md §5).
package statecache

import (
	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
)

// Compute produces the post-operation state and, when requested, a
// rewards report, for a cache miss.
type Compute func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error)

// Facade is the external State Cache collaborator.
//
// GetOrInsertWith returns the cached (state, rewards) for (key, slot,
// fullTransition) if present, otherwise calls compute, stores its result,
// and returns it. fullTransition distinguishes "post-block-processing
// state" from "post-transition state" for the same (key, slot): these are
// never the same entry even though both hold a *BeaconState (spec.md §9
// "Cache key flag").
//
// BeforeOrAtSlot returns the most recent cached state for blockRoot whose
// slot is <= slot, or nil if none is cached, in which case the caller
// falls back to materializing the parent's own state.
type Facade interface {
	GetOrInsertWith(key [32]byte, slot uint64, fullTransition bool, compute Compute) (*beacontypes.BeaconState, *beacontypes.BlockRewards, error)
	BeforeOrAtSlot(blockRoot [32]byte, slot uint64) *beacontypes.BeaconState
}

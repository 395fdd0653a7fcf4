package statecache

import (
	"sync"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
)

type cacheKey struct {
	root           [32]byte
	slot           uint64
	fullTransition bool
}

type cacheEntry struct {
	state   *beacontypes.BeaconState
	rewards *beacontypes.BlockRewards
}

// InMemory is a concrete Facade backed by a guarded map, adapted from
// prysm's trailing-slot-state-cache idiom down to exactly the two
// operations this module needs. It is independently testable and
// swappable: production callers may supply any other Facade.
type InMemory struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

// NewInMemory returns an empty InMemory facade.
func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[cacheKey]cacheEntry)}
}

// GetOrInsertWith implements Facade. compute runs outside the lock so a
// slow state transition never blocks unrelated cache lookups; a second
// check after compute resolves the (benign, since transitions are
// deterministic/pure) race where two callers compute the same miss
// concurrently by keeping whichever result was stored first.
func (c *InMemory) GetOrInsertWith(key [32]byte, slot uint64, fullTransition bool, compute Compute) (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
	k := cacheKey{root: key, slot: slot, fullTransition: fullTransition}

	c.mu.Lock()
	if e, ok := c.entries[k]; ok {
		c.mu.Unlock()
		return e.state, e.rewards, nil
	}
	c.mu.Unlock()

	state, rewards, err := compute()
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[k]; ok {
		return e.state, e.rewards, nil
	}
	c.entries[k] = cacheEntry{state: state, rewards: rewards}
	return state, rewards, nil
}

// BeforeOrAtSlot implements Facade by scanning for the highest-slot entry
// at or before slot for blockRoot, across both full-transition and
// block-processing entries.
func (c *InMemory) BeforeOrAtSlot(blockRoot [32]byte, slot uint64) *beacontypes.BeaconState {
	c.mu.Lock()
	defer c.mu.Unlock()

	var best *beacontypes.BeaconState
	var bestSlot uint64
	found := false

	for k, e := range c.entries {
		if k.root != blockRoot || k.slot > slot {
			continue
		}
		if !found || k.slot > bestSlot {
			best = e.state
			bestSlot = k.slot
			found = true
		}
	}
	return best
}

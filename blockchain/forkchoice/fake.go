package forkchoice

import (
	"github.com/pkg/errors"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
)

// ErrUnknownParent is returned when a FakeStore is asked to validate a
// block whose parent root was never registered.
var ErrUnknownParent = errors.New("forkchoice: unknown parent block root")

// FakeStore is a deterministic, in-memory Store used by blockprocessor's
// tests: it accepts every block whose parent root was pre-registered via
// AddParent, and rejects everything else. It performs no fork-choice
// weighing of its own (that rule set is out of scope, spec.md §1) — it
// only exercises the "call accept with a known parent" contract shape.
type FakeStore struct {
	parents map[[32]byte]*beacontypes.BeaconState
}

// NewFakeStore returns an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{parents: make(map[[32]byte]*beacontypes.BeaconState)}
}

// AddParent registers blockRoot as an acceptable parent with the given
// state.
func (s *FakeStore) AddParent(blockRoot [32]byte, state *beacontypes.BeaconState) {
	s.parents[blockRoot] = state
}

func (s *FakeStore) parentOf(block *beacontypes.SignedBeaconBlock) (Parent, bool) {
	state, ok := s.parents[block.Message.ParentRoot]
	if !ok {
		return Parent{}, false
	}
	return Parent{
		BlockRoot: block.Message.ParentRoot,
		StateAt:   func() *beacontypes.BeaconState { return state },
	}, true
}

// ValidateBlockForGossip implements Store.
func (s *FakeStore) ValidateBlockForGossip(
	block *beacontypes.SignedBeaconBlock,
	accept func(parent Parent) (*BlockAction, error),
) (*BlockAction, error) {
	parent, ok := s.parentOf(block)
	if !ok {
		return nil, ErrUnknownParent
	}
	return accept(parent)
}

// ValidateBlockWithCustomStateTransition implements Store. On a
// successful transition it records the resulting state as the new parent
// entry under the block's own root, so a subsequent block may build on
// it — the Go stand-in for the Store's own chain bookkeeping.
func (s *FakeStore) ValidateBlockWithCustomStateTransition(
	block *beacontypes.SignedBeaconBlock,
	accept func(blockRoot [32]byte, parent Parent) (*beacontypes.BeaconState, *BlockAction, error),
) (*BlockAction, error) {
	parent, ok := s.parentOf(block)
	if !ok {
		return nil, ErrUnknownParent
	}
	newState, action, err := accept(block.Message.HashTreeRoot(), parent)
	if err != nil {
		return nil, err
	}
	if newState != nil {
		s.AddParent(block.Message.HashTreeRoot(), newState)
	}
	return action, nil
}

package blockprocessor_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
	"github.com/sentineld/beacon-execd/blockchain/blockprocessor"
	"github.com/sentineld/beacon-execd/blockchain/forkchoice"
	"github.com/sentineld/beacon-execd/blockchain/statecache"
	"github.com/sentineld/beacon-execd/blockchain/transition"
	"github.com/sentineld/beacon-execd/config/params"
	"github.com/sentineld/beacon-execd/config/phase"
)

func newProcessor(ops *transition.Fake) (*blockprocessor.Processor, *statecache.InMemory) {
	cache := statecache.NewInMemory()
	return blockprocessor.New(params.Mainnet(), cache, ops), cache
}

func TestProcessUntrustedBlockWithReportRecordsRewardsAndTiming(t *testing.T) {
	ops := transition.NewFake()
	ops.Rewards = beacontypes.RealSlotReport{
		Attestations:      []uint64{1, 2},
		ProposerSlashings: []uint64{3},
		AttesterSlashings: []uint64{4},
	}
	p, _ := newProcessor(ops)

	state := &beacontypes.BeaconState{SlotNumber: 0}
	block := &beacontypes.BeaconBlock{SlotNumber: 1, Root: [32]byte{1}}

	newState, rewards, err := p.ProcessUntrustedBlockWithReport(state, block, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, newState.Slot())
	require.EqualValues(t, 3, rewards.Attestations)
	require.EqualValues(t, 0, rewards.SyncAggregate)
	require.EqualValues(t, 3, rewards.ProposerSlashings)
	require.EqualValues(t, 4, rewards.AttesterSlashings)
	require.EqualValues(t, rewards.Attestations+rewards.SyncAggregate+rewards.ProposerSlashings+rewards.AttesterSlashings, rewards.Total)

	require.Equal(t, 1, p.Timing().Get("process_untrusted_block").Count())
}

func TestProcessTrustedBlockWithReportRecordsTimingSeparatelyFromUntrusted(t *testing.T) {
	ops := transition.NewFake()
	p, _ := newProcessor(ops)

	state := &beacontypes.BeaconState{SlotNumber: 0}
	block := &beacontypes.BeaconBlock{SlotNumber: 2, Root: [32]byte{2}}

	_, _, err := p.ProcessUntrustedBlockWithReport(state, block, false)
	require.NoError(t, err)
	_, _, err = p.ProcessTrustedBlockWithReport(state, block)
	require.NoError(t, err)

	require.Equal(t, 1, p.Timing().Get("process_untrusted_block").Count())
	require.Equal(t, 1, p.Timing().Get("process_trusted_block").Count())
}

func TestProcessBlindedBlockVariants(t *testing.T) {
	ops := transition.NewFake()
	p, _ := newProcessor(ops)

	state := &beacontypes.BeaconState{SlotNumber: 0}
	block := &beacontypes.BlindedBeaconBlock{SlotNumber: 3, Root: [32]byte{3}}

	_, _, err := p.ProcessUntrustedBlindedBlockWithReport(state, block, false)
	require.NoError(t, err)
	_, _, err = p.ProcessTrustedBlindedBlockWithReport(state, block)
	require.NoError(t, err)

	require.Equal(t, 1, p.Timing().Get("process_untrusted_blinded_block").Count())
	require.Equal(t, 1, p.Timing().Get("process_trusted_blinded_block").Count())
}

func TestPerformStateTransitionUsesFullTransitionCacheFlag(t *testing.T) {
	ops := transition.NewFake()
	p, cache := newProcessor(ops)

	state := &beacontypes.BeaconState{SlotNumber: 0}
	root := [32]byte{9}
	block := &beacontypes.SignedBeaconBlock{Message: &beacontypes.BeaconBlock{SlotNumber: 4, Root: root}}

	newState, err := p.PerformStateTransition(state, block, root, transition.IfNeeded, transition.Verify, nil, nil, beacontypes.NullSlotReport{})
	require.NoError(t, err)
	require.EqualValues(t, 4, newState.Slot())

	cached := cache.BeforeOrAtSlot(root, 4)
	require.NotNil(t, cached)

	// The entry is stored under fullTransition=true: a lookup with that
	// flag is a hit and does not recompute.
	again, _, err := cache.GetOrInsertWith(root, 4, true, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		t.Fatal("expected a cache hit for the full-transition entry")
		return nil, nil, nil
	})
	require.NoError(t, err)
	require.Same(t, newState, again)
}

func TestValidateBlockForGossipAdvancesSlotsAndPersistsNoState(t *testing.T) {
	ops := transition.NewFake()
	p, cache := newProcessor(ops)

	parentRoot := [32]byte{10}
	parentState := &beacontypes.BeaconState{SlotNumber: 5}
	store := forkchoice.NewFakeStore()
	store.AddParent(parentRoot, parentState)

	block := &beacontypes.SignedBeaconBlock{Message: &beacontypes.BeaconBlock{SlotNumber: 8, ParentRoot: parentRoot, Root: [32]byte{11}}}

	action, err := p.ValidateBlockForGossip(store, block)
	require.NoError(t, err)
	require.Nil(t, action)

	require.EqualValues(t, 5, parentState.Slot(), "parent state must not be mutated in place")
	require.Nil(t, cache.BeforeOrAtSlot(block.Message.Root, 8), "gossip validation must not persist any state")
}

func TestValidateBlockRunsMergeGateBeforeCapella(t *testing.T) {
	ops := transition.NewFake()
	ops.MergeBlockAction = forkchoice.PartialBlockAction{Kind: forkchoice.PartialIgnore}
	p, _ := newProcessor(ops)

	parentRoot := [32]byte{20}
	parentState := &beacontypes.BeaconState{SlotNumber: 5, PhaseTag: phase.Bellatrix}
	store := forkchoice.NewFakeStore()
	store.AddParent(parentRoot, parentState)

	block := &beacontypes.SignedBeaconBlock{Message: &beacontypes.BeaconBlock{
		SlotNumber: 6,
		PhaseTag:   phase.Bellatrix,
		ParentRoot: parentRoot,
		Root:       [32]byte{21},
		Body:       beacontypes.BeaconBlockBody{ExecutionPayloadBlockHash: common.HexToHash("0x01")},
	}}

	action, err := p.ValidateBlock(store, block, transition.Verify, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, action)
	require.Equal(t, forkchoice.Ignore, action.Kind)
	require.False(t, action.Publish)
}

func TestValidateBlockSkipsMergeGateFromCapellaOnward(t *testing.T) {
	ops := transition.NewFake()
	ops.MergeBlockAction = forkchoice.PartialBlockAction{Kind: forkchoice.PartialIgnore}
	p, _ := newProcessor(ops)

	parentRoot := [32]byte{30}
	parentState := &beacontypes.BeaconState{SlotNumber: 5, PhaseTag: phase.Capella}
	store := forkchoice.NewFakeStore()
	store.AddParent(parentRoot, parentState)

	block := &beacontypes.SignedBeaconBlock{Message: &beacontypes.BeaconBlock{
		SlotNumber: 6,
		PhaseTag:   phase.Capella,
		ParentRoot: parentRoot,
		Root:       [32]byte{31},
		Body:       beacontypes.BeaconBlockBody{ExecutionPayloadBlockHash: common.HexToHash("0x01")},
	}}

	// Even though MergeBlockAction is configured to Ignore, a Capella-phase
	// block must skip the gate entirely and complete the transition.
	action, err := p.ValidateBlock(store, block, transition.Verify, nil, nil)
	require.NoError(t, err)
	require.Nil(t, action)
}

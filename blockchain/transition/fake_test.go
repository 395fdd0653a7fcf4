package transition_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
	"github.com/sentineld/beacon-execd/blockchain/forkchoice"
	"github.com/sentineld/beacon-execd/blockchain/transition"
	"github.com/sentineld/beacon-execd/config/params"
)

func TestFakeProcessUntrustedBlockAdvancesSlotAndReportsRewards(t *testing.T) {
	f := transition.NewFake()
	f.Rewards = beacontypes.RealSlotReport{Attestations: []uint64{1, 2}}

	state := &beacontypes.BeaconState{SlotNumber: 0}
	block := &beacontypes.BeaconBlock{SlotNumber: 5}
	var report beacontypes.RealSlotReport

	err := f.ProcessUntrustedBlock(params.Mainnet(), state, block, &report, false)
	require.NoError(t, err)
	require.EqualValues(t, 5, state.SlotNumber)
	require.Equal(t, f.Rewards, report)
}

func TestFakeApplyBlockPropagatesConfiguredFailure(t *testing.T) {
	f := transition.NewFake()
	f.FailProcessBlock = errors.New("boom")

	state := &beacontypes.BeaconState{SlotNumber: 0}
	block := &beacontypes.BeaconBlock{SlotNumber: 1}

	err := f.ProcessTrustedBlock(params.Mainnet(), state, block, nil)
	require.ErrorIs(t, err, f.FailProcessBlock)
	require.EqualValues(t, 0, state.SlotNumber, "state must be untouched on failure")
}

func TestFakeCustomStateTransitionRecordsExecutionPayloadHash(t *testing.T) {
	f := transition.NewFake()
	state := &beacontypes.BeaconState{SlotNumber: 0}
	hash := common.HexToHash("0x01")
	block := &beacontypes.SignedBeaconBlock{Message: &beacontypes.BeaconBlock{
		SlotNumber: 3,
		Body:       beacontypes.BeaconBlockBody{ExecutionPayloadBlockHash: hash},
	}}

	err := f.CustomStateTransition(params.Mainnet(), state, block, transition.IfNeeded, transition.Verify, nil, nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 3, state.SlotNumber)
	require.Equal(t, hash, state.LatestExecutionPayloadBlockHash)
}

func TestFakeCustomStateTransitionLeavesPayloadHashUnsetWhenBlockHasNone(t *testing.T) {
	f := transition.NewFake()
	state := &beacontypes.BeaconState{SlotNumber: 0}
	block := &beacontypes.SignedBeaconBlock{Message: &beacontypes.BeaconBlock{SlotNumber: 3}}

	err := f.CustomStateTransition(params.Mainnet(), state, block, transition.IfNeeded, transition.Verify, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, common.Hash{}, state.LatestExecutionPayloadBlockHash)
}

func TestFakeProcessSlotsRejectsRegression(t *testing.T) {
	f := transition.NewFake()
	state := &beacontypes.BeaconState{SlotNumber: 10}

	err := f.ProcessSlots(params.Mainnet(), state, 5)
	require.ErrorIs(t, err, transition.ErrProcessSlotsRegressed)
	require.EqualValues(t, 10, state.SlotNumber)
	require.Empty(t, f.ProcessSlotsCalls)
}

func TestFakeProcessSlotsAdvancesAndRecordsCalls(t *testing.T) {
	f := transition.NewFake()
	state := &beacontypes.BeaconState{SlotNumber: 1}

	require.NoError(t, f.ProcessSlots(params.Mainnet(), state, 4))
	require.NoError(t, f.ProcessSlots(params.Mainnet(), state, 9))
	require.EqualValues(t, 9, state.SlotNumber)
	require.Equal(t, []uint64{4, 9}, f.ProcessSlotsCalls)
}

func TestFakeValidateMergeBlockDefaultsToAccept(t *testing.T) {
	f := transition.NewFake()
	action, err := f.ValidateMergeBlock(params.Mainnet(), nil, beacontypes.BeaconBlockBody{}, nil)
	require.NoError(t, err)
	require.Equal(t, forkchoice.PartialAccept, action.Kind)
}

func TestFakeValidateMergeBlockHonorsConfiguredAction(t *testing.T) {
	f := transition.NewFake()
	f.MergeBlockAction = forkchoice.PartialBlockAction{Kind: forkchoice.PartialIgnore}

	action, err := f.ValidateMergeBlock(params.Mainnet(), nil, beacontypes.BeaconBlockBody{}, nil)
	require.NoError(t, err)
	require.Equal(t, forkchoice.PartialIgnore, action.Kind)
}

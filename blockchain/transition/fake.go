package transition

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
	"github.com/sentineld/beacon-execd/blockchain/forkchoice"
	"github.com/sentineld/beacon-execd/config/params"
)

// ErrProcessSlotsRegressed is returned by the fake's ProcessSlots when
// asked to move a state backward in slot.
var ErrProcessSlotsRegressed = errors.New("transition: process_slots called with a target slot behind the current slot")

// Fake is a deterministic Operations implementation for tests: it advances
// state.SlotNumber to the block's slot and records a fixed rewards report
// per call, with no actual consensus-rule evaluation. MergeBlockAction
// controls what ValidateMergeBlock returns, defaulting to Accept.
type Fake struct {
	Rewards            beacontypes.RealSlotReport
	MergeBlockAction   forkchoice.PartialBlockAction
	ProcessSlotsCalls  []uint64
	FailProcessBlock   error
}

// NewFake returns a Fake that accepts every merge-transition check and
// reports zero rewards.
func NewFake() *Fake {
	return &Fake{MergeBlockAction: forkchoice.PartialBlockAction{Kind: forkchoice.PartialAccept}}
}

func (f *Fake) applyBlock(state *beacontypes.BeaconState, slot uint64, report *beacontypes.RealSlotReport) error {
	if f.FailProcessBlock != nil {
		return f.FailProcessBlock
	}
	state.SlotNumber = slot
	if report != nil {
		*report = f.Rewards
	}
	return nil
}

func (f *Fake) ProcessUntrustedBlock(_ *params.Config, state *beacontypes.BeaconState, block *beacontypes.BeaconBlock, report *beacontypes.RealSlotReport, _ bool) error {
	return f.applyBlock(state, block.Slot(), report)
}

func (f *Fake) ProcessTrustedBlock(_ *params.Config, state *beacontypes.BeaconState, block *beacontypes.BeaconBlock, report *beacontypes.RealSlotReport) error {
	return f.applyBlock(state, block.Slot(), report)
}

func (f *Fake) ProcessUntrustedBlindedBlock(_ *params.Config, state *beacontypes.BeaconState, block *beacontypes.BlindedBeaconBlock, report *beacontypes.RealSlotReport, _ bool) error {
	return f.applyBlock(state, block.Slot(), report)
}

func (f *Fake) ProcessTrustedBlindedBlock(_ *params.Config, state *beacontypes.BeaconState, block *beacontypes.BlindedBeaconBlock, report *beacontypes.RealSlotReport) error {
	return f.applyBlock(state, block.Slot(), report)
}

func (f *Fake) CustomStateTransition(
	_ *params.Config,
	state *beacontypes.BeaconState,
	signedBlock *beacontypes.SignedBeaconBlock,
	_ ProcessSlotsPolicy,
	_ StateRootPolicy,
	_ beacontypes.ExecutionEngine,
	_ beacontypes.Verifier,
	_ beacontypes.SlotReport,
) error {
	if f.FailProcessBlock != nil {
		return f.FailProcessBlock
	}
	state.SlotNumber = signedBlock.Slot()
	if signedBlock.Message.Body.ExecutionPayloadBlockHash != (common.Hash{}) {
		state.LatestExecutionPayloadBlockHash = signedBlock.Message.Body.ExecutionPayloadBlockHash
	}
	return nil
}

func (f *Fake) ProcessSlots(_ *params.Config, state *beacontypes.BeaconState, targetSlot uint64) error {
	if targetSlot < state.SlotNumber {
		return ErrProcessSlotsRegressed
	}
	f.ProcessSlotsCalls = append(f.ProcessSlotsCalls, targetSlot)
	state.SlotNumber = targetSlot
	return nil
}

func (f *Fake) ProcessBlockForGossip(_ *params.Config, _ *beacontypes.BeaconState, _ *beacontypes.SignedBeaconBlock) error {
	return f.FailProcessBlock
}

func (f *Fake) ValidateMergeBlock(_ *params.Config, _ *beacontypes.SignedBeaconBlock, _ beacontypes.BeaconBlockBody, _ beacontypes.ExecutionEngine) (forkchoice.PartialBlockAction, error) {
	return f.MergeBlockAction, nil
}

// Package blockprocessor implements the Block Processor (spec.md §4.7):
// seven operations that orchestrate cached state-transition variants,
// gossip validation, and full validation with merge-transition gating.
// Grounded on
// original_source/fork_choice_control/src/block_processor.rs in full.
package blockprocessor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
	"github.com/sentineld/beacon-execd/blockchain/forkchoice"
	"github.com/sentineld/beacon-execd/blockchain/statecache"
	"github.com/sentineld/beacon-execd/blockchain/transition"
	"github.com/sentineld/beacon-execd/config/params"
	"github.com/sentineld/beacon-execd/config/phase"
	"github.com/sentineld/beacon-execd/execution/metrics"
)

var log = logrus.WithField("prefix", "blockprocessor")

// Processor is the Block Processor. It holds the immutable chain
// configuration, the external State Cache Facade, and the external
// transition operations, plus a mutable per-method Timing Metrics
// registry (spec.md §3 "Block Processor state").
//
// Timing Metrics here reuse execution/metrics.Registry/TimingMetrics
// rather than a second ring-buffer implementation: the Rust source
// defines its own copy of the identical TimingMetrics struct in
// block_processor.rs, but nothing about the type is Engine-API-specific,
// so this module converges on one implementation for both subsystems.
type Processor struct {
	config *params.Config
	cache  statecache.Facade
	ops    transition.Operations
	timing *metrics.Registry
}

// New builds a Processor over the given chain configuration, state cache,
// and transition operations.
func New(config *params.Config, cache statecache.Facade, ops transition.Operations) *Processor {
	return &Processor{
		config: config,
		cache:  cache,
		ops:    ops,
		timing: metrics.NewRegistry(),
	}
}

// Timing exposes the per-method Timing Metrics registry.
func (p *Processor) Timing() *metrics.Registry {
	return p.timing
}

func (p *Processor) recordTiming(method string, start time.Time) {
	p.timing.Record(method, time.Since(start))
}

// ProcessUntrustedBlockWithReport validates block against state via the
// cache-keyed, untrusted path (full signature/randao verification unless
// skipRandaoVerification is set), returning the post-block-processing
// state and its rewards report.
func (p *Processor) ProcessUntrustedBlockWithReport(state *beacontypes.BeaconState, block *beacontypes.BeaconBlock, skipRandaoVerification bool) (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
	const method = "process_untrusted_block"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("processing untrusted block at slot %d", block.Slot())

	newState, rewards, err := p.cache.GetOrInsertWith(block.HashTreeRoot(), block.Slot(), false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		mutable := state.Clone()
		var report beacontypes.RealSlotReport
		if err := p.ops.ProcessUntrustedBlock(p.config, mutable, block, &report, skipRandaoVerification); err != nil {
			return nil, nil, err
		}
		rewards := beacontypes.CalculateBlockRewards(&report)
		return mutable, &rewards, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return newState, rewards, nil
}

// ProcessTrustedBlockWithReport is ProcessUntrustedBlockWithReport's
// trusted-source counterpart: randao/signature verification is always
// skipped.
func (p *Processor) ProcessTrustedBlockWithReport(state *beacontypes.BeaconState, block *beacontypes.BeaconBlock) (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
	const method = "process_trusted_block"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("processing trusted block at slot %d", block.Slot())

	newState, rewards, err := p.cache.GetOrInsertWith(block.HashTreeRoot(), block.Slot(), false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		mutable := state.Clone()
		var report beacontypes.RealSlotReport
		if err := p.ops.ProcessTrustedBlock(p.config, mutable, block, &report); err != nil {
			return nil, nil, err
		}
		rewards := beacontypes.CalculateBlockRewards(&report)
		return mutable, &rewards, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return newState, rewards, nil
}

// ProcessUntrustedBlindedBlockWithReport is ProcessUntrustedBlockWithReport
// for blinded blocks.
func (p *Processor) ProcessUntrustedBlindedBlockWithReport(state *beacontypes.BeaconState, block *beacontypes.BlindedBeaconBlock, skipRandaoVerification bool) (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
	const method = "process_untrusted_blinded_block"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("processing untrusted blinded block at slot %d", block.Slot())

	newState, rewards, err := p.cache.GetOrInsertWith(block.HashTreeRoot(), block.Slot(), false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		mutable := state.Clone()
		var report beacontypes.RealSlotReport
		if err := p.ops.ProcessUntrustedBlindedBlock(p.config, mutable, block, &report, skipRandaoVerification); err != nil {
			return nil, nil, err
		}
		rewards := beacontypes.CalculateBlockRewards(&report)
		return mutable, &rewards, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return newState, rewards, nil
}

// ProcessTrustedBlindedBlockWithReport is ProcessTrustedBlockWithReport for
// blinded blocks.
func (p *Processor) ProcessTrustedBlindedBlockWithReport(state *beacontypes.BeaconState, block *beacontypes.BlindedBeaconBlock) (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
	const method = "process_trusted_blinded_block"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("processing trusted blinded block at slot %d", block.Slot())

	newState, rewards, err := p.cache.GetOrInsertWith(block.HashTreeRoot(), block.Slot(), false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		mutable := state.Clone()
		var report beacontypes.RealSlotReport
		if err := p.ops.ProcessTrustedBlindedBlock(p.config, mutable, block, &report); err != nil {
			return nil, nil, err
		}
		rewards := beacontypes.CalculateBlockRewards(&report)
		return mutable, &rewards, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return newState, rewards, nil
}

// PerformStateTransition runs the full custom state transition (slot
// advancement, signature verification, execution-engine notification) for
// block against state, keyed by blockRoot with the full-transition cache
// flag set (spec.md §4.7 "the flag distinguishes post-block-processing
// state from post-transition state").
func (p *Processor) PerformStateTransition(
	state *beacontypes.BeaconState,
	block *beacontypes.SignedBeaconBlock,
	blockRoot [32]byte,
	processSlots transition.ProcessSlotsPolicy,
	stateRootPolicy transition.StateRootPolicy,
	engine beacontypes.ExecutionEngine,
	verifier beacontypes.Verifier,
	slotReport beacontypes.SlotReport,
) (*beacontypes.BeaconState, error) {
	const method = "perform_state_transition"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("performing state transition for block root %x at slot %d", blockRoot, block.Slot())

	newState, _, err := p.cache.GetOrInsertWith(blockRoot, block.Slot(), true, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		mutable := state.Clone()
		if err := p.ops.CustomStateTransition(p.config, mutable, block, processSlots, stateRootPolicy, engine, verifier, slotReport); err != nil {
			return nil, nil, err
		}
		return mutable, nil, nil
	})
	if err != nil {
		return nil, err
	}
	return newState, nil
}

// ValidateBlockForGossip defers to the Store's gossip-validation hook,
// advancing a copy of the cached-or-materialized parent state to the
// block's slot and running the gossip-specific transition check. No state
// is persisted: the Store alone decides gossip acceptance (spec.md §4.7).
func (p *Processor) ValidateBlockForGossip(store forkchoice.Store, block *beacontypes.SignedBeaconBlock) (*forkchoice.BlockAction, error) {
	const method = "validate_block_for_gossip"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("validating block for gossip at slot %d", block.Slot())

	return store.ValidateBlockForGossip(block, func(parent forkchoice.Parent) (*forkchoice.BlockAction, error) {
		blockSlot := block.Slot()

		state := p.cache.BeforeOrAtSlot(parent.BlockRoot, blockSlot)
		if state == nil {
			state = parent.State()
		}
		state = state.Clone()

		if state.Slot() < blockSlot {
			if err := p.ops.ProcessSlots(p.config, state, blockSlot); err != nil {
				return nil, err
			}
		}

		if err := p.ops.ProcessBlockForGossip(p.config, state, block); err != nil {
			return nil, err
		}

		return nil, nil
	})
}

// ValidateBlock defers to the Store's full-validation hook. It looks up
// or materializes the parent state, runs the merge-transition gate when
// block.Phase() < Capella, and otherwise performs the full state
// transition (spec.md §4.7, §9 "merge-transition gate placement").
func (p *Processor) ValidateBlock(
	store forkchoice.Store,
	block *beacontypes.SignedBeaconBlock,
	stateRootPolicy transition.StateRootPolicy,
	engine beacontypes.ExecutionEngine,
	verifier beacontypes.Verifier,
) (*forkchoice.BlockAction, error) {
	const method = "validate_block"
	start := time.Now()
	defer p.recordTiming(method, start)

	log.Debugf("validating block at slot %d", block.Slot())

	return store.ValidateBlockWithCustomStateTransition(block, func(blockRoot [32]byte, parent forkchoice.Parent) (*beacontypes.BeaconState, *forkchoice.BlockAction, error) {
		state := p.cache.BeforeOrAtSlot(parent.BlockRoot, block.Slot())
		if state == nil {
			state = parent.State()
		}

		if block.Phase() < phase.Capella {
			body := block.Message.Body
			if beacontypes.IsMergeTransitionBlock(state, body) {
				action, err := p.ops.ValidateMergeBlock(p.config, block, body, engine)
				if err != nil {
					return nil, nil, err
				}
				switch action.Kind {
				case forkchoice.PartialAccept:
					// continue to the state transition below
				case forkchoice.PartialIgnore:
					log.Warnf("block at slot %d ignored by merge-transition validation", block.Slot())
					return nil, &forkchoice.BlockAction{Kind: forkchoice.Ignore, Publish: false}, nil
				}
			}
		}

		newState, err := p.PerformStateTransition(
			state,
			block,
			blockRoot,
			transition.IfNeeded,
			stateRootPolicy,
			engine,
			verifier,
			beacontypes.NullSlotReport{},
		)
		if err != nil {
			return nil, nil, err
		}

		log.Debugf("block validation completed for slot %d", block.Slot())
		return newState, nil, nil
	})
}

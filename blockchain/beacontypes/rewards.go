package beacontypes

// SlotReport is the per-block accounting interface the external
// state-transition operations populate and the Block Processor reduces
// into BlockRewards. RealSlotReport is the populated form; NullSlotReport
// is the zero-cost form PerformStateTransition uses when no caller wants
// rewards accounting (spec.md §4.7).
type SlotReport interface {
	AttestationRewards() []uint64
	SyncAggregateRewards() *uint64
	ProposerSlashingRewards() []uint64
	AttesterSlashingRewards() []uint64
}

// RealSlotReport is a mutable slot report the transition operations fill
// in as they process a block.
type RealSlotReport struct {
	Attestations      []uint64
	SyncAggregate     *uint64
	ProposerSlashings []uint64
	AttesterSlashings []uint64
}

func (r *RealSlotReport) AttestationRewards() []uint64      { return r.Attestations }
func (r *RealSlotReport) SyncAggregateRewards() *uint64     { return r.SyncAggregate }
func (r *RealSlotReport) ProposerSlashingRewards() []uint64 { return r.ProposerSlashings }
func (r *RealSlotReport) AttesterSlashingRewards() []uint64 { return r.AttesterSlashings }

// NullSlotReport discards everything reported to it; PerformStateTransition
// uses this when a full rewards breakdown isn't needed for the call.
type NullSlotReport struct{}

func (NullSlotReport) AttestationRewards() []uint64      { return nil }
func (NullSlotReport) SyncAggregateRewards() *uint64     { return nil }
func (NullSlotReport) ProposerSlashingRewards() []uint64 { return nil }
func (NullSlotReport) AttesterSlashingRewards() []uint64 { return nil }

// BlockRewards is the reduced rewards report returned alongside the four
// "with report" cache-keyed operations. All four components are always
// present, even when zero (spec.md §4.7).
type BlockRewards struct {
	Total             uint64
	Attestations      uint64
	SyncAggregate     uint64
	ProposerSlashings uint64
	AttesterSlashings uint64
}

func sumUint64(vs []uint64) uint64 {
	var total uint64
	for _, v := range vs {
		total += v
	}
	return total
}

// CalculateBlockRewards reduces a populated slot report into BlockRewards,
// mirroring block_processor.rs's calculate_block_rewards.
func CalculateBlockRewards(report *RealSlotReport) BlockRewards {
	attestations := sumUint64(report.AttestationRewards())

	var syncAggregate uint64
	if v := report.SyncAggregateRewards(); v != nil {
		syncAggregate = *v
	}

	proposerSlashings := sumUint64(report.ProposerSlashingRewards())
	attesterSlashings := sumUint64(report.AttesterSlashingRewards())

	return BlockRewards{
		Total:             attestations + syncAggregate + proposerSlashings + attesterSlashings,
		Attestations:      attestations,
		SyncAggregate:     syncAggregate,
		ProposerSlashings: proposerSlashings,
		AttesterSlashings: attesterSlashings,
	}
}

// Package params holds the chain configuration consumed by the execution
// API client and the block processor: fork epochs, the deposit contract
// address, and the phase-at-slot helper. It follows prysm's
// Config-struct-plus-Copy idiom, trimmed to what this module needs.
package params

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/sentineld/beacon-execd/config/phase"
)

// Config is the immutable chain configuration shared by the execution
// client and the block processor. Construct one with Mainnet() or a
// network-specific constructor, then Copy() before mutating for tests.
type Config struct {
	DepositContractAddress common.Address
	SlotsPerEpoch           uint64
	SecondsPerSlot          uint64

	AltairForkEpoch    uint64
	BellatrixForkEpoch uint64
	CapellaForkEpoch   uint64
	DenebForkEpoch     uint64
}

// Copy returns a value copy, mirroring prysm's params.BeaconConfig().Copy()
// so tests can override fork epochs without mutating shared state.
func (c *Config) Copy() *Config {
	cp := *c
	return &cp
}

// PhaseAtEpoch returns the phase active at the given epoch, per the fork
// epoch schedule. Epochs equal to a fork epoch already belong to the new
// phase.
func (c *Config) PhaseAtEpoch(epoch uint64) phase.Phase {
	switch {
	case epoch >= c.DenebForkEpoch:
		return phase.Deneb
	case epoch >= c.CapellaForkEpoch:
		return phase.Capella
	case epoch >= c.BellatrixForkEpoch:
		return phase.Bellatrix
	case epoch >= c.AltairForkEpoch:
		return phase.Altair
	default:
		return phase.Phase0
	}
}

// PhaseAtSlot is a convenience wrapper over PhaseAtEpoch.
func (c *Config) PhaseAtSlot(slot uint64) phase.Phase {
	return c.PhaseAtEpoch(slot / c.SlotsPerEpoch)
}

const farFutureEpoch = ^uint64(0)

// Mainnet returns production-shaped defaults. Fork epochs left at
// farFutureEpoch are treated as "not yet scheduled".
func Mainnet() *Config {
	return &Config{
		DepositContractAddress: common.HexToAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa"),
		SlotsPerEpoch:           32,
		SecondsPerSlot:          12,
		AltairForkEpoch:         74240,
		BellatrixForkEpoch:      144896,
		CapellaForkEpoch:        194048,
		DenebForkEpoch:          269568,
	}
}

// Minimal returns a config with Altair and Bellatrix scheduled at epoch 0,
// Capella and Deneb left unscheduled (farFutureEpoch), and a tiny epoch
// length, useful for unit tests that just need "some phase".
func Minimal() *Config {
	return &Config{
		DepositContractAddress: common.HexToAddress("0x1234567890123456789012345678901234567890"),
		SlotsPerEpoch:           8,
		SecondsPerSlot:          6,
		AltairForkEpoch:         0,
		BellatrixForkEpoch:      0,
		CapellaForkEpoch:        farFutureEpoch,
		DenebForkEpoch:          farFutureEpoch,
	}
}

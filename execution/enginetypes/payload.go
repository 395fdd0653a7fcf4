// Package enginetypes defines the Engine API wire structures: execution
// payloads tagged by phase, payload ids, fork-choice state, payload
// attributes, and the responses returned by engine_newPayload,
// engine_forkchoiceUpdated, and engine_getPayload. JSON field names follow
// the Engine API's camelCase convention; Go field names are idiomatic
// PascalCase, matching go-ethereum/prysm's own Engine API structs.
package enginetypes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/sentineld/beacon-execd/config/phase"
)

// Withdrawal mirrors the Capella+ withdrawal wire shape.
type Withdrawal struct {
	Index          hexutil.Uint64 `json:"index"`
	ValidatorIndex hexutil.Uint64 `json:"validatorIndex"`
	Address        common.Address `json:"address"`
	Amount         hexutil.Uint64 `json:"amount"`
}

// ExecutionPayloadBellatrix is the V1 execution payload body.
type ExecutionPayloadBellatrix struct {
	ParentHash    common.Hash     `json:"parentHash"`
	FeeRecipient  common.Address  `json:"feeRecipient"`
	StateRoot     common.Hash     `json:"stateRoot"`
	ReceiptsRoot  common.Hash     `json:"receiptsRoot"`
	LogsBloom     hexutil.Bytes   `json:"logsBloom"`
	PrevRandao    common.Hash     `json:"prevRandao"`
	BlockNumber   hexutil.Uint64  `json:"blockNumber"`
	GasLimit      hexutil.Uint64  `json:"gasLimit"`
	GasUsed       hexutil.Uint64  `json:"gasUsed"`
	Timestamp     hexutil.Uint64  `json:"timestamp"`
	ExtraData     hexutil.Bytes   `json:"extraData"`
	BaseFeePerGas *hexutil.Big    `json:"baseFeePerGas"`
	BlockHash     common.Hash     `json:"blockHash"`
	Transactions  []hexutil.Bytes `json:"transactions"`
}

// ExecutionPayloadCapella adds withdrawals on top of Bellatrix.
type ExecutionPayloadCapella struct {
	ExecutionPayloadBellatrix
	Withdrawals []*Withdrawal `json:"withdrawals"`
}

// ExecutionPayloadDeneb adds blob gas accounting on top of Capella.
type ExecutionPayloadDeneb struct {
	ExecutionPayloadCapella
	BlobGasUsed   hexutil.Uint64 `json:"blobGasUsed"`
	ExcessBlobGas hexutil.Uint64 `json:"excessBlobGas"`
}

// ExecutionPayload is the tagged union over protocol phases described in
// spec.md §3. Exactly one of the three fields is non-nil, selected by
// Phase.
type ExecutionPayload struct {
	Phase     phase.Phase
	Bellatrix *ExecutionPayloadBellatrix
	Capella   *ExecutionPayloadCapella
	Deneb     *ExecutionPayloadDeneb
}

// NewBellatrixPayload wraps a Bellatrix body into the tagged union.
func NewBellatrixPayload(p *ExecutionPayloadBellatrix) ExecutionPayload {
	return ExecutionPayload{Phase: phase.Bellatrix, Bellatrix: p}
}

// NewCapellaPayload wraps a Capella body into the tagged union.
func NewCapellaPayload(p *ExecutionPayloadCapella) ExecutionPayload {
	return ExecutionPayload{Phase: phase.Capella, Capella: p}
}

// NewDenebPayload wraps a Deneb body into the tagged union.
func NewDenebPayload(p *ExecutionPayloadDeneb) ExecutionPayload {
	return ExecutionPayload{Phase: phase.Deneb, Deneb: p}
}

// BlockNumber returns the payload's execution block number regardless of
// phase.
func (p ExecutionPayload) BlockNumber() uint64 {
	switch p.Phase {
	case phase.Bellatrix:
		return uint64(p.Bellatrix.BlockNumber)
	case phase.Capella:
		return uint64(p.Capella.BlockNumber)
	case phase.Deneb:
		return uint64(p.Deneb.BlockNumber)
	default:
		return 0
	}
}

// BlockHash returns the payload's execution block hash regardless of
// phase.
func (p ExecutionPayload) BlockHash() common.Hash {
	switch p.Phase {
	case phase.Bellatrix:
		return p.Bellatrix.BlockHash
	case phase.Capella:
		return p.Capella.BlockHash
	case phase.Deneb:
		return p.Deneb.BlockHash
	default:
		return common.Hash{}
	}
}

// ExecutionPayloadParams is the phase-specific companion data for
// new_payload. Only Deneb currently carries any; Bellatrix and Capella
// leave both fields nil/empty, represented here by a nil *DenebParams.
type ExecutionPayloadParams struct {
	Deneb *DenebParams
}

// DenebParams carries the extra new_payload arguments Deneb introduced.
type DenebParams struct {
	VersionedHashes       []common.Hash `json:"versionedHashes"`
	ParentBeaconBlockRoot common.Hash   `json:"parentBeaconBlockRoot"`
}

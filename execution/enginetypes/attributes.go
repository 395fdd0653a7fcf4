package enginetypes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/sentineld/beacon-execd/config/phase"
)

// PayloadAttributesBellatrix describes a proposal to begin assembling,
// V1 shape.
type PayloadAttributesBellatrix struct {
	Timestamp             hexutil.Uint64 `json:"timestamp"`
	PrevRandao             common.Hash    `json:"prevRandao"`
	SuggestedFeeRecipient  common.Address `json:"suggestedFeeRecipient"`
}

// PayloadAttributesCapella adds withdrawals, V2 shape.
type PayloadAttributesCapella struct {
	PayloadAttributesBellatrix
	Withdrawals []*Withdrawal `json:"withdrawals"`
}

// PayloadAttributesDeneb adds the parent beacon block root, V3 shape.
type PayloadAttributesDeneb struct {
	PayloadAttributesCapella
	ParentBeaconBlockRoot common.Hash `json:"parentBeaconBlockRoot"`
}

// PayloadAttributes is the phase-tagged optional structure in
// forkchoice_updated. A nil *PayloadAttributes (see ForkchoiceUpdated's
// signature) means "just update fork choice, don't begin assembling a
// block".
type PayloadAttributes struct {
	Phase     phase.Phase
	Bellatrix *PayloadAttributesBellatrix
	Capella   *PayloadAttributesCapella
	Deneb     *PayloadAttributesDeneb
}

// NewBellatrixAttributes tags Bellatrix-shaped attributes.
func NewBellatrixAttributes(a *PayloadAttributesBellatrix) *PayloadAttributes {
	return &PayloadAttributes{Phase: phase.Bellatrix, Bellatrix: a}
}

// NewCapellaAttributes tags Capella-shaped attributes.
func NewCapellaAttributes(a *PayloadAttributesCapella) *PayloadAttributes {
	return &PayloadAttributes{Phase: phase.Capella, Capella: a}
}

// NewDenebAttributes tags Deneb-shaped attributes.
func NewDenebAttributes(a *PayloadAttributesDeneb) *PayloadAttributes {
	return &PayloadAttributes{Phase: phase.Deneb, Deneb: a}
}

// MarshalForVersion returns the JSON value to place at params[1] for the
// given phase's forkchoice_updated call, or nil for "no attributes".
func (a *PayloadAttributes) MarshalForVersion() interface{} {
	if a == nil {
		return nil
	}
	switch a.Phase {
	case phase.Bellatrix:
		return a.Bellatrix
	case phase.Capella:
		return a.Capella
	case phase.Deneb:
		return a.Deneb
	default:
		return nil
	}
}

// ForkChoiceState identifies the canonical tips the execution engine
// should adopt.
type ForkChoiceState struct {
	HeadBlockHash      common.Hash `json:"headBlockHash"`
	SafeBlockHash      common.Hash `json:"safeBlockHash"`
	FinalizedBlockHash common.Hash `json:"finalizedBlockHash"`
}

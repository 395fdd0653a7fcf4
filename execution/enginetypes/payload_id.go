package enginetypes

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/sentineld/beacon-execd/config/phase"
)

// Id64 is the opaque 8-byte payload id handle an execution node returns
// from engine_forkchoiceUpdated and redeems via engine_getPayload. On the
// wire it is a 0x-prefixed hex string.
type Id64 [8]byte

// MarshalText encodes the id as 0x-prefixed hex.
func (id Id64) MarshalText() ([]byte, error) {
	return hexutil.Bytes(id[:]).MarshalText()
}

// UnmarshalText decodes a 0x-prefixed hex string of exactly 8 bytes.
func (id *Id64) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Id64", input, id[:])
}

// PayloadId tags an Id64 with the Engine API version it must be redeemed
// through. spec.md §3 models this as a three-way tagged union rather than
// folding the version into a single type, matching the Rust original
// (see DESIGN.md's Open Question on the Payload/Id/Params triple).
type PayloadId struct {
	Phase phase.Phase
	Id    Id64
}

// NewBellatrixPayloadId tags id for redemption via engine_getPayloadV1.
func NewBellatrixPayloadId(id Id64) PayloadId { return PayloadId{Phase: phase.Bellatrix, Id: id} }

// NewCapellaPayloadId tags id for redemption via engine_getPayloadV2.
func NewCapellaPayloadId(id Id64) PayloadId { return PayloadId{Phase: phase.Capella, Id: id} }

// NewDenebPayloadId tags id for redemption via engine_getPayloadV3.
func NewDenebPayloadId(id Id64) PayloadId { return PayloadId{Phase: phase.Deneb, Id: id} }

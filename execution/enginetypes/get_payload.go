package enginetypes

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// GetPayloadV1Response is engine_getPayloadV1's result: the execution
// payload on its own, with no wrapping object.
type GetPayloadV1Response = ExecutionPayloadBellatrix

// GetPayloadV2Response is engine_getPayloadV2's result shape.
type GetPayloadV2Response struct {
	ExecutionPayload ExecutionPayloadCapella `json:"executionPayload"`
	BlockValue       *hexutil.Big            `json:"blockValue"`
}

// BlobsBundleV1 accompanies Deneb get-payload responses.
type BlobsBundleV1 struct {
	Commitments []hexutil.Bytes `json:"commitments"`
	Proofs      []hexutil.Bytes `json:"proofs"`
	Blobs       []hexutil.Bytes `json:"blobs"`
}

// GetPayloadV3Response is engine_getPayloadV3's result shape.
type GetPayloadV3Response struct {
	ExecutionPayload      ExecutionPayloadDeneb `json:"executionPayload"`
	BlockValue            *hexutil.Big          `json:"blockValue"`
	BlobsBundle           *BlobsBundleV1        `json:"blobsBundle"`
	ShouldOverrideBuilder bool                  `json:"shouldOverrideBuilder"`
}

// Mev carries the block-value and builder-override metadata that
// accompanies Capella+ get-payload responses, folded into the uniform
// envelope below.
type Mev struct {
	Value                 *big.Int
	ShouldOverrideBuilder bool
}

// WithBlobsAndMev is the uniform {payload, blobs?, mev?} envelope every
// get_payload response is converted to, regardless of which Engine API
// version produced it (spec.md §4.3).
type WithBlobsAndMev struct {
	Payload ExecutionPayload
	Blobs   *BlobsBundleV1
	Mev     *Mev
}

// FromV1 builds the uniform envelope from a V1 (Bellatrix) response: no
// blobs, no mev.
func FromV1(r GetPayloadV1Response) WithBlobsAndMev {
	p := r
	return WithBlobsAndMev{Payload: NewBellatrixPayload(&p)}
}

// FromV2 builds the uniform envelope from a V2 (Capella) response.
func FromV2(r GetPayloadV2Response) WithBlobsAndMev {
	p := r.ExecutionPayload
	var value *big.Int
	if r.BlockValue != nil {
		value = (*big.Int)(r.BlockValue)
	}
	return WithBlobsAndMev{
		Payload: NewCapellaPayload(&p),
		Mev:     &Mev{Value: value},
	}
}

// FromV3 builds the uniform envelope from a V3 (Deneb) response.
func FromV3(r GetPayloadV3Response) WithBlobsAndMev {
	p := r.ExecutionPayload
	var value *big.Int
	if r.BlockValue != nil {
		value = (*big.Int)(r.BlockValue)
	}
	return WithBlobsAndMev{
		Payload: NewDenebPayload(&p),
		Blobs:   r.BlobsBundle,
		Mev: &Mev{
			Value:                 value,
			ShouldOverrideBuilder: r.ShouldOverrideBuilder,
		},
	}
}

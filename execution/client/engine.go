package client

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/sentineld/beacon-execd/config/phase"
	"github.com/sentineld/beacon-execd/execution/enginetypes"
)

// NewPayload dispatches engine_newPayloadV1/V2/V3 depending on payload's
// phase, per the table in spec.md §4.3. Later versions accept earlier
// versions' inputs, but pinning the oldest-compatible version maximizes
// interoperability with older execution nodes.
func (c *Client) NewPayload(ctx context.Context, payload enginetypes.ExecutionPayload, params *enginetypes.ExecutionPayloadParams) (enginetypes.PayloadStatusV1, error) {
	var method string
	var rpcParams []interface{}

	switch {
	case payload.Phase == phase.Bellatrix && params == nil:
		method = "engine_newPayloadV1"
		rpcParams = []interface{}{payload.Bellatrix}
	case payload.Phase == phase.Capella && params == nil:
		method = "engine_newPayloadV2"
		rpcParams = []interface{}{payload.Capella}
	case payload.Phase == phase.Deneb && params != nil && params.Deneb != nil:
		method = "engine_newPayloadV3"
		rpcParams = []interface{}{payload.Deneb, params.Deneb.VersionedHashes, params.Deneb.ParentBeaconBlockRoot}
	default:
		return enginetypes.PayloadStatusV1{}, ErrInvalidParameters
	}

	ctx, cancel := context.WithTimeout(ctx, engineNewPayloadTimeout)
	defer cancel()

	return requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (enginetypes.PayloadStatusV1, error) {
		var status enginetypes.PayloadStatusV1
		err := c.rpc.Call(ctx, url, method, rpcParams, headers, &status)
		return status, err
	})
}

// ForkchoiceUpdated dispatches engine_forkchoiceUpdatedV1/V2/V3. The phase
// driving method selection comes from attributes if non-nil, otherwise
// from phaseIfNoAttributes (spec.md §4.3 "derived from the attributes if
// present, otherwise from a phase marker passed in their stead").
func (c *Client) ForkchoiceUpdated(ctx context.Context, state enginetypes.ForkChoiceState, attributes *enginetypes.PayloadAttributes, phaseIfNoAttributes phase.Phase) (enginetypes.ForkchoiceUpdatedResponse, error) {
	phase.AssertCardinality(5)

	callPhase := phaseIfNoAttributes
	if attributes != nil {
		callPhase = attributes.Phase
	}

	var method string
	switch callPhase {
	case phase.Bellatrix:
		method = "engine_forkchoiceUpdatedV1"
	case phase.Capella:
		method = "engine_forkchoiceUpdatedV2"
	case phase.Deneb:
		method = "engine_forkchoiceUpdatedV3"
	default:
		return enginetypes.ForkchoiceUpdatedResponse{}, ErrPhasePreBellatrix
	}

	rpcParams := []interface{}{state, attributes.MarshalForVersion()}

	ctx, cancel := context.WithTimeout(ctx, engineForkchoiceUpdatedTimeout)
	defer cancel()

	raw, err := requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (enginetypes.RawForkChoiceUpdatedResponse, error) {
		var resp enginetypes.RawForkChoiceUpdatedResponse
		err := c.rpc.Call(ctx, url, method, rpcParams, headers, &resp)
		return resp, err
	})
	if err != nil {
		return enginetypes.ForkchoiceUpdatedResponse{}, err
	}

	var payloadID *enginetypes.PayloadId
	if raw.PayloadId != nil {
		tagged := enginetypes.PayloadId{Phase: callPhase, Id: *raw.PayloadId}
		payloadID = &tagged
	}

	return enginetypes.ForkchoiceUpdatedResponse{
		PayloadStatus: raw.PayloadStatus,
		PayloadId:     payloadID,
	}, nil
}

// GetPayload dispatches engine_getPayloadV1/V2/V3 by the id's tag and
// converts the phase-specific response into the uniform
// {payload, blobs?, mev?} envelope (spec.md §4.3).
func (c *Client) GetPayload(ctx context.Context, id enginetypes.PayloadId) (enginetypes.WithBlobsAndMev, error) {
	var method string

	ctx, cancel := context.WithTimeout(ctx, engineGetPayloadTimeout)
	defer cancel()

	switch id.Phase {
	case phase.Bellatrix:
		method = "engine_getPayloadV1"
		resp, err := requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (enginetypes.GetPayloadV1Response, error) {
			var r enginetypes.GetPayloadV1Response
			err := c.rpc.Call(ctx, url, method, []interface{}{id.Id}, headers, &r)
			return r, err
		})
		if err != nil {
			return enginetypes.WithBlobsAndMev{}, err
		}
		return enginetypes.FromV1(resp), nil

	case phase.Capella:
		method = "engine_getPayloadV2"
		resp, err := requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (enginetypes.GetPayloadV2Response, error) {
			var r enginetypes.GetPayloadV2Response
			err := c.rpc.Call(ctx, url, method, []interface{}{id.Id}, headers, &r)
			return r, err
		})
		if err != nil {
			return enginetypes.WithBlobsAndMev{}, err
		}
		return enginetypes.FromV2(resp), nil

	case phase.Deneb:
		method = "engine_getPayloadV3"
		resp, err := requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (enginetypes.GetPayloadV3Response, error) {
			var r enginetypes.GetPayloadV3Response
			err := c.rpc.Call(ctx, url, method, []interface{}{id.Id}, headers, &r)
			return r, err
		})
		if err != nil {
			return enginetypes.WithBlobsAndMev{}, err
		}
		return enginetypes.FromV3(resp), nil

	default:
		return enginetypes.WithBlobsAndMev{}, errors.Errorf("execution client: unsupported payload id phase %s", id.Phase)
	}
}

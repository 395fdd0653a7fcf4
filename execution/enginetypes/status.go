package enginetypes

import (
	"github.com/ethereum/go-ethereum/common"
)

// PayloadValidationStatus is the status string returned by new_payload and
// forkchoice_updated.
type PayloadValidationStatus string

const (
	StatusValid          PayloadValidationStatus = "VALID"
	StatusInvalid        PayloadValidationStatus = "INVALID"
	StatusSyncing        PayloadValidationStatus = "SYNCING"
	StatusAccepted       PayloadValidationStatus = "ACCEPTED"
	StatusInvalidBlockHash PayloadValidationStatus = "INVALID_BLOCK_HASH"
)

// PayloadStatusV1 is the decoded result of engine_newPayload* and the
// payload_status member of engine_forkchoiceUpdated*'s response.
//
// The decoder tolerates extra unrecognized top-level members on the raw
// JSON-RPC response (some execution nodes echo back "method"/"params"
// alongside "result" for invalid payloads); that tolerance lives in
// execution/jsonrpc, not here, since it is a property of the envelope, not
// of this struct's own JSON tags.
type PayloadStatusV1 struct {
	Status          PayloadValidationStatus `json:"status"`
	LatestValidHash *common.Hash            `json:"latestValidHash"`
	ValidationError *string                 `json:"validationError"`
}

// RawForkChoiceUpdatedResponse is the wire shape of engine_forkchoiceUpdated*'s
// result member, decoded before PayloadId is re-tagged with the calling
// phase (see execution/client).
type RawForkChoiceUpdatedResponse struct {
	PayloadStatus PayloadStatusV1 `json:"payloadStatus"`
	PayloadId     *Id64           `json:"payloadId"`
}

// ForkchoiceUpdatedResponse is the phase-tagged, caller-facing result of
// ForkchoiceUpdated: the payload id (if any) carries the same phase tag
// used to make the call.
type ForkchoiceUpdatedResponse struct {
	PayloadStatus PayloadStatusV1
	PayloadId     *PayloadId
}

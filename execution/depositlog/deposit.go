// Package depositlog decodes deposit-contract log entries into structured
// DepositEvent values (spec.md §4.5). Decoding is kept separate from
// grouping-by-block because some testnets (Sepolia-class) use a
// non-standard contract that emits unrelated events sharing the deposit
// contract's address; filtering by topic is mandatory, and a decode
// failure must be distinguishable from a log with no block number.
package depositlog

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Topic is the deposit contract's DepositEvent log topic:
// keccak256("DepositEvent(bytes,bytes,bytes,bytes,bytes)").
var Topic = common.HexToHash("0x649bbc62d0e31342afea4e5cd82d4049e7e1ee912fc0889aa790803be39038c5")

// DepositEvent is the decoded form of one deposit-contract log entry.
type DepositEvent struct {
	Pubkey                []byte
	WithdrawalCredentials []byte
	Amount                uint64
	Signature             []byte
	Index                 uint64
}

var depositEventArgs = abi.Arguments{
	{Name: "pubkey", Type: mustType("bytes")},
	{Name: "withdrawal_credentials", Type: mustType("bytes")},
	{Name: "amount", Type: mustType("bytes")},
	{Name: "signature", Type: mustType("bytes")},
	{Name: "index", Type: mustType("bytes")},
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// Decode converts a single log entry into a DepositEvent. It fails with a
// decode error if the log's topic/data don't match the deposit contract's
// DepositEvent ABI; the log's address is not checked. Callers are expected to have already
// filtered by contract address and topic (see execution/client), but Decode
// re-validates the topic defensively since decode-failure and
// missing-block-number are distinguishable error classes (spec.md §4.5).
func Decode(l gethtypes.Log) (*DepositEvent, error) {
	if len(l.Topics) == 0 || l.Topics[0] != Topic {
		return nil, errors.New("depositlog: log does not carry the DepositEvent topic")
	}

	values, err := depositEventArgs.Unpack(l.Data)
	if err != nil {
		return nil, errors.Wrap(err, "depositlog: unpack log data")
	}
	if len(values) != 5 {
		return nil, errors.Errorf("depositlog: expected 5 decoded fields, got %d", len(values))
	}

	pubkey, ok := values[0].([]byte)
	if !ok {
		return nil, errors.New("depositlog: pubkey field has unexpected type")
	}
	withdrawalCreds, ok := values[1].([]byte)
	if !ok {
		return nil, errors.New("depositlog: withdrawal_credentials field has unexpected type")
	}
	amountBytes, ok := values[2].([]byte)
	if !ok {
		return nil, errors.New("depositlog: amount field has unexpected type")
	}
	signature, ok := values[3].([]byte)
	if !ok {
		return nil, errors.New("depositlog: signature field has unexpected type")
	}
	indexBytes, ok := values[4].([]byte)
	if !ok {
		return nil, errors.New("depositlog: index field has unexpected type")
	}

	return &DepositEvent{
		Pubkey:                pubkey,
		WithdrawalCredentials: withdrawalCreds,
		Amount:                leUint64(amountBytes),
		Signature:             signature,
		Index:                 leUint64(indexBytes),
	}, nil
}

// leUint64 decodes the little-endian-encoded 8-byte prefix the deposit
// contract uses for its amount and index fields.
func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < len(b) && i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

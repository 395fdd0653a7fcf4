package client

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/sentineld/beacon-execd/execution/depositlog"
)

// ExecutionBlock is the local view of an execution block plus the deposit
// events that occurred within it (spec.md §3). Invariant: every entry in
// DepositEvents has BlockNumber equal to Number.
type ExecutionBlock struct {
	Number    uint64
	Hash      common.Hash
	Timestamp uint64

	DepositEvents []depositlog.DepositEvent
}

// rpcBlock is the wire shape returned by eth_getBlockBy{Hash,Number}, cut
// down to the fields this module cares about.
type rpcBlock struct {
	Number    hexutil.Uint64 `json:"number"`
	Hash      common.Hash    `json:"hash"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
}

// CurrentHeadNumber returns the execution block number of the latest
// block.
func (c *Client) CurrentHeadNumber(ctx context.Context) (uint64, error) {
	method := "eth_blockNumber"
	result, err := requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (hexutil.Uint64, error) {
		var out hexutil.Uint64
		err := c.rpc.Call(ctx, url, method, []interface{}{}, headers, &out)
		return out, err
	})
	return uint64(result), err
}

// GetBlockByHash fetches the execution block with the given hash, or
// (nil, nil) if it doesn't exist.
func (c *Client) GetBlockByHash(ctx context.Context, hash common.Hash) (*ExecutionBlock, error) {
	return c.getBlock(ctx, "eth_getBlockByHash", hash.Hex(), false)
}

// GetBlockByNumber fetches the execution block with the given number, or
// (nil, nil) if it doesn't exist.
func (c *Client) GetBlockByNumber(ctx context.Context, number uint64) (*ExecutionBlock, error) {
	return c.getBlock(ctx, "eth_getBlockByNumber", hexutil.EncodeUint64(number), false)
}

func (c *Client) getBlock(ctx context.Context, method, idParam string, fullTx bool) (*ExecutionBlock, error) {
	result, err := requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) (*rpcBlock, error) {
		var out *rpcBlock
		err := c.rpc.Call(ctx, url, method, []interface{}{idParam, fullTx}, headers, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &ExecutionBlock{
		Number:    uint64(result.Number),
		Hash:      result.Hash,
		Timestamp: uint64(result.Timestamp),
	}, nil
}

// rpcLog is the subset of eth_getLogs' per-entry shape this module needs.
type rpcLog struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber *hexutil.Uint64 `json:"blockNumber"`
}

func (l rpcLog) toGethLog() gethtypes.Log {
	g := gethtypes.Log{
		Address: l.Address,
		Topics:  l.Topics,
		Data:    l.Data,
	}
	if l.BlockNumber != nil {
		g.BlockNumber = uint64(*l.BlockNumber)
	}
	return g
}

type logFilter struct {
	FromBlock string          `json:"fromBlock,omitempty"`
	ToBlock   string          `json:"toBlock,omitempty"`
	Address   []common.Address `json:"address"`
	Topics    [][]common.Hash `json:"topics,omitempty"`
	Limit     *uint64         `json:"limit,omitempty"`
}

func (c *Client) getLogs(ctx context.Context, filter logFilter) ([]rpcLog, error) {
	method := "eth_getLogs"
	return requestWithFallback(ctx, c, method, func(ctx context.Context, url string, headers http.Header) ([]rpcLog, error) {
		var out []rpcLog
		err := c.rpc.Call(ctx, url, method, []interface{}{filter}, headers, &out)
		return out, err
	})
}

// GetFirstDepositContractBlockNumber scans logs at the deposit contract
// from the earliest block with limit 1, returning the block number of the
// first matching log, or nil if none exists.
func (c *Client) GetFirstDepositContractBlockNumber(ctx context.Context) (*uint64, error) {
	limit := uint64(1)
	logs, err := c.getLogs(ctx, logFilter{
		FromBlock: "earliest",
		Address:   []common.Address{c.config.DepositContractAddress},
		Limit:     &limit,
	})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 || logs[0].BlockNumber == nil {
		return nil, nil
	}
	n := uint64(*logs[0].BlockNumber)
	return &n, nil
}

// GetDepositEvents fetches deposit-contract logs topic-filtered to
// DepositEvent over [start, end], decodes each, and groups by block
// number. Logs whose block number is unset are skipped.
func (c *Client) GetDepositEvents(ctx context.Context, start, end uint64) (map[uint64][]depositlog.DepositEvent, error) {
	logs, err := c.getLogs(ctx, logFilter{
		FromBlock: hexutil.EncodeUint64(start),
		ToBlock:   hexutil.EncodeUint64(end),
		Address:   []common.Address{c.config.DepositContractAddress},
		Topics:    [][]common.Hash{{depositlog.Topic}},
	})
	if err != nil {
		return nil, err
	}

	out := make(map[uint64][]depositlog.DepositEvent)
	for _, l := range logs {
		if l.BlockNumber == nil {
			continue
		}
		blockNumber := uint64(*l.BlockNumber)

		ev, err := depositlog.Decode(l.toGethLog())
		if err != nil {
			return nil, errors.Wrapf(err, "decode deposit log at block %d", blockNumber)
		}
		out[blockNumber] = append(out[blockNumber], *ev)
	}
	return out, nil
}

// GetBlocks fetches, for each block number in [start, end], the execution
// block with its deposit events attached (empty slice if none), skipping
// any block number with no corresponding block. The returned slice is
// ordered by increasing block number.
func (c *Client) GetBlocks(ctx context.Context, start, end uint64) ([]ExecutionBlock, error) {
	if start > end {
		return nil, errors.Errorf("execution client: invalid block range [%d, %d]", start, end)
	}

	depositsByBlock, err := c.GetDepositEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var blocks []ExecutionBlock
	for n := start; n <= end; n++ {
		block, err := c.GetBlockByNumber(ctx, n)
		if err != nil {
			return nil, err
		}
		if block == nil {
			continue
		}
		block.DepositEvents = depositsByBlock[n]
		blocks = append(blocks, *block)
	}
	return blocks, nil
}

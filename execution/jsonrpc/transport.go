// Package jsonrpc is a minimal JSON-RPC 2.0 over HTTP POST transport for
// the Engine API, handling request construction, header injection, and
// tolerant response decoding (spec.md §6).
//
// go-ethereum's rpc.Client was evaluated for this role but does not expose
// a per-call custom Authorization header without a context-value plumbing
// layer; that header must be fetched fresh for every call (auth tokens are
// short-lived, spec.md §6 "Authorization"), so a small bespoke transport is
// used instead, the way prysm's own Engine API client predates its move to
// go-ethereum's rpc.Client.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// request is the JSON-RPC 2.0 request envelope.
type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// response is the JSON-RPC 2.0 response envelope. Decoding tolerates
// additional unrecognized top-level members (some execution nodes include
// "method"/"params" in their response to invalid payloads); Go's
// encoding/json ignores unknown fields on a concrete struct by default, so
// this struct does not need an explicit catch-all.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return e.Message
}

// Client posts JSON-RPC 2.0 requests to a single URL with a caller-supplied
// header set and context deadline.
type Client struct {
	HTTP *http.Client
}

// NewClient returns a Client using http.DefaultClient's transport settings
// with an explicit Timeout of zero (the deadline is supplied per call via
// context, per spec.md §5).
func NewClient() *Client {
	return &Client{HTTP: &http.Client{}}
}

// Call performs one JSON-RPC request against url, decoding the result into
// out. headers are applied verbatim (the Authorization header among them);
// ctx governs cancellation and, via context.WithTimeout by the caller,
// the Engine API method's deadline.
func (c *Client) Call(ctx context.Context, url, method string, params interface{}, headers http.Header, out interface{}) error {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrap(err, "marshal jsonrpc request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build jsonrpc request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, values := range headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute jsonrpc request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read jsonrpc response")
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("jsonrpc http status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp response
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return errors.Wrap(err, "decode jsonrpc envelope")
	}

	if rpcResp.Error != nil {
		return errors.Wrap(rpcResp.Error, "jsonrpc error response")
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return errors.Wrap(err, "decode jsonrpc result")
	}

	return nil
}

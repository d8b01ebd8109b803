package libwallet

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ltp456/uwallet/libwallet/utils"
)

const jsonRPCVersion = "2.0"

type rpcRequest struct {
	ID      uint64        `json:"id"`
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	ID      uint64          `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// newRequestID returns a random request id. Only the low 64 bits of a v4
// uuid are used since substrate nodes expect numeric ids.
func newRequestID() uint64 {
	id := uuid.New()
	return binary.LittleEndian.Uint64(id[:8])
}

func newRequest(method string, params []interface{}) *rpcRequest {
	if params == nil {
		params = []interface{}{}
	}
	return &rpcRequest{
		ID:      newRequestID(),
		JSONRPC: jsonRPCVersion,
		Method:  method,
		Params:  params,
	}
}

// decodeResult unmarshals the result of resp into result, which may be nil.
func (resp *rpcResponse) decodeResult(method string, result interface{}) error {
	if resp.Error != nil {
		return utils.NewError(utils.ErrRPCFailed, fmt.Errorf("%s: %w", method, resp.Error))
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}
	return nil
}

// caller sends one JSON-RPC request and waits for its response.
type caller interface {
	call(ctx context.Context, req *rpcRequest) (*rpcResponse, error)
	close() error
}

// httpCaller posts every request to the endpoint.
type httpCaller struct {
	endpoint string
	client   *utils.Client
}

func newHTTPCaller(endpoint string) *httpCaller {
	return &httpCaller{
		endpoint: endpoint,
		client:   utils.NewClient(),
	}
}

func (c *httpCaller) call(ctx context.Context, req *rpcRequest) (*rpcResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp := new(rpcResponse)
	reqConfig := &utils.ReqConfig{
		Method:  http.MethodPost,
		HttpUrl: c.endpoint,
		Payload: payload,
	}
	if err := c.client.Do(ctx, reqConfig, resp); err != nil {
		return nil, err
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("%s: response id %d does not match request id %d", req.Method, resp.ID, req.ID)
	}
	return resp, nil
}

func (c *httpCaller) close() error {
	return nil
}

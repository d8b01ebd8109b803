package libwallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ltp456/uwallet/libwallet/utils"
)

// Client talks to a substrate node over JSON-RPC. Endpoints with an http or
// https scheme are used over plain HTTP, ws and wss endpoints over a single
// websocket connection.
//
// Client is safe for concurrent use.
type Client struct {
	endpoint string
	net      *utils.NetParams
	caller   caller
}

// NewClient connects to endpoint. ctx only bounds the websocket handshake.
func NewClient(ctx context.Context, endpoint string, net *utils.NetParams) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid rpc endpoint %q: %w", endpoint, err)
	}

	c := &Client{
		endpoint: endpoint,
		net:      net,
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		c.caller = newHTTPCaller(endpoint)
	case "ws", "wss":
		ws, err := dialWS(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		c.caller = ws
	default:
		return nil, fmt.Errorf("invalid rpc endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}

	log.Infof("Using %s rpc endpoint %s", net.Network.Display(), endpoint)
	return c, nil
}

// Endpoint returns the node url.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// NetParams returns the chain parameters the client was created with.
func (c *Client) NetParams() *utils.NetParams {
	return c.net
}

// Close releases the connection to the node.
func (c *Client) Close() error {
	return c.caller.close()
}

// Call performs a raw JSON-RPC call and decodes its result into result.
func (c *Client) Call(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	req := newRequest(method, params)
	log.Tracef("rpc request %s id=%d", method, req.ID)

	resp, err := c.caller.call(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return resp.decodeResult(method, result)
}

// RuntimeVersion returns the version of the runtime at the best block.
func (c *Client) RuntimeVersion(ctx context.Context) (*RuntimeVersion, error) {
	v := new(RuntimeVersion)
	if err := c.Call(ctx, "state_getRuntimeVersion", v); err != nil {
		return nil, err
	}
	return v, nil
}

// GenesisHash returns the hex encoded hash of block 0.
func (c *Client) GenesisHash(ctx context.Context) (string, error) {
	var hash string
	if err := c.Call(ctx, "chain_getBlockHash", &hash, 0); err != nil {
		return "", err
	}
	return hash, nil
}

// FinalizedHead returns the hex encoded hash of the last finalized block.
func (c *Client) FinalizedHead(ctx context.Context) (string, error) {
	var hash string
	if err := c.Call(ctx, "chain_getFinalizedHead", &hash); err != nil {
		return "", err
	}
	return hash, nil
}

// SystemAccountKey returns the hex storage key of System.Account for address.
func SystemAccountKey(address string) (string, error) {
	public, _, err := DecodeAddress(address)
	if err != nil {
		return "", err
	}
	return utils.EncodeHex(StorageMapKey("System", "Account", Blake2_128Concat, public)), nil
}

// SystemAccount returns the nonce and balances of address. Accounts unknown
// to the chain have a zero AccountInfo.
func (c *Client) SystemAccount(ctx context.Context, address string) (*AccountInfo, error) {
	key, err := SystemAccountKey(address)
	if err != nil {
		return nil, err
	}

	var raw *string
	if err := c.Call(ctx, "state_getStorage", &raw, key); err != nil {
		return nil, err
	}
	if raw == nil {
		return emptyAccountInfo(), nil
	}

	data, err := utils.DecodeHex(*raw)
	if err != nil {
		return nil, fmt.Errorf("state_getStorage: %w", err)
	}
	return DecodeAccountInfo(data)
}

// AuthorSubmitExtrinsic submits an encoded extrinsic and returns its hash.
func (c *Client) AuthorSubmitExtrinsic(ctx context.Context, extrinsic []byte) (string, error) {
	var hash string
	if err := c.Call(ctx, "author_submitExtrinsic", &hash, utils.EncodeHex(extrinsic)); err != nil {
		return "", err
	}
	return hash, nil
}

// Transfer signs a balances transfer of amount planck from key to the
// address to and submits it. The nonce is read from the chain.
func (c *Client) Transfer(ctx context.Context, key *KeyPair, to string, amount *uint256.Int) (string, error) {
	dest, prefix, err := DecodeAddress(to)
	if err != nil {
		return "", err
	}
	if prefix != c.net.SS58Prefix {
		log.Warnf("Destination %s uses ss58 prefix %d, %s expects %d", to, prefix, c.net.Network.Display(), c.net.SS58Prefix)
	}

	from, err := key.Address(c.net.SS58Prefix)
	if err != nil {
		return "", err
	}

	genesis, err := c.GenesisHash(ctx)
	if err != nil {
		return "", err
	}
	genesisHash, err := utils.DecodeHex(genesis)
	if err != nil {
		return "", fmt.Errorf("genesis hash %q: %w", genesis, err)
	}

	version, err := c.RuntimeVersion(ctx)
	if err != nil {
		return "", err
	}

	account, err := c.SystemAccount(ctx, from)
	if err != nil {
		return "", err
	}
	if account.Transferable().Lt(amount) {
		return "", utils.NewError(utils.ErrInsufficientBalance,
			fmt.Errorf("transferable %s, requested %s", account.Transferable().ToBig(), amount.ToBig()))
	}

	extrinsic, err := SignedTransfer(key, c.net, TransferParams{
		Dest:               dest,
		Amount:             amount,
		Nonce:              account.Nonce,
		SpecVersion:        version.SpecVersion,
		TransactionVersion: version.TransactionVersion,
		GenesisHash:        genesisHash,
	})
	if err != nil {
		return "", err
	}

	log.Debugf("Submitting transfer from %s to %s nonce=%d spec=%d", from, to, account.Nonce, version.SpecVersion)
	return c.AuthorSubmitExtrinsic(ctx, extrinsic)
}

// String implements fmt.Stringer for log output.
func (v RuntimeVersion) String() string {
	b, _ := json.Marshal(v)
	return string(b)
}

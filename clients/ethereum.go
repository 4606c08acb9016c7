package clients

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	ens "github.com/wealdtech/go-ens/v3"
)

var _ Client = (*ENSClient)(nil)

// ENSClient is the production Client backed by an Ethereum JSON-RPC node.
type ENSClient struct {
	rpcURL  string
	client  *ethclient.Client
	chainID *big.Int
}

// DialENS connects to an Ethereum RPC endpoint and captures the chain id.
// The chain id is optional: registry lookups need it, plain credential
// resolution does not, so a failed chain id query is not fatal here.
func DialENS(ctx context.Context, rpcURL string) (*ENSClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	c := &ENSClient{rpcURL: rpcURL, client: client}
	if chainID, err := client.ChainID(ctx); err == nil {
		c.chainID = chainID
	}
	return c, nil
}

// TextRecord implements Client. The raw name goes through ENS
// normalization first; its output is trusted verbatim.
func (c *ENSClient) TextRecord(ctx context.Context, name, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized, err := ens.NormaliseDomain(name)
	if err != nil {
		return "", fmt.Errorf("failed to normalize name %q: %w", name, err)
	}

	resolver, err := ens.NewResolver(c.client, normalized)
	if err != nil {
		return "", fmt.Errorf("resolver not found for %q: %w", normalized, err)
	}

	value, err := resolver.Text(key)
	if err != nil {
		return "", fmt.Errorf("record not found for %q under %q: %w", key, normalized, err)
	}
	return value, nil
}

// ReadContract implements Client.
func (c *ENSClient) ReadContract(ctx context.Context, address, abiJSON, method string, args ...interface{}) ([]interface{}, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid contract ABI: %w", err)
	}

	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	to := common.HexToAddress(address)
	output, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("contract call %s failed: %w", method, err)
	}

	values, err := parsed.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s output: %w", method, err)
	}
	return values, nil
}

// ChainID implements Client.
func (c *ENSClient) ChainID() *big.Int {
	return c.chainID
}

// Close implements Client.
func (c *ENSClient) Close() {
	c.client.Close()
}

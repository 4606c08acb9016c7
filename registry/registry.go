// Package registry implements the resolver-registry trust helper: given a
// resolver contract address, it reads the registry record (label, update
// timestamp, review) and derives credential lookups and record age from
// it. Reads are never cached.
package registry

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ecsprotocol/ecs/clients"
	"github.com/ecsprotocol/ecs/logger"
	"github.com/ecsprotocol/ecs/metrics"
	"github.com/ecsprotocol/ecs/types"
)

// resolversABI is the fixed shape of the registry read: one mapping getter
// returning (label, updatedAt, review).
const resolversABI = `[{"inputs":[{"internalType":"address","name":"resolver","type":"address"}],"name":"resolvers","outputs":[{"internalType":"string","name":"label","type":"string"},{"internalType":"uint256","name":"updatedAt","type":"uint256"},{"internalType":"string","name":"review","type":"string"}],"stateMutability":"view","type":"function"}]`

// Registry contract deployments by chain id.
var registryAddressByChainID = map[uint64]string{
	1:        "0x9a0c43a6b9b3e0fe5f255fa1dcd392d1b45e74cf", // mainnet
	11155111: "0x1d8f8f00cfa6758d7be78336684788fb0ee0fa46", // sepolia
	17000:    "0x4f3a84d6fbbd6343f9a6fcb85e43e58ce14a0e32", // holesky
}

// Helper reads registry state through a chain client.
type Helper struct {
	client clients.Client
	domain string
	log    logger.Logger
	rec    metrics.Recorder
}

// New builds a Helper. An empty domain falls back to types.DefaultDomain;
// nil logger and recorder fall back to no-ops.
func New(client clients.Client, domain string, log logger.Logger, rec metrics.Recorder) *Helper {
	h := &Helper{client: client, domain: domain, log: log, rec: rec}
	if h.domain == "" {
		h.domain = types.DefaultDomain
	}
	if h.log == nil {
		h.log = logger.Noop{}
	}
	if h.rec == nil {
		h.rec = metrics.Noop{}
	}
	return h
}

// ResolverInfo reads the registry record for a resolver address. The
// client must know its chain id and the chain must have a registry
// deployment, otherwise the call fails with a configuration error.
func (h *Helper) ResolverInfo(ctx context.Context, resolverAddress string) (*types.ResolverInfo, error) {
	started := time.Now()

	registryAddress, err := h.registryAddress()
	if err != nil {
		h.rec.RecordRegistryRead(metrics.OutcomeInvalid, time.Since(started))
		return nil, err
	}

	normalized, err := types.NormalizeAddress(resolverAddress)
	if err != nil {
		h.rec.RecordRegistryRead(metrics.OutcomeInvalid, time.Since(started))
		return nil, err
	}

	values, err := h.client.ReadContract(ctx, registryAddress, resolversABI, "resolvers", common.HexToAddress(normalized))
	if err != nil {
		h.rec.RecordRegistryRead(metrics.OutcomeError, time.Since(started))
		h.log.Errorw("registry read failed", "resolver", normalized, "err", err)
		return nil, &types.ECSError{
			Code:    types.ErrResolution,
			Message: fmt.Sprintf("registry read for %q failed: %v", normalized, err),
		}
	}

	info, err := unpackResolverInfo(values)
	if err != nil {
		h.rec.RecordRegistryRead(metrics.OutcomeError, time.Since(started))
		return nil, err
	}

	h.rec.RecordRegistryRead(metrics.OutcomeSuccess, time.Since(started))
	return info, nil
}

// ResolveCredential reads a credential through the registry flow: look up
// the resolver's label, then read the text record under
// "<label>.<domain>". This path is intentionally simpler than the main
// engine: no timeout race, no decoding, the raw record passes through. An
// empty record comes back as nil.
func (h *Helper) ResolveCredential(ctx context.Context, resolverAddress, credentialKey string) (*string, error) {
	if err := types.ValidateCredentialKey(credentialKey); err != nil {
		return nil, err
	}

	info, err := h.ResolverInfo(ctx, resolverAddress)
	if err != nil {
		return nil, err
	}

	lookupName := fmt.Sprintf("%s.%s", info.Label, h.domain)
	value, err := h.client.TextRecord(ctx, lookupName, credentialKey)
	if err != nil {
		return nil, &types.ECSError{
			Code:    types.ErrResolution,
			Message: fmt.Sprintf("failed to resolve %q via registry: %v", lookupName, err),
		}
	}
	if value == "" {
		return nil, nil
	}
	return &value, nil
}

// ResolverAge returns how long ago the registry record was updated. A
// future timestamp yields a negative duration; that is deliberate, callers
// use it to detect clock skew.
func ResolverAge(updatedAt int64) time.Duration {
	return time.Since(time.Unix(updatedAt, 0))
}

func (h *Helper) registryAddress() (string, error) {
	chainID := h.client.ChainID()
	if chainID == nil {
		return "", &types.ECSError{
			Code:    types.ErrConfiguration,
			Message: "chain client does not expose a chain id",
		}
	}
	address, ok := registryAddressByChainID[chainID.Uint64()]
	if !ok {
		return "", &types.ECSError{
			Code:    types.ErrConfiguration,
			Message: fmt.Sprintf("no registry deployment known for chain id %s", chainID),
		}
	}
	return address, nil
}

func unpackResolverInfo(values []interface{}) (*types.ResolverInfo, error) {
	if len(values) != 3 {
		return nil, &types.ECSError{
			Code:    types.ErrResolution,
			Message: fmt.Sprintf("registry returned %d values, want 3", len(values)),
		}
	}
	label, ok := values[0].(string)
	if !ok {
		return nil, malformedField("label")
	}
	updatedAt, ok := values[1].(*big.Int)
	if !ok {
		return nil, malformedField("updatedAt")
	}
	review, ok := values[2].(string)
	if !ok {
		return nil, malformedField("review")
	}
	return &types.ResolverInfo{
		Label:     label,
		UpdatedAt: updatedAt.Int64(),
		Review:    review,
	}, nil
}

func malformedField(name string) error {
	return &types.ECSError{
		Code:    types.ErrResolution,
		Message: fmt.Sprintf("registry returned malformed %s field", name),
	}
}

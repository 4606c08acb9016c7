// Package ecs resolves small string credentials stored in ENS text
// records. Callers address a credential by an identifier (an ENS name, or
// a chain address plus coin-type tag) and a dotted credential key; the
// library builds the lookup name, reads the text record through an
// ENS-capable chain client, and decodes the value. A thin registry layer
// maps resolver contract addresses to labels and update timestamps for
// trust decisions.
package ecs

import (
	"context"
	"time"

	"github.com/ecsprotocol/ecs/clients"
	"github.com/ecsprotocol/ecs/logger"
	"github.com/ecsprotocol/ecs/metrics"
	"github.com/ecsprotocol/ecs/registry"
	"github.com/ecsprotocol/ecs/resolver"
	"github.com/ecsprotocol/ecs/types"
)

// ECS is the main entry point, wrapping a chain client with the resolution
// engine and the registry trust helper.
type ECS struct {
	client     clients.Client
	resolver   *resolver.Service
	registry   *registry.Helper
	ownsClient bool

	domain   string
	timeout  time.Duration
	notFound clients.NotFoundMatcher
	log      logger.Logger
	rec      metrics.Recorder
}

// New wraps an existing chain client. The caller keeps ownership of the
// client; Close leaves it open.
func New(client clients.Client, opts ...Option) *ECS {
	e := &ECS{client: client}
	for _, opt := range opts {
		opt(e)
	}
	e.build()
	return e
}

// Dial connects to an Ethereum RPC endpoint and wraps the resulting
// client. Close tears the connection down.
func Dial(ctx context.Context, rpcURL string, opts ...Option) (*ECS, error) {
	client, err := clients.DialENS(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	e := New(client, opts...)
	e.ownsClient = true
	return e, nil
}

func (e *ECS) build() {
	if e.log == nil {
		e.log = logger.Noop{}
	}
	if e.rec == nil {
		e.rec = metrics.Noop{}
	}
	e.resolver = resolver.NewService(e.client, resolver.Config{
		Domain:   e.domain,
		Timeout:  e.timeout,
		NotFound: e.notFound,
		Logger:   e.log,
		Metrics:  e.rec,
	})
	e.registry = registry.New(e.client, e.resolver.Domain(), e.log, e.rec)
}

// ResolveCredential resolves one credential for an identifier. See
// resolver.Service.Resolve for the failure semantics.
func (e *ECS) ResolveCredential(ctx context.Context, identifier types.CredentialIdentifier, credentialKey string, opts *types.ResolveOptions) (*types.ResolutionResult, error) {
	return e.resolver.Resolve(ctx, identifier, credentialKey, opts)
}

// ResolveNameCredential resolves a credential for an ENS or DNS-style
// name.
func (e *ECS) ResolveNameCredential(ctx context.Context, name, credentialKey string, opts *types.ResolveOptions) (*types.ResolutionResult, error) {
	identifier, err := types.NewNameIdentifier(name)
	if err != nil {
		return e.failedResult(credentialKey, err, opts)
	}
	return e.resolver.Resolve(ctx, identifier, credentialKey, opts)
}

// ResolveAddressCredential resolves a credential for a chain address. An
// empty coinType defaults to types.DefaultCoinType.
func (e *ECS) ResolveAddressCredential(ctx context.Context, address, coinType, credentialKey string, opts *types.ResolveOptions) (*types.ResolutionResult, error) {
	identifier, err := types.NewAddressIdentifier(address, coinType)
	if err != nil {
		return e.failedResult(credentialKey, err, opts)
	}
	return e.resolver.Resolve(ctx, identifier, credentialKey, opts)
}

// ResolveCredentialsBatch resolves all requests concurrently, returning
// results in input order with each originating request attached. Sibling
// failures are independent.
func (e *ECS) ResolveCredentialsBatch(ctx context.Context, requests []types.CredentialRequest, opts *types.ResolveOptions) ([]*types.BatchResult, error) {
	return e.resolver.BatchResolve(ctx, requests, opts)
}

// LookupName previews the lookup name for an identifier without any
// network access.
func (e *ECS) LookupName(identifier types.CredentialIdentifier) string {
	return e.resolver.LookupName(identifier)
}

// ResolverInfo reads the registry record for a resolver contract address.
func (e *ECS) ResolverInfo(ctx context.Context, resolverAddress string) (*types.ResolverInfo, error) {
	return e.registry.ResolverInfo(ctx, resolverAddress)
}

// ResolveCredentialFromResolver resolves a credential through the registry
// flow: resolver address -> label -> "<label>.<domain>" text record, raw
// passthrough without the decoding pipeline.
func (e *ECS) ResolveCredentialFromResolver(ctx context.Context, resolverAddress, credentialKey string) (*string, error) {
	return e.registry.ResolveCredential(ctx, resolverAddress, credentialKey)
}

// ResolverAge reports how long ago a registry record was updated. Negative
// for future timestamps; callers use that to detect clock skew.
func ResolverAge(updatedAt int64) time.Duration {
	return registry.ResolverAge(updatedAt)
}

// Close releases the underlying client when this instance created it via
// Dial. Clients passed to New stay open.
func (e *ECS) Close() {
	if e.ownsClient {
		e.client.Close()
	}
}

func (e *ECS) failedResult(credentialKey string, err error, opts *types.ResolveOptions) (*types.ResolutionResult, error) {
	if opts != nil && opts.Strict {
		return nil, err
	}
	return &types.ResolutionResult{
		CredentialKey: credentialKey,
		Error:         err.Error(),
	}, nil
}

// Version information
const Version = "1.0.0"

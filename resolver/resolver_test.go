package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecsprotocol/ecs/types"
)

const testAddress = "d8da6bf26964af9d7eed9e03e53415d37aa96045"

// stubClient is an in-memory chain client. Records are keyed by
// "<lookupName>|<credentialKey>"; missing entries answer with a
// "record not found" error the way the real client does.
type stubClient struct {
	mu      sync.Mutex
	records map[string]string
	err     error
	delay   time.Duration
	calls   int
}

func newStubClient() *stubClient {
	return &stubClient{records: make(map[string]string)}
}

func (s *stubClient) set(name, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[name+"|"+key] = value
}

func (s *stubClient) TextRecord(ctx context.Context, name, key string) (string, error) {
	s.mu.Lock()
	s.calls++
	err := s.err
	delay := s.delay
	value, ok := s.records[name+"|"+key]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("record not found for %q under %q", key, name)
	}
	return value, nil
}

func (s *stubClient) ReadContract(ctx context.Context, address, abiJSON, method string, args ...interface{}) ([]interface{}, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClient) ChainID() *big.Int { return big.NewInt(1) }
func (s *stubClient) Close()            {}

func addressIdentifier(t *testing.T) types.CredentialIdentifier {
	t.Helper()
	id, err := types.NewAddressIdentifier("0x"+testAddress, "")
	require.NoError(t, err)
	return id
}

func TestResolve_AddressEndToEnd(t *testing.T) {
	client := newStubClient()
	client.set(testAddress+".3c.addr.ecs.eth", "eth.ecs.ethstars.stars", "12728")

	svc := NewService(client, Config{})
	result, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.Value)
	assert.Equal(t, "12728", *result.Value)
	assert.Equal(t, testAddress+".3c.addr.ecs.eth", result.LookupName)
	assert.Equal(t, "eth.ecs.ethstars.stars", result.CredentialKey)
	assert.Empty(t, result.Error)
}

func TestResolve_NameIdentifier(t *testing.T) {
	client := newStubClient()
	client.set("vitalik.eth.name.ecs.eth", "eth.ecs.ethstars.stars", "42")

	svc := NewService(client, Config{})
	id, err := types.NewNameIdentifier("vitalik.eth")
	require.NoError(t, err)

	result, err := svc.Resolve(context.Background(), id, "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "vitalik.eth.name.ecs.eth", result.LookupName)
}

func TestResolve_HexEncodedRecord(t *testing.T) {
	client := newStubClient()
	client.set("vitalik.eth.name.ecs.eth", "eth.ecs.ethstars.stars", "0x3132373238")

	svc := NewService(client, Config{})
	id, err := types.NewNameIdentifier("vitalik.eth")
	require.NoError(t, err)

	result, err := svc.Resolve(context.Background(), id, "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)
	require.NotNil(t, result.Value)
	assert.Equal(t, "12728", *result.Value)
}

func TestResolve_CustomDomain(t *testing.T) {
	client := newStubClient()
	client.set("vitalik.eth.name.staging.ecs.eth", "eth.ecs.ethstars.stars", "7")

	svc := NewService(client, Config{Domain: "staging.ecs.eth"})
	id, err := types.NewNameIdentifier("vitalik.eth")
	require.NoError(t, err)

	result, err := svc.Resolve(context.Background(), id, "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "vitalik.eth.name.staging.ecs.eth", result.LookupName)
}

func TestResolve_NotFoundIsEmptyResult(t *testing.T) {
	client := newStubClient()
	client.err = errors.New("ENS: resolver not found for name")

	svc := NewService(client, Config{})
	result, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.Value)
	assert.Empty(t, result.Error)
}

func TestResolve_MissingRecordIsEmptyResult(t *testing.T) {
	client := newStubClient()

	svc := NewService(client, Config{})
	result, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.Value)
	assert.Empty(t, result.Error)
}

func TestResolve_UpstreamErrorWrapped(t *testing.T) {
	client := newStubClient()
	client.err = errors.New("connection refused")

	svc := NewService(client, Config{})
	result, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "connection refused")
}

func TestResolve_UpstreamErrorStrict(t *testing.T) {
	client := newStubClient()
	client.err = errors.New("connection refused")

	svc := NewService(client, Config{})
	_, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", &types.ResolveOptions{Strict: true})
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrResolution))
}

func TestResolve_CustomNotFoundMatcher(t *testing.T) {
	client := newStubClient()
	client.err = errors.New("0x0000000000000000000000000000000000000000 returned for resolver")

	svc := NewService(client, Config{
		NotFound: func(err error) bool { return true },
	})
	result, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, result.Error)
}

func TestResolve_Timeout(t *testing.T) {
	client := newStubClient()
	client.delay = 200 * time.Millisecond
	client.set(testAddress+".3c.addr.ecs.eth", "eth.ecs.ethstars.stars", "12728")

	svc := NewService(client, Config{})
	opts := &types.ResolveOptions{Timeout: 20 * time.Millisecond}
	result, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", opts)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "timed out")
}

func TestResolve_TimeoutStrict(t *testing.T) {
	client := newStubClient()
	client.delay = 200 * time.Millisecond

	svc := NewService(client, Config{})
	opts := &types.ResolveOptions{Timeout: 20 * time.Millisecond, Strict: true}
	_, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs.ethstars.stars", opts)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrResolutionTimeout))
}

func TestResolve_InvalidIdentifier(t *testing.T) {
	client := newStubClient()

	svc := NewService(client, Config{})
	bad := types.CredentialIdentifier{Type: types.IdentifierAddress, Address: "nothex"}
	result, err := svc.Resolve(context.Background(), bad, "eth.ecs.ethstars.stars", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	// the lookup name is still informative on validation failure
	assert.Equal(t, "nothex.3c.addr.ecs.eth", result.LookupName)
	assert.Zero(t, client.calls, "no network call on validation failure")
}

func TestResolve_InvalidKeyStrict(t *testing.T) {
	client := newStubClient()

	svc := NewService(client, Config{})
	_, err := svc.Resolve(context.Background(), addressIdentifier(t), "eth.ecs", &types.ResolveOptions{Strict: true})
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrInvalidCredentialKey))
	assert.Zero(t, client.calls)
}

func TestBatchResolve_OrderAndIsolation(t *testing.T) {
	client := newStubClient()
	client.set("alice.eth.name.ecs.eth", "eth.ecs.ethstars.stars", "1")
	client.set("carol.eth.name.ecs.eth", "eth.ecs.ethstars.stars", "3")

	alice, err := types.NewNameIdentifier("alice.eth")
	require.NoError(t, err)
	carol, err := types.NewNameIdentifier("carol.eth")
	require.NoError(t, err)

	requests := []types.CredentialRequest{
		{Identifier: alice, Key: "eth.ecs.ethstars.stars"},
		{Identifier: types.CredentialIdentifier{Type: types.IdentifierAddress, Address: "bad"}, Key: "eth.ecs.ethstars.stars"},
		{Identifier: carol, Key: "eth.ecs.ethstars.stars"},
	}

	svc := NewService(client, Config{})
	results, err := svc.BatchResolve(context.Background(), requests, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].Value)
	assert.Equal(t, "1", *results[0].Value)
	assert.Equal(t, requests[0], results[0].Request)

	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, requests[1], results[1].Request)

	assert.True(t, results[2].Success)
	require.NotNil(t, results[2].Value)
	assert.Equal(t, "3", *results[2].Value)
	assert.Equal(t, requests[2], results[2].Request)
}

func TestBatchResolve_Empty(t *testing.T) {
	svc := NewService(newStubClient(), Config{})
	results, err := svc.BatchResolve(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLookupName_NoNetwork(t *testing.T) {
	client := newStubClient()
	svc := NewService(client, Config{})

	name := svc.LookupName(addressIdentifier(t))
	assert.Equal(t, testAddress+".3c.addr.ecs.eth", name)
	assert.Zero(t, client.calls)
}

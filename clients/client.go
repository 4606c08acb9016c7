// Package clients provides the chain-client collaborator the resolution
// pipeline depends on: a text-record read, a generic contract read, and the
// target chain identifier. The concrete implementation delegates ENS
// mechanics (normalization, resolver discovery, record reads) to
// go-ethereum and go-ens; this module never reimplements them.
package clients

import (
	"context"
	"math/big"
)

// Client is the ENS-capable chain client the resolution engine and the
// registry helper are written against.
type Client interface {
	// TextRecord reads the text record stored under name and key. The name
	// is canonicalized by the implementation immediately before the read.
	TextRecord(ctx context.Context, name, key string) (string, error)

	// ReadContract performs a generic read-only contract call and returns
	// the unpacked output values.
	ReadContract(ctx context.Context, address, abiJSON, method string, args ...interface{}) ([]interface{}, error)

	// ChainID returns the target chain identifier, or nil when unknown.
	ChainID() *big.Int

	Close()
}

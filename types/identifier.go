package types

import (
	"fmt"
	"strings"
)

// IdentifierType discriminates the two credential identifier shapes.
type IdentifierType string

const (
	IdentifierName    IdentifierType = "name"
	IdentifierAddress IdentifierType = "address"
)

// Coin-type tags per the multi-coin address standard, as lowercase hex
// strings. This is a deliberate closed set: callers needing other chains
// must extend it here rather than passing arbitrary hex.
const (
	CoinTypeEther    = "3c"
	CoinTypeBitcoin  = "0"
	CoinTypeOptimism = "a"
	CoinTypePolygon  = "89"
	CoinTypeArbitrum = "a4b1"

	// DefaultCoinType is assumed when an address identifier carries no tag.
	DefaultCoinType = CoinTypeEther
)

var knownCoinTypes = map[string]struct{}{
	CoinTypeEther:    {},
	CoinTypeBitcoin:  {},
	CoinTypeOptimism: {},
	CoinTypePolygon:  {},
	CoinTypeArbitrum: {},
}

// DefaultDomain is the root domain credential lookup names are built under.
const DefaultDomain = "ecs.eth"

// CredentialIdentifier is a tagged union: exactly one of the Name or
// Address variants is populated, discriminated by Type. Fields are stored
// pre-normalized (Name lowercase and trimmed, Address 40 lowercase hex
// characters without prefix), so downstream code never re-validates.
type CredentialIdentifier struct {
	Type     IdentifierType `json:"type"`
	Name     string         `json:"name,omitempty"`
	Address  string         `json:"address,omitempty"`
	CoinType string         `json:"coinType,omitempty"`
}

// NewNameIdentifier builds a Name-variant identifier, normalizing eagerly.
func NewNameIdentifier(raw string) (CredentialIdentifier, error) {
	name, err := NormalizeName(raw)
	if err != nil {
		return CredentialIdentifier{}, err
	}
	return CredentialIdentifier{Type: IdentifierName, Name: name}, nil
}

// NewAddressIdentifier builds an Address-variant identifier, normalizing
// eagerly. An empty coinType defaults to DefaultCoinType.
func NewAddressIdentifier(rawAddress, coinType string) (CredentialIdentifier, error) {
	addr, err := NormalizeAddress(rawAddress)
	if err != nil {
		return CredentialIdentifier{}, err
	}
	if coinType == "" {
		coinType = DefaultCoinType
	}
	if err := ValidateCoinType(coinType); err != nil {
		return CredentialIdentifier{}, err
	}
	return CredentialIdentifier{Type: IdentifierAddress, Address: addr, CoinType: coinType}, nil
}

// Validate checks that the identifier is one of the two known variants and
// that its populated fields survive re-normalization.
func (id CredentialIdentifier) Validate() error {
	switch id.Type {
	case IdentifierName:
		if _, err := NormalizeName(id.Name); err != nil {
			return err
		}
		return nil
	case IdentifierAddress:
		if _, err := NormalizeAddress(id.Address); err != nil {
			return err
		}
		coinType := id.CoinType
		if coinType == "" {
			coinType = DefaultCoinType
		}
		return ValidateCoinType(coinType)
	default:
		return &ECSError{
			Code:    ErrInvalidIdentifier,
			Message: fmt.Sprintf("unknown identifier type: %q", id.Type),
		}
	}
}

// NormalizeAddress strips an optional 0x prefix and lowercases. The
// remainder must be exactly 40 hexadecimal characters.
func NormalizeAddress(raw string) (string, error) {
	addr := strings.TrimSpace(strings.ToLower(raw))
	addr = strings.TrimPrefix(addr, "0x")
	if len(addr) != 40 || !isHex(addr) {
		return "", &ECSError{
			Code:    ErrInvalidIdentifier,
			Message: fmt.Sprintf("invalid address: %q must be 40 hex characters", raw),
		}
	}
	return addr, nil
}

// NormalizeName trims and lowercases. The result must be non-empty and
// contain only [a-z0-9.-]; Unicode-aware ENS normalization is left to the
// chain client immediately before the lookup.
func NormalizeName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", &ECSError{
			Code:    ErrInvalidIdentifier,
			Message: "name must not be empty",
		}
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", &ECSError{
				Code:    ErrInvalidIdentifier,
				Message: fmt.Sprintf("invalid name %q: character %q not allowed", name, r),
			}
		}
	}
	return name, nil
}

// ValidateCoinType checks the tag against the closed allow-list.
func ValidateCoinType(tag string) error {
	if _, ok := knownCoinTypes[tag]; !ok {
		return &ECSError{
			Code:    ErrInvalidIdentifier,
			Message: fmt.Sprintf("unknown coin type tag: %q", tag),
		}
	}
	return nil
}

// ConstructLookupName maps a validated identifier to its fully-qualified
// lookup name under domain. Pure and idempotent; performs no network
// access, so callers can preview the name without resolving.
//
//	name variant    -> "<name>.name.<domain>"
//	address variant -> "<address>.<coinType>.addr.<domain>"
//
// An empty domain falls back to DefaultDomain.
func ConstructLookupName(id CredentialIdentifier, domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	switch id.Type {
	case IdentifierAddress:
		coinType := id.CoinType
		if coinType == "" {
			coinType = DefaultCoinType
		}
		return fmt.Sprintf("%s.%s.addr.%s", id.Address, coinType, domain)
	default:
		return fmt.Sprintf("%s.name.%s", id.Name, domain)
	}
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

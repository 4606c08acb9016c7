// Package types defines the value objects shared across the ecs module:
// credential identifiers, credential keys, resolution results, and the
// module-wide error type. Everything here is a plain value with no
// back-references; results are constructed fresh per resolution call.
package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CredentialRequest pairs an identifier with the credential key to fetch.
// Used directly for batch resolution and echoed back in BatchResult so
// callers can correlate results after parallel execution.
type CredentialRequest struct {
	Identifier CredentialIdentifier `json:"identifier"`
	Key        string               `json:"credentialKey" validate:"required"`
}

// Validate runs struct-tag checks followed by the identifier and key rules.
// It is the single pre-flight gate before any network call.
func (r *CredentialRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &ECSError{
			Code:    ErrInvalidCredentialKey,
			Message: fmt.Sprintf("invalid credential request: %v", err),
		}
	}
	if err := ValidateCredentialKey(r.Key); err != nil {
		return err
	}
	return r.Identifier.Validate()
}

// ResolveOptions controls a single resolution call.
type ResolveOptions struct {
	// Timeout bounds the upstream text-record read. Zero means
	// DefaultResolveTimeout.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Strict makes Resolve return failures as errors instead of folding
	// them into the result envelope.
	Strict bool `json:"strict,omitempty"`
}

// DefaultResolveTimeout bounds a single upstream read when the caller does
// not say otherwise.
const DefaultResolveTimeout = 10 * time.Second

// ResolutionResult is the envelope returned by every resolution call.
// Success is true iff Value is non-nil. Immutable once constructed.
type ResolutionResult struct {
	Value         *string `json:"value"`
	LookupName    string  `json:"lookupName"`
	CredentialKey string  `json:"credentialKey"`
	Success       bool    `json:"success"`
	Error         string  `json:"error,omitempty"`
}

// Decimal parses the resolved value as a decimal number, for credentials
// that carry numeric payloads.
func (r *ResolutionResult) Decimal() (decimal.Decimal, error) {
	if r.Value == nil {
		return decimal.Decimal{}, &ECSError{
			Code:    ErrResolution,
			Message: fmt.Sprintf("no value resolved for %q", r.CredentialKey),
		}
	}
	d, err := decimal.NewFromString(*r.Value)
	if err != nil {
		return decimal.Decimal{}, &ECSError{
			Code:    ErrResolution,
			Message: fmt.Sprintf("credential value %q is not numeric: %v", *r.Value, err),
		}
	}
	return d, nil
}

// BatchResult attaches the originating request to its resolution result.
type BatchResult struct {
	ResolutionResult
	Request CredentialRequest `json:"request"`
}

// ResolverInfo is a read-only projection of on-chain registry state for a
// resolver address. Never cached: every call re-reads the source.
type ResolverInfo struct {
	Label     string `json:"label"`
	UpdatedAt int64  `json:"updatedAt"`
	Review    string `json:"review"`
}

package types

import (
	"fmt"
	"strings"
)

// CredentialKeyPrefix is the fixed two-segment prefix every credential key
// carries, e.g. "eth.ecs.ethstars.stars".
const CredentialKeyPrefix = "eth.ecs"

// CredentialKey is the parsed form of a dotted credential key: Namespace is
// the joined middle segments, Name the final segment.
type CredentialKey struct {
	Key       string `json:"key"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// ValidateCredentialKey checks the dotted form: at least four segments with
// the fixed "eth.ecs" prefix.
func ValidateCredentialKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &ECSError{
			Code:    ErrInvalidCredentialKey,
			Message: "credential key must not be empty",
		}
	}
	segments := strings.Split(key, ".")
	if len(segments) < 4 {
		return &ECSError{
			Code:    ErrInvalidCredentialKey,
			Message: fmt.Sprintf("credential key %q must have at least 4 dot-separated segments", key),
		}
	}
	if segments[0]+"."+segments[1] != CredentialKeyPrefix {
		return &ECSError{
			Code:    ErrInvalidCredentialKey,
			Message: fmt.Sprintf("credential key %q must start with %q", key, CredentialKeyPrefix+"."),
		}
	}
	return nil
}

// ParseCredentialKey validates and splits a key into namespace and name.
func ParseCredentialKey(key string) (CredentialKey, error) {
	if err := ValidateCredentialKey(key); err != nil {
		return CredentialKey{}, err
	}
	segments := strings.Split(key, ".")
	return CredentialKey{
		Key:       key,
		Namespace: strings.Join(segments[2:len(segments)-1], "."),
		Name:      segments[len(segments)-1],
	}, nil
}

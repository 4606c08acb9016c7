package clients

import "strings"

// NotFoundMatcher classifies an upstream error as "the record or resolver
// simply does not exist" so callers can downgrade it to an empty result.
// The upstream error vocabulary is owned by the chain client, so the
// predicate is configurable rather than hard-coded at the call sites.
type NotFoundMatcher func(error) bool

// Phrases the default matcher looks for. The first three are this
// package's own wrapping; the rest are produced by go-ens.
var notFoundPhrases = []string{
	"resolver not found",
	"name not found",
	"record not found",
	"unregistered name",
	"no resolver",
	"no resolution",
}

// IsNotFound is the default NotFoundMatcher.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range notFoundPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

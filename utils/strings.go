// Package utils holds the small string and hex helpers behind record-value
// decoding.
package utils

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// StripControlChars removes ASCII control characters (0x00-0x1F and 0x7F)
// and trims surrounding whitespace. Credential records occasionally arrive
// padded with NULs or newlines from on-chain storage.
func StripControlChars(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

// DecodeHexPayload interprets s (without the 0x prefix) as hex-encoded
// UTF-8 bytes and returns the decoded, trimmed string. Odd-length or
// non-hex input is an error; so is a payload that does not decode to valid
// UTF-8.
func DecodeHexPayload(s string) (string, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid hex payload: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("hex payload is not valid UTF-8")
	}
	return strings.TrimSpace(string(raw)), nil
}

package resolver

import (
	"fmt"
	"strings"

	"github.com/ecsprotocol/ecs/utils"
)

// DecodeValue normalizes a raw text-record payload into a clean credential
// string, or nil when the record is effectively empty. Credential providers
// sometimes store raw hex payloads in text records, so a 0x-prefixed value
// is decoded as hex-encoded UTF-8; malformed hex is not an error, it
// degrades to the literal cleaned value. DecodeValue never fails.
func DecodeValue(raw interface{}) *string {
	if raw == nil {
		return nil
	}

	var coerced string
	switch v := raw.(type) {
	case string:
		coerced = v
	case []byte:
		coerced = string(v)
	case fmt.Stringer:
		coerced = v.String()
	default:
		coerced = fmt.Sprintf("%v", v)
	}

	cleaned := utils.StripControlChars(coerced)
	if cleaned == "" {
		return nil
	}

	if strings.HasPrefix(cleaned, "0x") {
		decoded, err := utils.DecodeHexPayload(cleaned[2:])
		if err != nil {
			// policy fallback: keep the literal, still-prefixed value
			return &cleaned
		}
		if decoded == "" {
			return nil
		}
		return &decoded
	}

	return &cleaned
}

package resolver

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue_PlainString(t *testing.T) {
	got := DecodeValue("12728")
	require.NotNil(t, got)
	assert.Equal(t, "12728", *got)
}

func TestDecodeValue_Empty(t *testing.T) {
	assert.Nil(t, DecodeValue(nil))
	assert.Nil(t, DecodeValue(""))
	assert.Nil(t, DecodeValue("   "))
	assert.Nil(t, DecodeValue([]byte{}))
}

func TestDecodeValue_ControlCharsOnly(t *testing.T) {
	assert.Nil(t, DecodeValue("\x00\x01\x1f\x7f"))
	assert.Nil(t, DecodeValue("\x00 \n \t \x7f"))
}

func TestDecodeValue_StripsControlChars(t *testing.T) {
	got := DecodeValue("\x00hello\x1fworld\x7f\n")
	require.NotNil(t, got)
	assert.Equal(t, "helloworld", *got)
}

func TestDecodeValue_ByteSlice(t *testing.T) {
	got := DecodeValue([]byte("stars: 5"))
	require.NotNil(t, got)
	assert.Equal(t, "stars: 5", *got)
}

func TestDecodeValue_HexRoundTrip(t *testing.T) {
	for _, original := range []string{"12728", "hello world", "a", "namespace/value=1"} {
		encoded := "0x" + hex.EncodeToString([]byte(original))
		got := DecodeValue(encoded)
		require.NotNil(t, got, "input %q", encoded)
		assert.Equal(t, original, *got)
	}
}

func TestDecodeValue_HexDecodingToEmpty(t *testing.T) {
	// "0x20" decodes to a single space, which trims to nothing
	assert.Nil(t, DecodeValue("0x20"))
	assert.Nil(t, DecodeValue("0x"))
}

func TestDecodeValue_MalformedHexFallsBackToLiteral(t *testing.T) {
	for _, input := range []string{"0xabc", "0xzz11", "0x12345"} {
		got := DecodeValue(input)
		require.NotNil(t, got, "input %q", input)
		assert.Equal(t, input, *got)
	}
}

func TestDecodeValue_NonUTF8HexFallsBackToLiteral(t *testing.T) {
	got := DecodeValue("0xfffe")
	require.NotNil(t, got)
	assert.Equal(t, "0xfffe", *got)
}

func TestDecodeValue_OtherTypesCoerced(t *testing.T) {
	got := DecodeValue(12728)
	require.NotNil(t, got)
	assert.Equal(t, "12728", *got)
}

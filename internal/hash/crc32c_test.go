package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32CStreamingMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	h := NewCRC32C()
	_, _ = h.Write(data[:10])
	_, _ = h.Write(data[10:])

	assert.Equal(t, CRC32C(data), h.Sum32())
	// Castagnoli check value for "123456789"
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
}

func TestAppendAndVerify(t *testing.T) {
	buf := AppendCRC32C([]byte("payload"))

	body, ok := VerifyCRC32C(buf)
	assert.True(t, ok)
	assert.Equal(t, "payload", string(body))

	buf[0] ^= 0xFF
	_, ok = VerifyCRC32C(buf)
	assert.False(t, ok)

	_, ok = VerifyCRC32C([]byte{1, 2})
	assert.False(t, ok)
}

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	v, err := IntToUint32(7)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)

	_, err = IntToUint32(-1)
	assert.Error(t, err)

	if uint64(math.MaxInt) > math.MaxUint32 {
		big := uint64(math.MaxUint32) + 1
		_, err = IntToUint32(int(big))
		assert.Error(t, err)
	}
}

func TestUint64ToInt(t *testing.T) {
	v, err := Uint64ToInt(12)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}

func TestUint64ToUint32(t *testing.T) {
	v, err := Uint64ToUint32(math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), v)

	_, err = Uint64ToUint32(math.MaxUint32 + 1)
	assert.Error(t, err)
}

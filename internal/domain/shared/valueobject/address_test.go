package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates address with required fields", func(t *testing.T) {
		a, err := NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "29", "560001")
		require.NoError(t, err)
		assert.Equal(t, "Bengaluru", a.City)
		assert.Equal(t, "29", a.StateCode)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		a, err := NewAddress("  12 MG Road ", "", " Bengaluru ", "Karnataka", "29", "")
		require.NoError(t, err)
		assert.Equal(t, "12 MG Road", a.Line1)
		assert.Equal(t, "Bengaluru", a.City)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := NewAddress("", "", "Bengaluru", "Karnataka", "29", "")
		assert.Error(t, err)

		_, err = NewAddress("12 MG Road", "", "", "Karnataka", "29", "")
		assert.Error(t, err)

		_, err = NewAddress("12 MG Road", "", "Bengaluru", "", "29", "")
		assert.Error(t, err)
	})
}

func TestAddressString(t *testing.T) {
	a, err := NewAddress("12 MG Road", "2nd Floor", "Bengaluru", "Karnataka", "29", "560001")
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road, 2nd Floor, Bengaluru, Karnataka, 560001", a.String())

	assert.Equal(t, "", EmptyAddress().String())
}

func TestAddressScanValue(t *testing.T) {
	t.Run("round-trips through driver value", func(t *testing.T) {
		a, err := NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "29", "560001")
		require.NoError(t, err)

		v, err := a.Value()
		require.NoError(t, err)

		var scanned Address
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, a, scanned)
	})

	t.Run("nil scans to empty", func(t *testing.T) {
		var scanned Address
		require.NoError(t, scanned.Scan(nil))
		assert.True(t, scanned.IsEmpty())
	})

	t.Run("empty address stores as nil", func(t *testing.T) {
		v, err := EmptyAddress().Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

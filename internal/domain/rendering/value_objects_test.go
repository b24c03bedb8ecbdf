package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperSize(t *testing.T) {
	assert.True(t, PaperSizeA4.IsValid())
	assert.True(t, PaperSizeLetter.IsValid())
	assert.False(t, PaperSize("B5").IsValid())

	w, h := PaperSizeA4.Dimensions()
	assert.Equal(t, 210.0, w)
	assert.Equal(t, 297.0, h)
}

func TestNewMargins(t *testing.T) {
	t.Run("accepts valid margins", func(t *testing.T) {
		m, err := NewMargins(10, 10, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, DefaultMargins(), m)
	})

	t.Run("rejects negative and oversized margins", func(t *testing.T) {
		_, err := NewMargins(-1, 0, 0, 0)
		assert.Error(t, err)

		_, err = NewMargins(0, 101, 0, 0)
		assert.Error(t, err)
	})
}

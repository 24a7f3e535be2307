package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanRenderQR_NonFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.False(t, CanRenderQR(&buf))
}

func TestRenderQR_SkipsNonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderQR(&buf, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", DefaultQRConfig())
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestDefaultQRConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultQRConfig()
	assert.Equal(t, 1, cfg.QuietZone)
	assert.True(t, cfg.HalfBlocks)
}

package display

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFonts_Default(t *testing.T) {
	fonts, err := LoadFonts("")
	require.NoError(t, err)

	require.NotNil(t, fonts.Big)
	require.NotNil(t, fonts.Normal)
	require.NotNil(t, fonts.Small)
	require.NotNil(t, fonts.Tiny)

	// Larger sizes have taller line heights.
	assert.Greater(t, fonts.Big.Metrics().Height, fonts.Normal.Metrics().Height)
	assert.Greater(t, fonts.Normal.Metrics().Height, fonts.Small.Metrics().Height)
	assert.GreaterOrEqual(t, fonts.Small.Metrics().Height, fonts.Tiny.Metrics().Height)
}

func TestLoadFonts_MissingFile(t *testing.T) {
	_, err := LoadFonts(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadFonts_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))

	_, err := LoadFonts(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Cannot parse font file")
}

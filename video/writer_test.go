package video

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/vocprep/types"
)

func TestJPEGWriter_WriteImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v_000000.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	require.NoError(t, JPEGWriter{Quality: 90}.WriteImage(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestJPEGWriter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "v_000000.jpg")
	err := JPEGWriter{}.WriteImage(path, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.Error(t, err)
	assert.True(t, types.IsWrite(err))
}

func TestSampleRate(t *testing.T) {
	assert.Error(t, SampleRate(0).Validate())
	assert.Error(t, SampleRate(-1).Validate())
	assert.NoError(t, SampleRate(1).Validate())

	r := SampleRate(5)
	assert.True(t, r.Keeps(0))
	assert.False(t, r.Keeps(4))
	assert.True(t, r.Keeps(35))
	assert.Equal(t, 8, r.ExpectedImages(37))
	assert.Equal(t, 0, r.ExpectedImages(0))
}

func TestImageName(t *testing.T) {
	assert.Equal(t, "clip_000000.jpg", ImageName("clip", 0))
	assert.Equal(t, "clip_123456.jpg", ImageName("clip", 123456))
}

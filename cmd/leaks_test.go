package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/vocprep/idset"
	"github.com/lepinkainen/vocprep/types"
)

func writeJPEG(t *testing.T, path string, vertical bool) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := x
			if vertical {
				v = y
			}
			img.Set(x, y, color.Gray{Y: uint8(v * 4)})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
}

func TestCheckLeaks(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "train.jpg"), false)
	writeJPEG(t, filepath.Join(dir, "copy.jpg"), false)

	tv := filepath.Join(dir, "trainval.txt")
	te := filepath.Join(dir, "test.txt")
	require.NoError(t, idset.WriteFile(tv, []string{"train"}))
	require.NoError(t, idset.WriteFile(te, []string{"copy"}))

	var out bytes.Buffer
	c := &CheckLeaksCmd{ImgDir: dir, Trainval: tv, Test: te, Threshold: 5, Ext: ".jpg"}
	require.NoError(t, c.Run(testContext(&out, nil)))
	assert.Contains(t, out.String(), "Identical: copy ↔ train")
}

func TestCheckLeaks_InvalidThreshold(t *testing.T) {
	c := &CheckLeaksCmd{ImgDir: t.TempDir(), Threshold: 65}
	err := c.Run(testContext(io.Discard, nil))
	assert.True(t, types.IsInvalidArgument(err))
}

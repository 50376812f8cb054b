package video

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/lepinkainen/vocprep/types"
)

// DefaultJPEGQuality matches what most VOC tooling writes
const DefaultJPEGQuality = 95

// JPEGWriter encodes frames as baseline JPEG files
type JPEGWriter struct {
	Quality int
}

// WriteImage encodes img to path, replacing any existing file
func (w JPEGWriter) WriteImage(path string, img image.Image) error {
	quality := w.Quality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	f, err := os.Create(path)
	if err != nil {
		return &types.WriteError{Path: path, Err: err}
	}

	bw := bufio.NewWriter(f)
	if err := jpeg.Encode(bw, img, &jpeg.Options{Quality: quality}); err != nil {
		_ = f.Close()
		return &types.WriteError{Path: path, Err: fmt.Errorf("encode jpeg: %w", err)}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return &types.WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	return nil
}

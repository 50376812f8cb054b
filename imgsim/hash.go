// Package imgsim fingerprints dataset images so a trainval/test split can be
// checked for identical or near-identical frames on both sides.
package imgsim

import (
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"

	"github.com/lepinkainen/vocprep/types"
)

// Fingerprint identifies an image both byte-for-byte and perceptually
type Fingerprint struct {
	ID   string
	Path string
	CRC  uint32
	Hash *goimagehash.ImageHash
}

// CalculateCRC32 calculates the CRC32 checksum of a file
func CalculateCRC32(filename string) (uint32, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}

	return h.Sum32(), nil
}

// HashImage computes the CRC32 and perceptual hash of the image at path
func HashImage(id, path string) (Fingerprint, error) {
	fp := Fingerprint{ID: id, Path: path}

	crc, err := CalculateCRC32(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fp, &types.NotFoundError{Path: path, Err: err}
		}
		return fp, fmt.Errorf("failed to checksum %s: %w", path, err)
	}
	fp.CRC = crc

	file, err := os.Open(path)
	if err != nil {
		return fp, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	if err != nil {
		return fp, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return fp, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}
	fp.Hash = hash

	return fp, nil
}

// HashIDs fingerprints {dir}/{id}{ext} for every id. onDone, when set, is
// called after each image.
func HashIDs(ids []string, dir, ext string, onDone func()) ([]Fingerprint, error) {
	fps := make([]Fingerprint, 0, len(ids))
	for _, id := range ids {
		fp, err := HashImage(id, filepath.Join(dir, id+ext))
		if err != nil {
			return nil, err
		}
		fps = append(fps, fp)
		if onDone != nil {
			onDone()
		}
	}
	return fps, nil
}

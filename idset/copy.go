package idset

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

// CheckTarget reports whether dir already exists
func CheckTarget(dir string) (bool, error) {
	return utils.Exists(dir)
}

// ConfirmAndReplace asks before removing an existing dir and then recreates it
// empty. A negative answer returns types.ErrUserDeclined and leaves dir as is.
func ConfirmAndReplace(dir string, confirm func(question string) bool) error {
	exists, err := CheckTarget(dir)
	if err != nil {
		return err
	}
	if exists {
		if !confirm(fmt.Sprintf("Directory %s exists.\nDo you want to replace it?", dir)) {
			return types.ErrUserDeclined
		}
		if err := utils.RemoveTree(dir); err != nil {
			return err
		}
	}
	return utils.EnsureDir(dir)
}

// CopyOptions tunes CopyMatching
type CopyOptions struct {
	// Ext is appended to every identifier; defaults to .jpg
	Ext string
	// SkipMissing records missing source images instead of failing
	SkipMissing bool
	// OnCopied is called after each identifier is handled (copied or skipped)
	OnCopied func(done, total int, id string)
	Logger   *zap.Logger
}

// CopyReport lists what CopyMatching did
type CopyReport struct {
	Copied  int
	Missing []string
}

// CopyMatching copies {id}{ext} from srcDir to dstDir for every id. dstDir
// must exist.
func CopyMatching(ids []string, srcDir, dstDir string, opts CopyOptions) (CopyReport, error) {
	ext := opts.Ext
	if ext == "" {
		ext = ".jpg"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var report CopyReport
	for i, id := range ids {
		name := id + ext
		err := utils.CopyFile(filepath.Join(srcDir, name), filepath.Join(dstDir, name))
		switch {
		case err == nil:
			report.Copied++
		case types.IsNotFound(err) && opts.SkipMissing:
			logger.Warn("source image missing", zap.String("id", id), zap.String("dir", srcDir))
			report.Missing = append(report.Missing, id)
		default:
			return report, err
		}
		if opts.OnCopied != nil {
			opts.OnCopied(i+1, len(ids), id)
		}
	}

	logger.Info("images copied",
		zap.Int("copied", report.Copied),
		zap.Int("missing", len(report.Missing)),
		zap.String("target", dstDir))
	return report, nil
}

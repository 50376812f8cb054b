package idset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	names, err := utils.ListFiles(dir)
	require.NoError(t, err)
	return names
}

func TestCopyMatching(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "target")
	touch(t, src, "a.jpg", "b.jpg", "c.jpg")
	require.NoError(t, ConfirmAndReplace(dst, func(string) bool { return false }))

	var progress []int
	report, err := CopyMatching([]string{"a", "b"}, src, dst, CopyOptions{
		OnCopied: func(done, total int, id string) {
			assert.Equal(t, 2, total)
			progress = append(progress, done)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Copied)
	assert.Empty(t, report.Missing)
	assert.Equal(t, []int{1, 2}, progress)
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, listNames(t, dst))

	data, err := os.ReadFile(filepath.Join(dst, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", string(data))
}

func TestCopyMatching_MissingIsFatalByDefault(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	touch(t, src, "a.jpg", "c.jpg")

	report, err := CopyMatching([]string{"a", "b", "c"}, src, dst, CopyOptions{})
	require.Error(t, err)
	assert.True(t, types.IsNotFound(err))
	assert.Equal(t, 1, report.Copied)
	assert.ElementsMatch(t, []string{"a.jpg"}, listNames(t, dst))
}

func TestCopyMatching_SkipMissing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	touch(t, src, "a.png", "c.png")

	report, err := CopyMatching([]string{"a", "b", "c"}, src, dst, CopyOptions{Ext: ".png", SkipMissing: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Copied)
	assert.Equal(t, []string{"b"}, report.Missing)
	assert.ElementsMatch(t, []string{"a.png", "c.png"}, listNames(t, dst))
}

func TestConfirmAndReplace(t *testing.T) {
	tests := []struct {
		name      string
		existing  bool
		answer    bool
		wantErr   error
		wantAsked bool
		wantOld   bool
	}{
		{name: "fresh directory", existing: false, answer: false, wantAsked: false},
		{name: "replace confirmed", existing: true, answer: true, wantAsked: true},
		{name: "replace declined", existing: true, answer: false, wantAsked: true, wantErr: types.ErrUserDeclined, wantOld: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "target")
			if tt.existing {
				require.NoError(t, os.Mkdir(dir, 0755))
				touch(t, dir, "old.jpg")
			}

			asked := ""
			err := ConfirmAndReplace(dir, func(q string) bool {
				asked = q
				return tt.answer
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAsked, asked != "")
			if tt.wantAsked {
				assert.Contains(t, asked, dir)
			}

			exists, err := CheckTarget(filepath.Join(dir, "old.jpg"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOld, exists)

			exists, err = CheckTarget(dir)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

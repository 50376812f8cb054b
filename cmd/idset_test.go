package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/vocprep/idset"
	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/ui"
	"github.com/lepinkainen/vocprep/utils"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

func TestSplitData(t *testing.T) {
	dir := t.TempDir()
	anno := filepath.Join(dir, "Annotations")
	writeFiles(t, anno, "a.xml", "b.xml", "c.xml", "d.xml", "e.xml", "readme.txt")

	c := &SplitDataCmd{AnnoDir: anno, Split: 0.6, OutDir: filepath.Join(dir, "lists"), Seed: 1, AnnoPatterns: []string{"*.xml"}}
	var out bytes.Buffer
	require.NoError(t, c.Run(testContext(&out, ui.AlwaysYes)))

	tv, err := idset.ReadFile(filepath.Join(dir, "lists", idset.TrainvalFile))
	require.NoError(t, err)
	te, err := idset.ReadFile(filepath.Join(dir, "lists", idset.TestFile))
	require.NoError(t, err)

	assert.Len(t, tv, 3)
	assert.Len(t, te, 2)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, append(tv, te...))
	assert.Contains(t, out.String(), "Trainval/Test Split: 0.6 / 0.4")
}

func TestSplitData_Declined(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, filepath.Join(dir, "Annotations"), "a.xml")

	c := &SplitDataCmd{AnnoDir: filepath.Join(dir, "Annotations"), Split: 0.8, OutDir: dir, Seed: -1, AnnoPatterns: []string{"*.xml"}}
	err := c.Run(testContext(io.Discard, ui.AlwaysNo))
	assert.ErrorIs(t, err, types.ErrUserDeclined)
	assert.NoFileExists(t, filepath.Join(dir, idset.TrainvalFile))
}

func TestSplitData_InvalidRatioBeforePrompt(t *testing.T) {
	asked := false
	c := &SplitDataCmd{AnnoDir: t.TempDir(), Split: 1.2, OutDir: t.TempDir(), AnnoPatterns: []string{"*.xml"}}

	err := c.Run(testContext(io.Discard, func(string) bool { asked = true; return true }))
	require.Error(t, err)
	assert.True(t, types.IsInvalidArgument(err))
	assert.False(t, asked)
}

func TestSplitData_MissingAnnotations(t *testing.T) {
	c := &SplitDataCmd{AnnoDir: filepath.Join(t.TempDir(), "nope"), Split: 0.8, OutDir: t.TempDir(), AnnoPatterns: []string{"*.xml"}}
	err := c.Run(testContext(io.Discard, ui.AlwaysYes))
	assert.True(t, types.IsNotFound(err))
}

func TestJoinDataLists(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, idset.WriteFile(a, []string{"1", "2", "3"}))
	require.NoError(t, idset.WriteFile(b, []string{"3", "4"}))

	target := filepath.Join(dir, "join_trainval.txt")
	c := &JoinDataListsCmd{IDFiles: []string{a, b}, Fname: target, Seed: 3}
	require.NoError(t, c.Run(testContext(io.Discard, ui.AlwaysYes)))

	joined, err := idset.ReadFile(target)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, joined)
}

func TestJoinDataLists_MissingFile(t *testing.T) {
	dir := t.TempDir()
	c := &JoinDataListsCmd{IDFiles: []string{filepath.Join(dir, "nope.txt")}, Fname: filepath.Join(dir, "out.txt"), Seed: -1}
	err := c.Run(testContext(io.Discard, ui.AlwaysYes))
	assert.True(t, types.IsNotFound(err))
	assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
}

func newCopyCmd(dir string) *CpAnnoImgsCmd {
	return &CpAnnoImgsCmd{
		ImgDir:       filepath.Join(dir, "images"),
		AnnoDir:      filepath.Join(dir, "Annotations"),
		TargetDir:    filepath.Join(dir, "JPEGImages"),
		IDsFile:      filepath.Join(dir, "ids.txt"),
		Ext:          "jpg",
		AnnoPatterns: []string{"*.xml"},
	}
}

func TestCpAnnoImgs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, filepath.Join(dir, "Annotations"), "a.xml", "b.xml")
	writeFiles(t, filepath.Join(dir, "images"), "a.jpg", "b.jpg", "c.jpg")

	c := newCopyCmd(dir)
	require.NoError(t, c.Run(testContext(io.Discard, ui.AlwaysYes)))

	names, err := utils.ListFiles(c.TargetDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, names)

	ids, err := idset.ReadFile(c.IDsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestCpAnnoImgs_ReplaceDeclined(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, filepath.Join(dir, "Annotations"), "a.xml")
	writeFiles(t, filepath.Join(dir, "images"), "a.jpg")
	writeFiles(t, filepath.Join(dir, "JPEGImages"), "old.jpg")

	c := newCopyCmd(dir)
	err := c.Run(testContext(io.Discard, ui.Scripted(true, false)))
	assert.ErrorIs(t, err, types.ErrUserDeclined)
	assert.FileExists(t, filepath.Join(c.TargetDir, "old.jpg"))
	assert.NoFileExists(t, c.IDsFile)
}

func TestCpAnnoImgs_MissingImage(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, filepath.Join(dir, "Annotations"), "a.xml", "b.xml")
	writeFiles(t, filepath.Join(dir, "images"), "a.jpg")

	c := newCopyCmd(dir)
	err := c.Run(testContext(io.Discard, ui.AlwaysYes))
	require.Error(t, err)
	assert.True(t, types.IsNotFound(err))
	assert.NoFileExists(t, c.IDsFile)

	var out bytes.Buffer
	c.SkipMissing = true
	require.NoError(t, c.Run(testContext(&out, ui.AlwaysYes)))
	assert.Contains(t, out.String(), "1 images missing")

	ids, err := idset.ReadFile(c.IDsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/lepinkainen/vocprep/idset"
	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/ui"
	"github.com/lepinkainen/vocprep/utils"
)

// CpAnnoImgsCmd copies the images that have an annotation into a fresh target
// directory and records their identifiers.
type CpAnnoImgsCmd struct {
	ImgDir       string   `arg:"" name:"imgdir" help:"Source image directory to copy from" type:"path"`
	AnnoDir      string   `name:"annodir" short:"a" help:"Annotation directory" default:"${anno_dir}"`
	TargetDir    string   `name:"targetdir" short:"t" help:"Target image directory, replaced if it exists" default:"${image_dir}"`
	IDsFile      string   `name:"ids-file" help:"File the copied identifiers are written to" default:"ids.txt"`
	Ext          string   `help:"Image file extension" default:"${image_ext}"`
	AnnoPatterns []string `name:"anno-pattern" help:"Annotation file name patterns" default:"${anno_patterns}"`
	SkipMissing  bool     `help:"Skip and report identifiers without a source image instead of failing"`
}

func (cmd *CpAnnoImgsCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	patterns, err := utils.ParsePatterns(cmd.AnnoPatterns)
	if err != nil {
		return &types.InvalidArgumentError{Arg: "anno-pattern", Reason: err.Error()}
	}

	fmt.Fprintf(out, "Annotations Dir: %s\nSource Image Dir: %s\nTarget Image Dir: %s\n\n", cmd.AnnoDir, cmd.ImgDir, cmd.TargetDir)
	if err := appCtx.Ask("Ready to copy images using these parameters. Proceed?"); err != nil {
		return err
	}

	ids, err := idset.Derive(cmd.AnnoDir, patterns)
	if err != nil {
		return err
	}

	if err := idset.ConfirmAndReplace(cmd.TargetDir, func(q string) bool { return appCtx.Ask(q) == nil }); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created Directory: %s\n\n", cmd.TargetDir)

	bar := ui.NewCopyBar(out, len(ids))
	report, err := idset.CopyMatching(ids, cmd.ImgDir, cmd.TargetDir, idset.CopyOptions{
		Ext:         utils.NormalizeExt(cmd.Ext),
		SkipMissing: cmd.SkipMissing,
		OnCopied:    func(int, int, string) { _ = bar.Add(1) },
		Logger:      appCtx.Log(),
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	copied := ids
	if len(report.Missing) > 0 {
		copied = without(ids, report.Missing)
		fmt.Fprintln(out, ui.WarnStyle.Render(fmt.Sprintf("⚠️  %d images missing in %s", len(report.Missing), cmd.ImgDir)))
		for _, id := range report.Missing {
			fmt.Fprintf(out, "  - %s\n", id)
		}
	}

	if err := idset.WriteFile(cmd.IDsFile, copied); err != nil {
		return err
	}
	fmt.Fprintf(out, "File Saved: %s\n", filepath.Clean(cmd.IDsFile))
	fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("✅ Copy complete: %d images", report.Copied)))
	return nil
}

// without returns ids minus drop, keeping order
func without(ids, drop []string) []string {
	skip := make(map[string]struct{}, len(drop))
	for _, id := range drop {
		skip[id] = struct{}{}
	}
	kept := make([]string, 0, len(ids)-len(drop))
	for _, id := range ids {
		if _, ok := skip[id]; !ok {
			kept = append(kept, id)
		}
	}
	return kept
}

package cmd

import (
	"fmt"

	"github.com/lepinkainen/vocprep/idset"
	"github.com/lepinkainen/vocprep/imgsim"
	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/ui"
	"github.com/lepinkainen/vocprep/utils"
)

// CheckLeaksCmd reports test images that are identical or perceptually close
// to a trainval image
type CheckLeaksCmd struct {
	ImgDir    string `arg:"" name:"imgdir" help:"Image directory the lists refer to" type:"path"`
	Trainval  string `help:"Trainval identifier list" default:"trainval.txt" type:"path"`
	Test      string `help:"Test identifier list" default:"test.txt" type:"path"`
	Threshold int    `help:"Hamming distance threshold for similarity (0-64)" default:"5"`
	Ext       string `help:"Image file extension" default:"${image_ext}"`
}

func (cmd *CheckLeaksCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	if cmd.Threshold < 0 || cmd.Threshold > 64 {
		return &types.InvalidArgumentError{Arg: "threshold", Reason: fmt.Sprintf("must be in [0,64], got %d", cmd.Threshold)}
	}

	trainIDs, err := idset.ReadFile(cmd.Trainval)
	if err != nil {
		return err
	}
	testIDs, err := idset.ReadFile(cmd.Test)
	if err != nil {
		return err
	}

	ext := utils.NormalizeExt(cmd.Ext)
	fmt.Fprintf(out, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("Calculating perceptual hashes for %d images...", len(trainIDs)+len(testIDs))))

	bar := ui.NewCopyBar(out, len(trainIDs)+len(testIDs))
	bar.Describe("hashing")
	tick := func() { _ = bar.Add(1) }

	trainval, err := imgsim.HashIDs(trainIDs, cmd.ImgDir, ext, tick)
	if err != nil {
		return err
	}
	test, err := imgsim.HashIDs(testIDs, cmd.ImgDir, ext, tick)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	leaks, err := imgsim.FindLeaks(trainval, test, cmd.Threshold)
	if err != nil {
		return err
	}

	if len(leaks) == 0 {
		fmt.Fprintf(out, "%s\n", ui.SuccessStyle.Render("✅ No test images found within threshold of trainval"))
		return nil
	}

	fmt.Fprintf(out, "%s\n", ui.WarnStyle.Render(fmt.Sprintf("⚠️  %d of %d test images leak from trainval (threshold: %d):", len(leaks), len(test), cmd.Threshold)))
	for _, l := range leaks {
		if l.Exact {
			fmt.Fprintf(out, "🎯 Identical: %s ↔ %s\n", l.Test, l.Trainval)
			continue
		}
		fmt.Fprintf(out, "🎯 Similar (distance %d): %s ↔ %s\n", l.Distance, l.Test, l.Trainval)
	}
	return nil
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/lepinkainen/vocprep/idset"
	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

// SplitDataCmd writes shuffled trainval.txt / test.txt lists for an annotation directory
type SplitDataCmd struct {
	AnnoDir      string   `name:"annodir" short:"a" help:"Annotation directory" default:"${anno_dir}"`
	Split        float64  `name:"trainsplit" short:"s" help:"Fraction of the dataset that goes to trainval; the rest goes to test" default:"${split_ratio}"`
	OutDir       string   `name:"out-dir" short:"o" help:"Directory the lists are written to" default:"." type:"path"`
	Seed         int64    `help:"Shuffle seed; negative means random" default:"${seed}"`
	AnnoPatterns []string `name:"anno-pattern" help:"Annotation file name patterns" default:"${anno_patterns}"`
}

func (cmd *SplitDataCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	if err := idset.ValidateRatio(cmd.Split); err != nil {
		return err
	}
	patterns, err := utils.ParsePatterns(cmd.AnnoPatterns)
	if err != nil {
		return &types.InvalidArgumentError{Arg: "anno-pattern", Reason: err.Error()}
	}

	fmt.Fprintf(out, "Annotation Dir: %s\nTrainval/Test Split: %g / %g\n", cmd.AnnoDir, cmd.Split, 1-cmd.Split)
	if err := appCtx.Ask("Ready to create data lists using the following parameters. Proceed?"); err != nil {
		return err
	}

	ids, err := idset.Derive(cmd.AnnoDir, patterns)
	if err != nil {
		return err
	}

	split, err := idset.SplitIDs(ids, cmd.Split, idset.NewShuffler(cmd.Seed))
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(cmd.OutDir); err != nil {
		return err
	}
	if err := idset.WriteSplit(cmd.OutDir, split); err != nil {
		return err
	}

	fmt.Fprintf(out, "File Saved: %s (%d ids)\n", filepath.Join(cmd.OutDir, idset.TrainvalFile), len(split.Trainval))
	fmt.Fprintf(out, "File Saved: %s (%d ids)\n", filepath.Join(cmd.OutDir, idset.TestFile), len(split.Test))
	return nil
}

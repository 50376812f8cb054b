package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lepinkainen/vocprep/idset"
	"github.com/lepinkainen/vocprep/types"
)

// JoinDataListsCmd merges identifier lists into one deduplicated, shuffled list
type JoinDataListsCmd struct {
	IDFiles []string `arg:"" name:"idfiles" help:"Identifier list files to join" type:"path"`
	Fname   string   `name:"fname" short:"f" help:"Output file" default:"${join_file}"`
	Seed    int64    `help:"Shuffle seed; negative means random" default:"${seed}"`
}

func (cmd *JoinDataListsCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	fmt.Fprintln(out, "Files to join:")
	for _, f := range cmd.IDFiles {
		fmt.Fprintln(out, f)
	}
	fmt.Fprintf(out, "\nTarget file: %s\n\n", cmd.Fname)
	if err := appCtx.Ask("Ready to join files using these parameters. Proceed?"); err != nil {
		return err
	}

	lists := make([][]string, 0, len(cmd.IDFiles))
	for _, f := range cmd.IDFiles {
		ids, err := idset.ReadFile(f)
		if err != nil {
			return err
		}
		appCtx.Log().Debug("read id list", zap.String("file", f), zap.Int("ids", len(ids)))
		lists = append(lists, ids)
	}

	joined, err := idset.Join(lists, idset.NewShuffler(cmd.Seed))
	if err != nil {
		return err
	}
	if err := idset.WriteFile(cmd.Fname, joined); err != nil {
		return err
	}

	fmt.Fprintf(out, "File Saved: %s (%d ids)\n", cmd.Fname, len(joined))
	return nil
}

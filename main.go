package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/vocprep/cmd"
	"github.com/lepinkainen/vocprep/config"
	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/ui"
	"github.com/lepinkainen/vocprep/utils"
)

var Version = "dev"

type CLI struct {
	Yes      bool   `short:"y" help:"Answer yes to every confirmation prompt" default:"${assume_yes}"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"${log_level}"`
	EnvFile  string `name:"env-file" help:"Load configuration from this env file instead of .env" type:"path"`

	ExtractFrames cmd.ExtractFramesCmd `cmd:"" name:"extractFrames" help:"Extract every Nth frame of each video in a directory tree as JPEG images"`
	CpAnnoImgs    cmd.CpAnnoImgsCmd    `cmd:"" name:"cpAnnoImgs" help:"Copy image files corresponding to file names in the Annotation directory"`
	SplitData     cmd.SplitDataCmd     `cmd:"" name:"splitData" help:"Create shuffled trainval / test data splits"`
	JoinDataLists cmd.JoinDataListsCmd `cmd:"" name:"joinDataLists" help:"Concatenate id lists, remove duplicates and shuffle"`
	CheckLeaks    cmd.CheckLeaksCmd    `cmd:"" name:"checkLeaks" help:"Find test images that are identical or perceptually close to trainval images"`
}

// exitCode maps every failure, kong's usage errors included, to status 1
func exitCode(code int) int {
	if code != 0 {
		return 1
	}
	return 0
}

func newParser(cli *CLI, cfg *config.Config, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("vocprep"),
		kong.Description("Data munging utilities for video frames and PASCAL VOC formatted datasets"),
		kong.UsageOnError(),
		kong.Vars(cfg.Vars()),
		kong.Exit(func(code int) { os.Exit(exitCode(code)) }),
	}
	return kong.New(cli, append(opts, options...)...)
}

func main() {
	cfg, err := config.Load(config.LookupEnvFile(os.Args[1:]))
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}

	var cli CLI
	parser, err := newParser(&cli, cfg)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	os.Exit(run(ctx, &cli, cfg, os.Stdin, os.Stdout))
}

// run executes the selected command and returns the process exit status
func run(ctx *kong.Context, cli *CLI, cfg *config.Config, stdin *os.File, stdout io.Writer) int {
	logger, err := utils.NewLogger(cli.LogLevel)
	if err != nil {
		return reportError(os.Stderr, err)
	}
	defer func() { _ = logger.Sync() }()

	confirm := ui.Interactive(stdin, stdout)
	if cli.Yes {
		confirm = ui.AlwaysYes
	}

	appCtx := &types.AppContext{
		Version: Version,
		Config:  cfg,
		Logger:  logger,
		Confirm: confirm,
		Out:     stdout,
	}

	if err := ctx.Run(appCtx); err != nil {
		return reportError(os.Stderr, err)
	}
	return 0
}

// reportError prints err for the user and returns the exit status
func reportError(w io.Writer, err error) int {
	if types.IsUserDeclined(err) {
		fmt.Fprintln(w, "Exiting. Good Bye.")
		return 1
	}
	fmt.Fprintf(w, "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
	return 1
}

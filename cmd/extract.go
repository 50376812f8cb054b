package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/ui"
	"github.com/lepinkainen/vocprep/utils"
	"github.com/lepinkainen/vocprep/video"
)

// Swappable so tests can run without ffmpeg.
var (
	requireTools = utils.ValidateFFmpegDependencies
	newOpener    = func(logger *zap.Logger) video.Opener { return video.NewFFmpegOpener(logger) }
	stdoutIsTTY  = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// ExtractFramesCmd samples every Nth frame of each video under Source into
// Target/<video id>/<video id>_NNNNNN.jpg.
type ExtractFramesCmd struct {
	Source  string   `arg:"" name:"source" help:"Directory tree containing the videos" type:"path"`
	Target  string   `arg:"" name:"target" help:"Directory to store the extracted images in" type:"path"`
	Frate   int      `name:"frate" help:"Keep one frame out of every N decoded frames" default:"${frame_rate}"`
	Workers int      `help:"Number of videos decoded in parallel (0 = auto)" default:"${workers}"`
	Pattern []string `help:"Video file name patterns" default:"${video_patterns}"`
	Quality int      `help:"JPEG quality (1-100)" default:"${jpeg_quality}"`
}

func (cmd *ExtractFramesCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()
	logger := appCtx.Log()

	rate := video.SampleRate(cmd.Frate)
	if err := rate.Validate(); err != nil {
		return err
	}
	if cmd.Quality < 1 || cmd.Quality > 100 {
		return &types.InvalidArgumentError{Arg: "quality", Reason: fmt.Sprintf("must be in [1,100], got %d", cmd.Quality)}
	}
	patterns, err := utils.ParsePatterns(cmd.Pattern)
	if err != nil {
		return &types.InvalidArgumentError{Arg: "pattern", Reason: err.Error()}
	}
	if err := requireTools(); err != nil {
		return err
	}

	sources, err := video.Enumerate(cmd.Source, patterns)
	if err != nil {
		return err
	}

	workers := cmd.Workers
	if workers <= 0 {
		workers = utils.DefaultWorkers(0, runtime.NumCPU(), cmd.Source, cmd.Target)
		if workers == 1 && utils.AnyOnNetworkDrive(cmd.Source, cmd.Target) {
			fmt.Fprintf(out, "⚠️  Network drive detected, using 1 worker for optimal performance\n")
		}
	}
	workers = max(1, min(workers, len(sources)))

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("vocprep %s", appCtx.VersionOrDefault())))
	fmt.Fprintf(out, "data path: %s\ntarget path: %s\n", cmd.Source, cmd.Target)
	fmt.Fprintln(out, ui.ProcessingStyle.Render(fmt.Sprintf("Extracting every %d. frame from %d videos with %d workers", cmd.Frate, len(sources), workers)))

	if len(sources) == 0 {
		fmt.Fprintln(out, ui.WarnStyle.Render("No video files found"))
		return nil
	}

	sampler := video.NewSampler(newOpener(logger), video.JPEGWriter{Quality: cmd.Quality}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var res *video.BatchResult
	if workers > 1 && stdoutIsTTY() {
		res, err = cmd.runWithTUI(ctx, appCtx, sampler, sources, rate, workers)
	} else {
		obs := ui.NewProgressObserver(out, len(sources))
		res, err = sampler.RunBatch(ctx, sources, cmd.Target, rate, workers, obs)
		obs.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Extracted %d images from %d videos", res.Images, len(res.Videos)-res.Failed)))
	if res.Failed > 0 {
		fmt.Fprintln(out, ui.WarnStyle.Render(fmt.Sprintf("⚠️  %d videos failed", res.Failed)))
		for _, v := range res.Videos {
			if v.Failed() {
				fmt.Fprintf(out, "  - %s: %v\n", v.Source.Path, v.Err)
			}
		}
	}
	return nil
}

// runWithTUI runs the batch in the background and renders it with bubbletea
func (cmd *ExtractFramesCmd) runWithTUI(ctx context.Context, appCtx *types.AppContext, sampler *video.Sampler, sources []video.VideoSource, rate video.SampleRate, workers int) (*video.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewExtractModel(len(sources), workers, appCtx.VersionOrDefault(), cancel)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	type batchOutcome struct {
		res *video.BatchResult
		err error
	}
	done := make(chan batchOutcome, 1)
	go func() {
		res, err := sampler.RunBatch(ctx, sources, cmd.Target, rate, workers, ui.NewProgramObserver(p))
		p.Send(ui.BatchDoneMsg{Result: res, Err: err})
		done <- batchOutcome{res, err}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		appCtx.Log().Debug("tui stopped", zap.Error(err))
	}

	outcome := <-done
	return outcome.res, outcome.err
}

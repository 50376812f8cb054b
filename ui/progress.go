package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/vocprep/video"
)

// ProgressObserver renders a sequential extraction as a single bar over the
// videos of the batch.
type ProgressObserver struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	out    io.Writer
	failed []video.VideoResult
}

// NewProgressObserver creates a bar for numVideos videos writing to w
func NewProgressObserver(w io.Writer, numVideos int) *ProgressObserver {
	bar := progressbar.NewOptions(numVideos,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("extracting"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressObserver{bar: bar, out: w}
}

func (o *ProgressObserver) OnVideoStart(_ int, src video.VideoSource, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bar.Describe(src.ID)
}

func (o *ProgressObserver) OnImageWritten(_ int, src video.VideoSource, images int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bar.Describe(fmt.Sprintf("%s: %d images", src.ID, images))
}

func (o *ProgressObserver) OnVideoDone(_ int, res video.VideoResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if res.Failed() {
		o.failed = append(o.failed, res)
	}
	_ = o.bar.Add(1)
}

// Finish completes the bar and lists the failed videos
func (o *ProgressObserver) Finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	_ = o.bar.Finish()
	for _, res := range o.failed {
		fmt.Fprintln(o.out, ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", res.Source.ID, res.Err)))
	}
}

// NewCopyBar creates the bar used while copying images
func NewCopyBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("copying"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

package video

import (
	"context"
	"fmt"
	"image"

	"github.com/lepinkainen/vocprep/types"
)

// VideoSource is one enumerated input video. ID is the file's base name
// without extension and names both the output directory and the images.
type VideoSource struct {
	ID   string
	Path string
}

// SampleRate keeps every Nth decoded frame
type SampleRate int

// Validate rejects rates below 1
func (r SampleRate) Validate() error {
	if r < 1 {
		return &types.InvalidArgumentError{Arg: "frame rate", Reason: fmt.Sprintf("must be >= 1, got %d", int(r))}
	}
	return nil
}

// Keeps reports whether the frame at raw position rawIndex is retained
func (r SampleRate) Keeps(rawIndex int) bool {
	return rawIndex%int(r) == 0
}

// ExpectedImages is ceil(frames / rate), the number of images a video with
// the given decoded frame count produces.
func (r SampleRate) ExpectedImages(frames int) int {
	if frames <= 0 {
		return 0
	}
	return (frames + int(r) - 1) / int(r)
}

// Decoder reads frames from one video in decode order. ReadFrame returns
// io.EOF once the stream is exhausted.
type Decoder interface {
	ReadFrame() (image.Image, error)
	Close() error
}

// FrameCounter is implemented by decoders that know the stream's frame count up front
type FrameCounter interface {
	FrameCount() int
}

// Opener opens a video for sequential decoding
type Opener interface {
	Open(ctx context.Context, path string) (Decoder, error)
}

// ImageWriter persists a single frame
type ImageWriter interface {
	WriteImage(path string, img image.Image) error
}

// VideoResult is the outcome of sampling one video
type VideoResult struct {
	Source    VideoSource
	OutputDir string
	Frames    int // decoded frames
	Images    int // frames written
	Err       error
}

// Failed reports whether the video was abandoned
func (r VideoResult) Failed() bool { return r.Err != nil }

// BatchResult aggregates a batch run
type BatchResult struct {
	Videos []VideoResult
	Images int
	Failed int
}

// Observer receives progress events from a batch. Implementations must be
// safe for concurrent use; events come from every worker.
type Observer interface {
	OnVideoStart(worker int, src VideoSource, expectedImages int)
	OnImageWritten(worker int, src VideoSource, images int)
	OnVideoDone(worker int, res VideoResult)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) OnVideoStart(int, VideoSource, int) {}
func (NopObserver) OnImageWritten(int, VideoSource, int) {}
func (NopObserver) OnVideoDone(int, VideoResult)         {}

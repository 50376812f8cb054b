package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/lepinkainen/vocprep/types"
)

// FFmpegOpener decodes videos by streaming raw RGB frames out of an ffmpeg
// child process. Every frame ffmpeg decodes is emitted exactly once.
type FFmpegOpener struct {
	Logger *zap.Logger
}

// NewFFmpegOpener creates an opener that logs through logger
func NewFFmpegOpener(logger *zap.Logger) *FFmpegOpener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegOpener{Logger: logger}
}

// decodeArgs builds the ffmpeg argument list for a raw rgb24 frame stream on stdout
func decodeArgs(videoFile string) []string {
	// frame size comes from ffprobe's v:0 as stored, so decode that stream unrotated
	return ffmpeg.Input(videoFile, ffmpeg.KwArgs{"noautorotate": ""}).
		Output("pipe:", ffmpeg.KwArgs{
			"map":      "0:v:0",
			"f":        "rawvideo",
			"pix_fmt":  "rgb24",
			"vsync":    "0",
			"loglevel": "error",
		}).
		GetArgs()
}

// Open probes the video and starts the decoding process
func (o *FFmpegOpener) Open(ctx context.Context, videoFile string) (Decoder, error) {
	if _, err := os.Stat(videoFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &types.NotFoundError{Path: videoFile, Err: err}
		}
		return nil, &types.DecodeError{Path: videoFile, Err: err}
	}

	info, err := ProbeVideo(ctx, videoFile)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", decodeArgs(videoFile)...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &types.DecodeError{Path: videoFile, Err: fmt.Errorf("stdout pipe: %w", err)}
	}
	if err := cmd.Start(); err != nil {
		return nil, &types.DecodeError{Path: videoFile, Err: fmt.Errorf("start ffmpeg: %w", err)}
	}

	o.Logger.Debug("decoder opened",
		zap.String("path", videoFile),
		zap.String("codec", info.Codec),
		zap.String("resolution", info.Resolution()),
		zap.Int("frames", info.Frames),
	)

	return &ffmpegDecoder{
		path:   videoFile,
		info:   info,
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		buf:    make([]byte, info.Width*info.Height*3),
	}, nil
}

type ffmpegDecoder struct {
	path   string
	info   *StreamInfo
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	buf    []byte

	eof      bool
	waitOnce sync.Once
	waitErr  error
}

func (d *ffmpegDecoder) FrameCount() int { return d.info.Frames }

func (d *ffmpegDecoder) ReadFrame() (image.Image, error) {
	if d.eof {
		return nil, io.EOF
	}

	_, err := io.ReadFull(d.stdout, d.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		d.eof = true
		// a clean end of stream still has to come with a clean exit
		if werr := d.wait(); werr != nil {
			return nil, classifyToolError(d.path, werr, d.stderr.String())
		}
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		d.eof = true
		_ = d.wait()
		return nil, &types.DecodeError{Path: d.path, Err: fmt.Errorf("truncated frame: %s", extractFirstLine(d.stderr.String()))}
	default:
		d.eof = true
		return nil, &types.DecodeError{Path: d.path, Err: err}
	}

	return rgb24ToRGBA(d.buf, d.info.Width, d.info.Height), nil
}

// Close stops ffmpeg if it is still running and reaps it
func (d *ffmpegDecoder) Close() error {
	d.eof = true
	if d.cmd.ProcessState == nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.wait()
	return nil
}

func (d *ffmpegDecoder) wait() error {
	d.waitOnce.Do(func() {
		d.waitErr = d.cmd.Wait()
	})
	return d.waitErr
}

func rgb24ToRGBA(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i+2 < len(buf); i, j = i+3, j+4 {
		img.Pix[j] = buf[i]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

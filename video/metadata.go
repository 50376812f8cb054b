package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// StreamInfo describes the first video stream of a file
type StreamInfo struct {
	Codec    string
	Width    int
	Height   int
	Frames   int     // 0 when the container does not record it
	Duration float64 // seconds, 0 when unknown
}

// Resolution formats the frame size as WxH
func (s *StreamInfo) Resolution() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

type probeOutput struct {
	Streams []struct {
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		NbFrames  string `json:"nb_frames"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// ProbeVideo reads the first video stream's properties using ffprobe
func ProbeVideo(ctx context.Context, videoFile string) (*StreamInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,nb_frames,duration",
		"-of", "json", "--", videoFile)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, classifyToolError(videoFile, fmt.Errorf("ffprobe: %w", err), stderr.String())
	}

	return parseProbeOutput(videoFile, output)
}

func parseProbeOutput(videoFile string, output []byte) (*StreamInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, classifyToolError(videoFile, fmt.Errorf("parse ffprobe output: %w", err), "")
	}
	if len(probe.Streams) == 0 {
		return nil, classifyToolError(videoFile, fmt.Errorf("no video stream"), "")
	}

	s := probe.Streams[0]
	if s.Width <= 0 || s.Height <= 0 {
		return nil, classifyToolError(videoFile, fmt.Errorf("invalid resolution: %dx%d", s.Width, s.Height), "")
	}

	info := &StreamInfo{
		Codec:  s.CodecName,
		Width:  s.Width,
		Height: s.Height,
	}
	// nb_frames and duration are "N/A" or absent for some containers
	if n, err := strconv.Atoi(strings.TrimSpace(s.NbFrames)); err == nil && n > 0 {
		info.Frames = n
	}
	if d, err := strconv.ParseFloat(strings.TrimSpace(s.Duration), 64); err == nil && d > 0 {
		info.Duration = d
	}

	return info, nil
}

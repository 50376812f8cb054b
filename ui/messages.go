package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/vocprep/video"
)

// TUI Message Types for worker communication
type VideoStartedMsg struct {
	WorkerID int
	ID       string
	Expected int // 0 when the frame count is unknown
}

type ImageWrittenMsg struct {
	WorkerID int
	ID       string
	Images   int
}

type VideoDoneMsg struct {
	WorkerID int
	Result   video.VideoResult
}

// BatchDoneMsg ends the program once the batch returns
type BatchDoneMsg struct {
	Result *video.BatchResult
	Err    error
}

// ProgramObserver forwards sampler events to a running tea program
type ProgramObserver struct {
	Send func(tea.Msg)
}

// NewProgramObserver returns an observer that sends to p
func NewProgramObserver(p *tea.Program) *ProgramObserver {
	return &ProgramObserver{Send: p.Send}
}

func (o *ProgramObserver) OnVideoStart(worker int, src video.VideoSource, expected int) {
	o.Send(VideoStartedMsg{WorkerID: worker, ID: src.ID, Expected: expected})
}

func (o *ProgramObserver) OnImageWritten(worker int, src video.VideoSource, images int) {
	o.Send(ImageWrittenMsg{WorkerID: worker, ID: src.ID, Images: images})
}

func (o *ProgramObserver) OnVideoDone(worker int, res video.VideoResult) {
	o.Send(VideoDoneMsg{WorkerID: worker, Result: res})
}

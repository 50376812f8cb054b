package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// VideoLogEntry is one finished video in the list
type VideoLogEntry struct {
	ID     string
	Images int
	Error  string
}

func (v VideoLogEntry) FilterValue() string { return v.ID }
func (v VideoLogEntry) Title() string       { return v.ID }
func (v VideoLogEntry) Description() string {
	if v.Error != "" {
		return fmt.Sprintf("❌ %s", v.Error)
	}
	return fmt.Sprintf("✓ %d images", v.Images)
}

// Worker state tracking
type WorkerState struct {
	ID       int
	Video    string
	Images   int
	Expected int
	Status   string // "idle", "extracting"
}

func (w *WorkerState) progress() float64 {
	if w.Expected <= 0 {
		return 0
	}
	return min(float64(w.Images)/float64(w.Expected), 1)
}

// ExtractModel renders a parallel frame extraction
type ExtractModel struct {
	totalVideos int
	doneVideos  int
	images      int
	failed      int
	workers     []*WorkerState
	entries     []VideoLogEntry

	overallProgress progress.Model
	workerProgress  []progress.Model
	videoList       list.Model

	width  int
	height int

	// cancel stops the batch when the user quits
	cancel   func()
	quitting bool
	finished bool
	err      error

	Version string
}

// NewExtractModel creates the model for numVideos videos and numWorkers workers
func NewExtractModel(numVideos, numWorkers int, version string, cancel func()) ExtractModel {
	workerProgs := make([]progress.Model, numWorkers)
	workers := make([]*WorkerState, numWorkers)
	for i := range workers {
		workerProgs[i] = progress.New(progress.WithDefaultGradient())
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	videoList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	videoList.Title = "Finished Videos"

	if cancel == nil {
		cancel = func() {}
	}

	return ExtractModel{
		totalVideos:     numVideos,
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		workerProgress:  workerProgs,
		videoList:       videoList,
		cancel:          cancel,
		Version:         version,
	}
}

// Init implements tea.Model
func (m ExtractModel) Init() tea.Cmd {
	return nil
}

// Err returns the batch error once the batch is done
func (m ExtractModel) Err() error { return m.err }

// Update implements tea.Model
func (m ExtractModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.videoList.SetSize(msg.Width-4, msg.Height/3)

	case VideoStartedMsg:
		if w := m.worker(msg.WorkerID); w != nil {
			w.Video = msg.ID
			w.Images = 0
			w.Expected = msg.Expected
			w.Status = "extracting"
		}

	case ImageWrittenMsg:
		if w := m.worker(msg.WorkerID); w != nil {
			w.Images = msg.Images
		}

	case VideoDoneMsg:
		if w := m.worker(msg.WorkerID); w != nil {
			w.Status = "idle"
			w.Video = ""
			w.Images = 0
		}

		m.doneVideos++
		m.images += msg.Result.Images
		entry := VideoLogEntry{ID: msg.Result.Source.ID, Images: msg.Result.Images}
		if msg.Result.Failed() {
			m.failed++
			entry.Error = msg.Result.Err.Error()
		}
		m.entries = append(m.entries, entry)

		items := make([]list.Item, len(m.entries))
		for i, e := range m.entries {
			items[i] = e
		}
		m.videoList.SetItems(items)

	case BatchDoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m ExtractModel) worker(id int) *WorkerState {
	if id < 0 || id >= len(m.workers) {
		return nil
	}
	return m.workers[id]
}

// View implements tea.Model
func (m ExtractModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("vocprep %s", m.Version))

	overallPercent := 0.0
	if m.totalVideos > 0 {
		overallPercent = float64(m.doneVideos) / float64(m.totalVideos)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d videos, %d images)",
		m.overallProgress.ViewAs(overallPercent),
		m.doneVideos,
		m.totalVideos,
		m.images)
	if m.failed > 0 {
		overallView += " " + ErrorStyle.Render(fmt.Sprintf("%d failed", m.failed))
	}

	workerViews := []string{"Worker Status:"}
	for i, w := range m.workers {
		status := fmt.Sprintf("Worker %d: ", i+1)
		if w.Status == "extracting" {
			status += fmt.Sprintf("%s %s (%d)", m.workerProgress[i].ViewAs(w.progress()), w.Video, w.Images)
		} else {
			status += w.Status
		}
		workerViews = append(workerViews, status)
	}

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.videoList.View(),
		"Controls: [q] Quit",
	}

	return strings.Join(sections, "\n\n")
}

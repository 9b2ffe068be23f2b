package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"notesift/internal/notes"
	"notesift/internal/workflow"
)

func isInteractive(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// progressRenderer feeds workflow progress into a terminal progress bar. The
// bar is created on the first tick because the total is not known up front.
type progressRenderer struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func (p *progressRenderer) update(progress workflow.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		p.bar = progressbar.NewOptions(progress.Total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(progress.Label),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	if progress.Label != "" {
		p.bar.Describe(progress.Label)
	}
	_ = p.bar.Set(progress.Completed)
}

func (p *progressRenderer) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func stageLabel(stage workflow.Stage) string {
	return fmt.Sprintf("%s (stage %d of %d)", stage.Label(), stage.Index()+1, len(workflow.AllStages()))
}

func truncate(value string, max int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}

func selectionMark(state workflow.State, note notes.CustomerNote) string {
	if state.IsSelected(note.NoteID) {
		return "x"
	}
	return " "
}

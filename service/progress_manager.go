package service

import (
	"io"
	"os"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressManagerImpl draws one progress bar per report run
type ProgressManagerImpl struct {
	writer io.Writer
	bars   []*progressbar.ProgressBar
}

// NewProgressManager returns a bar-drawing manager writing to w when enabled
// and w is an interactive terminal outside CI; otherwise a no-op manager.
func NewProgressManager(w io.Writer, enabled bool) domain.ProgressManager {
	if enabled && os.Getenv("CI") == "" && IsTerminal(w) {
		return &ProgressManagerImpl{writer: w}
	}
	return &NoOpProgressManager{}
}

// IsTerminal reports whether stream is a file attached to an interactive
// terminal. Buffers and pipes are never terminals.
func IsTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// StartTask starts a bar counting total report sections
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	pm.bars = append(pm.bars, bar)
	return &TaskProgressImpl{bar: bar, title: description}
}

// Close finishes any bar still on screen
func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.bars {
		_ = bar.Finish()
	}
	pm.bars = nil
}

// TaskProgressImpl advances a single bar
type TaskProgressImpl struct {
	bar   *progressbar.ProgressBar
	title string
}

func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe shows the name of the section that last finished
func (tp *TaskProgressImpl) Describe(section string) {
	tp.bar.Describe(tp.title + " (" + section + ")")
}

func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager is used for JSON output and non-terminal writers
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}

func (tp *NoOpTaskProgress) Describe(_ string) {}

func (tp *NoOpTaskProgress) Complete() {}

package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type (
	concurrencyMsg struct {
		threads int
		sweeps  int
	}
	unitStartedMsg struct {
		label    string
		strategy string
		unit     int
	}
	reportMsg struct {
		report m.Report
	}
	textMsg struct {
		text string
	}
	finishedMsg struct{}
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := newStartConfig(options)
	model := newTUIModel(config.mode)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	programOptions := []tea.ProgramOption{tea.WithOutput(t.output), tea.WithContext(ctx)}
	if config.mode == ModeTest {
		// Sweeps are not interactive; interrupts go to the command's context.
		programOptions = append(programOptions, tea.WithInput(nil), tea.WithoutSignalHandler())
	}

	t.program = tea.NewProgram(model, programOptions...)
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("TUI stopped", "error", err)
		}
	}(t.program, t.done)

	return nil
}

// Close stops the program and waits for its final render.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(finishedMsg{})
	t.program.Quit()
	<-t.done

	t.program = nil
}

// Wait blocks until the user quits, or returns at once when everything fits
// on screen.
func (t *TUI) Wait(ctx context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(finishedMsg{})

	select {
	case <-t.done:
	case <-ctx.Done():
	}
}

// DisplayEstimation renders the estimation table.
func (t *TUI) DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		t.send(textMsg{text: failStyle.Render("estimation error: ") + err.Error()})
		return err
	}

	t.send(textMsg{text: renderEstimationTable(estimates)})

	return nil
}

// DisplayConcurrencyInfo sets up the progress bar.
func (t *TUI) DisplayConcurrencyInfo(ctx context.Context, threads int, sweeps int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(concurrencyMsg{threads: threads, sweeps: sweeps})
}

// DisplayUnitStarted updates the spinner caption.
func (t *TUI) DisplayUnitStarted(ctx context.Context, label string, strategy string, unit int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(unitStartedMsg{label: label, strategy: strategy, unit: unit})
}

// DisplayReport appends a verdict line and advances the progress bar.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(reportMsg{report: report})
}

// DisplayViolations appends the kept violation examples of report.
func (t *TUI) DisplayViolations(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	if report.Passed() {
		return
	}

	t.send(textMsg{text: renderViolations(report)})
}

// DisplaySummary appends the summary table and pass rate.
func (t *TUI) DisplaySummary(ctx context.Context, reports []m.Report, passRate float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	style := passStyle
	if passRate < 1 {
		style = failStyle
	}

	t.send(textMsg{text: renderSummaryTable(reports) + style.Render(renderPassRate(passRate))})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// tuiModel is the Bubble Tea model shared by all modes.
type tuiModel struct {
	mode     StartMode
	spinner  spinner.Model
	progress progress.Model
	current  string
	threads  int
	sweeps   int
	finished int
	lines    []string
	height   int
	width    int
	offset   int
	done     bool
	quitting bool
}

func newTUIModel(mode StartMode) tuiModel {
	return tuiModel{
		mode:     mode,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (tm tuiModel) Init() tea.Cmd {
	if tm.mode == ModeTest {
		return tm.spinner.Tick
	}

	return nil
}

func (tm tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tm.height = msg.Height
		tm.width = msg.Width

		return tm, nil
	case tea.KeyMsg:
		return tm.handleKeyPress(msg)
	case spinner.TickMsg:
		if tm.done {
			return tm, nil
		}

		var cmd tea.Cmd

		tm.spinner, cmd = tm.spinner.Update(msg)

		return tm, cmd
	case concurrencyMsg:
		tm.threads = msg.threads
		tm.sweeps = msg.sweeps

		return tm, nil
	case unitStartedMsg:
		tm.current = fmt.Sprintf("%s %s unit %d", msg.label, msg.strategy, msg.unit)

		return tm, nil
	case reportMsg:
		tm.finished++
		tm.lines = append(tm.lines, styledReportLine(msg.report))

		return tm, nil
	case textMsg:
		tm.lines = append(tm.lines, strings.Split(strings.TrimRight(msg.text, "\n"), "\n")...)

		return tm, nil
	case finishedMsg:
		tm.done = true
		if !tm.needsPagination() {
			tm.quitting = true
			return tm, tea.Quit
		}

		return tm, nil
	}

	return tm, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (tm tuiModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		tm.quitting = true
		return tm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		tm.quitting = true
		return tm, tea.Quit
	case "down", "j":
		tm.offset = min(tm.offset+1, tm.maxOffset())
	case "up", "k":
		tm.offset = max(tm.offset-1, 0)
	case "g", "home":
		tm.offset = 0
	case "G", "end":
		tm.offset = tm.maxOffset()
	case "d", "pgdown":
		tm.offset = min(tm.offset+tm.itemsPerPage(), tm.maxOffset())
	case "u", "pgup":
		tm.offset = max(tm.offset-tm.itemsPerPage(), 0)
	}

	return tm, nil
}

// itemsPerPage leaves room for the title, progress and footer blocks.
func (tm tuiModel) itemsPerPage() int {
	if tm.height == 0 {
		return 10
	}

	const reserved = 9

	return max(tm.height-reserved, 1)
}

func (tm tuiModel) maxOffset() int {
	return max(len(tm.lines)-tm.itemsPerPage(), 0)
}

func (tm tuiModel) needsPagination() bool {
	return tm.mode != ModeTest && tm.height > 0 && len(tm.lines) > tm.itemsPerPage()
}

func (tm tuiModel) visibleLines() []string {
	switch {
	case tm.quitting, tm.mode == ModeTest && tm.done:
		return tm.lines
	case tm.mode == ModeTest:
		return tm.lines[max(len(tm.lines)-tm.itemsPerPage(), 0):]
	case !tm.needsPagination():
		return tm.lines
	}

	end := min(tm.offset+tm.itemsPerPage(), len(tm.lines))

	return tm.lines[tm.offset:end]
}

func (tm tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Metamorph - Metamorphic Testing"))
	b.WriteString("\n\n")

	if tm.mode == ModeTest && !tm.done {
		tm.renderProgress(&b)
	}

	for _, line := range tm.visibleLines() {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if tm.needsPagination() && !tm.quitting {
		perPage := tm.itemsPerPage()
		fmt.Fprintf(&b, "\n  %s\n", faintStyle.Render(fmt.Sprintf("Page %d/%d | Showing %d-%d of %d",
			tm.offset/perPage+1,
			(len(tm.lines)+perPage-1)/perPage,
			tm.offset+1,
			min(tm.offset+perPage, len(tm.lines)),
			len(tm.lines),
		)))
		fmt.Fprintf(&b, "  %s\n", faintStyle.Render("↑/k: up | ↓/j: down | g: top | G: bottom | q: quit"))
	}

	return b.String()
}

func (tm tuiModel) renderProgress(b *strings.Builder) {
	ratio := 0.0
	if tm.sweeps > 0 {
		ratio = float64(tm.finished) / float64(tm.sweeps)
	}

	fmt.Fprintf(b, "  %s %s\n", tm.spinner.View(), tm.current)
	fmt.Fprintf(b, "  %s %d/%d sweeps, %d worker(s)\n\n", tm.progress.ViewAs(ratio), tm.finished, tm.sweeps, tm.threads)
}

func styledReportLine(report m.Report) string {
	style := passStyle
	if !report.Passed() {
		style = failStyle
	}

	line := renderReportLine(report)

	return style.Render(statusLabel(report)) + strings.TrimPrefix(line, statusLabel(report))
}

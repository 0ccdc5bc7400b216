package controller

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

func update(t *testing.T, model tuiModel, msg tea.Msg) (tuiModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	updated, ok := next.(tuiModel)
	require.True(t, ok)

	return updated, cmd
}

func TestTUIModel_Progress(t *testing.T) {
	model := newTUIModel(ModeTest)

	model, _ = update(t, model, concurrencyMsg{threads: 4, sweeps: 2})
	model, _ = update(t, model, unitStartedMsg{label: "SHA-256", strategy: "bit-flip", unit: 7})
	model, _ = update(t, model, reportMsg{report: m.Report{Label: "SHA-256", Strategy: "bit-flip", Units: m.Fixed(7)}})

	view := model.View()
	assert.Contains(t, view, "SHA-256 bit-flip unit 7")
	assert.Contains(t, view, "1/2 sweeps, 4 worker(s)")
	assert.Contains(t, view, "SHA-256 bit-flip: 0 mutants")
}

func TestTUIModel_FinishedQuitsWhenContentFits(t *testing.T) {
	model := newTUIModel(ModeEstimate)
	model.height = 40

	model, _ = update(t, model, textMsg{text: "one\ntwo\n"})
	model, cmd := update(t, model, finishedMsg{})

	require.NotNil(t, cmd)
	assert.True(t, model.quitting)
	assert.Equal(t, []string{"one", "two"}, model.lines)
}

func TestTUIModel_Pagination(t *testing.T) {
	model := newTUIModel(ModeView)
	model.height = 12

	for range 20 {
		model, _ = update(t, model, textMsg{text: "line"})
	}

	model, cmd := update(t, model, finishedMsg{})
	assert.Nil(t, cmd)
	assert.True(t, model.needsPagination())
	assert.Len(t, model.visibleLines(), 3)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Equal(t, 17, model.offset)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 16, model.offset)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, model.offset)
	assert.Contains(t, model.View(), "Page 1/7")

	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Len(t, model.visibleLines(), 20)
}

func TestTUIModel_TestModeTail(t *testing.T) {
	model := newTUIModel(ModeTest)
	model.height = 12

	for i := range 5 {
		model, _ = update(t, model, reportMsg{report: m.Report{Label: "L", Strategy: "s", Units: m.Fixed(i + 1)}})
	}

	assert.False(t, model.needsPagination())
	assert.Len(t, model.visibleLines(), 3)

	model, _ = update(t, model, finishedMsg{})
	assert.Len(t, model.visibleLines(), 5)
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
}

func TestTUI_NotStarted(t *testing.T) {
	ui := NewTUI(&bytes.Buffer{})
	ctx := context.Background()

	ui.DisplayReport(ctx, m.Report{})
	ui.Wait(ctx)
	ui.Close(ctx)
}

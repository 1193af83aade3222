package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// header and footer take one line each
const chromeHeight = 2

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a Bubble Tea pager for long records. Everything
// short is printed the same way SimpleUI prints it.
type TUI struct {
	*SimpleUI
	output io.Writer
}

// NewTUI creates a new TUI writing to the command output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		SimpleUI: NewSimpleUI(cmd),
		output:   cmd.OutOrStdout(),
	}
}

// DisplayRecord shows the record summary, paging it when it does not fit the terminal.
func (t *TUI) DisplayRecord(ctx context.Context, record *m.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newRecordModel(string(record.Source()), renderRecordTable(record))

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	// If it fits, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.content)
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// recordModel is the Bubble Tea model paging a rendered record.
type recordModel struct {
	title    string
	content  string
	viewport viewport.Model
	height   int
	quitting bool
}

func newRecordModel(title, content string) recordModel {
	vp := viewport.New(0, 0)
	vp.SetContent(content)

	return recordModel{
		title:    title,
		content:  content,
		viewport: vp,
	}
}

func (rm recordModel) resize(width, height int) recordModel {
	rm.height = height
	rm.viewport.Width = width

	rm.viewport.Height = height - chromeHeight
	if rm.viewport.Height < 1 {
		rm.viewport.Height = 1
	}

	return rm
}

// needsPagination reports whether the content is taller than the terminal.
// An unknown terminal height never paginates.
func (rm recordModel) needsPagination() bool {
	if rm.height <= 0 {
		return false
	}

	return strings.Count(rm.content, "\n") > rm.height
}

func (rm recordModel) Init() tea.Cmd {
	return nil
}

func (rm recordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return rm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd

	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm recordModel) View() string {
	if rm.quitting {
		return ""
	}

	footer := fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", rm.viewport.ScrollPercent()*100)

	return titleStyle.Render(rm.title) + "\n" + rm.viewport.View() + "\n" + footerStyle.Render(footer)
}

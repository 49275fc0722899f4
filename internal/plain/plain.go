// Package plain prints a reel to a writer without taking over the terminal.
package plain

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/vim"
)

// Renderer writes each finished terminal line and a frame per closed vim buffer.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	prompt string

	promptStyle lipgloss.Style
	frameStyle  lipgloss.Style
	titleStyle  lipgloss.Style
	styles      map[script.Kind]lipgloss.Style
}

// New creates a renderer on w. Colors follow what w supports.
func New(w io.Writer, prompt string) *Renderer {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle()
	return &Renderer{
		w:           w,
		prompt:      prompt,
		promptStyle: base.Foreground(lipgloss.Color("2")).Bold(true),
		frameStyle:  base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		titleStyle:  base.Foreground(lipgloss.Color("8")),
		styles: map[script.Kind]lipgloss.Style{
			script.KindCommand: base.Bold(true),
			script.KindInfo:    base.Foreground(lipgloss.Color("4")),
			script.KindSuccess: base.Foreground(lipgloss.Color("2")),
			script.KindError:   base.Foreground(lipgloss.Color("1")).Bold(true),
			script.KindLog:     base.Foreground(lipgloss.Color("8")),
			script.KindWarning: base.Foreground(lipgloss.Color("3")),
			script.KindSystem:  base.Foreground(lipgloss.Color("5")),
			script.KindVim:     base,
		},
	}
}

// Attach subscribes the renderer to events.
func (r *Renderer) Attach(events *event.Manager) {
	events.Subscribe(event.TypeLineAdded, func(e event.Event) bool {
		if st, ok := e.Data.(terminal.State); ok && len(st.Lines) > 0 {
			r.Line(st.Lines[len(st.Lines)-1])
		}
		return false
	})
	events.Subscribe(event.TypeVimClosed, func(e event.Event) bool {
		if st, ok := e.Data.(vim.State); ok {
			r.Buffer(st)
		}
		return false
	})
}

// Line prints one terminal line.
func (r *Renderer) Line(line script.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text := r.styles[line.Kind].Render(line.Text)
	if line.Kind == script.KindCommand {
		text = r.promptStyle.Render(r.prompt) + text
	}
	fmt.Fprintln(r.w, text)
}

// Buffer prints the final content of a vim session in a frame.
func (r *Renderer) Buffer(st vim.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := "saved"
	if st.Modified() {
		status = "not saved"
	}
	title := r.titleStyle.Render(fmt.Sprintf("%s (%dL, %s)", st.FileLabel(), len(st.Content), status))
	body := strings.Join(st.Content, "\n")
	fmt.Fprintln(r.w, r.frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body)))
}

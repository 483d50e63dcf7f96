package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/domain"
)

// AnswerPort is the TUI-facing subset of the question-answering engine.
type AnswerPort interface {
	Answer(ctx context.Context, question string) (domain.Answer, error)
}

// Model is the Bubble Tea model for the terminal chat client.
type Model struct {
	engine   AnswerPort
	input    textinput.Model
	viewport viewport.Model
	summary  string
	status   string
	ready    bool
}

// New creates a new chat model. summary is the corpus summary shown in the header.
func New(engine AnswerPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter (type exit to quit)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{engine: engine, input: ti, viewport: vp, summary: summary, status: "Index loaded. Ask away."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around answer and query boxes
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				break
			}
			if strings.EqualFold(q, "exit") {
				return m, tea.Quit
			}
			m.status = "Thinking..."
			answer, err := m.engine.Answer(context.Background(), q)
			if err != nil {
				m.status = "Error: " + err.Error()
			} else {
				m.status = fmt.Sprintf("Answered %q", q)
				m.viewport.SetContent(renderAnswer(answer))
			}
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout and the latest answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docqa chat")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + answer + "\n" + input + "\n" + status
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func renderAnswer(a domain.Answer) string {
	var b strings.Builder
	b.WriteString(a.Answer)
	if len(a.Sources) > 0 {
		b.WriteString("\n\nSources:\n")
		for i, src := range a.Sources {
			score := "n/a"
			if src.Score != nil {
				score = fmt.Sprintf("%.3f", *src.Score)
			}
			line := fmt.Sprintf("%d. %s (page %s, score %s)", i+1, src.FileName, src.PageLabel, score)
			b.WriteString(sourceStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

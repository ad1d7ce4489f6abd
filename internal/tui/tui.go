package tui

import (
	"fmt"
	"strings"

	"codeberg.org/papermind/server/internal/intent"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

func NewApp(documentID string) *Model {
	ti := textinput.New()
	ti.Placeholder = "ask a question about your documents..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorCyan)

	// renderer errors leave markdown unrendered, which is fine
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return &Model{
		client:     NewAPIClient(),
		input:      ti,
		spinner:    sp,
		renderer:   renderer,
		webSearch:  true,
		documentID: documentID,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+w":
			m.webSearch = !m.webSearch
			return m, nil

		case "ctrl+l":
			m.history = nil
			m.err = nil
			m.refreshViewport()
			return m, nil

		case "enter":
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8

		viewportHeight := msg.Height - 10
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}

		m.refreshViewport()

	case AnswerMsg:
		m.isFetching = false
		m.err = nil
		m.history = append(m.history, ChatMessage{
			Role:    "assistant",
			Content: msg.answer,
			Meta:    msg.meta,
		})
		m.refreshViewport()
		m.input.Focus()
		return m, nil

	case AnswerErrorMsg:
		m.isFetching = false
		m.err = msg.err
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.isFetching {
		return m, nil
	}

	m.isFetching = true
	m.err = nil
	m.input.SetValue("")
	m.history = append(m.history, ChatMessage{Role: "user", Content: query})
	m.refreshViewport()

	webMode := string(intent.ModeAuto)
	if !m.webSearch {
		webMode = string(intent.ModeForceOff)
	}

	return m, tea.Batch(
		m.spinner.Tick,
		m.client.QueryCmd(query, webMode, m.documentID),
	)
}

// rebuilds the viewport content from the conversation history
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder

	for _, msg := range m.history {
		if msg.Role == "user" {
			b.WriteString(userStyle.Render("you: ") + msg.Content)
			b.WriteString("\n\n")
			continue
		}

		b.WriteString(assistantStyle.Render(m.renderMarkdown(msg.Content)))

		if msg.Meta != "" {
			b.WriteString(metaStyle.Render(msg.Meta))
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  loading..."
	}

	var b strings.Builder

	if len(m.history) == 0 {
		b.WriteString(logo)
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("  ask questions about your ingested documents; answers cite their sources."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.isFetching {
		b.WriteString(statusStyle.Render(m.spinner.View() + " thinking..."))
		b.WriteString("\n")
	}

	b.WriteString(inputBoxStyle.Width(max(20, m.width-4)).Render(m.input.View()))
	b.WriteString("\n")

	webState := "on"
	if !m.webSearch {
		webState = "off"
	}

	scope := "all documents"
	if m.documentID != "" {
		scope = "document " + m.documentID
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"[Enter: Ask] [Ctrl+W: Web %s] [Ctrl+L: Clear] [Ctrl+C: Quit] | scope: %s",
		webState, scope)))

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// main TUI application model
type Model struct {
	client *APIClient

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	history []ChatMessage

	width      int
	height     int
	ready      bool
	isFetching bool

	// web search toggle forwarded as web_mode
	webSearch bool

	// when set, questions are scoped to this document
	documentID string

	err error
}

// one rendered conversation turn
type ChatMessage struct {
	Role    string
	Content string
	Meta    string
}

// sent when the server answers a question
type AnswerMsg struct {
	query  string
	answer string
	meta   string
}

// sent when a request fails
type AnswerErrorMsg struct {
	query string
	err   error
}

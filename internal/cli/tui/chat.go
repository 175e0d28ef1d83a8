package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/adityachauhan/aira-apiserver/internal/cli/client"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

// UI configuration constants
const (
	defaultInputWidth     = 100
	defaultViewportWidth  = 100
	defaultViewportHeight = 30
	defaultWindowWidth    = 100
	defaultWindowHeight   = 40
	inputCharLimit        = 4000
	inputHeightReserved   = 2
	statusHeightReserved  = 3
	minContentHeight      = 10
)

// Style definitions
var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// streamState represents the state of the streaming response
type streamState int

const (
	streamIdle streamState = iota
	streamStreaming
)

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a new chat program instance
func NewChatProgram(apiClient *client.APIClient, webSearch bool) *ChatProgram {
	return &ChatProgram{model: initialModel(apiClient, webSearch)}
}

// Run starts the chat TUI program
func (p *ChatProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// chatModel is the Bubble Tea model containing all chat interface state
type chatModel struct {
	// Dependencies
	apiClient *client.APIClient

	// Conversation state sent to the server each turn
	history   []entity.ChatMessage
	webSearch bool

	// UI components
	input       textinput.Model
	contentView viewport.Model

	// Streaming response state
	state streamState
	// content holds the rendered transcript, reply the in-progress answer.
	// Pointers avoid Builder copies when the model value is passed around.
	content *strings.Builder
	reply   *strings.Builder

	// Streaming data channels
	fragmentCh <-chan string
	errCh      <-chan error

	// Error state
	err error

	// Window dimensions
	width  int
	height int
}

// initialModel creates the initial chat model
func initialModel(apiClient *client.APIClient, webSearch bool) chatModel {
	input := textinput.New()
	input.Placeholder = ""
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""
	input.TextStyle = lipgloss.NewStyle()
	input.PromptStyle = lipgloss.NewStyle()

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	return chatModel{
		apiClient:   apiClient,
		webSearch:   webSearch,
		input:       input,
		contentView: contentViewport,
		state:       streamIdle,
		content:     &strings.Builder{},
		reply:       &strings.Builder{},
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Message type definitions
type (
	streamInitMsg struct {
		fragmentCh <-chan string
		errCh      <-chan error
	}
	streamFragmentMsg struct{ fragment string }
	streamErrMsg      struct{ err error }
	streamDoneMsg     struct{}
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case streamInitMsg:
		m.state = streamStreaming
		m.fragmentCh = msg.fragmentCh
		m.errCh = msg.errCh
		cmds = append(cmds, waitForFragment(m.fragmentCh, m.errCh))

	case streamFragmentMsg:
		m.reply.WriteString(msg.fragment)
		m.refreshContent()
		cmds = append(cmds, waitForFragment(m.fragmentCh, m.errCh))

	case streamErrMsg:
		m.err = msg.err
		m.finishStream()

	case streamDoneMsg:
		m.finishStream()
	}

	// Input is frozen while a reply is streaming
	if m.state != streamStreaming {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cmds = append(cmds, tea.Quit)

	case tea.KeyEnter:
		if m.state != streamStreaming {
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.startStreaming(text)
				cmds = append(cmds, m.initStream())
			}
		}

	case tea.KeyCtrlS:
		if m.state != streamStreaming {
			m.webSearch = !m.webSearch
		}

	case tea.KeyUp:
		m.contentView.LineUp(1)

	case tea.KeyDown:
		m.contentView.LineDown(1)

	case tea.KeyPgUp:
		m.contentView.ViewUp()

	case tea.KeyPgDown:
		m.contentView.ViewDown()
	}

	return cmds
}

// handleWindowResize handles window size changes
func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	// Reapply wrapping when window size changes
	m.refreshContent()
}

// startStreaming records the user turn and prepares the transcript
func (m *chatModel) startStreaming(text string) {
	m.input.Reset()
	m.err = nil
	m.reply.Reset()

	m.history = append(m.history, entity.ChatMessage{
		Role:    entity.RoleUser,
		Content: entity.TextContent(text),
	})

	m.content.WriteString("\n")
	m.content.WriteString(boldStyle.Render("You"))
	m.content.WriteString("\n")
	m.content.WriteString(text)
	m.content.WriteString("\n\n")
	m.content.WriteString(accentStyle.Render("Aira"))
	m.content.WriteString("\n")

	m.state = streamStreaming
	m.refreshContent()
}

// finishStream completes the streaming response and records the assistant turn
func (m *chatModel) finishStream() {
	m.state = streamIdle
	m.fragmentCh, m.errCh = nil, nil

	if m.reply.Len() > 0 {
		m.history = append(m.history, entity.ChatMessage{
			Role:    entity.RoleAssistant,
			Content: entity.TextContent(m.reply.String()),
		})
		m.content.WriteString(m.reply.String())
		m.content.WriteString("\n")
		m.reply.Reset()
	}

	m.refreshContent()
}

// initStream starts a streaming request with the full conversation history
func (m *chatModel) initStream() tea.Cmd {
	history := make([]entity.ChatMessage, len(m.history))
	copy(history, m.history)
	webSearch := m.webSearch
	apiClient := m.apiClient

	return func() tea.Msg {
		fragmentCh, errCh, err := apiClient.ChatStreaming(context.Background(), history, webSearch)
		if err != nil {
			return streamErrMsg{err: err}
		}
		return streamInitMsg{fragmentCh: fragmentCh, errCh: errCh}
	}
}

// waitForFragment waits for the next streamed answer fragment
func waitForFragment(fragmentCh <-chan string, errCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case fragment, ok := <-fragmentCh:
			if !ok {
				return streamDoneMsg{}
			}
			return streamFragmentMsg{fragment: fragment}
		case err, ok := <-errCh:
			if !ok {
				return streamDoneMsg{}
			}
			if err != nil {
				return streamErrMsg{err: err}
			}
			return streamDoneMsg{}
		}
	}
}

// refreshContent refreshes the display content
func (m *chatModel) refreshContent() {
	display := m.content.String()
	if m.reply.Len() > 0 {
		display += m.reply.String()
	}
	if m.err != nil {
		display += "\n" + errorStyle.Render(fmt.Sprintf("error: %v", m.err))
	}

	if m.width > 0 {
		display = m.wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// wrapText applies auto-wrapping to text, handling wide character widths
func (m *chatModel) wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		result.WriteString(m.wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text using display widths
func (m *chatModel) wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	status := accentStyle.Render("Aira")
	if m.webSearch {
		status += dimStyle.Render(" • web search on")
	}
	if m.state == streamStreaming {
		status += dimStyle.Render(" • thinking...")
	}

	content := m.contentView.View()

	var inputView string
	if m.state == streamStreaming {
		inputView = dimStyle.Render("> ") + dimStyle.Render("waiting for reply...")
	} else {
		inputView = promptStyle.Render("> ") + m.input.View()
	}

	help := ""
	if m.state != streamStreaming {
		help = dimStyle.Render("Enter send • Ctrl+S toggle web search • ↑↓ scroll • Esc quit")
	}

	parts := []string{status, "", content, "", inputView}
	if help != "" {
		parts = append(parts, help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/session"
)

// UI configuration constants
const (
	defaultInputWidth      = 100
	defaultViewportWidth   = 100
	defaultViewportHeight  = 30
	defaultWindowWidth     = 100
	defaultWindowHeight    = 40
	inputCharLimit         = 4000
	inputHeightReserved    = 2
	statusHeightReserved   = 3
	minContentHeight       = 10
	sessionIDDisplayLength = 8
)

// Style definitions
var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a chat program bound to one document. The session
// is opened when the program starts and closed when it exits.
func NewChatProgram(ctx context.Context, chat *session.ChatSession, d entity.SessionDescriptor) *ChatProgram {
	return &ChatProgram{model: initialModel(ctx, chat, d)}
}

// Run starts the chat TUI program
func (p *ChatProgram) Run() error {
	defer p.model.chat.Close()

	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// chatModel is the Bubble Tea model. The transcript itself lives in the
// ChatSession; the model only renders it.
type chatModel struct {
	// Dependencies
	ctx        context.Context
	chat       *session.ChatSession
	descriptor entity.SessionDescriptor

	// UI components
	input       textinput.Model
	contentView viewport.Model
	spinner     spinner.Model

	// Last non-fatal problem to show under the transcript
	notice string

	// Window dimensions
	width  int
	height int
}

// initialModel creates the initial chat model
func initialModel(ctx context.Context, chat *session.ChatSession, d entity.SessionDescriptor) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask a question about this document"
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""
	input.TextStyle = lipgloss.NewStyle()
	input.PromptStyle = lipgloss.NewStyle()

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = accentStyle

	return chatModel{
		ctx:         ctx,
		chat:        chat,
		descriptor:  d,
		input:       input,
		contentView: contentViewport,
		spinner:     spin,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
}

// Message type definitions
type (
	historyLoadedMsg struct{ err error }
	replyMsg         struct {
		reply entity.ChatMessage
		err   error
	}
)

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadHistory())
}

// loadHistory opens the session, which fetches the server's transcript
func (m chatModel) loadHistory() tea.Cmd {
	chat, ctx, d := m.chat, m.ctx, m.descriptor
	return func() tea.Msg {
		return historyLoadedMsg{err: chat.Open(ctx, d)}
	}
}

// waitReply waits for the assistant's answer to one exchange
func waitReply(ctx context.Context, ex *session.Exchange) tea.Cmd {
	return func() tea.Msg {
		reply, err := ex.Wait(ctx)
		return replyMsg{reply: reply, err: err}
	}
}

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case historyLoadedMsg:
		m.notice = ""
		if msg.err != nil && !errors.Is(msg.err, session.ErrSuperseded) {
			m.notice = domain.UserMessage(msg.err, "Failed to load chat history.")
		}
		m.refreshContent()

	case replyMsg:
		m.notice = ""
		if msg.err != nil && !errors.Is(msg.err, session.ErrSuperseded) {
			m.notice = "The last message could not be answered. You can send it again."
		}
		m.refreshContent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.busy() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// busy reports whether input is disabled: history loading or a reply pending
func (m *chatModel) busy() bool {
	st := m.chat.State()
	return st.Phase != session.ChatReady || st.Pending
}

// handleKeyPress handles keyboard input
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cmds = append(cmds, tea.Quit)

	case tea.KeyEnter:
		if cmd := m.submitInput(); cmd != nil {
			cmds = append(cmds, cmd)
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

// submitInput posts the input text. The user turn shows up immediately; the
// returned command waits for the reply. It returns nil when nothing was sent.
func (m *chatModel) submitInput() tea.Cmd {
	ex, ok := m.chat.Post(m.input.Value())
	if !ok {
		return nil
	}
	m.input.Reset()
	m.notice = ""
	m.refreshContent()
	return waitReply(m.ctx, ex)
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

// renderTranscript renders the messages in append order
func renderTranscript(messages []entity.ChatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString("\n")
		if msg.Role == entity.RoleUser {
			b.WriteString(boldStyle.Render("You"))
		} else {
			b.WriteString(accentStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// refreshContent refreshes the display content
func (m *chatModel) refreshContent() {
	st := m.chat.State()

	display := renderTranscript(st.Transcript)
	if st.Phase == session.ChatReady && len(st.Transcript) == 0 && st.HistoryErr == nil {
		display = dimStyle.Render("No messages yet. Ask anything about " + m.descriptor.Title + ".")
	}
	if m.notice != "" {
		display += "\n" + errorStyle.Render(m.notice)
	}

	// Auto-wrap handling
	if m.width > 0 {
		display = wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// wrapText applies auto-wrapping to text, handling wide character widths
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		// Keep empty lines as-is
		if strings.TrimSpace(line) == "" {
			continue
		}

		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text, handling wide character widths
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		// If adding this character exceeds width, wrap first
		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	// Add final line
	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// shortID trims a session id for the status bar
func shortID(id string) string {
	if len(id) <= sessionIDDisplayLength {
		return id
	}
	return id[:sessionIDDisplayLength]
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	st := m.chat.State()

	// Top status bar
	status := dimStyle.Render(fmt.Sprintf("%s • session %s", m.descriptor.Title, shortID(m.descriptor.SessionID)))
	switch {
	case st.Phase == session.ChatLoading:
		status += " " + m.spinner.View() + dimStyle.Render(" loading history...")
	case st.Pending:
		status += " " + m.spinner.View() + dimStyle.Render(" thinking...")
	}

	// Content area
	content := m.contentView.View()

	// Input area
	var inputView string
	if m.busy() {
		inputView = dimStyle.Render("> ") + dimStyle.Render("waiting...")
	} else {
		inputView = promptStyle.Render("> ") + m.input.View()
	}

	// Bottom help text
	help := ""
	if !m.busy() {
		help = dimStyle.Render("Enter send • ↑↓ scroll • Esc quit")
	}

	parts := []string{status, "", content, "", inputView}
	if help != "" {
		parts = append(parts, help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

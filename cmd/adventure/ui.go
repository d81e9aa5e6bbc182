package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/muesli/reflow/wordwrap"
)

const (
	AgentName       = "Narrator"
	PlaceHolderText = "Type an option number or text..."
	builtInWorld    = "The Mystic Kingdom (built-in)"
)

type entryRole int

const (
	roleNarrator entryRole = iota
	rolePlayer
	roleSystem
	roleError
)

type transcriptEntry struct {
	role entryRole
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx          context.Context
	session      *session
	transcript   []transcriptEntry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error

	// World selection state
	showWorldModal bool
	worlds         []string
	worldMap       map[string]string
	selectedWorld  int
	loadingWorld   bool

	// Quit confirmation state
	showQuitModal bool
}

type worldLoadedMsg struct {
	world *scenario.World
	err   error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

// NewConsoleUI builds the model. With a world already chosen the game starts
// immediately; otherwise the player picks from worldMap (name -> filename).
func NewConsoleUI(ctx context.Context, s *session, world *scenario.World, worldMap map[string]string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		ctx:          ctx,
		session:      s,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		worldMap:     worldMap,
	}

	if world != nil || len(worldMap) == 0 {
		m.begin(world)
		return m
	}

	names := make([]string, 0, len(worldMap))
	for name := range worldMap {
		names = append(names, name)
	}
	sort.Strings(names)
	m.worlds = append([]string{builtInWorld}, names...)
	m.showWorldModal = true
	return m
}

func (m *ConsoleUI) begin(world *scenario.World) {
	m.transcript = append(m.transcript, transcriptEntry{roleNarrator, m.session.start(world)})
	m.showWorldModal = false
}

func (m *ConsoleUI) appendReply(r reply) {
	role := roleNarrator
	switch r.Kind {
	case replySystem:
		role = roleSystem
	case replyError:
		role = roleError
	}
	m.transcript = append(m.transcript, transcriptEntry{role, r.Text})
}

func writeMetadata(s *session) string {
	r := s.eng.StatusReport()

	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(shortID(r.GameID) + "\n\n")

	if s.world != nil {
		content.WriteString("World:\n")
		content.WriteString(s.world.Name + "\n\n")
	}

	if scene := s.eng.CurrentScene(); scene != nil {
		content.WriteString("Location:\n")
		content.WriteString(scene.DisplayName() + "\n\n")
	}

	content.WriteString("Narrator:\n")
	content.WriteString(string(s.dm.Personality()) + "\n\n")

	content.WriteString(fmt.Sprintf("Health: %d\n", r.Player.Health))
	content.WriteString(fmt.Sprintf("Gold: %d\n\n", r.Player.Gold))

	content.WriteString("Inventory:\n")
	if len(r.Player.Inventory) == 0 {
		content.WriteString("Empty\n")
	}
	for _, item := range r.Player.Inventory {
		content.WriteString("• " + item + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /save: Save\n")

	return content.String()
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// writeChatContent rebuilds the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE ENGINE") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, e := range m.transcript {
		content.WriteString(formatEntry(e, chatWidth) + "\n\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatEntry(e transcriptEntry, width int) string {
	switch e.role {
	case rolePlayer:
		return userStyle.Render("You: ") + wordwrap.String(e.text, width-6)
	case roleSystem:
		return systemStyle.Render(wordwrap.String(e.text, width))
	case roleError:
		return errorStyle.Render(wordwrap.String(e.text, width))
	default:
		prefix := AgentName + ": "
		return narratorStyle.Render(prefix) + wordwrap.String(e.text, width-len(prefix))
	}
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.session))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}

			if !strings.HasPrefix(input, "/") {
				m.transcript = append(m.transcript, transcriptEntry{rolePlayer, input})
			}
			r := m.session.handle(m.ctx, input)
			m.appendReply(r)
			m.writeChatContent()
			m.metaViewport.SetContent(writeMetadata(m.session))
			if r.Quit {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) loadWorld(filename string) tea.Cmd {
	return func() tea.Msg {
		w, err := m.session.store.GetWorld(m.ctx, filename)
		return worldLoadedMsg{w, err}
	}
}

func (m ConsoleUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case worldLoadedMsg:
		m.loadingWorld = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.begin(msg.world)
		if m.width > 0 && m.height > 0 {
			m.resize()
			m.ready = true
			m.writeChatContent()
			m.metaViewport.SetContent(writeMetadata(m.session))
		}
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		if m.loadingWorld {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worlds)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			m.err = nil
			name := m.worlds[m.selectedWorld]
			if name == builtInWorld {
				return m.updateWorldModal(worldLoadedMsg{world: nil})
			}
			m.loadingWorld = true
			return m, m.loadWorld(m.worldMap[name])
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingWorld:
		content.WriteString(modalTitleStyle.Render("Loading World..."))
		content.WriteString("\n\n")
		content.WriteString(systemStyle.Render("Setting up your adventure..."))
	default:
		content.WriteString(modalTitleStyle.Render("Select a World"))
		content.WriteString("\n\n")

		for i, name := range m.worlds {
			if i == m.selectedWorld {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}

		if m.err != nil {
			content.WriteString("\n")
			content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load world: %v", m.err)))
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

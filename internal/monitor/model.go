package monitor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/legohub/internal/hub"
	"github.com/muurk/legohub/internal/model"
	"github.com/muurk/legohub/internal/ui"
)

// keyMap defines the dashboard's key bindings.
type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Help, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
}

// eventMsg wraps a hub.Event for delivery through the bubbletea loop.
type eventMsg hub.Event

// Model is the dashboard's tea.Model. It holds only the latest snapshot
// and connection state; the hub goroutine remains the single owner of
// the live state, and every render works off a Clone() already taken at
// event-publish time.
type Model struct {
	id       string
	h        *hub.Hub
	events   chan hub.Event
	state    hub.State
	protocol hub.Protocol
	snapshot model.Snapshot
	rssi     int16
	diag     string

	width, height int
	showHelp      bool
	keys          keyMap
	help          help.Model
}

// New creates a dashboard model that will subscribe to h on its first Init.
func New(id string, h *hub.Hub) Model {
	return Model{
		id:       id,
		h:        h,
		events:   make(chan hub.Event, 64),
		snapshot: model.Empty(),
		keys:     defaultKeys,
		help:     help.New(),
		width:    ui.MinTerminalWidth,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	m.h.Subscribe(func(ev hub.Event) {
		select {
		case m.events <- ev:
		default:
		}
	})
	return tea.Batch(waitForEvent(m.events), connectCmd(m.h))
}

func connectCmd(h *hub.Hub) tea.Cmd {
	return func() tea.Msg {
		_ = h.Connect()
		return nil
	}
}

func waitForEvent(events chan hub.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			_ = m.h.Disconnect()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
		return m, nil

	case eventMsg:
		ev := hub.Event(msg)
		switch ev.Topic {
		case hub.TopicStateChanged:
			m.state = ev.State
		case hub.TopicRSSIChanged:
			m.rssi = ev.RSSI
		case hub.TopicDiagnostic:
			m.diag = ev.Message
		case hub.TopicNoUsableProtocol:
			m.diag = "no usable protocol on this hub"
		default:
			m.snapshot = ev.Snapshot
		}
		return m, waitForEvent(m.events)
	}
	return m, nil
}

func (m Model) View() string {
	width := m.width
	if width < ui.MinTerminalWidth {
		width = ui.MinTerminalWidth
	}
	if width > ui.MaxContentWidth {
		width = ui.MaxContentWidth
	}

	header := ui.RenderCommandHeader(ui.HeaderConfig{
		Title:   "LEGOHUB MONITOR",
		Command: m.id,
		Params: map[string]string{
			"State": m.stateLabel(),
			"RSSI":  fmt.Sprintf("%d dBm", m.rssi),
		},
	})

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.snapshot.Battery != nil {
		g := ui.NewGauge("Battery", float64(*m.snapshot.Battery)/100)
		b.WriteString(g.Render())
		b.WriteString("\n\n")
	}

	b.WriteString(ui.SectionBoxStyle(width).Render(m.renderPorts()))

	if m.diag != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(ui.WarningColor).Render(m.diag))
	}

	b.WriteString("\n\n")
	m.help.ShowAll = m.showHelp
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) stateLabel() string {
	switch m.state {
	case hub.StateConnected:
		return ui.ConnectedStyle.Render(m.state.String())
	case hub.StateConnecting, hub.StateDisconnecting:
		return ui.ConnectingStyle.Render(m.state.String())
	default:
		return ui.DisconnectedStyle.Render(m.state.String())
	}
}

func (m Model) renderPorts() string {
	if len(m.snapshot.Attached) == 0 {
		return ui.HelpStyle.Render("no devices attached")
	}

	ports := make([]model.Port, 0, len(m.snapshot.Attached))
	for p := range m.snapshot.Attached {
		ports = append(ports, p)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })

	var lines []string
	for _, p := range ports {
		dev := m.snapshot.Attached[p]
		label := ui.PortLabelStyle.Render(p.String())
		lines = append(lines, label+" "+ui.ValueStyle.Render(dev.Label)+"  "+m.renderReading(p))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReading(p model.Port) string {
	if mo, ok := m.snapshot.Motors[p]; ok {
		return fmt.Sprintf("speed=%d position=%d", mo.Speed, mo.Position)
	}
	if d, ok := m.snapshot.Distances[p]; ok {
		return fmt.Sprintf("%d mm", d.MM)
	}
	if c, ok := m.snapshot.Colors[p]; ok {
		return fmt.Sprintf("color=%d rgb=(%d,%d,%d)", c.ColorID, c.Red, c.Green, c.Blue)
	}
	if f, ok := m.snapshot.Forces[p]; ok {
		return fmt.Sprintf("force=%d pressed=%v", f.Force, f.Pressed)
	}
	if _, ok := m.snapshot.LightMatrices[p]; ok {
		return "light matrix"
	}
	if raw, ok := m.snapshot.RawValues[p]; ok {
		return fmt.Sprintf("raw=% x", raw)
	}
	return ui.StaleValueStyle.Render("no reading yet")
}

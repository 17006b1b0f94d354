package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nodeflow/config"
	"nodeflow/flow"
	"nodeflow/geom"
	"nodeflow/surface"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeMenu
	ModePopup
	ModeConfirmQuit
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "MENU"
	case ModePopup:
		return "EDIT"
	case ModeConfirmQuit:
		return "QUIT?"
	default:
		return "NORMAL"
	}
}

const (
	scrollStep = 10
	panStep    = 4
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			m, err := newModel(cfg, logger)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err = p.Run()
			return err
		},
	}
}

type model struct {
	cfg    *config.Config
	logger *slog.Logger
	graph  *flow.Graph
	popup  *formPopup
	canvas *surface.GG

	width  int
	height int
	mode   Mode

	pointer *geom.Vector2
	last    geom.Vector2
	pressed bool

	errorMessage   string
	successMessage string
}

func newModel(cfg *config.Config, logger *slog.Logger) (*model, error) {
	th, err := cfg.Theme(logger)
	if err != nil {
		return nil, err
	}
	popup := newFormPopup()
	g := flow.NewGraph(flow.SubsystemConfig{
		Theme:    &th,
		Registry: demoRegistry(),
		Popup:    popup,
		Logger:   logger,
	})
	g.Camera = cfg.Camera()
	demoScene(g)
	return &model{cfg: cfg, logger: logger, graph: g, popup: popup}, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

// toPixel maps a terminal cell to the pixel at its center.
func (m *model) toPixel(x, y int) geom.Vector2 {
	return geom.Vector2{
		X: float64(x*m.cfg.CellWidth + m.cfg.CellWidth/2),
		Y: float64(y*m.cfg.CellHeight + m.cfg.CellHeight/2),
	}
}

func (m *model) center() geom.Vector2 {
	if m.pointer != nil {
		return *m.pointer
	}
	return m.toPixel(m.width/2, m.canvasRows()/2)
}

// canvasRows leaves the last line for the status bar.
func (m *model) canvasRows() int {
	return max(m.height-1, 1)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		canvas, err := surface.NewGG(m.width*m.cfg.CellWidth, m.canvasRows()*m.cfg.CellHeight)
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.canvas = canvas
		m.frame()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		m.frame()
		return m, nil
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.frame()
		return m, cmd
	}
	return m, nil
}

// frame renders the graph so hover state matches what is on screen before
// the next event arrives.
func (m *model) frame() {
	if m.canvas == nil {
		return
	}
	propagate(m.graph.Nodes())
	m.graph.Frame(m.canvas, m.pointer)
	m.updateMode()
}

func (m *model) updateMode() {
	switch {
	case m.mode == ModeConfirmQuit:
	case m.popup.Active():
		m.mode = ModePopup
	case m.graph.ContextMenu() != nil || m.graph.QuickMenu() != nil:
		m.mode = ModeMenu
	default:
		m.mode = ModeNormal
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.popup.Active() {
		return
	}
	p := m.toPixel(msg.X, msg.Y)
	m.pointer = &p

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.graph.ClickStart(p, msg.Ctrl)
			m.pressed, m.last = true, p
		case tea.MouseButtonRight:
			m.graph.OpenContextMenu(p)
		case tea.MouseButtonWheelUp:
			m.graph.Scroll(scrollStep, p)
		case tea.MouseButtonWheelDown:
			m.graph.Scroll(-scrollStep, p)
		}
	case tea.MouseActionMotion:
		if m.pressed {
			m.graph.MouseDrag(p.Sub(m.last))
			m.last = p
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.graph.ClickEnd()
			m.pressed = false
		}
	}
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.popup.Active() {
		return m.popup.Update(msg)
	}
	key := msg.String()
	if m.mode == ModeConfirmQuit {
		m.mode = ModeNormal
		if key == "q" || key == "y" {
			return tea.Quit
		}
		m.successMessage = ""
		return nil
	}
	m.errorMessage, m.successMessage = "", ""

	if key == "ctrl+v" {
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("clipboard: %v", err)
			return nil
		}
		if !m.graph.Paste(strings.TrimSpace(text)) {
			m.errorMessage = "open the quick menu to paste"
		}
		return nil
	}
	if m.graph.Key(key) {
		return nil
	}

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.cfg.Confirmations {
			m.mode = ModeConfirmQuit
			m.successMessage = "press q again to quit"
			return nil
		}
		return tea.Quit
	case " ", "/":
		m.graph.OpenQuickMenu(m.center())
	case "0":
		m.graph.Camera.Reset()
	case "+", "=":
		m.graph.Scroll(scrollStep, m.center())
	case "-":
		m.graph.Scroll(-scrollStep, m.center())
	case "s":
		m.export()
	case "y":
		m.copyHovered()
	case "n":
		at := m.graph.Camera.ScreenSpaceToGraphSpace(m.center())
		m.graph.AddNote(flow.NewNote(flow.NoteConfig{Position: at, Text: "# Note"}))
	case "x", "delete":
		m.deleteHovered()
	default:
		m.handlePan(key, m.getMoveSpeed(key))
	}
	return nil
}

func (m *model) handlePan(key string, speed int) {
	step := float64(speed * panStep * m.cfg.CellWidth)
	switch key {
	case "h", "left", "H", "shift+left":
		m.graph.Camera.Pan(geom.Vector2{X: step})
	case "l", "right", "L", "shift+right":
		m.graph.Camera.Pan(geom.Vector2{X: -step})
	case "k", "up", "K", "shift+up":
		m.graph.Camera.Pan(geom.Vector2{Y: step})
	case "j", "down", "J", "shift+down":
		m.graph.Camera.Pan(geom.Vector2{Y: -step})
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

func (m *model) export() {
	name := fmt.Sprintf("nodeflow-%s.png", time.Now().Format("20060102-150405"))
	path := m.cfg.GetSavePath(name)
	if err := exportPNG(m.graph, path, defaultExportMargin); err != nil {
		m.errorMessage = fmt.Sprintf("export: %v", err)
		m.logger.Error("export failed", "path", path, "err", err)
		return
	}
	m.successMessage = "exported " + path
	m.logger.Info("exported", "path", path)
}

func (m *model) copyHovered() {
	n := m.graph.Nodes().HoveredNode()
	if n == nil {
		m.errorMessage = "hover a node to copy its title"
		return
	}
	if err := writeClipboardText(n.Title()); err != nil {
		m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.successMessage = "copied " + n.Title()
}

func (m *model) deleteHovered() {
	if n := m.graph.Nodes().HoveredNode(); n != nil {
		if err := m.graph.Nodes().RemoveNode(n); err != nil {
			m.errorMessage = err.Error()
		}
		return
	}
	if n := m.graph.Notes().HoveredNote(); n != nil {
		if err := m.graph.Notes().RemoveNote(n); err != nil {
			m.errorMessage = err.Error()
		}
	}
}

func (m *model) View() string {
	if m.canvas == nil {
		return "loading..."
	}
	rows := m.canvasRows()
	var body string
	if m.popup.Active() {
		body = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, m.popup.View())
	} else {
		body = halfBlocks(m.canvas.Image(), m.width, rows, m.cfg.CellWidth, m.cfg.CellHeight)
	}
	return body + "\n" + m.statusBar()
}

func (m *model) statusBar() string {
	left := statusMode.Render(m.mode.String())
	var msg string
	switch {
	case m.errorMessage != "":
		msg = statusError.Render(m.errorMessage)
	case m.successMessage != "":
		msg = statusInfo.Render(m.successMessage)
	default:
		msg = statusText.Render(fmt.Sprintf("zoom %.2f  %s", m.graph.Camera.Zoom, m.graph.Cursor()))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, left, msg)
	return statusBar.Width(m.width).Render(bar)
}

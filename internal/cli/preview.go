package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/config"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/layout"
	"github.com/matzehuels/frameloom/pkg/locate"
	"github.com/matzehuels/frameloom/pkg/selection"
	"github.com/matzehuels/frameloom/pkg/transform"
)

// newPreviewCmd opens an interactive terminal canvas.
func newPreviewCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Interactive terminal canvas with pan, zoom, and selection",
		Long: `Renders the viewport frames on a pannable, zoomable terminal canvas.

Keys:
  arrows / hjkl  pan the canvas
  + / -          zoom in / out around the view center
  0              reset the transform
  tab            select the next node
  n              cycle the primary instance across frames
  esc            deselect
  q              quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}

			m := newPreviewModel(doc)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	return cmd
}

// Screen pixels per terminal cell. Cells are roughly twice as tall as wide,
// so vertical resolution is halved to keep frames visually proportional.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
	panStep    = 40.0
)

// previewModel is the bubbletea model for the canvas preview.
type previewModel struct {
	doc     *document.Document
	engine  *transform.Engine
	surface *layout.Surface
	locator *locate.Locator
	tracker *selection.Tracker

	selectable []string
	cursor     int

	width  int
	height int
}

func newPreviewModel(doc *document.Document) *previewModel {
	engine := transform.New()
	surface := layout.New(doc, engine)
	locator := locate.New(doc, surface)
	tracker := selection.New(locator)
	tracker.AttachTransform(engine)

	var selectable []string
	for _, n := range doc.AppTree().Descendants() {
		selectable = append(selectable, n.ID)
	}

	return &previewModel{
		doc:        doc,
		engine:     engine,
		surface:    surface,
		locator:    locator,
		tracker:    tracker,
		selectable: selectable,
		cursor:     -1,
		width:      80,
		height:     24,
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.tracker.Close()
			return m, tea.Quit
		case "left", "h":
			m.engine.Pan(panStep, 0)
		case "right", "l":
			m.engine.Pan(-panStep, 0)
		case "up", "k":
			m.engine.Pan(0, panStep)
		case "down", "j":
			m.engine.Pan(0, -panStep)
		case "+", "=":
			cx, cy := m.viewCenter()
			m.engine.ZoomStep(transform.ZoomIn, cx, cy)
		case "-", "_":
			cx, cy := m.viewCenter()
			m.engine.ZoomStep(transform.ZoomOut, cx, cy)
		case "0":
			m.engine.Reset()
		case "tab":
			m.selectNext()
		case "n":
			m.tracker.CyclePrimary()
		case "esc":
			m.tracker.Deselect()
			m.cursor = -1
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *previewModel) viewCenter() (x, y float64) {
	return float64(m.width) / 2 * cellWidth, float64(m.height-2) / 2 * cellHeight
}

func (m *previewModel) selectNext() {
	if len(m.selectable) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.selectable)
	nodeID := m.selectable[m.cursor]

	frameID := ""
	if frames := m.doc.FrameIDs(); len(frames) > 0 {
		frameID = frames[0]
	}
	_ = m.tracker.Select(nodeID, frameID)
}

// =============================================================================
// Rendering
// =============================================================================

func (m *previewModel) View() string {
	canvasH := m.height - 2
	if canvasH < 4 {
		canvasH = 4
	}
	grid := newGrid(m.width, canvasH)

	for _, vp := range m.doc.ViewportNodes() {
		if bounds, ok := m.surface.InstanceBounds(vp.ID, vp.ID); ok {
			grid.drawRect(toCells(bounds), StyleFrame, vp.Viewport.BreakpointID)
		}
	}

	for _, inst := range m.tracker.Instances() {
		style := StyleWarning
		if inst.Primary {
			style = StyleSuccess
		}
		grid.drawRect(toCells(inst.Bounds), style, "")
	}

	return grid.String() + "\n" + m.statusLine()
}

func (m *previewModel) statusLine() string {
	state := m.engine.State()
	status := fmt.Sprintf(" zoom %.2f  pan (%.0f, %.0f)", state.Zoom, state.PanX, state.PanY)
	if m.tracker.State() != selection.StateIdle {
		status += fmt.Sprintf("  selected %s in %d frame(s), primary %s",
			m.tracker.SelectedNodeID(), len(m.tracker.Instances()), m.tracker.PrimaryFrameID())
	}
	return StyleDim.Render(status)
}

// cellRect is a rectangle in terminal cell coordinates.
type cellRect struct {
	x, y, w, h int
}

// toCells maps screen-space bounds into terminal cell coordinates. The
// surface already applies the canvas transform.
func toCells(b locate.Rect) cellRect {
	return cellRect{
		x: int(b.X / cellWidth),
		y: int(b.Y / cellHeight),
		w: int(b.Width / cellWidth),
		h: int(b.Height / cellHeight),
	}
}

// grid is a character buffer the preview draws into.
type grid struct {
	cells  [][]rune
	styles [][]*lipgloss.Style
	width  int
	height int
}

func newGrid(width, height int) *grid {
	g := &grid{width: width, height: height}
	g.cells = make([][]rune, height)
	g.styles = make([][]*lipgloss.Style, height)
	for y := range g.cells {
		g.cells[y] = make([]rune, width)
		g.styles[y] = make([]*lipgloss.Style, width)
		for x := range g.cells[y] {
			g.cells[y][x] = ' '
		}
	}
	return g
}

func (g *grid) set(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = r
	g.styles[y][x] = &style
}

// drawRect draws a box outline with an optional label inside the top edge.
func (g *grid) drawRect(r cellRect, style lipgloss.Style, label string) {
	if r.w < 2 || r.h < 2 {
		g.set(r.x, r.y, '▪', style)
		return
	}
	for x := r.x; x <= r.x+r.w; x++ {
		g.set(x, r.y, '─', style)
		g.set(x, r.y+r.h, '─', style)
	}
	for y := r.y; y <= r.y+r.h; y++ {
		g.set(r.x, y, '│', style)
		g.set(r.x+r.w, y, '│', style)
	}
	g.set(r.x, r.y, '┌', style)
	g.set(r.x+r.w, r.y, '┐', style)
	g.set(r.x, r.y+r.h, '└', style)
	g.set(r.x+r.w, r.y+r.h, '┘', style)

	for i, ch := range label {
		if i+1 >= r.w {
			break
		}
		g.set(r.x+1+i, r.y, ch, style)
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for y := range g.cells {
		for x := range g.cells[y] {
			ch := string(g.cells[y][x])
			if s := g.styles[y][x]; s != nil {
				ch = s.Render(ch)
			}
			b.WriteString(ch)
		}
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

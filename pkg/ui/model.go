package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"reposcope/pkg/model"
	"reposcope/pkg/treemap"
)

// chrome rows around the map: one header line, one status line.
const chromeRows = 2

var sizeModeOrder = []model.SizeMode{
	model.SizeLOC, model.SizeBytes, model.SizeFiles, model.SizeComplexity,
}

var colorModeOrder = []model.ColorMode{
	model.ColorByLanguage, model.ColorByAge, model.ColorByComplexity, model.ColorByDensity,
}

// RescanFunc re-reads the repository and returns a fresh tree.
type RescanFunc func() (*model.TreeNode, error)

// RescanRequestMsg asks the model to rescan; the watch goroutine sends it
// via Program.Send after a debounced change burst.
type RescanRequestMsg struct{}

// treeReloadedMsg carries a fresh tree (or the rescan failure) back into
// the update loop.
type treeReloadedMsg struct {
	root *model.TreeNode
	err  error
}

// Model is the bubbletea model embedding the treemap engine. The layout is
// rebuilt from scratch whenever the tree, the viewport, the depth limit or
// the size mode changes; hover and selection survive rebuilds through path
// equality only.
type Model struct {
	repoName string
	root     *model.TreeNode
	focus    *model.TreeNode // zoom root; nil means repository root
	cfg      model.Config
	keys     KeyMap

	layout        *treemap.Layout
	width, height int

	hovered  *model.TreeNode
	selected *model.TreeNode

	find     finder
	showHelp bool
	status   string

	rescan RescanFunc

	// OnHover and OnSelect report the original tree nodes (never layout
	// nodes) to the embedder; both may be nil.
	OnHover  func(*model.TreeNode)
	OnSelect func(*model.TreeNode)
}

// NewModel creates the TUI model for a scanned tree. rescan may be nil to
// disable the rescan binding.
func NewModel(root *model.TreeNode, repoName string, cfg model.Config, rescan RescanFunc) Model {
	m := Model{
		repoName: repoName,
		root:     root,
		cfg:      cfg.Normalized(),
		keys:     DefaultKeyMap(),
		find:     newFinder(),
		rescan:   rescan,
	}
	m.find.setTree(root)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the currently selected tree node, if any.
func (m Model) Selected() *model.TreeNode {
	return m.selected
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuild()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg), nil

	case RescanRequestMsg:
		return m, m.rescanCmd()

	case treeReloadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("rescan failed: %v", msg.err)
			return m, nil
		}
		m.root = msg.root
		m.find.setTree(msg.root)
		// The zoom target may be gone after the rescan.
		if m.focus != nil {
			m.focus = m.root.Find(m.focus.Path)
		}
		m.relocate()
		m.rebuild()
		m.status = "rescanned"
		return m, nil

	case tea.KeyMsg:
		if m.find.open {
			if path, handled := m.find.update(msg); handled {
				if path != "" {
					m.setSelected(m.root.Find(path))
				}
				return m, nil
			}
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, k.SizeMode):
		m.cfg.SizeMode = cycleSize(m.cfg.SizeMode)
		m.rebuild()

	case key.Matches(msg, k.ColorMode):
		m.cfg.ColorMode = cycleColor(m.cfg.ColorMode)

	case key.Matches(msg, k.DepthUp):
		m.cfg.MaxNestingDepth++
		m.rebuild()

	case key.Matches(msg, k.DepthDown):
		if m.cfg.MaxNestingDepth > 1 {
			m.cfg.MaxNestingDepth--
			m.rebuild()
		}

	case key.Matches(msg, k.ZoomIn):
		if m.selected != nil && m.selected.IsDir() && len(m.selected.Children) > 0 {
			m.focus = m.selected
			m.rebuild()
		}

	case key.Matches(msg, k.ZoomOut):
		if m.focus != nil {
			m.focus = m.root.Find(parentPath(m.focus.Path))
			if m.focus != nil && m.focus.Path == "" {
				m.focus = nil
			}
			m.rebuild()
		}

	case key.Matches(msg, k.Find):
		m.find.openFinder()

	case key.Matches(msg, k.CopyPath):
		if m.selected != nil {
			if err := clipboard.WriteAll(m.selected.Path); err != nil {
				m.status = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.status = "copied " + m.selected.Path
			}
		}

	case key.Matches(msg, k.ClearSel):
		m.setSelected(nil)

	case key.Matches(msg, k.Rescan):
		if m.rescan != nil {
			m.status = "rescanning…"
			return m, m.rescanCmd()
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	if m.layout == nil {
		return m
	}
	// Map area starts below the header row.
	x, y := float64(msg.X), float64(msg.Y-1)

	switch msg.Action {
	case tea.MouseActionMotion:
		hit := m.layout.NodeAt(x, y)
		m.setHovered(layoutData(hit))
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			hit := m.layout.NodeAt(x, y)
			m.setSelected(layoutData(hit))
		}
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width < 1 || m.height <= chromeRows {
		return ""
	}
	mapH := m.height - chromeRows

	body := RenderPanel(m.layout, m.width, mapH, m.cfg.ColorMode, pathOf(m.hovered), pathOf(m.selected), time.Now())

	var overlay string
	switch {
	case m.find.open:
		overlay = m.find.view()
	case m.showHelp:
		overlay = renderHelp(m.keys)
	}
	if overlay != "" {
		body = lipgloss.Place(m.width, mapH, lipgloss.Center, lipgloss.Center, overlay)
	}

	return m.headerView() + "\n" + body + "\n" + m.statusView()
}

func (m Model) headerView() string {
	title := HeaderStyle.Render(m.repoName)
	modes := HeaderModeStyle.Render(fmt.Sprintf(" size:%s color:%s depth:%d ",
		m.cfg.SizeMode, m.cfg.ColorMode, m.cfg.MaxNestingDepth))
	scope := ""
	if m.focus != nil {
		scope = HeaderModeStyle.Render(" ⌂ " + m.focus.Path)
	}
	line := title + modes + scope
	return padLine(line, m.width)
}

func (m Model) statusView() string {
	n := m.hovered
	if n == nil {
		n = m.selected
	}
	var line string
	switch {
	case n != nil && n.Kind == model.KindFile:
		line = StatusPathStyle.Render(n.Path) + StatusStyle.Render(fmt.Sprintf(
			"  %s lines · %s · %s",
			humanize.Comma(int64(n.Metrics.Lines)),
			humanize.Bytes(uint64(n.Metrics.Bytes)),
			n.LastModified.Format("2006-01-02")))
	case n != nil:
		line = StatusPathStyle.Render(n.Path+"/") + StatusStyle.Render(fmt.Sprintf(
			"  %d files", n.FileCount()))
	case m.status != "":
		line = StatusStyle.Render(m.status)
	default:
		line = StatusStyle.Render("? for help")
	}
	return padLine(line, m.width)
}

// rebuild recomputes the layout for the current tree, zoom, viewport and
// config. The previous layout is discarded wholesale.
func (m *Model) rebuild() {
	mapH := m.height - chromeRows
	if m.width < 1 || mapH < 1 {
		m.layout = nil
		return
	}
	rootNode := m.root
	if m.focus != nil {
		rootNode = m.focus
	}
	m.layout = treemap.Build(rootNode, float64(m.width), float64(mapH), PanelConfig(m.cfg))
}

// relocate re-resolves hover and selection against a fresh tree by path.
func (m *Model) relocate() {
	if m.hovered != nil {
		m.setHovered(m.root.Find(m.hovered.Path))
	}
	if m.selected != nil {
		m.setSelected(m.root.Find(m.selected.Path))
	}
}

func (m *Model) setHovered(n *model.TreeNode) {
	if m.hovered == n {
		return
	}
	m.hovered = n
	if m.OnHover != nil {
		m.OnHover(n)
	}
}

func (m *Model) setSelected(n *model.TreeNode) {
	if m.selected == n {
		return
	}
	m.selected = n
	if m.OnSelect != nil {
		m.OnSelect(n)
	}
}

func (m Model) rescanCmd() tea.Cmd {
	rescan := m.rescan
	if rescan == nil {
		return nil
	}
	return func() tea.Msg {
		root, err := rescan()
		return treeReloadedMsg{root: root, err: err}
	}
}

func layoutData(n *treemap.Node) *model.TreeNode {
	if n == nil {
		return nil
	}
	return n.Data
}

func pathOf(n *model.TreeNode) string {
	if n == nil {
		return ""
	}
	return n.Path
}

func parentPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}

func cycleSize(mode model.SizeMode) model.SizeMode {
	for i, s := range sizeModeOrder {
		if s == mode {
			return sizeModeOrder[(i+1)%len(sizeModeOrder)]
		}
	}
	return sizeModeOrder[0]
}

func cycleColor(mode model.ColorMode) model.ColorMode {
	for i, c := range colorModeOrder {
		if c == mode {
			return colorModeOrder[(i+1)%len(colorModeOrder)]
		}
	}
	return colorModeOrder[0]
}

func padLine(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	return line + StatusStyle.Render(fmt.Sprintf("%*s", width-w, ""))
}

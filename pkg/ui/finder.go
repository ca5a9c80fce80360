package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"reposcope/pkg/model"
)

// finderMaxRows bounds how many matches the overlay shows.
const finderMaxRows = 8

// finder is the fuzzy file locator opened with "/".
type finder struct {
	input   textinput.Model
	paths   []string
	matches fuzzy.Matches
	cursor  int
	open    bool
}

func newFinder() finder {
	ti := textinput.New()
	ti.Placeholder = "fuzzy path…"
	ti.Prompt = "/ "
	ti.CharLimit = 200
	return finder{input: ti}
}

// setTree reindexes the finder over the file paths of a (re)scanned tree.
func (f *finder) setTree(root *model.TreeNode) {
	f.paths = f.paths[:0]
	if root == nil {
		return
	}
	root.Walk(func(n *model.TreeNode) {
		if n.Kind == model.KindFile {
			f.paths = append(f.paths, n.Path)
		}
	})
}

func (f *finder) openFinder() {
	f.open = true
	f.cursor = 0
	f.matches = nil
	f.input.SetValue("")
	f.input.Focus()
}

func (f *finder) close() {
	f.open = false
	f.input.Blur()
}

// update handles one key event while the finder is open. It returns the
// chosen path ("" until a match is accepted) and whether the event was
// consumed.
func (f *finder) update(msg tea.KeyMsg) (string, bool) {
	switch msg.String() {
	case "esc":
		f.close()
		return "", true
	case "enter":
		if len(f.matches) > 0 {
			path := f.matches[f.cursor].Str
			f.close()
			return path, true
		}
		f.close()
		return "", true
	case "up", "ctrl+p":
		if f.cursor > 0 {
			f.cursor--
		}
		return "", true
	case "down", "ctrl+n":
		if f.cursor < len(f.matches)-1 && f.cursor < finderMaxRows-1 {
			f.cursor++
		}
		return "", true
	}

	f.input, _ = f.input.Update(msg)
	f.matches = fuzzy.Find(f.input.Value(), f.paths)
	if f.cursor >= len(f.matches) {
		f.cursor = 0
	}
	return "", true
}

// view renders the finder box with the current matches.
func (f *finder) view() string {
	var b strings.Builder
	b.WriteString(f.input.View())
	shown := f.matches
	if len(shown) > finderMaxRows {
		shown = shown[:finderMaxRows]
	}
	for i, m := range shown {
		b.WriteByte('\n')
		if i == f.cursor {
			b.WriteString(FinderMatchStyle.Render("> " + m.Str))
		} else {
			b.WriteString(FinderRowStyle.Render("  " + m.Str))
		}
	}
	return FinderBoxStyle.Render(b.String())
}

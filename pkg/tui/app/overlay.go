package teaui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	jww "github.com/spf13/jwalterweatherman"

	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/tags"
	"tableflip.dev/emojipick/pkg/tui/theme"
)

type skintoneOption struct {
	entry    emoji.Entry
	modifier string
}

type skintoneChooser struct {
	base    emoji.Entry
	options []skintoneOption
	index   int
}

func newSkintoneChooser(base emoji.Entry, current string) skintoneChooser {
	c := skintoneChooser{base: base}
	c.options = append(c.options, skintoneOption{entry: base})
	for _, v := range base.Skintones {
		e := base
		e.Glyph = v.Glyph
		c.options = append(c.options, skintoneOption{entry: e, modifier: modifierOf(v.Hexcode)})
	}
	for i, o := range c.options {
		if o.modifier == current {
			c.index = i
		}
	}
	return c
}

// modifierOf returns the last code point of a variant hexcode,
// "1F44B-1F3FD" -> "1F3FD".
func modifierOf(hexcode string) string {
	if i := strings.LastIndex(hexcode, "-"); i >= 0 {
		return strings.ToUpper(hexcode[i+1:])
	}
	return ""
}

func (c skintoneChooser) current() skintoneOption {
	return c.options[c.index]
}

func (c skintoneChooser) view(t theme.OverlayTheme) string {
	cells := make([]string, len(c.options))
	for i, o := range c.options {
		style := t.Option
		if i == c.index {
			style = t.Active
		}
		cells[i] = style.Render(o.entry.Glyph)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(c.base.Name),
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		"enter copy · space add · d make default · esc back",
	)
	return t.Frame.Render(body)
}

func (m *Model) openSkintones() {
	e, ok := m.focused()
	if !ok {
		return
	}
	base := m.entries[m.cursor]
	if !e.HasSkintones() {
		m.status = "No skintones available"
		return
	}
	m.skin = newSkintoneChooser(base, m.settings.SkintoneModifier)
	m.mode = modeSkintone
}

func (m *Model) handleSkintoneKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch {
	case key.Matches(msg, m.keys.Hide):
		m.mode = modeBrowse
	case key.Matches(msg, m.keys.Left):
		if m.skin.index > 0 {
			m.skin.index--
		}
	case key.Matches(msg, m.keys.Right):
		if m.skin.index < len(m.skin.options)-1 {
			m.skin.index++
		}
	case key.Matches(msg, m.keys.Commit):
		e := m.skin.current().entry
		m.mode = modeBrowse
		*cmds = append(*cmds, m.commit(&e))
	case key.Matches(msg, m.keys.Select):
		m.ctrl.Select(m.skin.current().entry)
	case msg.String() == "d":
		mod := m.skin.current().modifier
		if m.svc.Config != nil {
			if err := m.svc.Config.SetSkintone(mod); err != nil {
				jww.WARN.Printf("tui: save skintone: %v", err)
				m.status = err.Error()
				break
			}
		}
		m.settings.SkintoneModifier = mod
		m.statusf("Default skintone set for %s", m.skin.current().entry.Glyph)
		m.mode = modeBrowse
	}
	return true
}

type tagEditor struct {
	target emoji.Entry
	input  textinput.Model
}

func newTagEditor() tagEditor {
	ti := textinput.New()
	ti.Placeholder = "tag, another tag"
	ti.Prompt = "🏷 "
	ti.CharLimit = 256
	return tagEditor{input: ti}
}

func (t *tagEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t tagEditor) view(th theme.OverlayTheme) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render("Custom tags for "+t.target.Glyph+" "+t.target.Name),
		t.input.View(),
		"enter save · esc cancel",
	)
	return th.Frame.Render(body)
}

func (m *Model) openTagEditor(cmds *[]tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return
	}
	target := m.entries[m.cursor]
	current, err := m.svc.Tags(target.Hexcode)
	if err != nil {
		jww.WARN.Printf("tui: load tags for %s: %v", target.Hexcode, err)
	}
	m.tags.target = target
	m.tags.input.SetValue(tags.Join(current))
	m.tags.input.CursorEnd()
	m.mode = modeTagEdit
	*cmds = append(*cmds, m.tags.input.Focus())
}

func (m *Model) handleTagKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch {
	case key.Matches(msg, m.keys.Hide):
		m.closeTagEditor()
	case msg.Type == tea.KeyEnter:
		list := tags.Parse(m.tags.input.Value())
		if err := m.svc.SetTags(m.tags.target.Hexcode, list); err != nil {
			jww.ERROR.Printf("tui: save tags for %s: %v", m.tags.target.Hexcode, err)
			m.status = err.Error()
		} else {
			m.statusf("Saved %d tags for %s", len(list), m.tags.target.Glyph)
		}
		m.closeTagEditor()
		m.refresh()
	default:
		if cmd := m.tags.update(msg); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
	return true
}

func (m *Model) closeTagEditor() {
	m.tags.input.Blur()
	m.mode = modeBrowse
}

// Package teaui hosts the Bubble Tea program for the emoji picker.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	jww "github.com/spf13/jwalterweatherman"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/config"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/lifecycle"
	"tableflip.dev/emojipick/pkg/paste"
	"tableflip.dev/emojipick/pkg/picker"
	"tableflip.dev/emojipick/pkg/store"
	"tableflip.dev/emojipick/pkg/tui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeSkintone
	modeTagEdit
	modeHidden
)

type focus int

const (
	focusSearch focus = iota
	focusGrid
)

// Model is the picker window.
type Model struct {
	svc      *app.Service
	ctx      context.Context
	ctrl     *picker.Controller
	settings config.Settings

	keys   keyMap
	help   help.Model
	theme  theme.Theme
	search textinput.Model

	mode  mode
	focus focus

	entries []emoji.Entry
	cursor  int
	offset  int

	width  int
	height int

	status string

	skin skintoneChooser
	tags tagEditor

	visibility lifecycle.Visibility
	sched      lifecycle.Scheduler
	closeToken *lifecycle.Token
	closeGen   int
	send       func(tea.Msg)

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the picker on top of svc.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "🔍 "
	ti.CharLimit = 128
	ti.Focus()

	m := &Model{
		svc:      svc,
		ctx:      context.Background(),
		ctrl:     svc.NewController(),
		settings: svc.Settings(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		theme:    theme.Default(),
		search:   ti,
		tags:     newTagEditor(),
	}
	m.search.PromptStyle = m.theme.Search.Prompt
	if m.settings.LoadHiddenOnStartup {
		m.mode = modeHidden
		m.search.Blur()
	}
	m.refresh()
	return m
}

// Run launches the Bubble Tea program.
func Run(svc *app.Service) error {
	m := New(svc)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.send = p.Send
	_, err := p.Run()
	m.stopWatch()
	m.sched.CancelAll()
	return err
}

// Init starts the cursor blink and the store watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, startWatchCmd(m.ctx, m.svc))
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// closeDueMsg fires when a scheduled close is due. Stale generations are
// ignored.
type closeDueMsg struct {
	gen   int
	paste bool
}

type pastedMsg struct {
	action paste.Action
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-8, 10)
		m.scrollToCursor()

	case watchStartedMsg:
		if msg.err != nil {
			jww.WARN.Printf("tui: watch store: %v", msg.err)
			break
		}
		m.watchCh, m.watchCancel = msg.ch, msg.cancel
		cmds = append(cmds, m.waitForWatch())

	case watchEventMsg:
		// The service already dropped its caches; only the view is stale.
		m.refresh()
		cmds = append(cmds, m.waitForWatch())

	case watchStoppedMsg:
		m.watchCh = nil

	case closeDueMsg:
		if msg.gen != m.closeGen || m.mode != modeHidden {
			return m, nil
		}
		m.closeToken = nil
		if msg.paste {
			return m, tea.Sequence(m.pasteCmd(), tea.Quit)
		}
		return m, tea.Quit

	case pastedMsg:
		jww.DEBUG.Printf("tui: paste %s", msg.action)

	case tea.MouseMsg:
		if cmd := m.handleMouse(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.handleKeyPress(msg, &cmds) {
			return m, tea.Batch(cmds...)
		}
		if m.mode == modeBrowse && m.focus == focusSearch {
			before := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			if m.search.Value() != before {
				m.applyQuery()
			}
		}
		return m, tea.Batch(cmds...)
	}

	if m.mode == modeTagEdit {
		if cmd := m.tags.update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.mode == modeBrowse && m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch m.mode {
	case modeHidden:
		m.activate()
		*cmds = append(*cmds, m.search.Focus())
		return true
	case modeSkintone:
		return m.handleSkintoneKey(msg, cmds)
	case modeTagEdit:
		return m.handleTagKey(msg, cmds)
	default:
		return m.handleBrowseKey(msg, cmds)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch {
	case key.Matches(msg, m.keys.Hide):
		*cmds = append(*cmds, m.hide(false))
		return true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true
	case key.Matches(msg, m.keys.ClearQuery):
		m.search.SetValue("")
		m.applyQuery()
		m.focusSearch(cmds)
		return true
	case key.Matches(msg, m.keys.PrevCategory):
		if m.ctrl.PrevCategory() {
			m.categoryChanged()
		}
		return true
	case key.Matches(msg, m.keys.NextCategory):
		if m.ctrl.NextCategory() {
			m.categoryChanged()
		}
		return true
	case key.Matches(msg, m.keys.Deselect):
		m.ctrl.DeselectLast()
		return true
	case key.Matches(msg, m.keys.CommitBuffer):
		if len(m.ctrl.Selection()) > 0 {
			*cmds = append(*cmds, m.commit(nil))
		}
		return true
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg, cmds)
	}
	return m.handleGridKey(msg, cmds)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.entries) > 0 {
			m.focusGrid(0)
		}
		return true
	case key.Matches(msg, m.keys.Commit):
		if _, ok := m.ctrl.Query(); ok && len(m.entries) > 0 {
			first := m.withSkintone(m.entries[0])
			*cmds = append(*cmds, m.commit(&first))
		}
		return true
	}
	return false
}

func (m *Model) handleGridKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor < cols {
			m.focusSearch(cmds)
		} else {
			m.moveCursor(-cols)
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < len(m.entries) {
			m.moveCursor(cols)
		}
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Commit):
		if e, ok := m.focused(); ok {
			*cmds = append(*cmds, m.commit(&e))
		}
	case key.Matches(msg, m.keys.Select):
		if e, ok := m.focused(); ok {
			m.ctrl.Select(e)
		}
	case key.Matches(msg, m.keys.Skintones):
		m.openSkintones()
	case key.Matches(msg, m.keys.EditTags):
		m.openTagEditor(cmds)
	case msg.Type == tea.KeyBackspace:
		m.focusSearch(cmds)
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.search.SetValue(m.search.Value() + string(msg.Runes))
		m.search.CursorEnd()
		m.focusSearch(cmds)
		m.applyQuery()
	}
	return true
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	if m.mode == modeHidden {
		m.activate()
		return m.search.Focus()
	}
	if m.mode != modeBrowse {
		return nil
	}
	if idx, ok := m.categoryAt(msg.X, msg.Y); ok {
		if m.ctrl.SetCategory(m.ctrl.Categories()[idx].ID) {
			m.categoryChanged()
		}
		return nil
	}
	idx, ok := m.cellAt(msg.X, msg.Y)
	if !ok {
		return nil
	}
	m.focusGrid(idx)
	e := m.withSkintone(m.entries[idx])

	switch msg.Button {
	case tea.MouseButtonLeft:
		if m.ctrl.Click(e, msg.Shift) {
			return m.commit(&e)
		}
	case tea.MouseButtonRight:
		m.openSkintones()
	case tea.MouseButtonMiddle:
		var cmds []tea.Cmd
		m.openTagEditor(&cmds)
		return tea.Batch(cmds...)
	}
	return nil
}

// commit copies the buffer plus final and hides the window. A failed
// clipboard write leaves the buffer, query and history untouched.
func (m *Model) commit(final *emoji.Entry) tea.Cmd {
	if err := m.svc.Commit(m.ctx, m.ctrl.Text(final)); err != nil {
		jww.ERROR.Printf("tui: commit: %v", err)
		m.status = err.Error()
		return nil
	}
	m.ctrl.CommitAndReset(final)
	return m.hide(true)
}

// hide resets the picker and starts the exit plan.
func (m *Model) hide(pasteOnExit bool) tea.Cmd {
	m.ctrl.Reset()
	m.search.SetValue("")
	m.search.Blur()
	m.focus = focusSearch
	m.mode = modeHidden
	m.status = ""
	m.refresh()

	plan := lifecycle.Plan(lifecycle.Options{
		IconifyOnEsc:        m.settings.IconifyOnEsc,
		LoadHiddenOnStartup: m.settings.LoadHiddenOnStartup,
	}, pasteOnExit)
	m.visibility = plan.Visibility

	if !plan.Close {
		if pasteOnExit {
			return m.pasteCmd()
		}
		return nil
	}

	m.closeGen++
	due := closeDueMsg{gen: m.closeGen, paste: pasteOnExit}
	if m.send == nil {
		return tea.Tick(plan.PasteDelay, func(time.Time) tea.Msg { return due })
	}
	send := m.send
	m.closeToken = m.sched.After(plan.PasteDelay, func() { send(due) })
	return nil
}

// activate shows the picker again. A pending close is abandoned together
// with its paste.
func (m *Model) activate() {
	if m.closeToken.Cancel() {
		jww.DEBUG.Printf("tui: pending close cancelled")
	}
	m.closeToken = nil
	m.closeGen++
	m.mode = modeBrowse
	m.focus = focusSearch
	m.settings = m.svc.Settings()
	m.ctrl.SetConfig(m.svc.PickerConfig())
	m.refresh()
}

func (m *Model) pasteCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return pastedMsg{action: svc.AutoPaste(ctx)}
	}
}

func (m *Model) applyQuery() {
	m.ctrl.SetQuery(m.search.Value())
	m.refresh()
	m.cursor, m.offset = 0, 0
	m.status = ""
	if q, ok := m.ctrl.Query(); ok && len(m.entries) == 0 {
		if s := m.svc.Suggest(q, 3); len(s) > 0 {
			m.status = "No matches. Did you mean " + strings.Join(s, ", ") + "?"
		} else {
			m.status = "No matches"
		}
	}
}

func (m *Model) categoryChanged() {
	m.search.SetValue("")
	m.status = ""
	m.refresh()
	m.cursor, m.offset = 0, 0
}

func (m *Model) refresh() {
	m.entries = m.ctrl.Visible(m.svc.Table.Entries())
	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}
	if len(m.entries) == 0 && m.focus == focusGrid {
		m.focus = focusSearch
		m.search.Focus()
	}
	m.scrollToCursor()
}

func (m *Model) focusSearch(cmds *[]tea.Cmd) {
	m.focus = focusSearch
	*cmds = append(*cmds, m.search.Focus())
}

func (m *Model) focusGrid(idx int) {
	m.focus = focusGrid
	m.search.Blur()
	m.cursor = idx
	m.scrollToCursor()
}

func (m *Model) focused() (emoji.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return emoji.Entry{}, false
	}
	return m.withSkintone(m.entries[m.cursor]), true
}

// withSkintone swaps in the glyph for the preferred skintone. The hexcode
// stays the base one so history is kept per emoji.
func (m *Model) withSkintone(e emoji.Entry) emoji.Entry {
	e.Glyph = e.Display(m.settings.SkintoneModifier)
	return e
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.entries) {
		return
	}
	m.cursor = next
	m.scrollToCursor()
}

// View renders the picker.
func (m *Model) View() string {
	if m.mode == modeHidden {
		if m.visibility == lifecycle.Minimize {
			return m.theme.Footer.Status.Render("emojipick minimized, press any key")
		}
		return m.theme.Footer.Status.Render("emojipick hidden, press any key")
	}

	var b strings.Builder
	frame := m.theme.Search.Blurred
	if m.focus == focusSearch {
		frame = m.theme.Search.Focused
	}
	b.WriteString(frame.Render(m.search.View()))
	b.WriteString("\n")
	if tip := m.ctrl.ListTip(); tip != "" {
		b.WriteString(m.theme.Search.Tip.Render(tip))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeSkintone:
		b.WriteString(m.skin.view(m.theme.Overlay))
	case modeTagEdit:
		b.WriteString(m.tags.view(m.theme.Overlay))
	default:
		b.WriteString(m.renderGrid())
	}
	b.WriteString("\n")

	if preview := m.ctrl.Preview(); preview != "" {
		b.WriteString(m.theme.Footer.Buffer.Render("Selected: " + preview))
		b.WriteString("\n")
	}
	b.WriteString(m.renderCategoryBar())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Footer.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Footer.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderCategoryBar() string {
	cats := m.ctrl.Categories()
	items := make([]string, len(cats))
	active := -1
	if _, ok := m.ctrl.Query(); !ok {
		active = m.ctrl.CategoryIndex()
	}
	for i, c := range cats {
		style := m.theme.Bar.Item
		if i == active {
			style = m.theme.Bar.Active
		}
		items[i] = style.Render(c.Icon)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m *Model) statusf(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
}

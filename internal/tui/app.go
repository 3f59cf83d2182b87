// Package tui is the interactive terminal front-end for recdesk: a title
// input with a create/update action, a live search box and the record list.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/recdesk/internal/controller"
	"github.com/user/recdesk/internal/model"
)

// Focus identifies the widget receiving keys.
type Focus int

const (
	FocusTitle Focus = iota
	FocusSearch
	FocusList
)

const focusCount = 3

// OpDoneMsg reports the completion of one record service call.
type OpDoneMsg struct {
	Op     controller.Op
	Record model.Record
	Err    error
}

// App is the bubbletea model. Service calls run as commands; their
// completions arrive as OpDoneMsg and are applied in arrival order.
type App struct {
	ctrl     *controller.Controller
	ctx      context.Context
	onChange func(model.State)

	keys  KeyMap
	theme Theme

	title  textinput.Model
	search textinput.Model
	focus  Focus
	cursor int
	offset int

	pending   int
	status    string
	statusErr bool

	width, height int
}

// NewApp creates the model. onChange, if set, receives the controller
// state after every completed call and every edit switch.
func NewApp(ctx context.Context, ctrl *controller.Controller, onChange func(model.State)) App {
	view := ctrl.View()

	title := textinput.New()
	title.Placeholder = "Record title"
	title.CharLimit = 256
	title.SetValue(view.Draft)
	title.Focus()

	search := textinput.New()
	search.Placeholder = "Search by title"
	search.CharLimit = 256
	search.SetValue(view.Search)

	return App{
		ctrl:     ctrl,
		ctx:      ctx,
		onChange: onChange,
		keys:     DefaultKeyMap(),
		theme:    DarkTheme(),
		title:    title,
		search:   search,
		focus:    FocusTitle,
		pending:  1, // the load started by Init
	}
}

// Init loads the records on start.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.call(controller.OpLoad, 0))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.title.Width = msg.Width - 20
		a.search.Width = msg.Width - 20
		a.clampCursor()
		return a, nil

	case OpDoneMsg:
		return a.complete(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.NextFocus) {
			a.setFocus((a.focus + 1) % focusCount)
			return a, nil
		}
		switch a.focus {
		case FocusTitle:
			return a.updateTitle(msg)
		case FocusSearch:
			return a.updateSearch(msg)
		case FocusList:
			return a.updateList(msg)
		}
	}

	var cmd tea.Cmd
	switch a.focus {
	case FocusTitle:
		a.title, cmd = a.title.Update(msg)
	case FocusSearch:
		a.search, cmd = a.search.Update(msg)
	}
	return a, cmd
}

func (a App) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Save) {
		op := controller.OpCreate
		if a.ctrl.State().Session.IsEditing() {
			op = controller.OpUpdate
		}
		cmd := a.issueSave(op, a.title.Value())
		return a, cmd
	}

	var cmd tea.Cmd
	a.title, cmd = a.title.Update(msg)
	a.ctrl.SetDraft(a.title.Value())
	return a, cmd
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before {
		a.ctrl.SetSearch(a.search.Value())
		a.clampCursor()
	}
	return a, cmd
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		a.clampCursor()
	case key.Matches(msg, a.keys.Down):
		a.cursor++
		a.clampCursor()
	case key.Matches(msg, a.keys.Edit):
		rec, ok := a.selected()
		if !ok {
			return a, nil
		}
		a.ctrl.BeginEdit(rec)
		a.title.SetValue(rec.Title)
		a.title.CursorEnd()
		a.setFocus(FocusTitle)
		a.changed()
	case key.Matches(msg, a.keys.Delete):
		rec, ok := a.selected()
		if !ok {
			return a, nil
		}
		cmd := a.issue(controller.OpDelete, rec.ID)
		return a, cmd
	case key.Matches(msg, a.keys.Reload):
		cmd := a.issue(controller.OpLoad, 0)
		return a, cmd
	}
	return a, nil
}

// issue starts a load or delete call.
func (a *App) issue(op controller.Op, id int) tea.Cmd {
	a.pending++
	return a.call(op, id)
}

func (a App) call(op controller.Op, id int) tea.Cmd {
	ctrl, ctx := a.ctrl, a.ctx
	return func() tea.Msg {
		var err error
		switch op {
		case controller.OpLoad:
			err = ctrl.Load(ctx)
		case controller.OpDelete:
			err = ctrl.Delete(ctx, id)
		}
		return OpDoneMsg{Op: op, Record: model.Record{ID: id}, Err: err}
	}
}

// issueSave starts a create or update call with draft as the title.
func (a *App) issueSave(op controller.Op, draft string) tea.Cmd {
	a.pending++
	ctrl, ctx := a.ctrl, a.ctx
	return func() tea.Msg {
		out, err := ctrl.Save(ctx, draft)
		if err == nil {
			op = out.Op
		}
		return OpDoneMsg{Op: op, Record: out.Record, Err: err}
	}
}

// complete applies a finished call to the widgets.
func (a App) complete(msg OpDoneMsg) App {
	if a.pending > 0 {
		a.pending--
	}
	a.status = controller.Acknowledgment(msg.Op, msg.Err)
	a.statusErr = msg.Err != nil

	if msg.Err == nil && (msg.Op == controller.OpCreate || msg.Op == controller.OpUpdate) {
		a.title.SetValue(a.ctrl.View().Draft)
	}
	a.clampCursor()
	a.changed()
	return a
}

func (a *App) setFocus(f Focus) {
	a.focus = f
	a.title.Blur()
	a.search.Blur()
	switch f {
	case FocusTitle:
		a.title.Focus()
	case FocusSearch:
		a.search.Focus()
	}
}

func (a *App) selected() (model.Record, bool) {
	records := a.ctrl.View().Records
	if a.cursor < 0 || a.cursor >= len(records) {
		return model.Record{}, false
	}
	return records[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.ctrl.View().Records)
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	rows := a.listHeight()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
}

func (a App) listHeight() int {
	if a.height == 0 {
		return 10
	}
	h := a.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (a App) changed() {
	if a.onChange != nil {
		a.onChange(a.ctrl.State())
	}
}

func (a App) View() string {
	view := a.ctrl.View()

	var b strings.Builder

	header := a.theme.TitleStyle.Render("recdesk")
	mode := "new record"
	if view.TargetID != nil {
		mode = fmt.Sprintf("editing record %d", *view.TargetID)
	}
	b.WriteString(header + "  " + a.theme.MutedStyle.Render(
		fmt.Sprintf("%d of %d records · %s", len(view.Records), view.Total, mode)))
	b.WriteString("\n\n")

	action := "Create"
	if view.Mode == model.ModeEdit {
		action = "Update"
	}
	b.WriteString(a.label("Title", FocusTitle) + a.title.View() + "  " +
		a.theme.MutedStyle.Render("[enter: "+action+"]") + "\n")
	b.WriteString(a.label("Search", FocusSearch) + a.search.View() + "\n\n")

	b.WriteString(a.renderList(view.Records))
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.renderHelp())

	return b.String()
}

func (a App) label(text string, f Focus) string {
	if a.focus == f {
		return a.theme.FocusStyle.Render(text)
	}
	return a.theme.LabelStyle.Render(text)
}

func (a App) renderList(records []model.Record) string {
	if len(records) == 0 {
		return a.theme.MutedStyle.Render("  No records.") + "\n"
	}

	idWidth := 2
	for _, r := range records {
		if n := len(fmt.Sprint(r.ID)); n > idWidth {
			idWidth = n
		}
	}

	var b strings.Builder
	end := a.offset + a.listHeight()
	if end > len(records) {
		end = len(records)
	}
	for i := a.offset; i < end; i++ {
		r := records[i]
		row := fmt.Sprintf(" %*d  %s ", idWidth, r.ID, r.Title)
		if a.width > 0 && lipgloss.Width(row) > a.width {
			if runes := []rune(row); len(runes) >= a.width {
				row = string(runes[:a.width-1])
			}
		}
		if a.focus == FocusList && i == a.cursor {
			b.WriteString(a.theme.SelectedStyle.Render(row))
		} else {
			b.WriteString(a.theme.RowStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderStatus() string {
	status := a.status
	if a.pending > 0 {
		working := fmt.Sprintf("working (%d)...", a.pending)
		if status == "" {
			status = working
		} else {
			status = working + " " + status
		}
	}
	if a.statusErr {
		return a.theme.ErrorStyle.Render(status)
	}
	return a.theme.SuccessStyle.Render(status)
}

func (a App) renderHelp() string {
	parts := make([]string, 0, len(a.keys.ShortHelp()))
	for _, k := range a.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return a.theme.MutedStyle.Render(strings.Join(parts, " · "))
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, onChange func(model.State)) error {
	app := NewApp(ctx, ctrl, onChange)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

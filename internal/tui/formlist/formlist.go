// ABOUTME: Form list screen with cards, client-side filtering, and actions
// ABOUTME: Search and active-only filtering never refetch from the backend

package formlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/collabform/collabform-cli/internal/api"
	"github.com/collabform/collabform-cli/internal/forms"
	"github.com/collabform/collabform-cli/internal/tui/styles"
)

// Mode selects which list is shown.
type Mode int

const (
	ModeMine Mode = iota
	ModeShared
)

// state represents the current UI state
type state int

const (
	stateList state = iota
	stateSearch
	stateConfirmDelete
)

// OpenMsg asks the app to open a form in fill mode.
type OpenMsg struct {
	ID int64
}

// EditMsg asks the app to open a form in the editor.
type EditMsg struct {
	ID int64
}

// DeleteMsg asks the app to delete a form. Sent only after the
// confirmation step.
type DeleteMsg struct {
	ID int64
}

// NewFormMsg asks the app to open an empty editor.
type NewFormMsg struct{}

// RefreshMsg asks the app to refetch the current list.
type RefreshMsg struct {
	Shared bool
}

// BackMsg is sent when the user leaves the list.
type BackMsg struct{}

// FormList is the form list screen model.
type FormList struct {
	mode    Mode
	all     []api.Form
	visible []api.Form
	cursor  int

	search     textinput.Model
	activeOnly bool

	state    state
	loading  bool
	errMsg   string
	deleteID int64
	width    int
	height   int
}

// New creates a form list in loading state.
func New(mode Mode) *FormList {
	ti := textinput.New()
	ti.Placeholder = "search title or description"
	ti.CharLimit = 128
	ti.Width = 40

	return &FormList{
		mode:    mode,
		search:  ti,
		loading: true,
	}
}

// Mode returns whether the list shows owned or shared forms.
func (l *FormList) Mode() Mode {
	return l.mode
}

// SetForms installs a freshly fetched list and applies the filter.
func (l *FormList) SetForms(list []api.Form) {
	l.all = list
	l.loading = false
	l.errMsg = ""
	l.applyFilter()
}

// SetError puts the list into its static error state.
func (l *FormList) SetError(msg string) {
	l.loading = false
	l.errMsg = msg
}

// applyFilter recomputes the visible set from the loaded set
func (l *FormList) applyFilter() {
	l.visible = forms.Filter(l.all, l.search.Value(), l.activeOnly)
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Init implements tea.Model
func (l *FormList) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *FormList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		return l, nil

	case tea.KeyMsg:
		switch l.state {
		case stateSearch:
			return l.updateSearch(msg)
		case stateConfirmDelete:
			return l.updateConfirmDelete(msg)
		default:
			return l.updateList(msg)
		}
	}

	return l, nil
}

func (l *FormList) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.visible)-1 {
			l.cursor++
		}
	case "/":
		l.state = stateSearch
		l.search.Focus()
		return l, textinput.Blink
	case "a":
		l.activeOnly = !l.activeOnly
		l.applyFilter()
	case "enter":
		if form, ok := l.selected(); ok {
			id := form.ID
			return l, func() tea.Msg { return OpenMsg{ID: id} }
		}
	case "e":
		if l.mode != ModeMine {
			break
		}
		if form, ok := l.selected(); ok {
			id := form.ID
			return l, func() tea.Msg { return EditMsg{ID: id} }
		}
	case "d":
		if l.mode != ModeMine {
			break
		}
		if form, ok := l.selected(); ok {
			l.deleteID = form.ID
			l.state = stateConfirmDelete
		}
	case "n":
		if l.mode == ModeMine {
			return l, func() tea.Msg { return NewFormMsg{} }
		}
	case "r":
		l.loading = true
		l.errMsg = ""
		shared := l.mode == ModeShared
		return l, func() tea.Msg { return RefreshMsg{Shared: shared} }
	case "esc", "b":
		return l, func() tea.Msg { return BackMsg{} }
	}

	return l, nil
}

func (l *FormList) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		l.state = stateList
		l.search.Blur()
		return l, nil
	}

	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	l.applyFilter()
	return l, cmd
}

func (l *FormList) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := l.deleteID
		l.state = stateList
		l.deleteID = 0
		return l, func() tea.Msg { return DeleteMsg{ID: id} }
	case "n", "N", "esc":
		l.state = stateList
		l.deleteID = 0
	}
	return l, nil
}

// selected returns the form under the cursor
func (l *FormList) selected() (api.Form, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return api.Form{}, false
	}
	return l.visible[l.cursor], true
}

// View implements tea.Model
func (l *FormList) View() string {
	var sb strings.Builder

	title := "My Forms"
	if l.mode == ModeShared {
		title = "Forms Shared With Me"
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if l.errMsg != "" {
		sb.WriteString(styles.StatusError.Render("Error loading forms. Please try again."))
		return sb.String()
	}

	if l.loading {
		sb.WriteString(styles.Subtitle.Render("Loading forms..."))
		return sb.String()
	}

	sb.WriteString(l.renderFilterBar())
	sb.WriteString("\n\n")

	if l.state == stateConfirmDelete {
		sb.WriteString(styles.StatusError.Render("Delete this form? This action cannot be undone. (y/n)"))
		sb.WriteString("\n\n")
	}

	if len(l.visible) == 0 {
		sb.WriteString(styles.Subtitle.Render("No forms found."))
		return sb.String()
	}

	for i, form := range l.visible {
		sb.WriteString(l.renderCard(form, i == l.cursor))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderFilterBar renders the search input and active-only toggle
func (l *FormList) renderFilterBar() string {
	searchLabel := "/ search: "
	search := l.search.View()
	if l.state != stateSearch && l.search.Value() == "" {
		search = styles.Subtitle.Render("(press / to search)")
	}

	toggle := "[ ] active only (a)"
	if l.activeOnly {
		toggle = "[x] active only (a)"
	}

	return searchLabel + search + "   " + styles.Subtitle.Render(toggle)
}

// renderCard renders one form card line pair
func (l *FormList) renderCard(form api.Form, selected bool) string {
	cursor := "  "
	titleStyle := styles.NormalStyle
	if selected {
		cursor = "> "
		titleStyle = styles.SelectedStyle
	}

	status := styles.StatusError.Render("Inactive")
	if form.Active {
		status = styles.StatusOK.Render("Active")
	}

	line := cursor + titleStyle.Render(form.Title) + "  " + status
	if form.CreatedAt != "" {
		line += styles.Subtitle.Render("  created " + displayDate(form.CreatedAt))
	}

	desc := form.Description
	if desc == "" {
		desc = "No description"
	}
	line += "\n    " + styles.Subtitle.Render(desc)

	return line
}

// displayDate trims a backend timestamp down to its date part
func displayDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// VisibleCount returns how many forms pass the current filter.
func (l *FormList) VisibleCount() int {
	return len(l.visible)
}

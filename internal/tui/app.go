// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, runs API calls, and routes input to child screens

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/collabform/collabform-cli/internal/api"
	"github.com/collabform/collabform-cli/internal/debuglog"
	"github.com/collabform/collabform-cli/internal/session"
	"github.com/collabform/collabform-cli/internal/tui/authview"
	"github.com/collabform/collabform-cli/internal/tui/editor"
	"github.com/collabform/collabform-cli/internal/tui/fillview"
	"github.com/collabform/collabform-cli/internal/tui/formlist"
	"github.com/collabform/collabform-cli/internal/tui/home"
	"github.com/collabform/collabform-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenAuth
	ScreenFormList
	ScreenFormEditor
	ScreenFormFill
)

// Layout constants
const minTerminalWidth = 80

// loggedInMsg is sent when a login attempt finishes
type loggedInMsg struct {
	user *session.User
	err  error
}

// registeredMsg is sent when a registration attempt finishes
type registeredMsg struct {
	err error
}

// formsLoadedMsg is sent when a form list fetch finishes
type formsLoadedMsg struct {
	shared bool
	forms  []api.Form
	err    error
}

// formFetchedMsg is sent when a single form fetch finishes
type formFetchedMsg struct {
	form    *api.Form
	forEdit bool
	err     error
}

// formSavedMsg is sent when a create or update finishes
type formSavedMsg struct {
	created bool
	err     error
}

// formDeletedMsg is sent when a delete finishes
type formDeletedMsg struct {
	err error
}

// formSharedMsg is sent when a share request finishes
type formSharedMsg struct {
	email string
	err   error
}

// responsesSubmittedMsg is sent when a submission finishes
type responsesSubmittedMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	client *api.Client
	sess   *session.Session

	screen Screen
	width  int
	height int
	toast  string

	// Child models
	home     *home.Home
	auth     *authview.AuthView
	list     *formlist.FormList
	editView *editor.Editor
	fill     *fillview.FillView
}

// New creates a new TUI application
func New(client *api.Client, sess *session.Session) *App {
	username := ""
	if user := sess.CurrentUser(); user != nil {
		username = user.Subject
	}

	return &App{
		client: client,
		sess:   sess,
		screen: ScreenHome,
		home:   home.New(username),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to child models
		if a.home != nil {
			a.home.Update(msg)
		}
		if a.list != nil {
			a.list.Update(msg)
		}
		if a.auth != nil {
			return a.updateAuth(msg)
		}
		if a.editView != nil {
			return a.updateEditor(msg)
		}
		if a.fill != nil {
			return a.updateFill(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.toast = ""

		// Route to current screen
		switch a.screen {
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenAuth:
			return a.updateAuth(msg)
		case ScreenFormList:
			return a.updateList(msg)
		case ScreenFormEditor:
			return a.updateEditor(msg)
		case ScreenFormFill:
			return a.updateFill(msg)
		}

	case authview.LoginMsg:
		return a, a.login(msg.Username, msg.Password)

	case authview.RegisterMsg:
		return a, a.register(msg)

	case authview.CancelledMsg:
		a.screen = ScreenHome
		a.auth = nil
		return a, nil

	case loggedInMsg:
		return a.handleLoggedIn(msg)

	case registeredMsg:
		return a.handleRegistered(msg)

	case formlist.OpenMsg:
		return a, a.fetchForm(msg.ID, false)

	case formlist.EditMsg:
		return a, a.fetchForm(msg.ID, true)

	case formlist.NewFormMsg:
		a.editView = editor.New()
		a.screen = ScreenFormEditor
		return a, a.editView.Init()

	case formlist.DeleteMsg:
		return a, a.deleteForm(msg.ID)

	case formlist.RefreshMsg:
		return a, a.loadForms(msg.Shared)

	case formlist.BackMsg:
		a.screen = ScreenHome
		a.list = nil
		return a, nil

	case formsLoadedMsg:
		return a.handleFormsLoaded(msg)

	case formFetchedMsg:
		return a.handleFormFetched(msg)

	case editor.SaveMsg:
		return a, a.saveForm(msg)

	case editor.CancelMsg:
		a.editView = nil
		a.screen = ScreenFormList
		return a, a.reloadList()

	case formSavedMsg:
		return a.handleFormSaved(msg)

	case formDeletedMsg:
		return a.handleFormDeleted(msg)

	case fillview.SubmitMsg:
		return a, a.submitResponses(msg)

	case fillview.ShareMsg:
		return a, a.shareForm(msg)

	case fillview.BackMsg:
		a.fill = nil
		a.screen = ScreenFormList
		return a, a.reloadList()

	case formSharedMsg:
		if msg.err != nil {
			debuglog.Error("share form", msg.err)
			a.toast = styles.StatusError.Render("Error: failed to share form")
			return a, nil
		}
		if a.fill != nil {
			a.fill.SetStatus("Form shared with " + msg.email)
		}
		return a, nil

	case responsesSubmittedMsg:
		if msg.err != nil {
			debuglog.Error("submit responses", msg.err)
			a.toast = styles.StatusError.Render("Error: " + msg.err.Error())
			return a, nil
		}
		a.fill = nil
		a.toast = styles.StatusOK.Render("Responses submitted. Thank you!")
		a.screen = ScreenFormList
		return a, a.reloadList()

	default:
		// Forward unknown messages to huh-backed screens (needed for form internals)
		switch a.screen {
		case ScreenAuth:
			return a.updateAuth(msg)
		case ScreenFormEditor:
			return a.updateEditor(msg)
		case ScreenFormFill:
			return a.updateFill(msg)
		}
	}

	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	authenticated := a.sess.IsAuthenticated()

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "l":
		if !authenticated {
			return a.openAuth(authview.TabLogin)
		}
	case "g":
		if !authenticated {
			return a.openAuth(authview.TabRegister)
		}
	case "m":
		if authenticated {
			return a.openList(formlist.ModeMine)
		}
	case "f":
		if authenticated {
			return a.openList(formlist.ModeShared)
		}
	case "n":
		if authenticated {
			a.editView = editor.New()
			a.screen = ScreenFormEditor
			return a, a.editView.Init()
		}
	case "o":
		if authenticated {
			if err := a.sess.Logout(); err != nil {
				debuglog.Error("logout", err)
			}
			a.home.SetUsername("")
			a.toast = styles.StatusInfo.Render("Logged out")
		}
	}
	return a, nil
}

func (a *App) openAuth(tab authview.Tab) (tea.Model, tea.Cmd) {
	a.auth = authview.New(tab)
	a.screen = ScreenAuth
	return a, a.auth.Init()
}

func (a *App) openList(mode formlist.Mode) (tea.Model, tea.Cmd) {
	a.list = formlist.New(mode)
	a.screen = ScreenFormList
	return a, a.loadForms(mode == formlist.ModeShared)
}

func (a *App) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.auth == nil {
		return a, nil
	}
	model, cmd := a.auth.Update(msg)
	a.auth = model.(*authview.AuthView)
	return a, cmd
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	model, cmd := a.list.Update(msg)
	a.list = model.(*formlist.FormList)
	return a, cmd
}

func (a *App) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.editView == nil {
		return a, nil
	}
	model, cmd := a.editView.Update(msg)
	a.editView = model.(*editor.Editor)
	return a, cmd
}

func (a *App) updateFill(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.fill == nil {
		return a, nil
	}
	model, cmd := a.fill.Update(msg)
	a.fill = model.(*fillview.FillView)
	return a, cmd
}

func (a *App) handleLoggedIn(msg loggedInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("login", msg.err)
		if a.auth != nil {
			return a, a.auth.SetError(msg.err.Error())
		}
		return a, nil
	}

	username := ""
	if msg.user != nil {
		username = msg.user.Subject
	}
	a.home.SetUsername(username)
	a.auth = nil
	a.screen = ScreenHome
	a.toast = styles.StatusOK.Render("Logged in as " + username)
	return a, nil
}

func (a *App) handleRegistered(msg registeredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("register", msg.err)
		if a.auth != nil {
			return a, a.auth.SetError(msg.err.Error())
		}
		return a, nil
	}

	// Registration does not log the user in; switch to the login tab
	if a.auth != nil {
		cmd := a.auth.SwitchTab(authview.TabLogin)
		return a, tea.Batch(cmd, a.auth.SetInfo("Registration successful. Please login."))
	}
	return a, nil
}

func (a *App) handleFormsLoaded(msg formsLoadedMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	if msg.err != nil {
		debuglog.Error("load forms", msg.err)
		a.list.SetError(msg.err.Error())
		return a, nil
	}
	a.list.SetForms(msg.forms)
	return a, nil
}

func (a *App) handleFormFetched(msg formFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("fetch form", msg.err)
		a.toast = styles.StatusError.Render("Error: " + msg.err.Error())
		return a, nil
	}

	if msg.forEdit {
		a.editView = editor.NewEdit(msg.form)
		a.screen = ScreenFormEditor
		return a, a.editView.Init()
	}

	a.fill = fillview.New(*msg.form)
	a.screen = ScreenFormFill
	return a, a.fill.Init()
}

func (a *App) handleFormSaved(msg formSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("save form", msg.err)
		a.toast = styles.StatusError.Render("Error: " + msg.err.Error())
		return a, nil
	}

	verb := "updated"
	if msg.created {
		verb = "created"
	}
	a.toast = styles.StatusOK.Render("Form " + verb)
	a.editView = nil
	a.screen = ScreenFormList
	if a.list == nil {
		a.list = formlist.New(formlist.ModeMine)
	}
	return a, a.reloadList()
}

func (a *App) handleFormDeleted(msg formDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("delete form", msg.err)
		a.toast = styles.StatusError.Render("Error: " + msg.err.Error())
		return a, nil
	}
	a.toast = styles.StatusOK.Render("Form deleted")
	return a, a.reloadList()
}

// reloadList refetches whichever list is open
func (a *App) reloadList() tea.Cmd {
	if a.list == nil {
		a.list = formlist.New(formlist.ModeMine)
	}
	return a.loadForms(a.list.Mode() == formlist.ModeShared)
}

// login runs the login flow off the UI loop
func (a *App) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		if err := a.sess.Login(context.Background(), username, password); err != nil {
			return loggedInMsg{err: err}
		}
		return loggedInMsg{user: a.sess.CurrentUser()}
	}
}

// register runs the registration flow off the UI loop
func (a *App) register(msg authview.RegisterMsg) tea.Cmd {
	return func() tea.Msg {
		err := a.sess.Register(context.Background(), msg.Username, msg.Email, msg.Password, msg.Confirm)
		return registeredMsg{err: err}
	}
}

// loadForms fetches the owned or shared list
func (a *App) loadForms(shared bool) tea.Cmd {
	return func() tea.Msg {
		var (
			forms []api.Form
			err   error
		)
		if shared {
			forms, err = a.client.SharedForms(context.Background())
		} else {
			forms, err = a.client.MyForms(context.Background())
		}
		return formsLoadedMsg{shared: shared, forms: forms, err: err}
	}
}

// fetchForm fetches a single form for editing or filling
func (a *App) fetchForm(id int64, forEdit bool) tea.Cmd {
	return func() tea.Msg {
		form, err := a.client.GetForm(context.Background(), id)
		return formFetchedMsg{form: form, forEdit: forEdit, err: err}
	}
}

// saveForm creates or updates depending on the tracked form id
func (a *App) saveForm(msg editor.SaveMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		if msg.FormID == 0 {
			_, err = a.client.CreateForm(context.Background(), msg.Request)
		} else {
			_, err = a.client.UpdateForm(context.Background(), msg.FormID, msg.Request)
		}
		return formSavedMsg{created: msg.FormID == 0, err: err}
	}
}

func (a *App) deleteForm(id int64) tea.Cmd {
	return func() tea.Msg {
		return formDeletedMsg{err: a.client.DeleteForm(context.Background(), id)}
	}
}

func (a *App) shareForm(msg fillview.ShareMsg) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.ShareForm(context.Background(), msg.FormID, msg.Email)
		return formSharedMsg{email: msg.Email, err: err}
	}
}

func (a *App) submitResponses(msg fillview.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		err := a.client.SubmitResponses(context.Background(), msg.FormID, msg.Responses)
		return responsesSubmittedMsg{err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenHome:
		content = a.viewHome()
	case ScreenAuth:
		content = a.viewAuth()
	case ScreenFormList:
		content = a.viewList()
	case ScreenFormEditor:
		content = a.viewEditor()
	case ScreenFormFill:
		content = a.viewFill()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewHome() string {
	if a.home != nil {
		return a.home.View()
	}
	return ""
}

func (a *App) viewAuth() string {
	if a.auth != nil {
		return a.auth.View()
	}
	return ""
}

func (a *App) viewList() string {
	if a.list != nil {
		return a.list.View()
	}
	return ""
}

func (a *App) viewEditor() string {
	if a.editView != nil {
		return a.editView.View()
	}
	return ""
}

func (a *App) viewFill() string {
	if a.fill != nil {
		return a.fill.View()
	}
	return ""
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("CollabForm")

	rightText := ""
	if user := a.sess.CurrentUser(); user != nil {
		rightText = contextStyle.Render(user.Subject) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and the toast line
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenHome:
		if a.sess.IsAuthenticated() {
			shortcuts = []string{"m My forms", "f Shared", "n New", "o Logout", "q Quit"}
		} else {
			shortcuts = []string{"l Login", "g Register", "q Quit"}
		}
	case ScreenAuth:
		shortcuts = []string{"Tab Switch", "Enter Submit", "Esc Back"}
	case ScreenFormList:
		shortcuts = []string{"↑↓ Navigate", "Enter Fill", "/ Search", "r Refresh", "Esc Back"}
	case ScreenFormEditor:
		shortcuts = []string{"↑↓ Navigate", "Enter Confirm", "Esc Cancel"}
	case ScreenFormFill:
		shortcuts = []string{"↑↓ Navigate", "Enter Submit", "Ctrl+E Share", "Esc Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	if a.toast != "" {
		rightText = a.toast + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(client *api.Client, sess *session.Session) error {
	app := New(client, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// ABOUTME: Login and registration screen with two tabs
// ABOUTME: Emits auth intents; the root app performs the network calls

package authview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/collabform/collabform-cli/internal/tui/styles"
)

// Tab selects between the login and register sub-views.
type Tab int

const (
	TabLogin Tab = iota
	TabRegister
)

// LoginMsg is sent when the login form is submitted.
type LoginMsg struct {
	Username string
	Password string
}

// RegisterMsg is sent when the registration form is submitted.
type RegisterMsg struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

// CancelledMsg is sent when the user leaves the auth screen.
type CancelledMsg struct{}

// AuthView is the auth screen model.
type AuthView struct {
	tab   Tab
	form  *huh.Form
	width int

	errMsg  string
	infoMsg string

	// Login fields
	username string
	password string

	// Registration fields
	regUsername string
	regEmail    string
	regPassword string
	regConfirm  string
}

// New creates the auth screen opened on the given tab.
func New(tab Tab) *AuthView {
	v := &AuthView{tab: tab}
	v.form = v.buildForm()
	return v
}

// Init implements tea.Model
func (v *AuthView) Init() tea.Cmd {
	return v.form.Init()
}

// Tab returns the active tab.
func (v *AuthView) Tab() Tab {
	return v.tab
}

// SwitchTab activates the given tab and rebuilds its form.
func (v *AuthView) SwitchTab(tab Tab) tea.Cmd {
	v.tab = tab
	v.errMsg = ""
	v.form = v.buildForm()
	return v.form.Init()
}

// SetError shows an inline error and re-arms the form with the
// previously entered values.
func (v *AuthView) SetError(msg string) tea.Cmd {
	v.errMsg = msg
	v.infoMsg = ""
	v.form = v.buildForm()
	return v.form.Init()
}

// SetInfo shows an informational line (e.g. after registration).
func (v *AuthView) SetInfo(msg string) tea.Cmd {
	v.infoMsg = msg
	v.errMsg = ""
	v.form = v.buildForm()
	return v.form.Init()
}

func (v *AuthView) buildForm() *huh.Form {
	if v.tab == TabLogin {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&v.username),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&v.password),
			).Title("Login"),
		).WithTheme(styles.FormTheme())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&v.regUsername),
			huh.NewInput().
				Title("Email").
				Value(&v.regEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.regPassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&v.regConfirm),
		).Title("Register"),
	).WithTheme(styles.FormTheme())
}

// Update implements tea.Model
func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return CancelledMsg{} }
		case "tab":
			if v.tab == TabLogin {
				return v, v.SwitchTab(TabRegister)
			}
			return v, v.SwitchTab(TabLogin)
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v.emitIntent()
	}

	return v, cmd
}

// emitIntent turns a completed form into an auth intent message.
func (v *AuthView) emitIntent() (tea.Model, tea.Cmd) {
	if v.tab == TabLogin {
		intent := LoginMsg{Username: v.username, Password: v.password}
		return v, func() tea.Msg { return intent }
	}

	intent := RegisterMsg{
		Username: v.regUsername,
		Email:    v.regEmail,
		Password: v.regPassword,
		Confirm:  v.regConfirm,
	}
	return v, func() tea.Msg { return intent }
}

// View implements tea.Model
func (v *AuthView) View() string {
	var sb strings.Builder

	sb.WriteString(v.renderTabs())
	sb.WriteString("\n\n")

	if v.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(v.errMsg))
		sb.WriteString("\n\n")
	} else if v.infoMsg != "" {
		sb.WriteString(styles.StatusOK.Render(v.infoMsg))
		sb.WriteString("\n\n")
	}

	sb.WriteString(v.form.View())

	return sb.String()
}

// renderTabs renders the login/register tab header
func (v *AuthView) renderTabs() string {
	activeStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	login := inactiveStyle.Render("Login")
	register := inactiveStyle.Render("Register")
	if v.tab == TabLogin {
		login = activeStyle.Render("Login")
	} else {
		register = activeStyle.Render("Register")
	}

	return login + "    " + register
}

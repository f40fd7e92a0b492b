// ABOUTME: Landing screen shown on startup
// ABOUTME: Content and key hints depend on whether a session exists

package home

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/collabform/collabform-cli/internal/tui/styles"
)

// Home is the landing screen model.
type Home struct {
	username string
	width    int
}

// New creates the landing screen. An empty username means no session.
func New(username string) *Home {
	return &Home{username: username}
}

// SetUsername updates the greeting after login or logout.
func (h *Home) SetUsername(username string) {
	h.username = username
}

// Init implements tea.Model
func (h *Home) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		h.width = ws.Width
	}
	return h, nil
}

// View implements tea.Model
func (h *Home) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("CollabForm"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Create, share, and fill forms together."))
	sb.WriteString("\n\n")

	if h.username == "" {
		sb.WriteString(styles.NormalStyle.Render("You are not logged in."))
		sb.WriteString("\n\n")
		sb.WriteString(hint("l", "login"))
		sb.WriteString("\n")
		sb.WriteString(hint("g", "register"))
	} else {
		sb.WriteString(styles.NormalStyle.Render("Welcome back, ") + styles.StatusOK.Render(h.username))
		sb.WriteString("\n\n")
		sb.WriteString(hint("m", "my forms"))
		sb.WriteString("\n")
		sb.WriteString(hint("f", "forms shared with me"))
		sb.WriteString("\n")
		sb.WriteString(hint("n", "create a new form"))
		sb.WriteString("\n")
		sb.WriteString(hint("o", "logout"))
	}

	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("q quit"))

	return sb.String()
}

func hint(key, label string) string {
	return "  " + styles.KeyStyle.Render(key) + "  " + styles.NormalStyle.Render(label)
}

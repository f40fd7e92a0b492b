// ABOUTME: Form fill screen rendering one control per field
// ABOUTME: Required fields are checked locally before any submit intent

package fillview

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/collabform/collabform-cli/internal/api"
	"github.com/collabform/collabform-cli/internal/forms"
	"github.com/collabform/collabform-cli/internal/tui/styles"
)

// SubmitMsg carries the collected responses, keyed by field id.
type SubmitMsg struct {
	FormID    int64
	Responses map[string]any
}

// ShareMsg asks the app to share the form with another user.
type ShareMsg struct {
	FormID int64
	Email  string
}

// BackMsg is sent when the user leaves the fill screen.
type BackMsg struct{}

// state represents the current UI state
type state int

const (
	stateFill state = iota
	stateShare
)

// noSelection is the placeholder value for an unanswered select
const noSelection = ""

// fieldBinding holds the huh value target for one field
type fieldBinding struct {
	field  api.Field
	text   string
	choice string
	multi  []string
}

// FillView is the fill screen model.
type FillView struct {
	form     api.Form
	bindings []*fieldBinding
	hform    *huh.Form

	state    state
	share    textinput.Model
	errMsg   string
	statusOK string
	width    int
}

// New creates a fill screen for the given form.
func New(form api.Form) *FillView {
	ti := textinput.New()
	ti.Placeholder = "recipient email"
	ti.CharLimit = 255
	ti.Width = 40

	v := &FillView{form: form, share: ti}
	for _, f := range form.Fields {
		v.bindings = append(v.bindings, &fieldBinding{field: f})
	}
	v.hform = v.buildForm()
	return v
}

// FormID returns the form being filled.
func (v *FillView) FormID() int64 {
	return v.form.ID
}

// buildForm assembles one huh group with a control per field,
// reusing the binding values so re-arming keeps entered answers.
func (v *FillView) buildForm() *huh.Form {
	var items []huh.Field
	for _, b := range v.bindings {
		items = append(items, v.control(b))
	}

	return huh.NewForm(
		huh.NewGroup(items...).Title(v.form.Title).Description(v.form.Description),
	).WithTheme(styles.FormTheme())
}

// control picks the huh control matching the field type. Types the
// client does not know render as plain text inputs.
func (v *FillView) control(b *fieldBinding) huh.Field {
	title := b.field.FieldName
	if b.field.Required {
		title += " *"
	}

	switch b.field.FieldType {
	case api.FieldTextarea:
		return huh.NewText().Title(title).Value(&b.text)

	case api.FieldDropdown, api.FieldRadio:
		opts := []huh.Option[string]{huh.NewOption("(no selection)", noSelection)}
		for _, o := range b.field.Options() {
			opts = append(opts, huh.NewOption(o, o))
		}
		return huh.NewSelect[string]().Title(title).Options(opts...).Value(&b.choice)

	case api.FieldCheckbox:
		var opts []huh.Option[string]
		for _, o := range b.field.Options() {
			opts = append(opts, huh.NewOption(o, o))
		}
		return huh.NewMultiSelect[string]().Title(title).Options(opts...).Value(&b.multi)

	case api.FieldNumber:
		return huh.NewInput().Title(title).Placeholder("number").Value(&b.text)

	case api.FieldDate:
		return huh.NewInput().Title(title).Placeholder("YYYY-MM-DD").Value(&b.text)

	default:
		return huh.NewInput().Title(title).Value(&b.text)
	}
}

// answers collects the current binding values keyed by field id
func (v *FillView) answers() map[int64]any {
	out := make(map[int64]any, len(v.bindings))
	for _, b := range v.bindings {
		switch b.field.FieldType {
		case api.FieldCheckbox:
			out[b.field.ID] = b.multi
		case api.FieldRadio:
			// No selection submits as null, not ""
			if b.choice == noSelection {
				out[b.field.ID] = nil
			} else {
				out[b.field.ID] = b.choice
			}
		case api.FieldDropdown:
			out[b.field.ID] = b.choice
		default:
			out[b.field.ID] = strings.TrimSpace(b.text)
		}
	}
	return out
}

// Init implements tea.Model
func (v *FillView) Init() tea.Cmd {
	return v.hform.Init()
}

// Update implements tea.Model
func (v *FillView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width

	case tea.KeyMsg:
		if v.state == stateShare {
			return v.updateShare(msg)
		}
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return BackMsg{} }
		case "ctrl+e":
			v.state = stateShare
			v.share.SetValue("")
			v.share.Focus()
			return v, textinput.Blink
		}
	}

	form, cmd := v.hform.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.hform = f
	}

	if v.hform.State == huh.StateCompleted {
		return v.finish()
	}

	return v, cmd
}

func (v *FillView) updateShare(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.state = stateFill
		v.share.Blur()
		return v, nil
	case "enter":
		email := strings.TrimSpace(v.share.Value())
		v.state = stateFill
		v.share.Blur()
		if email == "" {
			return v, nil
		}
		id := v.form.ID
		return v, func() tea.Msg { return ShareMsg{FormID: id, Email: email} }
	}

	var cmd tea.Cmd
	v.share, cmd = v.share.Update(msg)
	return v, cmd
}

// finish validates required fields and either re-arms the form with
// an error or emits the submit intent. No network call happens here.
func (v *FillView) finish() (tea.Model, tea.Cmd) {
	answers := v.answers()

	if missing := forms.Missing(v.form.Fields, answers); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.FieldName
		}
		v.errMsg = "Please fill in required fields: " + strings.Join(names, ", ")
		v.hform = v.buildForm()
		return v, v.hform.Init()
	}

	v.errMsg = ""
	submit := SubmitMsg{FormID: v.form.ID, Responses: forms.Payload(answers)}
	return v, func() tea.Msg { return submit }
}

// SetStatus shows a transient status line (e.g. after sharing).
func (v *FillView) SetStatus(msg string) {
	v.statusOK = msg
}

// View implements tea.Model
func (v *FillView) View() string {
	var sb strings.Builder

	if v.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(v.errMsg))
		sb.WriteString("\n\n")
	} else if v.statusOK != "" {
		sb.WriteString(styles.StatusOK.Render(v.statusOK))
		sb.WriteString("\n\n")
	}

	if v.state == stateShare {
		sb.WriteString(styles.Title.Render("Share Form"))
		sb.WriteString("\n")
		sb.WriteString(v.share.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("enter share  esc back"))
		return sb.String()
	}

	sb.WriteString(v.hform.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("ctrl+e share  esc back"))

	return sb.String()
}

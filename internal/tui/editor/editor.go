// ABOUTME: Form editor screen holding the in-progress draft
// ABOUTME: The draft lives only while the editor is open; save emits one intent

package editor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/collabform/collabform-cli/internal/api"
	"github.com/collabform/collabform-cli/internal/tui/styles"
)

// SaveMsg carries the finished draft. A zero FormID means create,
// a non-zero one means update of that form.
type SaveMsg struct {
	FormID  int64
	Request *api.FormSaveRequest
}

// CancelMsg is sent when the draft is discarded.
type CancelMsg struct{}

// state represents the current editor sub-view
type state int

const (
	stateMeta state = iota
	stateFields
	stateAddField
)

var fieldTypeOptions = []huh.Option[string]{
	huh.NewOption("Text", string(api.FieldText)),
	huh.NewOption("Text area", string(api.FieldTextarea)),
	huh.NewOption("Number", string(api.FieldNumber)),
	huh.NewOption("Date", string(api.FieldDate)),
	huh.NewOption("Dropdown", string(api.FieldDropdown)),
	huh.NewOption("Checkboxes", string(api.FieldCheckbox)),
	huh.NewOption("Radio buttons", string(api.FieldRadio)),
}

// Editor is the form editor screen model.
type Editor struct {
	formID      int64
	title       string
	description string
	fields      []api.Field

	state  state
	form   *huh.Form
	cursor int
	errMsg string
	width  int

	// Scratch values for the add-field form
	fieldName     string
	fieldType     string
	fieldRequired bool
	fieldOptions  string
}

// New creates an empty draft for a new form.
func New() *Editor {
	e := &Editor{}
	e.form = e.metaForm()
	return e
}

// NewEdit creates a draft populated from an existing form.
func NewEdit(form *api.Form) *Editor {
	e := &Editor{
		formID:      form.ID,
		title:       form.Title,
		description: form.Description,
		fields:      append([]api.Field(nil), form.Fields...),
	}
	e.form = e.metaForm()
	return e
}

// FormID returns the tracked form id, 0 for a new form.
func (e *Editor) FormID() int64 {
	return e.formID
}

// metaForm builds the title/description form
func (e *Editor) metaForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(255).
				Value(&e.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				CharLimit(1000).
				Value(&e.description),
		).Title(e.heading()),
	).WithTheme(styles.FormTheme())
}

// addFieldForm builds the new-field form
func (e *Editor) addFieldForm() *huh.Form {
	e.fieldName = ""
	e.fieldType = string(api.FieldText)
	e.fieldRequired = false
	e.fieldOptions = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Field name").
				Value(&e.fieldName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("field name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Field type").
				Options(fieldTypeOptions...).
				Value(&e.fieldType),
			huh.NewInput().
				Title("Options").
				Description("Comma-separated, for dropdown/checkbox/radio fields").
				Value(&e.fieldOptions),
			huh.NewConfirm().
				Title("Required?").
				Value(&e.fieldRequired),
		).Title("Add Field"),
	).WithTheme(styles.FormTheme())
}

func (e *Editor) heading() string {
	if e.formID != 0 {
		return "Edit Form"
	}
	return "Create New Form"
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	return e.form.Init()
}

// Update implements tea.Model
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		form, cmd := e.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			e.form = f
		}
		return e, cmd

	case tea.KeyMsg:
		if e.state == stateFields {
			return e.updateFields(msg)
		}
		if msg.String() == "esc" {
			if e.state == stateAddField {
				// Discard the field, keep the draft
				e.state = stateFields
				return e, nil
			}
			return e, func() tea.Msg { return CancelMsg{} }
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		return e.advance()
	}

	return e, cmd
}

// advance moves past a completed huh form
func (e *Editor) advance() (tea.Model, tea.Cmd) {
	switch e.state {
	case stateMeta:
		e.state = stateFields
		return e, nil

	case stateAddField:
		field := api.Field{
			FieldName:    strings.TrimSpace(e.fieldName),
			FieldType:    api.FieldType(e.fieldType),
			Required:     e.fieldRequired,
			DisplayOrder: e.nextDisplayOrder(),
		}
		if field.FieldType.HasOptions() {
			field.FieldOptions = api.EncodeOptions(splitOptions(e.fieldOptions))
		}
		e.fields = append(e.fields, field)
		e.state = stateFields
		return e, nil
	}

	return e, nil
}

func (e *Editor) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.fields)-1 {
			e.cursor++
		}
	case "a":
		e.state = stateAddField
		e.form = e.addFieldForm()
		return e, e.form.Init()
	case "x":
		if e.cursor >= 0 && e.cursor < len(e.fields) {
			e.fields = append(e.fields[:e.cursor], e.fields[e.cursor+1:]...)
			if e.cursor >= len(e.fields) && e.cursor > 0 {
				e.cursor--
			}
		}
	case "t":
		e.state = stateMeta
		e.form = e.metaForm()
		return e, e.form.Init()
	case "s", "enter":
		if strings.TrimSpace(e.title) == "" {
			e.errMsg = "title is required"
			return e, nil
		}
		save := SaveMsg{FormID: e.formID, Request: e.saveRequest()}
		return e, func() tea.Msg { return save }
	case "esc":
		return e, func() tea.Msg { return CancelMsg{} }
	}
	return e, nil
}

// saveRequest builds the create/update body, preserving field order
// and content exactly as drafted.
func (e *Editor) saveRequest() *api.FormSaveRequest {
	return &api.FormSaveRequest{
		Title:       strings.TrimSpace(e.title),
		Description: strings.TrimSpace(e.description),
		Fields:      append([]api.Field(nil), e.fields...),
	}
}

// nextDisplayOrder returns one past the highest existing order
func (e *Editor) nextDisplayOrder() int {
	next := 0
	for _, f := range e.fields {
		if f.DisplayOrder >= next {
			next = f.DisplayOrder + 1
		}
	}
	return next
}

// splitOptions parses the comma-separated options input
func splitOptions(s string) []string {
	var opts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			opts = append(opts, part)
		}
	}
	return opts
}

// View implements tea.Model
func (e *Editor) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(e.heading()))
	sb.WriteString("\n")

	if e.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(e.errMsg))
		sb.WriteString("\n\n")
	}

	switch e.state {
	case stateFields:
		sb.WriteString(e.viewFields())
	default:
		sb.WriteString(e.form.View())
	}

	return sb.String()
}

// viewFields renders the draft's field list with the action hints
func (e *Editor) viewFields() string {
	var sb strings.Builder

	sb.WriteString(styles.NormalStyle.Render(e.title))
	if e.description != "" {
		sb.WriteString("\n" + styles.Subtitle.Render(e.description))
	}
	sb.WriteString("\n\n")

	if len(e.fields) == 0 {
		sb.WriteString(styles.Subtitle.Render("No fields yet. Press a to add one."))
		sb.WriteString("\n")
	}

	for i, f := range e.fields {
		cursor := "  "
		style := styles.NormalStyle
		if i == e.cursor {
			cursor = "> "
			style = styles.SelectedStyle
		}

		req := ""
		if f.Required {
			req = " *"
		}
		line := cursor + style.Render(f.FieldName) + styles.Subtitle.Render("  "+string(f.FieldType)+req)
		if opts := f.Options(); len(opts) > 0 {
			line += styles.Subtitle.Render("  ["+strings.Join(opts, ", ")+"]")
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("a add field  x remove  t edit details  s save  esc cancel"))

	return sb.String()
}

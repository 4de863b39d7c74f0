package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okulov/photocards/internal/validation"
)

// Field names shared between the inputs and the validation engine.
const (
	fieldName   = "name"
	fieldAbout  = "about"
	fieldAvatar = "avatar"
	fieldLink   = "link"
)

type formField struct {
	name  string
	label string
	input textinput.Model
}

// formModel pairs a set of text inputs with their validation state. Every
// keystroke re-validates the edited field; the submit affordance follows
// the form's overall validity.
type formModel struct {
	title       string
	submitLabel string
	busyLabel   string
	fields      []formField
	focus       int
	state       *validation.Form
}

func newTextInput(placeholder string, charLimit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 48
	return ti
}

func newProfileForm() *formModel {
	f := &formModel{
		title:       "Edit profile",
		submitLabel: "Save",
		busyLabel:   "Saving...",
		fields: []formField{
			{name: fieldName, label: "Name", input: newTextInput("Your name", 40)},
			{name: fieldAbout, label: "About", input: newTextInput("About you", 200)},
		},
		state: validation.NewForm(
			validation.FieldSpec{Name: fieldName, Rule: validation.TextRule(2, 40)},
			validation.FieldSpec{Name: fieldAbout, Rule: validation.TextRule(2, 200)},
		),
	}
	f.focusField(0)
	return f
}

func newAvatarForm() *formModel {
	f := &formModel{
		title:       "Update avatar",
		submitLabel: "Save",
		busyLabel:   "Saving...",
		fields: []formField{
			{name: fieldAvatar, label: "Avatar URL", input: newTextInput("https://...", 0)},
		},
		state: validation.NewForm(
			validation.FieldSpec{Name: fieldAvatar, Rule: validation.URLRule()},
		),
	}
	f.focusField(0)
	return f
}

func newCardForm() *formModel {
	f := &formModel{
		title:       "New card",
		submitLabel: "Create",
		busyLabel:   "Creating...",
		fields: []formField{
			{name: fieldName, label: "Caption", input: newTextInput("Card caption", 30)},
			{name: fieldLink, label: "Image URL", input: newTextInput("https://...", 0)},
		},
		state: validation.NewForm(
			validation.FieldSpec{Name: fieldName, Rule: validation.TextRule(2, 30)},
			validation.FieldSpec{Name: fieldLink, Rule: validation.URLRule()},
		),
	}
	f.focusField(0)
	return f
}

func (f *formModel) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(f.fields) - 1
	}
	i = i % len(f.fields)
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
}

// NextField moves input focus forward (tab/down).
func (f *formModel) NextField() {
	f.focusField(f.focus + 1)
}

// PrevField moves input focus backward (shift+tab/up).
func (f *formModel) PrevField() {
	f.focusField(f.focus - 1)
}

// Update feeds a key to the focused input and re-validates that field.
func (f *formModel) Update(msg tea.KeyMsg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	field := &f.fields[f.focus]
	field.input, cmd = field.input.Update(msg)
	f.state.Set(field.name, field.input.Value())
	return cmd
}

// Value returns the trimmed-as-entered value of a named field.
func (f *formModel) Value(name string) string {
	for i := range f.fields {
		if f.fields[i].name == name {
			return f.fields[i].input.Value()
		}
	}
	return ""
}

// SetValues prefills the inputs and resets validation: no error messages,
// submit disabled until the user edits something.
func (f *formModel) SetValues(values map[string]string) {
	for i := range f.fields {
		if v, ok := values[f.fields[i].name]; ok {
			f.fields[i].input.SetValue(v)
			f.fields[i].input.CursorEnd()
		}
	}
	f.state.Populate(values)
	f.state.Reset()
	f.focusField(0)
}

// Clear empties the inputs and resets validation; used after a successful
// submission and when the form opens blank.
func (f *formModel) Clear() {
	empty := make(map[string]string, len(f.fields))
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		empty[f.fields[i].name] = ""
	}
	f.state.Populate(empty)
	f.state.Reset()
	f.focusField(0)
}

// Valid reports whether the submit affordance is enabled.
func (f *formModel) Valid() bool {
	return f.state.Valid()
}

// FieldError returns the inline error for a field, empty when valid.
func (f *formModel) FieldError(name string) string {
	return f.state.FieldError(name)
}

package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/marcus/reflect/internal/modal"
)

// PromptDialog asks for a single line of text.
type PromptDialog struct {
	Title       string
	Label       string
	Placeholder string
	Value       string
	SubmitLabel string
	CharLimit   int
	Width       int

	input textinput.Model
}

// NewPromptDialog creates a prompt prefilled with value.
func NewPromptDialog(title, label, value string) *PromptDialog {
	return &PromptDialog{
		Title:       title,
		Label:       label,
		Value:       value,
		SubmitLabel: " Save ",
		CharLimit:   120,
		Width:       ModalWidthMedium,
	}
}

// ToModal builds the modal. Enter in the input or on the submit button
// yields ActionConfirm; read the text with Input().Value().
func (d *PromptDialog) ToModal() *modal.Modal {
	d.input = textinput.New()
	d.input.Prompt = "> "
	d.input.Placeholder = d.Placeholder
	d.input.CharLimit = d.CharLimit
	d.input.SetValue(d.Value)
	d.input.CursorEnd()

	return modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithPrimaryAction(ActionConfirm),
		modal.WithHints(false),
	).
		AddSection(modal.InputWithLabel("input", d.Label, &d.input)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(d.SubmitLabel, ActionConfirm),
			modal.Btn(" Cancel ", ActionCancel),
		))
}

// Input returns the prompt's text input.
func (d *PromptDialog) Input() *textinput.Model {
	return &d.input
}

// ChooserDialog picks one entry from a list.
type ChooserDialog struct {
	Title    string
	Message  string
	Items    []modal.ListItem
	Selected int
	Visible  int
	Width    int
}

// NewChooserDialog creates a chooser with the entry matching selectedID
// preselected.
func NewChooserDialog(title string, items []modal.ListItem, selectedID string) *ChooserDialog {
	d := &ChooserDialog{
		Title:   title,
		Items:   items,
		Visible: 8,
		Width:   ModalWidthMedium,
	}
	for i, it := range items {
		if it.ID == selectedID {
			d.Selected = i
			break
		}
	}
	return d
}

// ToModal builds the modal. Enter yields the selected item's id.
func (d *ChooserDialog) ToModal() *modal.Modal {
	m := modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithHints(false),
		modal.WithFooter(KeyHints("↑↓", "select", "enter", "choose", "esc", "cancel")),
	)
	if d.Message != "" {
		m.AddSection(modal.Text(d.Message)).AddSection(modal.Spacer())
	}
	return m.AddSection(modal.List("items", d.Items, &d.Selected, modal.WithMaxVisible(d.Visible)))
}

// SelectedID returns the id of the highlighted item, or "".
func (d *ChooserDialog) SelectedID() string {
	if d.Selected < 0 || d.Selected >= len(d.Items) {
		return ""
	}
	return d.Items[d.Selected].ID
}

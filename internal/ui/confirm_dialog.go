package ui

import (
	"github.com/marcus/reflect/internal/modal"
)

// Modal widths shared by the app's dialogs.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 64
)

// Dialog actions returned by the built-in dialogs.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// ConfirmDialog is a yes/no modal.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g. " Delete "
	CancelLabel  string
	Danger       bool
	Width        int
}

// NewConfirmDialog creates a dialog with default labels.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// NewDeleteDialog creates a destructive confirmation for deleting name.
func NewDeleteDialog(kind, name, detail string) *ConfirmDialog {
	d := NewConfirmDialog("Delete "+kind+"?", "\""+name+"\" will be deleted. "+detail)
	d.ConfirmLabel = " Delete "
	d.Danger = true
	return d
}

// ToModal builds the modal. Enter on the confirm button yields
// ActionConfirm; on the cancel button or Esc, ActionCancel.
func (d *ConfirmDialog) ToModal() *modal.Modal {
	variant := modal.VariantDefault
	var confirmOpts []modal.ButtonOption
	if d.Danger {
		variant = modal.VariantDanger
		confirmOpts = append(confirmOpts, modal.BtnDanger())
	}

	return modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithVariant(variant),
		modal.WithPrimaryAction(ActionConfirm),
		modal.WithHints(false),
	).
		AddSection(modal.Text(d.Message)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(d.ConfirmLabel, ActionConfirm, confirmOpts...),
			modal.Btn(d.CancelLabel, ActionCancel),
		))
}

package modal

// Variant selects the border and title color of a modal.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

const (
	// DefaultWidth is the modal width when none is given.
	DefaultWidth = 50
	// MinModalWidth is the narrowest a modal is rendered.
	MinModalWidth = 30
	// ModalPadding is border(2) + horizontal padding(4).
	ModalPadding = 6
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the preferred modal width.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the modal variant.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned when Enter is pressed on an
// element that does not produce its own action (e.g. a text input).
func WithPrimaryAction(id string) Option {
	return func(m *Modal) { m.primaryAction = id }
}

// WithFooter sets a fixed footer rendered below the scrollable body.
func WithFooter(s string) Option {
	return func(m *Modal) { m.customFooter = s }
}

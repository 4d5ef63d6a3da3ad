package markdown

// Hint is one entry of the Markdown tips panel.
type Hint struct {
	Syntax      string
	Description string
}

// Hints lists the Markdown syntax shown in the tips panel.
var Hints = []Hint{
	{"# Heading", "Create a heading"},
	{"## Subheading", "Create a subheading"},
	{"**bold**", "Make text bold"},
	{"*italic*", "Make text italic"},
	{"~~strike~~", "Strike text through"},
	{"`code`", "Inline code"},
	{"[link](url)", "Create a link"},
	{"- item", "Create a list item"},
	{"1. item", "Create a numbered list"},
	{"- [ ] task", "Create a checklist item"},
	{"> quote", "Create a blockquote"},
	{"```code```", "Create a code block"},
	{"---", "Create a horizontal rule"},
}

package editor

import (
	"strings"
	"unicode"
)

// Command is an entry in the slash-command menu.
type Command struct {
	Name        string
	Description string
	Snippet     string
	Cursor      int // rune offset inside Snippet where the cursor lands
}

func command(name, desc, before, after string) Command {
	return Command{
		Name:        name,
		Description: desc,
		Snippet:     before + after,
		Cursor:      runeLen(before),
	}
}

// Commands is the slash-command menu in display order.
var Commands = []Command{
	command("heading", "Create a heading", "# ", ""),
	command("subheading", "Create a subheading", "## ", ""),
	command("bold", "Make text bold", "**", "**"),
	command("italic", "Make text italic", "*", "*"),
	command("link", "Create a link", "[", "](url)"),
	command("list", "Create a list item", "- ", ""),
	command("numbered", "Create a numbered list", "1. ", ""),
	command("checklist", "Create a task list item", "- [ ] ", ""),
	command("quote", "Create a blockquote", "> ", ""),
	command("code", "Create a code block", "```\n", "\n```"),
	command("table", "Insert a table", "| ", " | Column |\n| --- | --- |\n|  |  |"),
	command("divider", "Create a horizontal rule", "---\n", ""),
}

// FilterCommands returns the commands whose name or description contains
// query, ignoring case, followed by commands whose name contains the
// query's letters in order.
func FilterCommands(query string) []Command {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Command{}, Commands...)
	}

	var exact, fuzzy []Command
	for _, c := range Commands {
		switch {
		case strings.Contains(c.Name, q) || strings.Contains(strings.ToLower(c.Description), q):
			exact = append(exact, c)
		case subsequence(c.Name, q):
			fuzzy = append(fuzzy, c)
		}
	}
	return append(exact, fuzzy...)
}

func subsequence(s, sub string) bool {
	sr := []rune(sub)
	i := 0
	for _, r := range s {
		if i < len(sr) && r == sr[i] {
			i++
		}
	}
	return i == len(sr)
}

// SlashToken finds a slash command being typed just before cursor. The
// '/' must start the line or follow whitespace and be followed only by
// non-space characters up to the cursor. start is the rune offset of the
// '/'; query is the text typed after it.
func SlashToken(text string, cursor int) (start int, query string, ok bool) {
	r := []rune(text)
	cursor = clamp(cursor, 0, len(r))

	i := cursor - 1
	for i >= 0 && r[i] != '/' {
		if unicode.IsSpace(r[i]) {
			return 0, "", false
		}
		i--
	}
	if i < 0 {
		return 0, "", false
	}
	if i > 0 && !unicode.IsSpace(r[i-1]) {
		return 0, "", false
	}
	return i, string(r[i+1 : cursor]), true
}

// ApplyCommand replaces text[start:cursor] (the slash token) with the
// command's snippet and returns the new text and cursor offset.
func ApplyCommand(text string, start, cursor int, cmd Command) (string, int) {
	r := []rune(text)
	start = clamp(start, 0, len(r))
	cursor = clamp(cursor, start, len(r))

	out := make([]rune, 0, len(r)+len(cmd.Snippet))
	out = append(out, r[:start]...)
	out = append(out, []rune(cmd.Snippet)...)
	out = append(out, r[cursor:]...)
	return string(out), start + cmd.Cursor
}

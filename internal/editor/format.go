package editor

import "strings"

// Format is a toolbar formatting action.
type Format int

const (
	FormatBold Format = iota
	FormatItalic
	FormatStrikethrough
	FormatCode
	FormatLink
	FormatHeading
	FormatQuote
	FormatBullet
	FormatChecklist
)

type formatSpec struct {
	name   string
	open   string
	close  string
	prefix string // line formats only
}

var formats = map[Format]formatSpec{
	FormatBold:          {name: "bold", open: "**", close: "**"},
	FormatItalic:        {name: "italic", open: "*", close: "*"},
	FormatStrikethrough: {name: "strikethrough", open: "~~", close: "~~"},
	FormatCode:          {name: "code", open: "`", close: "`"},
	FormatLink:          {name: "link", open: "[", close: "](url)"},
	FormatHeading:       {name: "heading", prefix: "# "},
	FormatQuote:         {name: "quote", prefix: "> "},
	FormatBullet:        {name: "bullet", prefix: "- "},
	FormatChecklist:     {name: "checklist", prefix: "- [ ] "},
}

func (f Format) String() string { return formats[f].name }

// Selection is a rune range [Start, End). An empty selection is a cursor.
type Selection struct {
	Start, End int
}

// Empty reports whether the selection is just a cursor.
func (s Selection) Empty() bool { return s.Start == s.End }

func (s Selection) normalized() Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// ApplyFormat applies f to text. Inline formats wrap the selection in a
// delimiter pair and keep the selection inside the delimiters; with an
// empty selection the pair is inserted and the cursor placed between.
// Line formats toggle a prefix on every line the selection touches.
func ApplyFormat(text string, sel Selection, f Format) (string, Selection) {
	spec, ok := formats[f]
	if !ok {
		return text, sel
	}
	r := []rune(text)
	sel = sel.normalized()
	sel.Start = clamp(sel.Start, 0, len(r))
	sel.End = clamp(sel.End, sel.Start, len(r))

	if spec.prefix != "" {
		return togglePrefix(r, sel, spec.prefix)
	}

	left, right := []rune(spec.open), []rune(spec.close)
	out := make([]rune, 0, len(r)+len(left)+len(right))
	out = append(out, r[:sel.Start]...)
	out = append(out, left...)
	out = append(out, r[sel.Start:sel.End]...)
	out = append(out, right...)
	out = append(out, r[sel.End:]...)

	shift := len(left)
	return string(out), Selection{Start: sel.Start + shift, End: sel.End + shift}
}

type edit struct {
	pos int // rune offset in the original text
	del int
	ins string
}

// togglePrefix removes prefix from every touched line if all of them
// already carry it, otherwise adds it to the lines that lack it.
func togglePrefix(r []rune, sel Selection, prefix string) (string, Selection) {
	first, _ := lineBounds(r, sel.Start)
	_, last := lineBounds(r, sel.End)

	var starts []int
	for ls := first; ; {
		starts = append(starts, ls)
		_, le := lineBounds(r, ls)
		if le >= last {
			break
		}
		ls = le + 1
	}

	p := []rune(prefix)
	hasPrefix := func(ls int) bool {
		return ls+len(p) <= len(r) && string(r[ls:ls+len(p)]) == prefix
	}
	remove := true
	for _, ls := range starts {
		if !hasPrefix(ls) {
			remove = false
			break
		}
	}

	var edits []edit
	for _, ls := range starts {
		switch {
		case remove:
			edits = append(edits, edit{pos: ls, del: len(p)})
		case !hasPrefix(ls):
			edits = append(edits, edit{pos: ls, ins: prefix})
		}
	}

	var b strings.Builder
	prev := 0
	for _, e := range edits {
		b.WriteString(string(r[prev:e.pos]))
		b.WriteString(e.ins)
		prev = e.pos + e.del
	}
	b.WriteString(string(r[prev:]))

	return b.String(), Selection{
		Start: mapOffset(edits, sel.Start),
		End:   mapOffset(edits, sel.End),
	}
}

// mapOffset translates an offset in the original text through edits.
func mapOffset(edits []edit, off int) int {
	delta := 0
	for _, e := range edits {
		if e.pos > off {
			break
		}
		if off < e.pos+e.del {
			// Inside deleted text: snap to the edit position.
			return e.pos + delta + runeLen(e.ins)
		}
		delta += runeLen(e.ins) - e.del
	}
	return off + delta
}

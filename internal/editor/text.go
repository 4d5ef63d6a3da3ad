package editor

// Offsets in this package count runes, not bytes.

// LineCol converts a rune offset into a zero-based row and column.
// Offsets past the end clamp to the end of the text.
func LineCol(text string, offset int) (row, col int) {
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
		i++
	}
	return row, col
}

// Offset converts a zero-based row and column into a rune offset.
// Columns past the end of a line clamp to the line end; rows past the
// last line clamp to the end of the text.
func Offset(text string, row, col int) int {
	r := []rune(text)
	off := 0
	for line := 0; line < row; line++ {
		for off < len(r) && r[off] != '\n' {
			off++
		}
		if off == len(r) {
			return off
		}
		off++ // past '\n'
	}
	for c := 0; c < col && off < len(r) && r[off] != '\n'; c++ {
		off++
	}
	return off
}

// lineBounds returns the rune offsets of the start and end (exclusive,
// before '\n') of the line containing offset.
func lineBounds(r []rune, offset int) (start, end int) {
	offset = clamp(offset, 0, len(r))
	start = offset
	for start > 0 && r[start-1] != '\n' {
		start--
	}
	end = offset
	for end < len(r) && r[end] != '\n' {
		end++
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func runeLen(s string) int { return len([]rune(s)) }

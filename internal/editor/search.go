package editor

import "unicode"

// Search tracks case-insensitive matches of a query within a note.
type Search struct {
	Query   string
	Matches []int // rune offsets of each match, ascending
	Current int   // 1-based index into Matches; 0 when there are none
}

// FindAll returns the rune offsets of every non-overlapping,
// case-insensitive occurrence of query in text.
func FindAll(text, query string) []int {
	q := foldRunes(query)
	if len(q) == 0 {
		return nil
	}
	t := foldRunes(text)

	var out []int
	for i := 0; i+len(q) <= len(t); {
		if equalRunes(t[i:i+len(q)], q) {
			out = append(out, i)
			i += len(q)
			continue
		}
		i++
	}
	return out
}

// Set runs query against text and selects the first match.
func (s *Search) Set(text, query string) {
	s.Query = query
	s.Matches = FindAll(text, query)
	s.Current = 0
	if len(s.Matches) > 0 {
		s.Current = 1
	}
}

// Refresh re-runs the current query after the text changed, keeping the
// current index where possible.
func (s *Search) Refresh(text string) {
	cur := s.Current
	s.Matches = FindAll(text, s.Query)
	switch {
	case len(s.Matches) == 0:
		s.Current = 0
	case cur < 1:
		s.Current = 1
	case cur > len(s.Matches):
		s.Current = len(s.Matches)
	default:
		s.Current = cur
	}
}

// Clear drops the query and its matches.
func (s *Search) Clear() { *s = Search{} }

// Active reports whether a query is set.
func (s *Search) Active() bool { return s.Query != "" }

// Next advances to the following match, wrapping to the first.
func (s *Search) Next() (offset int, ok bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.Current = s.Current%len(s.Matches) + 1
	return s.Matches[s.Current-1], true
}

// Prev moves to the preceding match, wrapping to the last.
func (s *Search) Prev() (offset int, ok bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.Current--
	if s.Current < 1 {
		s.Current = len(s.Matches)
	}
	return s.Matches[s.Current-1], true
}

// Offset returns the rune offset of the current match.
func (s *Search) Offset() (int, bool) {
	if s.Current < 1 || s.Current > len(s.Matches) {
		return 0, false
	}
	return s.Matches[s.Current-1], true
}

// Len returns the rune length of the query.
func (s *Search) Len() int { return runeLen(s.Query) }

func foldRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Package template substitutes the {name}, {condition} and {index} tokens of
// fragment templates.
//
// Substitution is a single left-to-right pass over the template. A value
// substituted for one token is emitted as literal text and never scanned
// again, so a rename or condition that itself contains "{index}" is not
// numbered. Braces that do not form one of the three tokens pass through
// unchanged.
package template

import "strings"

// Tokens recognized in fragment templates.
const (
	Name      = "{name}"
	Condition = "{condition}"
	Index     = "{index}"
)

// SegmentType identifies a piece of a compiled template.
type SegmentType int

// SegmentType constants.
const (
	SegmentText  SegmentType = iota // Literal text, including resolved {name} and {condition}
	SegmentIndex                    // {index} slot, filled at render time
)

// Segment is one piece of a compiled template.
type Segment struct {
	Type SegmentType
	Text string
}

// Fragment is a template with {name} and {condition} already resolved.
// It is immutable and safe for concurrent use.
type Fragment struct {
	source   string
	segments []Segment
	indexes  int
}

// Uses reports whether tpl contains token.
func Uses(tpl, token string) bool {
	return strings.Contains(tpl, token)
}

// Compile resolves {name} and {condition} in tpl and keeps {index} as a slot.
func Compile(tpl, name, condition string) *Fragment {
	f := &Fragment{source: tpl}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			f.segments = append(f.segments, Segment{Type: SegmentText, Text: text.String()})
			text.Reset()
		}
	}
	for i := 0; i < len(tpl); {
		if tpl[i] == '{' {
			rest := tpl[i:]
			switch {
			case strings.HasPrefix(rest, Name):
				text.WriteString(name)
				i += len(Name)
				continue
			case strings.HasPrefix(rest, Condition):
				text.WriteString(condition)
				i += len(Condition)
				continue
			case strings.HasPrefix(rest, Index):
				flush()
				f.segments = append(f.segments, Segment{Type: SegmentIndex})
				f.indexes++
				i += len(Index)
				continue
			}
		}
		text.WriteByte(tpl[i])
		i++
	}
	flush()
	return f
}

// Source returns the template the fragment was compiled from.
func (f *Fragment) Source() string {
	return f.source
}

// Segments returns the compiled segments.
func (f *Fragment) Segments() []Segment {
	return f.segments
}

// HasIndex reports whether the fragment contains at least one {index} slot.
func (f *Fragment) HasIndex() bool {
	return f.indexes > 0
}

// Render fills every {index} slot with index.
func (f *Fragment) Render(index string) string {
	switch {
	case len(f.segments) == 0:
		return ""
	case len(f.segments) == 1 && f.segments[0].Type == SegmentText:
		return f.segments[0].Text
	}
	var b strings.Builder
	for _, s := range f.segments {
		if s.Type == SegmentIndex {
			b.WriteString(index)
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Render substitutes all three tokens of tpl in one pass.
func Render(tpl, name, condition, index string) string {
	return Compile(tpl, name, condition).Render(index)
}

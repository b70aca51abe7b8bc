package filecheck

import (
	"fmt"
	"sort"
	"strings"
)

// MismatchError reports the first directive that did not hold.
type MismatchError struct {
	Directive Directive
	InputLine int // 1-based input line where matching was attempted
	Reason    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("check:%d: %s: %s (input line %d)\n  pattern: %s",
		e.Directive.Line, e.Directive.Kind, e.Reason, e.InputLine, e.Directive.Pattern)
}

// Verify checks input against the directives found in checkText.
func Verify(checkText, input string) error {
	directives, err := Parse(checkText)
	if err != nil {
		return err
	}
	return newMatcher(input).run(directives)
}

type matcher struct {
	input      string
	lineStarts []int
	pos        int // offset just past the last positive match
	lastLine   int // 0-based line of the last positive match, -1 before any
	pendingNot []Directive
}

func newMatcher(input string) *matcher {
	input = canonicalize(input)
	starts := []int{0}
	for i, c := range input {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &matcher{input: input, lineStarts: starts, lastLine: -1}
}

// lineOf returns the 0-based line containing offset.
func (m *matcher) lineOf(offset int) int {
	return sort.Search(len(m.lineStarts), func(i int) bool { return m.lineStarts[i] > offset }) - 1
}

// lineBounds returns the start and end offsets of line, excluding the newline.
func (m *matcher) lineBounds(line int) (int, int, bool) {
	if line < 0 || line >= len(m.lineStarts) {
		return 0, 0, false
	}
	start := m.lineStarts[line]
	end := len(m.input)
	if line+1 < len(m.lineStarts) {
		end = m.lineStarts[line+1] - 1
	}
	return start, end, true
}

func (m *matcher) run(directives []Directive) error {
	for _, d := range directives {
		if d.Kind == CheckNot {
			m.pendingNot = append(m.pendingNot, d)
			continue
		}

		start, end, err := m.match(d)
		if err != nil {
			return err
		}
		if err := m.checkNots(m.pos, start); err != nil {
			return err
		}
		m.pos = end
		m.lastLine = m.lineOf(start)
	}
	return m.checkNots(m.pos, len(m.input))
}

func (m *matcher) match(d Directive) (int, int, error) {
	switch d.Kind {
	case Check, CheckLabel:
		loc := d.re.FindStringIndex(m.input[m.pos:])
		if loc == nil {
			return 0, 0, m.mismatch(d, m.lineOf(m.pos), "expected string not found in input")
		}
		return m.pos + loc[0], m.pos + loc[1], nil

	case CheckNext:
		start, end, ok := m.lineBounds(m.lastLine + 1)
		if !ok {
			return 0, 0, m.mismatch(d, m.lastLine+1, "no next line in input")
		}
		loc := d.re.FindStringIndex(m.input[start:end])
		if loc == nil {
			return 0, 0, m.mismatch(d, m.lastLine+1, "expected string not found on next line")
		}
		return start + loc[0], start + loc[1], nil

	case CheckSame:
		_, end, _ := m.lineBounds(m.lastLine)
		loc := d.re.FindStringIndex(m.input[m.pos:end])
		if loc == nil {
			return 0, 0, m.mismatch(d, m.lastLine, "expected string not found on the same line")
		}
		return m.pos + loc[0], m.pos + loc[1], nil

	case CheckEmpty:
		start, end, ok := m.lineBounds(m.lastLine + 1)
		if !ok || strings.TrimSpace(m.input[start:end]) != "" {
			return 0, 0, m.mismatch(d, m.lastLine+1, "expected empty next line")
		}
		return start, end, nil
	}
	return 0, 0, fmt.Errorf("check:%d: unsupported directive %s", d.Line, d.Kind)
}

func (m *matcher) checkNots(from, to int) error {
	for _, d := range m.pendingNot {
		if loc := d.re.FindStringIndex(m.input[from:to]); loc != nil {
			return m.mismatch(d, m.lineOf(from+loc[0]), "excluded string found in input")
		}
	}
	m.pendingNot = nil
	return nil
}

func (m *matcher) mismatch(d Directive, line0 int, reason string) *MismatchError {
	return &MismatchError{Directive: d, InputLine: line0 + 1, Reason: reason}
}

// Package filecheck verifies text output against CHECK directives embedded in
// golden files, in the manner of LLVM's FileCheck.
package filecheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the kind of a check directive.
type Kind int

const (
	Check Kind = iota
	CheckNext
	CheckSame
	CheckLabel
	CheckNot
	CheckEmpty
)

var kindSuffixes = map[string]Kind{
	"":       Check,
	"-NEXT":  CheckNext,
	"-SAME":  CheckSame,
	"-LABEL": CheckLabel,
	"-NOT":   CheckNot,
	"-EMPTY": CheckEmpty,
}

// String returns the directive spelling, e.g. "CHECK-NEXT".
func (k Kind) String() string {
	for suffix, kind := range kindSuffixes {
		if kind == k {
			return "CHECK" + suffix
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Directive is one parsed check line.
type Directive struct {
	Kind    Kind
	Pattern string
	Line    int // 1-based line in the check file

	re *regexp.Regexp
}

var (
	directivePattern = regexp.MustCompile(`(?:^|[^A-Za-z0-9_-])CHECK(-NEXT|-SAME|-LABEL|-NOT|-EMPTY)?:(.*)$`)
	runPattern       = regexp.MustCompile(`(?:^|[^A-Za-z0-9_-])RUN:(.*)$`)
	horizontalSpace  = regexp.MustCompile(`[ \t]+`)
)

// Parse extracts the check directives from checkText.
func Parse(checkText string) ([]Directive, error) {
	var directives []Directive
	for i, line := range strings.Split(checkText, "\n") {
		match := directivePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		d := Directive{
			Kind:    kindSuffixes[match[1]],
			Pattern: strings.TrimSpace(match[2]),
			Line:    i + 1,
		}

		switch {
		case d.Kind == CheckEmpty:
			if d.Pattern != "" {
				return nil, fmt.Errorf("check:%d: CHECK-EMPTY does not take a pattern", d.Line)
			}
		case d.Pattern == "":
			return nil, fmt.Errorf("check:%d: found empty check string with prefix '%s:'", d.Line, d.Kind)
		default:
			re, err := compilePattern(d.Pattern)
			if err != nil {
				return nil, fmt.Errorf("check:%d: %w", d.Line, err)
			}
			d.re = re
		}

		if len(directives) == 0 && (d.Kind == CheckNext || d.Kind == CheckSame || d.Kind == CheckEmpty) {
			return nil, fmt.Errorf("check:%d: found '%s' without previous 'CHECK: line'", d.Line, d.Kind)
		}
		directives = append(directives, d)
	}

	if len(directives) == 0 {
		return nil, fmt.Errorf("no check strings found with prefix 'CHECK:'")
	}
	return directives, nil
}

// ParseRunLine returns the command of the first RUN: line in checkText.
func ParseRunLine(checkText string) (string, bool) {
	for _, line := range strings.Split(checkText, "\n") {
		if match := runPattern.FindStringSubmatch(line); match != nil {
			return strings.TrimSpace(match[1]), true
		}
	}
	return "", false
}

// compilePattern turns a check pattern into a regexp. Text outside {{...}}
// is literal; runs of spaces and tabs are treated as a single space.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	rest := pattern
	for len(rest) > 0 {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(regexp.QuoteMeta(canonicalize(rest)))
			break
		}
		b.WriteString(regexp.QuoteMeta(canonicalize(rest[:open])))

		end := strings.Index(rest[open+2:], "}}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated regex '{{' in pattern %q", pattern)
		}
		b.WriteString("(?:" + rest[open+2:open+2+end] + ")")
		rest = rest[open+2+end+2:]
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

func canonicalize(s string) string {
	return horizontalSpace.ReplaceAllString(s, " ")
}

package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// DefaultParamRegexp is what a parameter matches when its pattern names no regular expression.
const DefaultParamRegexp = `[^/]+`

var paramName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// A Segment is either literal text or a named parameter of an Expression.
type Segment struct {
	Literal string
	Param   string
	Regexp  string
}

// IsParam reports whether s is a parameter.
func (s Segment) IsParam() bool { return s.Param != "" }

// An Expression is one concrete form of a pattern: optional parts are either all there or gone.
type Expression []Segment

// Params lists the names of the parameters in e, in order.
func (e Expression) Params() []string {
	var names []string
	for _, seg := range e {
		if seg.IsParam() {
			names = append(names, seg.Param)
		}
	}

	return names
}

// IsStatic reports whether e holds no parameters.
func (e Expression) IsStatic() bool {
	for _, seg := range e {
		if seg.IsParam() {
			return false
		}
	}

	return true
}

// Template renders e in the {name:regexp} form gorilla/mux reads.
func (e Expression) Template() string {
	var b strings.Builder
	for _, seg := range e {
		if !seg.IsParam() {
			b.WriteString(seg.Literal)
			continue
		}
		b.WriteString("{" + seg.Param + ":" + seg.Regexp + "}")
	}

	return b.String()
}

// ParsePattern breaks pattern into its Expressions, least specific first.
//
// Parameters read {name} or {name:regexp}; a regexp may itself hold balanced braces.
// Optional parts are wrapped in brackets, may nest, and only ever close a pattern:
//
//	/blog[/{year:\d{4}}[/{slug}]]
//
// yields /blog, /blog/{year} and /blog/{year}/{slug}.
//
// Errors wrap switchback.ErrNotValid.
func ParsePattern(pattern string) ([]Expression, error) {
	trimmed := strings.TrimRight(pattern, "]")
	optionals := len(pattern) - len(trimmed)

	parts, closing, err := splitOptionals(trimmed)
	if err != nil {
		return nil, invalidPattern(pattern, err.Error())
	}

	if optionals != len(parts)-1 {
		if closing {
			return nil, invalidPattern(pattern, "optional segments can only occur at the end")
		}
		return nil, invalidPattern(pattern, "number of opening '[' and closing ']' does not match")
	}

	exprs := make([]Expression, 0, len(parts))
	var current string
	for n, part := range parts {
		if part == "" && n != 0 {
			return nil, invalidPattern(pattern, "empty optional part")
		}

		current += part
		expr, err := parseSegments(current)
		if err != nil {
			return nil, invalidPattern(pattern, err.Error())
		}
		exprs = append(exprs, expr)
	}

	return exprs, nil
}

func invalidPattern(pattern, reason string) error {
	return fmt.Errorf("%w: pattern %q: %s", switchback.ErrNotValid, pattern, reason)
}

// splitOptionals splits s on each '[' outside of a parameter
// and reports whether a ']' appears outside of a parameter.
func splitOptionals(s string) (parts []string, closing bool, err error) {
	var depth, start int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return nil, false, fmt.Errorf("unexpected '}' at offset %d", i)
			}
			depth--
		case '[':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		case ']':
			if depth == 0 {
				closing = true
			}
		}
	}

	if depth != 0 {
		return nil, false, fmt.Errorf("unclosed '{'")
	}

	return append(parts, s[start:]), closing, nil
}

// parseSegments breaks s, which holds no optional parts, into an Expression.
func parseSegments(s string) (Expression, error) {
	var (
		expr Expression
		lit  strings.Builder
		seen = make(map[string]bool)
	)

	for i := 0; i < len(s); {
		if s[i] != '{' {
			lit.WriteByte(s[i])
			i++
			continue
		}

		end := closingBrace(s, i)
		if end < 0 {
			return nil, fmt.Errorf("unclosed '{' at offset %d", i)
		}

		name, re, _ := strings.Cut(s[i+1:end], ":")
		name, re = strings.TrimSpace(name), strings.TrimSpace(re)
		if !paramName.MatchString(name) {
			return nil, fmt.Errorf("invalid parameter name %q", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("cannot use the same parameter %q twice", name)
		}
		seen[name] = true

		if re == "" {
			re = DefaultParamRegexp
		}
		compiled, err := regexp.Compile(re)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %s", name, err)
		}
		if compiled.NumSubexp() > 0 {
			return nil, fmt.Errorf("parameter %q: capturing groups are not allowed, use (?:...)", name)
		}

		if lit.Len() > 0 {
			expr = append(expr, Segment{Literal: lit.String()})
			lit.Reset()
		}
		expr = append(expr, Segment{Param: name, Regexp: re})
		i = end + 1
	}

	if lit.Len() > 0 {
		expr = append(expr, Segment{Literal: lit.String()})
	}

	return expr, nil
}

// closingBrace finds the '}' balancing the '{' at s[open].
func closingBrace(s string, open int) int {
	var depth int
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

package transpile

import (
	"fmt"

	"go.trai.ch/weft/internal/core/domain"
)

// scanSyntax walks the text once tracking delimiter nesting, string
// literals and comments. It reports unbalanced delimiters and unterminated
// strings with their line numbers.
func scanSyntax(unit domain.InternedString, text string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	type open struct {
		ch   byte
		line int
	}
	var stack []open

	line := 1
	inLineComment := false
	inBlockComment := false
	var quote byte
	quoteLine := 0

	report := func(l int, format string, args ...any) {
		diags = append(diags, domain.Diagnostic{
			Kind:    domain.DiagSyntactic,
			Unit:    unit,
			Line:    l,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '\n' {
			line++
			inLineComment = false
			// Plain quotes do not span lines; template literals do.
			if quote == '\'' || quote == '"' {
				report(quoteLine, "unterminated string literal")
				quote = 0
			}
			continue
		}

		switch {
		case inLineComment:
			continue
		case inBlockComment:
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '/':
			if i+1 < len(text) {
				switch text[i+1] {
				case '/':
					inLineComment = true
					i++
				case '*':
					inBlockComment = true
					i++
				}
			}
		case '\'', '"', '`':
			quote = c
			quoteLine = line
		case '(', '[', '{':
			stack = append(stack, open{ch: c, line: line})
		case ')', ']', '}':
			if len(stack) == 0 {
				report(line, "unexpected %q", string(c))
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closerFor(top.ch) != c {
				report(line, "expected %q to close %q opened on line %d",
					string(closerFor(top.ch)), string(top.ch), top.line)
			}
		}
	}

	if quote == '\'' || quote == '"' {
		report(quoteLine, "unterminated string literal")
	} else if quote == '`' {
		report(quoteLine, "unterminated template literal")
	}
	for _, o := range stack {
		report(o.line, "unclosed %q", string(o.ch))
	}

	return diags
}

func closerFor(opener byte) byte {
	switch opener {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

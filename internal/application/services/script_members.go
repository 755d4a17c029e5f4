package services

import (
	"regexp"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

var (
	dataOpeners = []*regexp.Regexp{
		regexp.MustCompile(`\bdata\s*\(\s*\)\s*\{`),
		regexp.MustCompile(`\bdata\s*:\s*function\s*\(\s*\)\s*\{`),
		regexp.MustCompile(`\bdata\s*:\s*\(\s*\)\s*=>\s*\{`),
	}
	dataArrowObject = regexp.MustCompile(`\bdata\s*:\s*\(\s*\)\s*=>\s*\(\s*\{`)
	returnObject    = regexp.MustCompile(`\breturn\s*\{`)
	methodsOpener   = regexp.MustCompile(`\bmethods\s*:\s*\{`)
	memberName      = regexp.MustCompile(`^(?:async\s+)?\*?\s*["']?([A-Za-z_$][\w$]*)["']?\s*[:(]`)
	numberLiteral   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// ScriptMembers reads the data() properties and methods of an options-API
// component script. Methods come back by name in declaration order, with
// their full source keyed by name.
func ScriptMembers(script string) ([]entities.Binding, []string, map[string]string) {
	bindings := scriptData(script)

	var methods []string
	definitions := make(map[string]string)
	if body, ok := objectAfter(script, methodsOpener); ok {
		for _, entry := range splitTopLevel(body) {
			m := memberName.FindStringSubmatch(entry)
			if m == nil || definitions[m[1]] != "" {
				continue
			}
			methods = append(methods, m[1])
			definitions[m[1]] = entry
		}
	}
	if len(definitions) == 0 {
		definitions = nil
	}
	return bindings, methods, definitions
}

func scriptData(script string) []entities.Binding {
	body, ok := objectAfter(script, dataArrowObject)
	if !ok {
		for _, opener := range dataOpeners {
			fn, found := objectAfter(script, opener)
			if !found {
				continue
			}
			body, ok = objectAfter(fn, returnObject)
			break
		}
	}
	if !ok {
		return nil
	}

	var out []entities.Binding
	for _, entry := range splitTopLevel(body) {
		m := memberName.FindStringSubmatch(entry)
		if m == nil || !strings.Contains(entry, ":") {
			continue
		}
		value := strings.TrimSpace(entry[strings.Index(entry, ":")+1:])
		out = append(out, literalBinding(m[1], value))
	}
	return out
}

// literalBinding keeps value as the default when it is a self-contained literal.
func literalBinding(name, value string) entities.Binding {
	b := entities.Binding{Name: name, Kind: entities.BindText}
	switch {
	case strings.HasPrefix(value, "["):
		b.Kind = entities.BindList
	case strings.HasPrefix(value, "{"):
		b.Kind = entities.BindObject
	case value == "true" || value == "false":
		b.Kind = entities.BindFlag
	case numberLiteral.MatchString(value):
		b.Kind = entities.BindNumber
	case value == "null" || strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'") || strings.HasPrefix(value, "`"):
	default:
		return b
	}
	b.Literal = value
	return b
}

// objectAfter returns the content of the brace block opened by the first match of opener.
func objectAfter(src string, opener *regexp.Regexp) (string, bool) {
	loc := opener.FindStringIndex(src)
	if loc == nil {
		return "", false
	}
	open := loc[1] - 1
	end := closingBrace(src, open)
	if end < 0 {
		return "", false
	}
	return src[open+1 : end], true
}

// closingBrace returns the index of the brace matching src[open], skipping
// string literals and comments, or -1.
func closingBrace(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '"', '\'', '`':
			i = skipString(src, i)
		case '/':
			i = skipComment(src, i)
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

// splitTopLevel splits an object body on commas outside nested brackets.
func splitTopLevel(body string) []string {
	var out []string
	depth, start := 0, 0
	flush := func(end int) {
		if part := trimLeadingComments(body[start:end]); part != "" {
			out = append(out, part)
		}
	}
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '"', '\'', '`':
			i = skipString(body, i)
		case '/':
			i = skipComment(body, i)
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(body))
	return out
}

func trimLeadingComments(s string) string {
	for {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasPrefix(s, "//"):
			end := strings.IndexByte(s, '\n')
			if end < 0 {
				return ""
			}
			s = s[end+1:]
		case strings.HasPrefix(s, "/*"):
			end := strings.Index(s, "*/")
			if end < 0 {
				return ""
			}
			s = s[end+2:]
		default:
			return s
		}
	}
}

func skipString(src string, i int) int {
	quote := src[i]
	for i++; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(src)
}

func skipComment(src string, i int) int {
	if i+1 >= len(src) {
		return i
	}
	switch src[i+1] {
	case '/':
		if end := strings.IndexByte(src[i:], '\n'); end >= 0 {
			return i + end
		}
		return len(src)
	case '*':
		if end := strings.Index(src[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 1
		}
		return len(src)
	}
	return i
}

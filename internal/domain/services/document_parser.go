package services

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

var numberLiteral = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// DocumentParser converts APML text into a Document.
// It is stateless; one instance can parse any number of documents concurrently.
type DocumentParser struct{}

// NewDocumentParser creates a new document parser.
func NewDocumentParser() *DocumentParser {
	return &DocumentParser{}
}

// openBlock accumulates the raw lines of a component block until its braces balance.
type openBlock struct {
	name  string
	lines []string
	start int
	depth int
}

// Parse builds a Document from text. Structural failures are returned as *entities.ParseError.
func (p *DocumentParser) Parse(text string) (*entities.Document, error) {
	doc := entities.NewDocument()
	var section *entities.Section
	var block *openBlock

	current := func() *entities.Section {
		if section == nil {
			section = doc.Section(entities.ImplicitSectionName)
		}
		return section
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), "\r")

		if block != nil {
			depth, ok := braceDepth(raw, block.depth)
			if !ok {
				return nil, entities.NewParseError(entities.ParseUnbalancedBrace, lineNo, "in block "+block.name)
			}
			block.depth = depth
			block.lines = append(block.lines, raw)
			if depth == 0 {
				if err := p.finishBlock(current(), block); err != nil {
					return nil, err
				}
				block = nil
			}
			continue
		}

		trimmed := strings.TrimSpace(raw)
		switch {
		case trimmed == "":
			continue
		case isSectionHeader(trimmed):
			section = doc.Section(sectionName(trimmed))
			continue
		case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, "---"):
			continue
		}

		key, rest, ok := splitKey(trimmed)
		if !ok {
			if _, balanced := braceDepth(trimmed, 0); !balanced {
				return nil, entities.NewParseError(entities.ParseUnbalancedBrace, lineNo, "")
			}
			continue // prose
		}
		if !strings.HasPrefix(rest, "{") {
			if _, balanced := braceDepth(rest, 0); !balanced {
				return nil, entities.NewParseError(entities.ParseUnbalancedBrace, lineNo, "after "+key)
			}
		}

		switch {
		case strings.HasPrefix(rest, "{"):
			depth, balanced := braceDepth(raw, 0)
			if !balanced {
				return nil, entities.NewParseError(entities.ParseUnbalancedBrace, lineNo, "in block "+key)
			}
			block = &openBlock{name: key, start: lineNo, depth: depth, lines: []string{raw}}
			if depth == 0 {
				if err := p.finishBlock(current(), block); err != nil {
					return nil, err
				}
				block = nil
			}
		case rest == "":
			section = doc.Section(sectionName(key))
		case section == nil:
			doc.Metadata.Set(key, unquote(rest))
		default:
			v, err := p.parseScalar(rest, lineNo)
			if err != nil {
				return nil, err
			}
			section.Attributes.Set(key, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, entities.NewParseError(entities.ParseInvalidEntry, lineNo+1, err.Error())
	}

	if block != nil {
		return nil, entities.NewParseError(entities.ParseUnterminatedBlock, block.start, "block "+block.name+" is never closed")
	}
	return doc, nil
}

func (p *DocumentParser) finishBlock(section *entities.Section, b *openBlock) error {
	rawText := strings.Join(b.lines, "\n")
	open := strings.IndexByte(rawText, '{')
	body := rawText[open+1:]
	if end := strings.LastIndexByte(body, '}'); end >= 0 {
		body = body[:end]
	}

	s := &entryScanner{src: body, line: b.start}
	props, err := s.object(false)
	if err != nil {
		return err
	}

	c := &entities.ComponentConfig{
		Name:       b.name,
		Section:    section.Name,
		Line:       b.start,
		Properties: props,
		RawText:    rawText,
	}
	if t, ok := props.Get("type"); ok {
		if name, isStr := t.AsString(); isStr {
			c.PatternName = strings.TrimSpace(name)
		}
	}
	section.Components.Set(b.name, c)
	return nil
}

func (p *DocumentParser) parseScalar(rest string, line int) (entities.Value, error) {
	s := &entryScanner{src: rest, line: line}
	return s.value(false)
}

// entryScanner reads the body of a block: entries separated by newlines or
// top-level commas, with nested objects and lists.
type entryScanner struct {
	src  string
	pos  int
	line int
}

func (s *entryScanner) eof() bool { return s.pos >= len(s.src) }

func (s *entryScanner) peek() byte { return s.src[s.pos] }

// skipSeparators consumes whitespace and commas, counting newlines.
func (s *entryScanner) skipSeparators() {
	for !s.eof() {
		switch s.peek() {
		case '\n':
			s.line++
		case ' ', '\t', '\r', ',':
		default:
			return
		}
		s.pos++
	}
}

func (s *entryScanner) skipSpaces() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

// object reads entries until EOF, or until a closing brace when nested.
func (s *entryScanner) object(nested bool) (*entities.OrderedMap[entities.Value], error) {
	props := entities.NewOrderedMap[entities.Value]()
	for {
		s.skipSeparators()
		if s.eof() {
			if nested {
				return nil, entities.NewParseError(entities.ParseUnterminatedBlock, s.line, "nested object is never closed")
			}
			return props, nil
		}
		if s.peek() == '}' {
			if !nested {
				return nil, entities.NewParseError(entities.ParseUnbalancedBrace, s.line, "")
			}
			s.pos++
			return props, nil
		}

		key, err := s.key()
		if err != nil {
			return nil, err
		}
		s.skipSpaces()
		v, err := s.value(false)
		if err != nil {
			return nil, err
		}
		props.Set(key, v)
	}
}

func (s *entryScanner) key() (string, error) {
	start := s.pos
	var key string
	if c := s.peek(); c == '"' || c == '\'' {
		s.pos = skipQuoted(s.src, s.pos)
		key = unquote(s.src[start:s.pos])
	} else {
		for !s.eof() && isKeyByte(s.peek()) {
			s.pos++
		}
		key = s.src[start:s.pos]
	}
	s.skipSpaces()
	if key == "" || s.eof() || s.peek() != ':' {
		return "", entities.NewParseError(entities.ParseInvalidEntry, s.line, "expected key: "+s.excerpt(start))
	}
	s.pos++
	return key, nil
}

func isKeyByte(c byte) bool {
	return c == '_' || c == '-' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}

func (s *entryScanner) excerpt(start int) string {
	end := strings.IndexByte(s.src[start:], '\n')
	if end < 0 {
		end = len(s.src) - start
	}
	return strings.TrimSpace(s.src[start : start+end])
}

// value reads one value. inList makes ']' terminate raw tokens.
func (s *entryScanner) value(inList bool) (entities.Value, error) {
	if s.eof() {
		return entities.StringValue(""), nil
	}
	switch s.peek() {
	case '{':
		s.pos++
		m, err := s.object(true)
		if err != nil {
			return entities.Value{}, err
		}
		return entities.MapValue(m), nil
	case '[':
		return s.list()
	case '"', '\'':
		start := s.pos
		s.pos = skipQuoted(s.src, s.pos)
		return entities.StringValue(unquote(s.src[start:s.pos])), nil
	}
	return coerce(s.raw(inList)), nil
}

func (s *entryScanner) list() (entities.Value, error) {
	startLine := s.line
	s.pos++ // [
	var items []entities.Value
	for {
		s.skipSeparators()
		if s.eof() {
			return entities.Value{}, entities.NewParseError(entities.ParseUnterminatedList, startLine, "")
		}
		if s.peek() == ']' {
			s.pos++
			return entities.ListValue(items...), nil
		}
		v, err := s.value(true)
		if err != nil {
			return entities.Value{}, err
		}
		items = append(items, v)
	}
}

// raw reads an unquoted token up to the next top-level separator.
func (s *entryScanner) raw(inList bool) string {
	start := s.pos
	depth := 0
	for !s.eof() {
		c := s.peek()
		switch {
		case c == '"' || c == '\'':
			if quoteOpens(s.src, s.pos) {
				s.pos = skipQuoted(s.src, s.pos)
				continue
			}
		case c == '(' || (c == '[' && !inList):
			depth++
		case depth > 0 && (c == ')' || (c == ']' && !inList)):
			depth--
		case depth == 0 && (c == ',' || c == '\n' || c == '}' || (inList && c == ']')):
			return strings.TrimSpace(s.src[start:s.pos])
		}
		s.pos++
	}
	return strings.TrimSpace(s.src[start:s.pos])
}

func coerce(raw string) entities.Value {
	switch {
	case raw == "true":
		return entities.BoolValue(true)
	case raw == "false":
		return entities.BoolValue(false)
	case numberLiteral.MatchString(raw):
		n, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return entities.NumberValue(n)
		}
	case len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\''):
		return entities.StringValue(unquote(raw))
	}
	return entities.StringValue(raw)
}

// unquote strips matching quotes and resolves backslash escapes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') || s[len(s)-1] != s[0] {
		return s
	}
	if s[0] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	inner := s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}

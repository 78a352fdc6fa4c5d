package ifc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads an IFC model from a STEP physical file.
// A missing or unparseable file is a fatal load error; the takeoff
// pipeline does not attempt recovery from it.
func Load(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open IFC file: %w", err)
	}
	defer file.Close()

	model, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	model.Path = path
	return model, nil
}

// Parse reads an IFC model in SPF encoding from a reader
func Parse(reader io.Reader) (*Model, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	text := stripComments(string(data))
	if !strings.HasPrefix(strings.TrimSpace(text), "ISO-10303-21") {
		return nil, fmt.Errorf("not a STEP physical file (missing ISO-10303-21 header)")
	}

	model := &Model{
		instances: make(map[int]*Instance),
		defs:      make(map[int][]*Definition),
	}

	for _, stmt := range splitStatements(text) {
		if !strings.HasPrefix(stmt, "#") {
			continue
		}
		inst, err := parseInstance(stmt)
		if err != nil {
			return nil, err
		}
		if _, dup := model.instances[inst.ID]; dup {
			return nil, fmt.Errorf("duplicate instance #%d", inst.ID)
		}
		model.instances[inst.ID] = inst
		model.order = append(model.order, inst.ID)
	}

	if len(model.order) == 0 {
		return nil, fmt.Errorf("no instances in DATA section")
	}

	model.resolveDefinitions()
	return model, nil
}

// stripComments removes /* ... */ blocks, preserving string literals
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			b.WriteByte(c)
			if c == '\'' {
				inString = false
			}
			continue
		}
		if c == '\'' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(text) && text[i+1] == '*' {
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				break
			}
			i += 2 + end + 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitStatements splits on ';' terminators outside string literals
func splitStatements(text string) []string {
	var statements []string
	var b strings.Builder

	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\'' {
			inString = !inString
		}
		if c == ';' && !inString {
			statements = append(statements, strings.TrimSpace(b.String()))
			b.Reset()
			continue
		}
		b.WriteByte(c)
	}
	return statements
}

// parseInstance parses a single "#id = TYPE(attrs)" statement
func parseInstance(stmt string) (*Instance, error) {
	p := &attrParser{input: stmt}

	p.expect('#')
	id, ok := p.integer()
	if !ok {
		return nil, fmt.Errorf("malformed instance id in %q", truncate(stmt))
	}
	p.skipSpace()
	if !p.expect('=') {
		return nil, fmt.Errorf("missing '=' in instance #%d", id)
	}
	p.skipSpace()

	typeName := p.ident()
	if typeName == "" {
		return nil, fmt.Errorf("missing type name in instance #%d", id)
	}
	p.skipSpace()

	attrs, err := p.attrList()
	if err != nil {
		return nil, fmt.Errorf("instance #%d: %w", id, err)
	}

	return &Instance{ID: id, Type: strings.ToUpper(typeName), Attrs: attrs}, nil
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// attrParser is a recursive-descent parser over one statement
type attrParser struct {
	input string
	pos   int
}

func (p *attrParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *attrParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *attrParser) expect(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *attrParser) skipSpace() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *attrParser) integer() (int, bool) {
	start := p.pos
	for !p.eof() && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	return n, err == nil
}

func (p *attrParser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.input[p.pos]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

// attrList parses "( attr, attr, ... )"
func (p *attrParser) attrList() ([]Attr, error) {
	if !p.expect('(') {
		return nil, fmt.Errorf("expected '(' at offset %d", p.pos)
	}
	var attrs []Attr
	p.skipSpace()
	if p.expect(')') {
		return attrs, nil
	}
	for {
		a, err := p.attr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
		p.skipSpace()
		if p.expect(',') {
			p.skipSpace()
			continue
		}
		if p.expect(')') {
			return attrs, nil
		}
		return nil, fmt.Errorf("expected ',' or ')' at offset %d", p.pos)
	}
}

func (p *attrParser) attr() (Attr, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '$':
		p.pos++
		return Attr{Kind: AttrNull}, nil

	case c == '*':
		p.pos++
		return Attr{Kind: AttrDerived}, nil

	case c == '#':
		p.pos++
		id, ok := p.integer()
		if !ok {
			return Attr{}, fmt.Errorf("malformed reference at offset %d", p.pos)
		}
		return Attr{Kind: AttrRef, Ref: id}, nil

	case c == '\'':
		return p.stringLiteral()

	case c == '.':
		return p.enumLiteral()

	case c == '(':
		items, err := p.attrList()
		if err != nil {
			return Attr{}, err
		}
		return Attr{Kind: AttrList, List: items}, nil

	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.numberLiteral()

	default:
		name := p.ident()
		if name == "" {
			return Attr{}, fmt.Errorf("unexpected character %q at offset %d", c, p.pos)
		}
		p.skipSpace()
		inner, err := p.attrList()
		if err != nil {
			return Attr{}, err
		}
		return Attr{Kind: AttrTyped, Str: strings.ToUpper(name), List: inner}, nil
	}
}

func (p *attrParser) stringLiteral() (Attr, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for !p.eof() {
		c := p.input[p.pos]
		if c == '\'' {
			// '' escapes a quote inside the string
			if p.pos+1 < len(p.input) && p.input[p.pos+1] == '\'' {
				b.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return Attr{Kind: AttrString, Str: b.String()}, nil
		}
		b.WriteByte(c)
		p.pos++
	}
	return Attr{}, fmt.Errorf("unterminated string literal")
}

func (p *attrParser) enumLiteral() (Attr, error) {
	p.pos++ // leading dot
	start := p.pos
	for !p.eof() && p.input[p.pos] != '.' {
		p.pos++
	}
	if p.eof() {
		return Attr{}, fmt.Errorf("unterminated enumeration literal")
	}
	lit := p.input[start:p.pos]
	p.pos++ // trailing dot
	return Attr{Kind: AttrEnum, Str: strings.ToUpper(lit)}, nil
}

func (p *attrParser) numberLiteral() (Attr, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for !p.eof() {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		if (c == '-' || c == '+') && p.pos > start {
			prev := p.input[p.pos-1]
			if prev == 'e' || prev == 'E' {
				p.pos++
				continue
			}
		}
		break
	}
	n, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return Attr{}, fmt.Errorf("malformed number %q", p.input[start:p.pos])
	}
	return Attr{Kind: AttrNumber, Num: n}, nil
}

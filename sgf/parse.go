package sgf

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SyntaxError is returned when the text is not a well formed collection.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e SyntaxError) Error() string { return "sgf: " + e.Msg + " at offset " + strconv.Itoa(e.Offset) }

// ParseCollection reads every game tree of a collection.
func ParseCollection(data []byte) ([]*GameTree, error) {
	p := &parser{data: data}
	var trees []*GameTree
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() != '(' {
			if len(trees) > 0 {
				break // trailing junk after the collection is tolerated
			}
			return nil, p.errorf("expected '(' but found %q", p.peek())
		}
		t, err := p.tree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	if len(trees) == 0 {
		return nil, errors.WithStack(SyntaxError{Offset: p.pos, Msg: "no game tree"})
	}
	return trees, nil
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) eof() bool  { return p.pos >= len(p.data) }
func (p *parser) peek() byte { return p.data[p.pos] }

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.WithStack(SyntaxError{Offset: p.pos, Msg: errors.Errorf(format, args...).Error()})
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.pos++
		default:
			return
		}
	}
}

// tree reads "(" Sequence { GameTree } ")"
func (p *parser) tree() (*GameTree, error) {
	p.pos++ // (
	t := new(GameTree)
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated game tree")
		}
		switch c := p.peek(); c {
		case ';':
			if len(t.Children) > 0 {
				return nil, p.errorf("node after variations")
			}
			p.pos++
			n, err := p.node()
			if err != nil {
				return nil, err
			}
			t.Nodes = append(t.Nodes, n)
		case '(':
			child, err := p.tree()
			if err != nil {
				return nil, err
			}
			t.Children = append(t.Children, child)
		case ')':
			p.pos++
			if len(t.Nodes) == 0 {
				return nil, p.errorf("empty game tree")
			}
			return t, nil
		default:
			return nil, p.errorf("unexpected %q", c)
		}
	}
}

// node reads { PropIdent PropValue { PropValue } }
func (p *parser) node() (Node, error) {
	n := Node{Properties: make(map[string][]string)}
	for {
		p.skipSpace()
		if p.eof() {
			return n, nil
		}
		c := p.peek()
		if !isIdentChar(c) {
			return n, nil
		}
		id := p.ident()
		if id == "" {
			return n, p.errorf("property identifier without upper case letters")
		}

		p.skipSpace()
		if p.eof() || p.peek() != '[' {
			return n, p.errorf("property %s has no value", id)
		}
		for {
			p.skipSpace()
			if p.eof() || p.peek() != '[' {
				break
			}
			v, err := p.value()
			if err != nil {
				return n, err
			}
			n.Properties[id] = append(n.Properties[id], v)
		}
	}
}

// ident reads a property identifier. Lower case letters (allowed by older versions of the format) are dropped.
func (p *parser) ident() string {
	var buf strings.Builder
	for !p.eof() && isIdentChar(p.peek()) {
		if c := p.peek(); c >= 'A' && c <= 'Z' {
			buf.WriteByte(c)
		}
		p.pos++
	}
	return buf.String()
}

func isIdentChar(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }

// value reads "[" CValueType "]", resolving escapes. A soft line break (backslash newline) is removed.
func (p *parser) value() (string, error) {
	start := p.pos
	p.pos++ // [
	var buf strings.Builder
	for !p.eof() {
		c := p.peek()
		p.pos++
		switch c {
		case ']':
			return buf.String(), nil
		case '\\':
			if p.eof() {
				break
			}
			esc := p.peek()
			p.pos++
			switch esc {
			case '\n':
				if !p.eof() && p.peek() == '\r' {
					p.pos++
				}
			case '\r':
				if !p.eof() && p.peek() == '\n' {
					p.pos++
				}
			default:
				buf.WriteByte(esc)
			}
		default:
			buf.WriteByte(c)
		}
	}
	p.pos = start
	return "", p.errorf("unterminated property value")
}

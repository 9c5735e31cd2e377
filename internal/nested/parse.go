package nested

import (
	"fmt"
	"strings"
)

// StructuralError reports malformed nested-document input: unbalanced
// braces, a truncated group, or input with no top-level groups at all.
type StructuralError struct {
	Group string // offending top-level group, when known
	Pos   int    // byte offset in the input
	Msg   string
}

func (e *StructuralError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("nested document: %s in group %q (offset %d)", e.Msg, e.Group, e.Pos)
	}
	return fmt.Sprintf("nested document: %s (offset %d)", e.Msg, e.Pos)
}

// Parse reads the restricted export grammar into a Document.
//
// The input is an optional "export default" wrapper around a braced object
// of groups, each group a braced object of entries; entries are either
// quoted values or nested objects, with optional trailing commas and an
// optional trailing semicolon. Line comments are ignored. Values are kept
// in their escaped form.
//
// Two serialized conventions are folded back into the tree on read: an
// entry named _value becomes the enclosing node's direct value, and an
// object entry k_nested whose sibling k exists is reattached as children of
// k. Non-empty input with no top-level groups is a StructuralError.
func Parse(input string) (*Document, error) {
	p := &parser{lex: &lexer{input: input}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	doc := NewDocument()

	// Optional module-export wrapper.
	if p.tok.typ == tokenIdent && p.tok.val == "export" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.typ != tokenIdent || p.tok.val != "default" {
			return nil, p.structural("", "expected \"default\" after \"export\"")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	wrapped := false
	if p.tok.typ == tokenLBrace {
		wrapped = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	for p.tok.typ == tokenIdent {
		if err := p.parseGroup(doc); err != nil {
			return nil, err
		}
	}

	if wrapped {
		if p.tok.typ != tokenRBrace {
			return nil, p.structural(p.group, fmt.Sprintf("unbalanced braces: expected } before %s", p.tok.typ))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.typ == tokenSemi {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.typ != tokenEOF {
		return nil, p.structural(p.group, fmt.Sprintf("unexpected %s after document", p.tok.typ))
	}

	if doc.Len() == 0 && strings.TrimSpace(input) != "" {
		return nil, &StructuralError{Msg: "no top-level groups found"}
	}
	return doc, nil
}

type parser struct {
	lex   *lexer
	tok   token
	group string // current top-level group, for error context
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return &StructuralError{Group: p.group, Pos: p.lex.pos, Msg: err.Error()}
	}
	p.tok = tok
	return nil
}

func (p *parser) structural(group, msg string) error {
	return &StructuralError{Group: group, Pos: p.tok.pos, Msg: msg}
}

func (p *parser) parseGroup(doc *Document) error {
	name := p.tok.val
	p.group = name
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.typ != tokenColon {
		return p.structural(name, fmt.Sprintf("expected : after group name, got %s", p.tok.typ))
	}
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.typ != tokenLBrace {
		return p.structural(name, fmt.Sprintf("expected { for group body, got %s", p.tok.typ))
	}

	var target *Node
	if base, ok := strings.CutSuffix(name, "_nested"); ok && base != "" {
		if g, exists := doc.Lookup(base); exists {
			target = g
		}
	}
	if target == nil {
		target = doc.Group(name)
	}
	if err := p.parseObject(target); err != nil {
		return err
	}

	if p.tok.typ == tokenComma {
		return p.advance()
	}
	return nil
}

// parseObject consumes a braced entry list into n. The current token must
// be the opening brace.
func (p *parser) parseObject(n *Node) error {
	if err := p.advance(); err != nil { // {
		return err
	}

	for {
		switch p.tok.typ {
		case tokenRBrace:
			return p.advance()

		case tokenEOF:
			return p.structural(p.group, "unbalanced braces: missing closing brace")

		case tokenIdent:
			name := p.tok.val
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.typ != tokenColon {
				return p.structural(p.group, fmt.Sprintf("expected : after key %q, got %s", name, p.tok.typ))
			}
			if err := p.advance(); err != nil {
				return err
			}

			switch p.tok.typ {
			case tokenString:
				if name == "_value" {
					n.SetValue(p.tok.val)
				} else {
					n.child(name).SetValue(p.tok.val)
				}
				if err := p.advance(); err != nil {
					return err
				}

			case tokenLBrace:
				var target *Node
				if base, ok := strings.CutSuffix(name, "_nested"); ok && base != "" {
					if c, exists := n.Child(base); exists {
						target = c
					}
				}
				if target == nil {
					target = n.child(name)
				}
				if err := p.parseObject(target); err != nil {
					return err
				}

			default:
				return p.structural(p.group, fmt.Sprintf("expected value for key %q, got %s", name, p.tok.typ))
			}

			if p.tok.typ == tokenComma {
				if err := p.advance(); err != nil {
					return err
				}
			}

		default:
			return p.structural(p.group, fmt.Sprintf("unexpected %s in group body", p.tok.typ))
		}
	}
}

package rdf

import (
	"fmt"
	"io"
	"strings"
)

// Decoder is a streaming decoder for Turtle and N-Triples (N-Triples
// being the syntactic subset of Turtle this decoder already handles:
// absolute IRIs only, no directives, no prefixed names, no blank-node
// shorthand beyond "_:label"). It tracks @prefix/@base directives as
// it encounters them and resolves relative IRIs and prefixed names
// against that running state.
type Decoder struct {
	scanner *scanner

	tr       Triple
	keepSubj bool // keep subject from the previous Decode() call
	keepPred bool // keep predicate from the previous Decode() call

	prefixes *PrefixMap

	// Skolemize turns a blank node label into a URI. If nil, blank
	// nodes are rendered as URI("_:" + label).
	Skolemize func(label string) URI

	// Base is the initial base URI, updated by any @base directives
	// encountered in the stream.
	Base URI
}

// NewDecoder returns a new Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: newScanner(r), prefixes: NewPrefixMap()}
}

// Decode returns the next Triple in the input stream, or an error.
// The error io.EOF signals a clean end of stream.
func (d *Decoder) Decode() (Triple, error) {
	if !d.keepSubj {
		if err := d.parseSubject(); err != nil {
			return d.tr, err
		}
	}
	d.keepSubj = false

	if !d.keepPred {
		if err := d.parsePredicate(); err != nil {
			return d.tr, err
		}
	}
	d.keepPred = false

	if err := d.parseObject(); err != nil {
		return d.tr, err
	}

	return d.tr, nil
}

// DecodeAll consumes the entire stream, returning the accumulated
// Graph or the first error encountered (io.EOF is not an error here).
func (d *Decoder) DecodeAll() (*Graph, error) {
	g := NewGraph()
	for {
		tr, err := d.Decode()
		if err == io.EOF {
			return g, nil
		}
		if err != nil {
			return g, err
		}
		g.Insert(tr)
	}
}

func (d *Decoder) parseSubject() error {
	for {
		tok := d.scanner.Scan()
		switch tok.Type {
		case tokenEOF:
			return io.EOF
		case tokenEOL:
			continue
		case tokenLangTag:
			if err := d.parseDirective(tok.Text); err != nil {
				return err
			}
			continue
		case tokenURI:
			d.tr.Subj = NewURI(tok.Text).Resolve(d.Base)
		case tokenPrefixedName:
			uri, err := d.resolveName(tok.Text)
			if err != nil {
				return d.errorf("%s", err)
			}
			d.tr.Subj = uri
		case tokenBNode:
			d.tr.Subj = d.blankNode(tok.Text)
		default:
			return d.errorf("unexpected %s %q, expected subject", tok.Type, tok.Text)
		}
		return nil
	}
}

func (d *Decoder) parsePredicate() error {
	tok := d.scanner.Scan()
	switch tok.Type {
	case tokenURI:
		d.tr.Pred = NewURI(tok.Text).Resolve(d.Base)
		return nil
	case tokenPrefixedName:
		uri, err := d.resolveName(tok.Text)
		if err != nil {
			return d.errorf("%s", err)
		}
		d.tr.Pred = uri
		return nil
	case tokenEOF:
		return io.EOF
	default:
		return d.errorf("unexpected %s %q, expected predicate", tok.Type, tok.Text)
	}
}

func (d *Decoder) parseObject() error {
	tok := d.scanner.Scan()
	switch tok.Type {
	case tokenURI:
		d.tr.Obj = NewURI(tok.Text).Resolve(d.Base)
		return d.parseTerminator()
	case tokenPrefixedName:
		uri, err := d.resolveName(tok.Text)
		if err != nil {
			return d.errorf("%s", err)
		}
		d.tr.Obj = uri
		return d.parseTerminator()
	case tokenBNode:
		d.tr.Obj = d.blankNode(tok.Text)
		return d.parseTerminator()
	case tokenLiteral:
		return d.parseLiteralObject(tok.Text)
	case tokenEOF:
		return io.EOF
	default:
		return d.errorf("unexpected %s %q, expected object", tok.Type, tok.Text)
	}
}

func (d *Decoder) parseLiteralObject(value string) error {
	next := d.scanner.Scan()
	switch next.Type {
	case tokenLangTag:
		d.tr.Obj = NewLangLiteral(value, next.Text)
		return d.parseTerminator()
	case tokenTypeMarker:
		dtTok := d.scanner.Scan()
		switch dtTok.Type {
		case tokenURI:
			d.tr.Obj = NewTypedLiteral(value, NewURI(dtTok.Text).Resolve(d.Base))
		case tokenPrefixedName:
			uri, err := d.resolveName(dtTok.Text)
			if err != nil {
				return d.errorf("%s", err)
			}
			d.tr.Obj = NewTypedLiteral(value, uri)
		case tokenEOF:
			return io.EOF
		default:
			return d.errorf("unexpected %s %q, expected datatype URI", dtTok.Type, dtTok.Text)
		}
		return d.parseTerminator()
	case tokenDot:
		d.tr.Obj = NewLiteral(value)
		return nil
	case tokenSemicolon:
		d.tr.Obj = NewLiteral(value)
		d.keepSubj = true
		return nil
	case tokenComma:
		d.tr.Obj = NewLiteral(value)
		d.keepSubj = true
		d.keepPred = true
		return nil
	case tokenEOF:
		return io.EOF
	default:
		return d.errorf("unexpected %s %q, expected language tag, datatype, dot, semicolon or comma", next.Type, next.Text)
	}
}

// parseTerminator consumes the token following a non-literal object:
// a dot ends the statement, a semicolon repeats the subject for a new
// predicate, a comma repeats both subject and predicate for a new object.
func (d *Decoder) parseTerminator() error {
	tok := d.scanner.Scan()
	switch tok.Type {
	case tokenDot:
		return nil
	case tokenSemicolon:
		d.keepSubj = true
		return nil
	case tokenComma:
		d.keepSubj = true
		d.keepPred = true
		return nil
	case tokenEOF:
		return io.EOF
	default:
		return d.errorf("unexpected %s %q, expected dot, semicolon or comma", tok.Type, tok.Text)
	}
}

// parseDirective handles the body of a "@prefix"/"@base" statement,
// given that the leading '@' and keyword have already been scanned
// into keyword.
func (d *Decoder) parseDirective(keyword string) error {
	switch strings.ToLower(keyword) {
	case "prefix":
		nameTok := d.scanner.Scan()
		if nameTok.Type != tokenPrefixedName {
			return d.errorf("unexpected %s %q, expected prefix name", nameTok.Type, nameTok.Text)
		}
		uriTok := d.scanner.Scan()
		if uriTok.Type != tokenURI {
			return d.errorf("unexpected %s %q, expected namespace URI", uriTok.Type, uriTok.Text)
		}
		ns := NewURI(uriTok.Text).Resolve(d.Base)
		d.prefixes.Set(strings.TrimSuffix(nameTok.Text, ":"), ns)
	case "base":
		uriTok := d.scanner.Scan()
		if uriTok.Type != tokenURI {
			return d.errorf("unexpected %s %q, expected base URI", uriTok.Type, uriTok.Text)
		}
		d.Base = NewURI(uriTok.Text).Resolve(d.Base)
		d.prefixes.Base = d.Base
	default:
		return d.errorf("unknown directive @%s", keyword)
	}

	dotTok := d.scanner.Scan()
	if dotTok.Type != tokenDot {
		return d.errorf("unexpected %s %q, expected '.' terminating directive", dotTok.Type, dotTok.Text)
	}
	return nil
}

func (d *Decoder) resolveName(text string) (URI, error) {
	if text == "a" {
		return RDFtype, nil
	}
	return d.prefixes.Resolve(text)
}

func (d *Decoder) blankNode(label string) URI {
	if d.Skolemize != nil {
		return d.Skolemize(label)
	}
	return URI("_:" + label)
}

func (d *Decoder) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%d:%d %s", d.scanner.Row, d.scanner.Col, fmt.Sprintf(format, args...))
}

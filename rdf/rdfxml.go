package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
)

const (
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS  = "http://www.w3.org/XML/1998/namespace"
	aboutA = "about"
)

// RDFXMLDecoder is a minimal streaming decoder for the RDF/XML syntax:
// it understands rdf:Description (and plain typed-node) elements whose
// children are property elements carrying either an rdf:resource
// attribute (object is a URI) or text content (object is a plain or
// xml:lang-tagged literal). It does not implement full RDF/XML
// (striping, rdf:parseType="Collection", reification) — those are out
// of scope for this package, whose job is to turn a stream of bytes
// into a stream of Triple, not to be a conformant RDF/XML processor.
type RDFXMLDecoder struct {
	xd   *xml.Decoder
	Base URI

	pending []Triple
}

// NewRDFXMLDecoder returns a new RDFXMLDecoder reading from r.
func NewRDFXMLDecoder(r io.Reader) *RDFXMLDecoder {
	return &RDFXMLDecoder{xd: xml.NewDecoder(r)}
}

// Decode returns the next Triple, or an error. io.EOF signals a clean
// end of stream.
func (d *RDFXMLDecoder) Decode() (Triple, error) {
	for len(d.pending) == 0 {
		tok, err := d.xd.Token()
		if err != nil {
			return Triple{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if err := d.decodeDescription(start); err != nil {
			return Triple{}, err
		}
	}
	tr := d.pending[0]
	d.pending = d.pending[1:]
	return tr, nil
}

// DecodeAll consumes the entire stream, returning the accumulated Graph.
func (d *RDFXMLDecoder) DecodeAll() (*Graph, error) {
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

func (d *RDFXMLDecoder) decodeDescription(start xml.StartElement) error {
	subj, ok := attr(start, rdfNS, aboutA)
	if !ok {
		return nil // skip nodes without an identity; blank-node support is a non-goal here
	}
	subjURI := NewURI(subj).Resolve(d.Base)

	if start.Name.Space != rdfNS || start.Name.Local != "Description" {
		d.pending = append(d.pending, Triple{subjURI, RDFtype, NewURI(start.Name.Space + start.Name.Local)})
	}

	for {
		tok, err := d.xd.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		case xml.StartElement:
			pred := NewURI(t.Name.Space + t.Name.Local)
			if res, ok := attr(t, rdfNS, "resource"); ok {
				d.pending = append(d.pending, Triple{subjURI, pred, NewURI(res).Resolve(d.Base)})
				if err := d.xd.Skip(); err != nil {
					return err
				}
				continue
			}
			lang, _ := attr(t, xmlNS, "lang")
			text, err := d.charData(t)
			if err != nil {
				return err
			}
			var obj Term
			if lang != "" {
				obj = NewLangLiteral(text, lang)
			} else {
				obj = NewLiteral(text)
			}
			d.pending = append(d.pending, Triple{subjURI, pred, obj})
		}
	}
}

// charData reads the text content of the element just opened by
// start, up to and including its matching EndElement.
func (d *RDFXMLDecoder) charData(start xml.StartElement) (string, error) {
	var text string
	for {
		tok, err := d.xd.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text += string(t)
		case xml.EndElement:
			if t.Name == start.Name {
				return text, nil
			}
		case xml.StartElement:
			return "", fmt.Errorf("rdf/xml: nested element in literal property %s", start.Name.Local)
		}
	}
}

func attr(el xml.StartElement, space, local string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == local && (a.Name.Space == space || a.Name.Space == "") {
			return a.Value, true
		}
	}
	return "", false
}

package rdf

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PrefixMap tracks the @prefix/@base directives seen so far in a
// Turtle stream, and resolves/shrinks URIs against them.
type PrefixMap struct {
	p2uri map[string]URI
	uri2p map[URI]string
	Base  URI
}

// NewPrefixMap returns an empty PrefixMap.
func NewPrefixMap() *PrefixMap {
	return &PrefixMap{
		p2uri: make(map[string]URI),
		uri2p: make(map[URI]string),
	}
}

// Set registers prefix as an abbreviation for u.
func (p *PrefixMap) Set(prefix string, u URI) {
	p.p2uri[prefix] = u
	p.uri2p[u] = prefix
}

// Resolve expands a prefixed name ("prefix:local") into an absolute URI.
func (p *PrefixMap) Resolve(s string) (URI, error) {
	if i := strings.Index(s, ":"); i >= 0 {
		prefix, local := s[:i], s[i+1:]
		if u, ok := p.p2uri[prefix]; ok {
			return NewURI(string(u) + local), nil
		}
	}
	return "", fmt.Errorf("cannot resolve: %s", s)
}

// Shrink renders u relative to Base (as a bracketed relative IRI) or
// to a known prefix, falling back to a bracketed absolute IRI.
func (p *PrefixMap) Shrink(u URI) string {
	if p.Base != "" && strings.HasPrefix(string(u), string(p.Base)) {
		return "<" + strings.TrimPrefix(string(u), string(p.Base)) + ">"
	}
	ns, local := splitNamespace(string(u))
	if prefix, ok := p.uri2p[URI(ns)]; ok {
		return prefix + ":" + local
	}
	return "<" + string(u) + ">"
}

// splitNamespace splits uri at its last '/' or '#', inclusive in the
// first half, mirroring common CURIE namespace/local-name splitting.
func splitNamespace(uri string) (string, string) {
	i := len(uri)
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(uri[:i])
		if r == '/' || r == '#' {
			return uri[:i], uri[i:]
		}
		i -= w
	}
	return uri, uri
}

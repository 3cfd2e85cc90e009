// Package export serializes ontologies as OWL/XML or as the RDF graph of
// their axioms in Turtle, N-Triples or JSON-LD.
package export

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/owlxml"
	"github.com/c360studio/semowl/rdf"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatOWLXML produces OWL/XML (.owx) output.
	FormatOWLXML Format = "owlxml"
)

// Exporter serializes the axioms of an ontology selected by a profile.
type Exporter struct {
	profile  Profile
	prefixes map[string]string
}

// NewExporter creates an exporter with the given profile and the default
// prefixes.
func NewExporter(profile Profile) *Exporter {
	return &Exporter{
		profile:  profile,
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the namespace prefixes every export declares.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  rdf.RDF,
		"rdfs": rdf.RDFS,
		"owl":  rdf.OWL,
		"xsd":  rdf.XSD,
		"swrl": rdf.SWRL,
	}
}

// SetPrefix adds or replaces a namespace prefix.
func (e *Exporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// prefixesFor merges the ontology's own prefixes over the defaults.
func (e *Exporter) prefixesFor(o *owl.Ontology) map[string]string {
	out := make(map[string]string, len(e.prefixes)+len(o.Prefixes))
	for k, v := range e.prefixes {
		out[k] = v
	}
	for _, p := range o.Prefixes {
		if p.Name == "xml" {
			continue
		}
		out[p.Name] = p.IRI
	}
	return out
}

// Export serializes o in the given format.
func (e *Exporter) Export(o *owl.Ontology, format Format) ([]byte, error) {
	var b bytes.Buffer
	if err := e.Write(&b, o, format); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Write serializes o to w in the given format.
func (e *Exporter) Write(w io.Writer, o *owl.Ontology, format Format) error {
	selected := Select(o, e.profile)
	if format == FormatOWLXML {
		return owlxml.Write(w, selected)
	}
	prefixes := e.prefixesFor(o)
	g := selected.ToGraph()

	var out string
	switch format {
	case FormatTurtle:
		tw := NewTurtleWriter()
		for k, v := range prefixes {
			tw.SetPrefix(k, v)
		}
		tw.WriteGraph(g)
		out = tw.String()
	case FormatNTriples:
		nw := NewNTriplesWriter()
		nw.WriteGraph(g)
		out = nw.String()
	case FormatJSONLD:
		jw := NewJSONLDWriter()
		jw.SetContext(prefixes)
		jw.AddGraph(g)
		out = jw.String()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// compact abbreviates an IRI with the longest matching prefix whose local
// part is a valid Turtle local name.
func compact(prefixes map[string]string, iri string) (string, bool) {
	best, bestNS := "", ""
	for name, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) || len(ns) <= len(bestNS) {
			continue
		}
		if !isLocalName(iri[len(ns):]) {
			continue
		}
		best, bestNS = name, ns
	}
	if bestNS == "" {
		return "", false
	}
	return best + ":" + iri[len(bestNS):], true
}

func isLocalName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}

// subjects groups the triples of g by subject, in graph order.
func subjects(g *rdf.Graph) ([]rdf.Term, map[rdf.Term][]rdf.Triple) {
	by := make(map[rdf.Term][]rdf.Triple)
	var order []rdf.Term
	for _, t := range g.Triples() {
		if _, ok := by[t.S]; !ok {
			order = append(order, t.S)
		}
		by[t.S] = append(by[t.S], t)
	}
	return order, by
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/semowl/rdf"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
	FormatOWLXML: {
		Name:        FormatOWLXML,
		MIMEType:    "application/owl+xml",
		Extension:   ".owx",
		Description: "OWL/XML - XML serialization of OWL 2",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name or file extension.
func ParseFormat(name string) (Format, error) {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	for f, info := range FormatRegistry {
		if n == string(f) || "."+n == info.Extension {
			return f, nil
		}
	}
	switch n {
	case "n-triples":
		return FormatNTriples, nil
	case "json-ld":
		return FormatJSONLD, nil
	case "owl", "xml", "owl/xml":
		return FormatOWLXML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// FormatForPath picks the format from a file name's extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a new Turtle writer with default prefixes.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: defaultPrefixes(),
	}
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	for _, prefix := range sortedKeys(w.prefixes) {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// term renders a term, abbreviating IRIs and datatypes where possible.
func (w *TurtleWriter) term(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindIRI:
		if c, ok := compact(w.prefixes, t.Value); ok {
			return c
		}
	case rdf.KindLiteral:
		if t.Lang == "" && t.Datatype != "" && t.Datatype != rdf.XSDString {
			if c, ok := compact(w.prefixes, t.Datatype); ok {
				return `"` + rdf.EscapeLiteral(t.Value) + `"^^` + c
			}
		}
	}
	return t.String()
}

// WriteSubject writes every triple of one subject as a single block.
func (w *TurtleWriter) WriteSubject(subject rdf.Term, triples []rdf.Triple) {
	w.sb.WriteString(w.term(subject) + "\n")
	for i, t := range triples {
		pred := w.term(t.P)
		if t.P.Value == rdf.RDFType {
			pred = "a"
		}
		terminator := " ;"
		if i == len(triples)-1 {
			terminator = " ."
		}
		w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", pred, w.term(t.O), terminator))
	}
}

// WriteGraph writes the prefixes and then every subject of g.
func (w *TurtleWriter) WriteGraph(g *rdf.Graph) {
	w.WritePrefixes()
	order, by := subjects(g)
	for i, s := range order {
		if i > 0 {
			w.WriteBlank()
		}
		w.WriteSubject(s, by[s])
	}
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(t rdf.Triple) {
	w.sb.WriteString(t.String() + "\n")
}

// WriteGraph writes every triple of g in sorted order.
func (w *NTriplesWriter) WriteGraph(g *rdf.Graph) {
	for _, t := range g.Triples() {
		w.WriteTriple(t)
	}
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext sets the @context with prefixes.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddNode adds a node to the graph.
func (w *JSONLDWriter) AddNode(id string, types []string, properties map[string]any) {
	w.doc.Graph = append(w.doc.Graph, JSONLDNode{
		ID:         id,
		Type:       types,
		Properties: properties,
	})
}

func nodeID(t rdf.Term) string {
	if t.IsBlank() {
		return "_:" + t.Value
	}
	return t.Value
}

// jsonldObject renders an object term in expanded form.
func jsonldObject(t rdf.Term) map[string]string {
	if !t.IsLiteral() {
		return map[string]string{"@id": nodeID(t)}
	}
	v := map[string]string{"@value": t.Value}
	switch {
	case t.Lang != "":
		v["@language"] = t.Lang
	case t.Datatype != "" && t.Datatype != rdf.XSDString:
		v["@type"] = t.Datatype
	}
	return v
}

// AddGraph adds one node per subject of g. rdf:type values with IRI
// objects become @type entries.
func (w *JSONLDWriter) AddGraph(g *rdf.Graph) {
	order, by := subjects(g)
	for _, s := range order {
		var types []string
		props := make(map[string]any)
		for _, t := range by[s] {
			if t.P.Value == rdf.RDFType && !t.O.IsLiteral() {
				types = append(types, nodeID(t.O))
				continue
			}
			vals, _ := props[t.P.Value].([]map[string]string)
			props[t.P.Value] = append(vals, jsonldObject(t.O))
		}
		w.AddNode(nodeID(s), types, props)
	}
}

// String returns the JSON-LD output.
func (w *JSONLDWriter) String() string {
	data, err := json.MarshalIndent(w.doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ParseJSONLD reads a document written by JSONLDWriter.
func ParseJSONLD(data []byte) (*JSONLDDocument, error) {
	var raw struct {
		Context map[string]any   `json:"@context"`
		Graph   []map[string]any `json:"@graph"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON-LD: %w", err)
	}
	doc := &JSONLDDocument{Context: raw.Context}
	for _, m := range raw.Graph {
		n := JSONLDNode{Properties: make(map[string]any)}
		for k, v := range m {
			switch k {
			case "@id":
				n.ID, _ = v.(string)
			case "@type":
				if ts, ok := v.([]any); ok {
					for _, t := range ts {
						if s, ok := t.(string); ok {
							n.Type = append(n.Type, s)
						}
					}
				}
			default:
				n.Properties[k] = v
			}
		}
		doc.Graph = append(doc.Graph, n)
	}
	return doc, nil
}

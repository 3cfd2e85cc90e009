package export_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/c360studio/semowl/export"
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/owlxml"
	"github.com/c360studio/semowl/rdf"
)

const ex = "http://example.org/zoo#"

func zoo() *owl.Ontology {
	o := owl.NewOntology("http://example.org/zoo")
	o.AddPrefix("zoo", ex)
	o.AddAxioms(
		owl.Declare(owl.NewClass(ex+"Lion")),
		owl.Declare(owl.NewClass(ex+"Cat")),
		owl.Declare(owl.NewIndividual(ex+"leo")),
		owl.NewSubClassOf(owl.NewClass(ex+"Lion"), owl.NewClass(ex+"Cat")),
		owl.NewClassAssertion(owl.NewClass(ex+"Lion"), owl.NewIndividual(ex+"leo")),
		owl.NewDataPropertyAssertion(owl.NewDataProperty(ex+"name"), owl.NewIndividual(ex+"leo"),
			owl.NewLiteral("Leo \"the king\"", rdf.XSDString)),
		owl.NewDataPropertyAssertion(owl.NewDataProperty(ex+"age"), owl.NewIndividual(ex+"leo"),
			owl.NewLiteral("7", rdf.XSDInteger)),
	)
	o.AddAxiom(owl.MarkInferred(owl.NewClassAssertion(owl.NewClass(ex+"Cat"), owl.NewIndividual(ex+"leo"))))
	return o
}

func TestExportTurtle(t *testing.T) {
	out, err := export.NewExporter(export.ProfileAll).Export(zoo(), export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"@prefix zoo: <" + ex + "> .",
		"@prefix owl: <" + rdf.OWL + "> .",
		"zoo:Lion\n",
		"    rdfs:subClassOf zoo:Cat",
		"    a zoo:Lion",
		"    a zoo:Cat",
		`"7"^^xsd:integer`,
		`"Leo \"the king\""`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Turtle output missing %q\n%s", want, text)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(text), ".") {
		t.Error("Turtle output should end with a statement terminator")
	}
}

func TestExportNTriples(t *testing.T) {
	out, err := export.NewExporter(export.ProfileAll).Export(zoo(), export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("line %q is not a complete N-Triples statement", line)
		}
	}
	want := "<" + ex + "leo> <" + rdf.RDFType + "> <" + ex + "Lion> ."
	if !strings.Contains(string(out), want) {
		t.Errorf("N-Triples output missing %q", want)
	}
	if !strings.Contains(string(out), `"7"^^<`+rdf.XSDInteger+`>`) {
		t.Error("N-Triples output should carry the full datatype IRI")
	}
}

func TestExportJSONLD(t *testing.T) {
	out, err := export.NewExporter(export.ProfileAll).Export(zoo(), export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !json.Valid(out) {
		t.Fatalf("JSON-LD output is not valid JSON:\n%s", out)
	}
	doc, err := export.ParseJSONLD(out)
	if err != nil {
		t.Fatalf("ParseJSONLD failed: %v", err)
	}
	if doc.Context["zoo"] != ex {
		t.Errorf("context zoo = %v, want %s", doc.Context["zoo"], ex)
	}

	var leo *export.JSONLDNode
	for i := range doc.Graph {
		if doc.Graph[i].ID == ex+"leo" {
			leo = &doc.Graph[i]
		}
	}
	if leo == nil {
		t.Fatal("no node for leo")
	}
	types := strings.Join(leo.Type, " ")
	if !strings.Contains(types, ex+"Lion") || !strings.Contains(types, ex+"Cat") {
		t.Errorf("leo types = %v", leo.Type)
	}
	ages, ok := leo.Properties[ex+"age"].([]any)
	if !ok || len(ages) != 1 {
		t.Fatalf("leo age = %#v", leo.Properties[ex+"age"])
	}
	age := ages[0].(map[string]any)
	if age["@value"] != "7" || age["@type"] != rdf.XSDInteger {
		t.Errorf("age value = %v", age)
	}
}

func TestExportOWLXMLRoundTrip(t *testing.T) {
	o := zoo()
	out, err := export.NewExporter(export.ProfileAll).Export(o, export.FormatOWLXML)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	back, err := owlxml.Unmarshal(out)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Len() != o.Len() {
		t.Errorf("round trip kept %d axioms, want %d", back.Len(), o.Len())
	}
}

func TestProfilesSelectAxioms(t *testing.T) {
	o := zoo()
	inferred := owl.NewClassAssertion(owl.NewClass(ex+"Cat"), owl.NewIndividual(ex+"leo"))
	subclass := owl.NewSubClassOf(owl.NewClass(ex+"Lion"), owl.NewClass(ex+"Cat"))

	tests := []struct {
		profile      export.Profile
		wantInferred bool
		wantAsserted bool
	}{
		{export.ProfileAsserted, false, true},
		{export.ProfileInferred, true, false},
		{export.ProfileAll, true, true},
		{export.Profile("unknown"), true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			got := export.Select(o, tt.profile)
			if got.ContainsAxiom(inferred) != tt.wantInferred {
				t.Errorf("inferred axiom kept = %v, want %v", !tt.wantInferred, tt.wantInferred)
			}
			if got.ContainsAxiom(subclass) != tt.wantAsserted {
				t.Errorf("asserted axiom kept = %v, want %v", !tt.wantAsserted, tt.wantAsserted)
			}
			if !got.ContainsAxiom(owl.Declare(owl.NewClass(ex + "Lion"))) {
				t.Error("declarations should always be kept")
			}
			if got.IRI != o.IRI {
				t.Errorf("IRI = %q, want %q", got.IRI, o.IRI)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"turtle", export.FormatTurtle},
		{".ttl", export.FormatTurtle},
		{"NT", export.FormatNTriples},
		{"json-ld", export.FormatJSONLD},
		{".jsonld", export.FormatJSONLD},
		{"owl", export.FormatOWLXML},
		{".owx", export.FormatOWLXML},
	}
	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := export.ParseFormat("rdfxml"); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(rdfxml) err = %v, want ErrUnsupportedFormat", err)
	}
	if f, err := export.FormatForPath("/tmp/out/zoo.nt"); err != nil || f != export.FormatNTriples {
		t.Errorf("FormatForPath = %s, %v", f, err)
	}
	if _, err := export.NewExporter(export.ProfileAll).Export(zoo(), export.Format("csv")); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("Export(csv) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatRegistry(t *testing.T) {
	for _, f := range []export.Format{export.FormatTurtle, export.FormatNTriples, export.FormatJSONLD, export.FormatOWLXML} {
		info, ok := export.GetFormatInfo(f)
		if !ok {
			t.Errorf("format %s not registered", f)
			continue
		}
		if info.MIMEType == "" || !strings.HasPrefix(info.Extension, ".") {
			t.Errorf("format %s has incomplete metadata: %+v", f, info)
		}
	}
}

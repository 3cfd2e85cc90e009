package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/config"
	"github.com/c360studio/semowl/natsserver"
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/owlxml"
	"github.com/c360studio/semowl/rdf"
)

const ex = "http://example.org/zoo#"

func writeOntology(t *testing.T, dir, name string, o *owl.Ontology) string {
	t.Helper()
	data, err := owlxml.Marshal(o)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func zoo() *owl.Ontology {
	o := owl.NewOntology("http://example.org/zoo")
	lion, cat, leo := owl.NewClass(ex+"Lion"), owl.NewClass(ex+"Cat"), owl.NewIndividual(ex+"leo")
	o.AddAxioms(
		owl.Declare(lion),
		owl.Declare(cat),
		owl.Declare(leo),
		owl.NewSubClassOf(lion, cat),
		owl.NewClassAssertion(lion, leo),
	)
	return o
}

func contradiction() *owl.Ontology {
	o := owl.NewOntology("http://example.org/pets")
	cat, dog, rex := owl.NewClass(ex+"Cat"), owl.NewClass(ex+"Dog"), owl.NewIndividual(ex+"rex")
	o.AddAxioms(
		owl.Declare(cat),
		owl.Declare(dog),
		owl.Declare(rex),
		owl.NewDisjointClasses(cat, dog),
		owl.NewClassAssertion(cat, rex),
		owl.NewClassAssertion(dog, rex),
	)
	return o
}

// setup writes a config file pointing storage into dir.
func setup(t *testing.T) (dir, configPath string) {
	t.Helper()
	return setupBackend(t, config.BackendSQLite)
}

// setupBackend is setup with the given storage backend. The nats backend
// runs an embedded server on a store directory inside dir.
func setupBackend(t *testing.T, backend string) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = backend
	cfg.Storage.Path = filepath.Join(dir, "store", "ontologies.db")
	cfg.NATS.StoreDir = filepath.Join(dir, "nats")
	cfg.Watch.Root = dir
	configPath = filepath.Join(dir, "semowl.yaml")
	require.NoError(t, cfg.SaveToFile(configPath))
	return dir, configPath
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	_, configPath := setup(t)
	out, err := run(t, configPath, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "semowl version "+Version)
}

func TestValidate(t *testing.T) {
	dir, configPath := setup(t)
	good := writeOntology(t, dir, "zoo.owx", zoo())
	bad := writeOntology(t, dir, "pets.owx", contradiction())

	out, err := run(t, configPath, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, good+":")

	out, err = run(t, configPath, "validate", filepath.Join(dir, "*.owx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errValidationFailed))
	assert.Contains(t, out, bad+": ")
	assert.Contains(t, out, "error(s)")
	assert.Contains(t, out, "DisjointClasses")
}

func TestValidateRejectsUnknownInput(t *testing.T) {
	dir, configPath := setup(t)
	path := filepath.Join(dir, "zoo.ttl")
	require.NoError(t, os.WriteFile(path, []byte("@prefix : <x> ."), 0644))

	_, err := run(t, configPath, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only OWL/XML input")
}

func TestReasonWritesInferences(t *testing.T) {
	dir, configPath := setup(t)
	path := writeOntology(t, dir, "zoo.owx", zoo())
	output := filepath.Join(dir, "zoo.nt")

	_, err := run(t, configPath, "reason", path, "-o", output, "--profile", "inferred")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	want := "<" + ex + "leo> <" + rdf.RDFType + "> <" + ex + "Cat> ."
	assert.Contains(t, string(data), want)
	assert.NotContains(t, string(data), "<"+ex+"leo> <"+rdf.RDFType+"> <"+ex+"Lion> .")
}

func TestReasonWithRuleFile(t *testing.T) {
	dir, configPath := setup(t)
	path := writeOntology(t, dir, "zoo.owx", zoo())
	rules := filepath.Join(dir, "zoo.swrl")
	require.NoError(t, os.WriteFile(rules, []byte("# big cats\n[big] Lion(?x) -> BigCat(?x)\n"), 0644))

	out, err := run(t, configPath, "reason", path, "--rules", rules, "--format", "ntriples", "--profile", "inferred")
	require.NoError(t, err)
	assert.Contains(t, out, "<"+ex+"leo> <"+rdf.RDFType+"> <"+ex+"BigCat> .")
}

func TestReasonOutputToMissingDirectory(t *testing.T) {
	dir, configPath := setup(t)
	path := writeOntology(t, dir, "zoo.owx", zoo())

	_, err := run(t, configPath, "reason", path, "-o", filepath.Join(dir, "missing", "zoo.ttl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output")
}

func TestReasonPublishesToEmbeddedNATS(t *testing.T) {
	dir, configPath := setup(t)
	path := writeOntology(t, dir, "zoo.owx", zoo())

	_, err := run(t, configPath, "reason", path, "--publish", "-o", filepath.Join(dir, "out.ttl"))
	require.NoError(t, err)

	// The command stops its server on exit; the stream survives in the store dir.
	srv, err := natsserver.Start(filepath.Join(dir, "nats"))
	require.NoError(t, err)
	t.Cleanup(srv.Shutdown)
	conn, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	js, err := jetstream.New(conn)
	require.NoError(t, err)

	ctx := context.Background()
	stream, err := js.Stream(ctx, inferenceStream)
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.NotZero(t, info.State.Msgs)
}

func TestConvert(t *testing.T) {
	dir, configPath := setup(t)
	path := writeOntology(t, dir, "zoo.owx", zoo())

	out, err := run(t, configPath, "convert", path, "--format", "jsonld")
	require.NoError(t, err)
	assert.Contains(t, out, `"@context"`)

	_, err = run(t, configPath, "convert", path, "--format", "rdfxml")
	require.Error(t, err)
}

func TestStoreLifecycle(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendNATS} {
		t.Run(backend, func(t *testing.T) {
			storeLifecycle(t, backend)
		})
	}
}

func storeLifecycle(t *testing.T, backend string) {
	dir, configPath := setupBackend(t, backend)
	path := writeOntology(t, dir, "zoo.owx", zoo())

	out, err := run(t, configPath, "store", "save", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ontology:")

	_, err = run(t, configPath, "reason", path, "--record", "-o", filepath.Join(dir, "out.ttl"))
	require.NoError(t, err)

	out, err = run(t, configPath, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"), out)
	assert.Contains(t, out, "http://example.org/zoo")

	out, err = run(t, configPath, "store", "runs", "http://example.org/zoo")
	require.NoError(t, err)
	assert.Contains(t, out, "reason")

	out, err = run(t, configPath, "store", "show", "http://example.org/zoo", "--format", "ntriples")
	require.NoError(t, err)
	assert.Contains(t, out, "<"+ex+"Lion>")

	_, err = run(t, configPath, "store", "delete", "http://example.org/zoo")
	require.NoError(t, err)
	_, err = run(t, configPath, "store", "runs", "http://example.org/zoo")
	require.Error(t, err)
}

func TestVocab(t *testing.T) {
	_, configPath := setup(t)
	out, err := run(t, configPath, "vocab")
	require.NoError(t, err)
	assert.Contains(t, out, "skos.concept.broader")
	assert.Contains(t, out, "geo.topology.contains")
	assert.Contains(t, out, "time.allen.met_by")
}

func TestExtensionsFollowConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Extensions.Enabled = []string{config.ExtensionSKOS}
	app := NewApp(cfg, nil, &bytes.Buffer{})

	for _, name := range app.predicateNames() {
		assert.True(t, strings.HasPrefix(name, "skos."), name)
	}
	_, err := app.Reasoner()
	require.NoError(t, err)
	_, err = app.Validator()
	require.NoError(t, err)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.owx", "b.owx", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	files, err := expandInputs([]string{filepath.Join(dir, "*.owx"), filepath.Join(dir, "a.owx")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.owx"), filepath.Join(dir, "b.owx")}, files)

	_, err = expandInputs([]string{filepath.Join(dir, "*.owl")})
	assert.Error(t, err)
}

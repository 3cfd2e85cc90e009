package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semowl/config"
	"github.com/c360studio/semowl/export"
	"github.com/c360studio/semowl/geosparql"
	"github.com/c360studio/semowl/graph"
	"github.com/c360studio/semowl/natsserver"
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/owltime"
	"github.com/c360studio/semowl/owlxml"
	"github.com/c360studio/semowl/reasoner"
	"github.com/c360studio/semowl/skos"
	"github.com/c360studio/semowl/storage"
	"github.com/c360studio/semowl/storage/sqlite"
	"github.com/c360studio/semowl/swrl"
	"github.com/c360studio/semowl/validator"
)

// inferenceStream is the JetStream stream capturing published inferences.
const inferenceStream = "SEMOWL_INFERENCES"

// App wires configuration, rule sets and backends for the CLI commands.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	metrics *prometheus.Registry

	reasoner  *reasoner.Reasoner
	validator *validator.Validator

	natsConn *nats.Conn
	closed   chan struct{}
	js       jetstream.JetStream
	embedded *natsserver.Server
}

// NewApp creates an application instance.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		metrics: prometheus.NewRegistry(),
	}
}

// Close drains the NATS connection and stops the embedded server, if either
// was started.
func (a *App) Close() {
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.logger.Debug("Failed to drain NATS connection", "error", err)
		}
		select {
		case <-a.closed:
		case <-time.After(5 * time.Second):
			a.natsConn.Close()
		}
		a.natsConn = nil
		a.js = nil
	}
	if a.embedded != nil {
		a.embedded.Shutdown()
		a.embedded = nil
	}
}

func (a *App) reasonerRules() []reasoner.Rule {
	var rules []reasoner.Rule
	if a.cfg.ExtensionEnabled(config.ExtensionSKOS) {
		rules = append(rules, skos.ReasonerRules()...)
	}
	if a.cfg.ExtensionEnabled(config.ExtensionTime) {
		rules = append(rules, owltime.ReasonerRules()...)
	}
	if a.cfg.ExtensionEnabled(config.ExtensionGeo) {
		rules = append(rules, geosparql.ReasonerRules()...)
	}
	return rules
}

func (a *App) validatorRules() []validator.Rule {
	var rules []validator.Rule
	if a.cfg.ExtensionEnabled(config.ExtensionSKOS) {
		rules = append(rules, skos.ValidatorRules()...)
	}
	if a.cfg.ExtensionEnabled(config.ExtensionTime) {
		rules = append(rules, owltime.ValidatorRules()...)
	}
	if a.cfg.ExtensionEnabled(config.ExtensionGeo) {
		rules = append(rules, geosparql.ValidatorRules()...)
	}
	return rules
}

// predicateNames lists the registry names of the enabled extensions.
func (a *App) predicateNames() []string {
	var names []string
	if a.cfg.ExtensionEnabled(config.ExtensionSKOS) {
		names = append(names, skos.PredicateNames()...)
	}
	if a.cfg.ExtensionEnabled(config.ExtensionTime) {
		names = append(names, owltime.PredicateNames()...)
	}
	if a.cfg.ExtensionEnabled(config.ExtensionGeo) {
		names = append(names, geosparql.PredicateNames()...)
	}
	return names
}

// Reasoner returns the configured reasoner, building it on first use.
func (a *App) Reasoner() (*reasoner.Reasoner, error) {
	if a.reasoner != nil {
		return a.reasoner, nil
	}
	opts := []reasoner.Option{
		reasoner.WithMaxIterations(a.cfg.Reasoner.MaxIterations),
		reasoner.WithWorkers(a.cfg.Reasoner.Workers),
		reasoner.WithLogger(a.logger),
		reasoner.WithMetrics(reasoner.NewMetrics(a.metrics)),
		reasoner.WithRules(a.reasonerRules()...),
	}
	if len(a.cfg.Reasoner.Rules) > 0 {
		opts = append(opts, reasoner.WithSelection(a.cfg.Reasoner.Rules...))
	}
	if a.cfg.Reasoner.DisableSWRL {
		opts = append(opts, reasoner.WithoutSWRL())
	}
	r, err := reasoner.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build reasoner: %w", err)
	}
	a.reasoner = r
	return r, nil
}

// Validator returns the configured validator, building it on first use.
func (a *App) Validator() (*validator.Validator, error) {
	if a.validator != nil {
		return a.validator, nil
	}
	opts := []validator.Option{
		validator.WithWorkers(a.cfg.Validator.Workers),
		validator.WithLogger(a.logger),
		validator.WithMetrics(validator.NewMetrics(a.metrics)),
		validator.WithRules(a.validatorRules()...),
	}
	if len(a.cfg.Validator.Rules) > 0 {
		opts = append(opts, validator.WithSelection(a.cfg.Validator.Rules...))
	}
	v, err := validator.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}
	a.validator = v
	return v, nil
}

// LoadOntology reads an OWL/XML file.
func (a *App) LoadOntology(path string) (*owl.Ontology, error) {
	if f, err := export.FormatForPath(path); err != nil || f != export.FormatOWLXML {
		return nil, fmt.Errorf("%s: only OWL/XML input (.owx, .owl, .xml) is supported", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology: %w", err)
	}
	defer file.Close()
	o, err := owlxml.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("Loaded ontology",
		"path", path,
		"iri", o.IRI,
		"axioms", o.Len(),
		"rules", len(o.Rules()))
	return o, nil
}

// LoadRules parses a SWRL rule file and adds its rules to o.
func (a *App) LoadRules(o *owl.Ontology, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}
	rules, err := swrl.Parse(string(data), nil, swrl.WithOntology(o))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, r := range rules {
		o.AddRule(r)
	}
	a.logger.Debug("Loaded rules", "path", path, "count", len(rules))
	return nil
}

// Reason materializes the inferences of o in place.
func (a *App) Reason(ctx context.Context, o *owl.Ontology) (*reasoner.Report, error) {
	r, err := a.Reasoner()
	if err != nil {
		return nil, err
	}
	if a.cfg.Reasoner.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Reasoner.Timeout)
		defer cancel()
	}
	rep, err := r.Apply(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("reason: %w", err)
	}
	if !rep.Fixpoint {
		a.logger.Warn("Reasoning stopped at the iteration limit",
			"iri", o.IRI,
			"iterations", rep.Iterations)
	}
	return rep, nil
}

// Validate runs the validator over o.
func (a *App) Validate(ctx context.Context, o *owl.Ontology) (*validator.Report, error) {
	v, err := a.Validator()
	if err != nil {
		return nil, err
	}
	rep, err := v.Validate(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return rep, nil
}

// Failed reports whether a validation report fails the run.
func (a *App) Failed(rep *validator.Report) bool {
	return !rep.Valid() || (a.cfg.Validator.FailOnWarning && rep.Warnings() > 0)
}

// PrintReport writes a validation report for one file.
func (a *App) PrintReport(name string, rep *validator.Report) {
	if err := rep.WriteText(a.out, name); err != nil {
		a.logger.Debug("Failed to print report", "name", name, "error", err)
	}
}

// connectNATS opens the NATS connection and JetStream context once. Without
// a configured URL it starts an embedded server on nats.store_dir.
func (a *App) connectNATS(ctx context.Context) (jetstream.JetStream, error) {
	if a.js != nil {
		return a.js, nil
	}
	url := a.cfg.NATS.URL
	if url == "" {
		if a.cfg.NATS.StoreDir == "" {
			return nil, errors.New("nats.url or nats.store_dir must be configured")
		}
		srv, err := natsserver.Start(a.cfg.NATS.StoreDir)
		if err != nil {
			return nil, err
		}
		a.embedded = srv
		url = srv.ClientURL()
		a.logger.Debug("Started embedded NATS", "url", url, "store_dir", a.cfg.NATS.StoreDir)
	}
	closed := make(chan struct{})
	conn, err := nats.Connect(url,
		nats.Name("semowl"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		a.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	a.natsConn = conn
	a.closed = closed
	a.js = js
	a.logger.Debug("Connected to NATS", "url", url)
	return js, nil
}

// Publisher returns an inference publisher bound to the configured stream.
func (a *App) Publisher(ctx context.Context) (*graph.Publisher, error) {
	js, err := a.connectNATS(ctx)
	if err != nil {
		return nil, err
	}
	if err := graph.EnsureStream(ctx, js, inferenceStream, a.cfg.NATS.Subject); err != nil {
		return nil, err
	}
	return graph.NewPublisher(graph.NewJetStreamSink(js),
		graph.WithSubject(a.cfg.NATS.Subject),
		graph.WithLogger(a.logger),
		graph.WithPredicateNames(a.predicateNames()...)), nil
}

// Repository opens the configured storage backend.
func (a *App) Repository(ctx context.Context) (storage.Repository, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendNATS:
		js, err := a.connectNATS(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewKVStore(ctx, js, a.cfg.NATS.Bucket)
	default:
		return sqlite.Open(ctx, a.cfg.Storage.Path)
	}
}

// RecordRun saves o and a run summary to the repository.
func (a *App) RecordRun(ctx context.Context, repo storage.Repository, o *owl.Ontology, name string, run *storage.Run) error {
	rec, err := storage.SaveOntology(ctx, repo, o, name)
	if err != nil {
		return fmt.Errorf("save ontology: %w", err)
	}
	run.OntologyID = rec.ID
	if _, err := repo.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LogMetrics logs the collected reasoner and validator metrics at debug
// level.
func (a *App) LogMetrics() {
	families, err := a.metrics.Gather()
	if err != nil {
		a.logger.Debug("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		total := 0.0
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
		a.logger.Debug("Metric", "name", mf.GetName(), "value", total)
	}
}

// expandInputs resolves glob patterns among the arguments. Plain paths are
// kept even when they do not exist so that opening them reports the error.
func expandInputs(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, arg := range args {
		matches := []string{arg}
		if strings.ContainsAny(arg, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expand %s: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			sort.Strings(matches)
		}
		for _, m := range matches {
			clean := filepath.Clean(m)
			if !seen[clean] {
				seen[clean] = true
				out = append(out, clean)
			}
		}
	}
	return out, nil
}

// ontologyName is the file name without its extension.
func ontologyName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

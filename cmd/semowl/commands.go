package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/spf13/cobra"

	"github.com/c360studio/semowl/export"
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/storage"
	"github.com/c360studio/semowl/watch"
)

// errValidationFailed is returned when at least one ontology fails
// validation.
var errValidationFailed = errors.New("validation failed")

func validateCmd(flags *globalFlags) *cobra.Command {
	var (
		reason    bool
		rulesFile string
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file|glob>...",
		Short: "Check ontologies for contradictions and modeling issues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app(cmd)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			files, err := expandInputs(args)
			if err != nil {
				return err
			}

			var repo storage.Repository
			if record {
				if repo, err = app.Repository(ctx); err != nil {
					return fmt.Errorf("open storage: %w", err)
				}
				defer repo.Close()
			}

			failed := 0
			for _, path := range files {
				o, err := app.LoadOntology(path)
				if err != nil {
					return err
				}
				if rulesFile != "" {
					if err := app.LoadRules(o, rulesFile); err != nil {
						return err
					}
				}
				if reason {
					if _, err := app.Reason(ctx, o); err != nil {
						return err
					}
				}
				rep, err := app.Validate(ctx, o)
				if err != nil {
					return err
				}
				app.PrintReport(path, rep)
				if app.Failed(rep) {
					failed++
				}
				if repo != nil {
					run := &storage.Run{
						Kind:     storage.RunKindValidate,
						Errors:   rep.Errors(),
						Warnings: rep.Warnings(),
						Duration: rep.Duration,
					}
					for _, issue := range rep.Issues {
						run.Issues = append(run.Issues, issue.String())
					}
					if err := app.RecordRun(ctx, repo, o, ontologyName(path), run); err != nil {
						return err
					}
				}
			}
			app.LogMetrics()

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d ontologies", errValidationFailed, failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reason, "reason", false, "Materialize inferences before validating")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "SWRL rule file added to every ontology")
	cmd.Flags().BoolVar(&record, "record", false, "Store the ontology and the run in the configured storage")
	return cmd
}

// outputFlags select where and how an ontology is written.
type outputFlags struct {
	output  string
	format  string
	profile string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: turtle, ntriples, jsonld, owlxml")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Axioms to export: asserted, inferred, all")
}

// write serializes o, taking defaults from the output extension and then
// from the configuration.
func (f *outputFlags) write(app *App, o *owl.Ontology) error {
	formatName := f.format
	if formatName == "" && f.output != "" {
		if format, err := export.FormatForPath(f.output); err == nil {
			formatName = string(format)
		}
	}
	if formatName == "" {
		formatName = app.cfg.Export.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	profile := export.Profile(f.profile)
	if profile == "" {
		profile = export.Profile(app.cfg.Export.Profile)
	}
	if _, ok := export.Profiles[profile]; !ok {
		return fmt.Errorf("unknown export profile %q", profile)
	}

	if f.output == "" {
		if err := export.NewExporter(profile).Write(app.out, o, format); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}

	file, err := os.Create(f.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export.NewExporter(profile).Write(file, o, format); err != nil {
		file.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	app.logger.Info("Wrote ontology",
		"path", f.output,
		"format", format,
		"profile", profile)
	return nil
}

func reasonCmd(flags *globalFlags) *cobra.Command {
	var (
		out       outputFlags
		rulesFile string
		publish   bool
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "reason <file>",
		Short: "Materialize the inferences of an ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app(cmd)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			o, err := app.LoadOntology(args[0])
			if err != nil {
				return err
			}
			if rulesFile != "" {
				if err := app.LoadRules(o, rulesFile); err != nil {
					return err
				}
			}
			asserted := o.Clone()

			rep, err := app.Reason(ctx, o)
			if err != nil {
				return err
			}
			app.logger.Info("Reasoning complete",
				"iri", o.IRI,
				"inferences", rep.Count(),
				"iterations", rep.Iterations,
				"fixpoint", rep.Fixpoint,
				"duration", rep.Duration)
			for _, name := range rep.RuleNames() {
				app.logger.Debug("Rule inferences", "rule", name, "count", len(rep.Inferences[name]))
			}

			if err := out.write(app, o); err != nil {
				return err
			}

			if publish {
				pub, err := app.Publisher(ctx)
				if err != nil {
					return err
				}
				n, err := pub.Publish(ctx, o, rep.Axioms())
				if err != nil {
					return err
				}
				app.logger.Info("Published inferences", "entities", n, "subject", app.cfg.NATS.Subject)
			}

			if record {
				repo, err := app.Repository(ctx)
				if err != nil {
					return fmt.Errorf("open storage: %w", err)
				}
				defer repo.Close()
				run := &storage.Run{
					Kind:       storage.RunKindReason,
					Inferences: rep.Count(),
					Iterations: rep.Iterations,
					Duration:   rep.Duration,
				}
				if err := app.RecordRun(ctx, repo, asserted, ontologyName(args[0]), run); err != nil {
					return err
				}
			}
			app.LogMetrics()
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&rulesFile, "rules", "", "SWRL rule file added to the ontology")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the inferences to NATS")
	cmd.Flags().BoolVar(&record, "record", false, "Store the ontology and the run in the configured storage")
	return cmd
}

func convertCmd(flags *globalFlags) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an OWL/XML ontology to another serialization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			o, err := app.LoadOntology(args[0])
			if err != nil {
				return err
			}
			return out.write(app, o)
		},
	}

	out.register(cmd)
	return cmd
}

func watchCmd(flags *globalFlags) *cobra.Command {
	var (
		reason  bool
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-validate ontologies whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			wcfg := app.cfg.Watch
			if len(args) == 1 {
				wcfg.Root = args[0]
			}
			if wcfg.Root == "" {
				wcfg.Root = "."
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			check := func(path string) {
				o, err := app.LoadOntology(path)
				if err != nil {
					app.logger.Error("Failed to load ontology", "path", path, "error", err)
					return
				}
				if reason {
					rep, err := app.Reason(ctx, o)
					if err != nil {
						app.logger.Error("Reasoning failed", "path", path, "error", err)
						return
					}
					if publish {
						pub, err := app.Publisher(ctx)
						if err != nil {
							app.logger.Error("Publisher unavailable", "error", err)
						} else if _, err := pub.Publish(ctx, o, rep.Axioms()); err != nil {
							app.logger.Error("Publish failed", "path", path, "error", err)
						}
					}
				}
				rep, err := app.Validate(ctx, o)
				if err != nil {
					app.logger.Error("Validation failed", "path", path, "error", err)
					return
				}
				app.PrintReport(path, rep)
			}

			w, err := watch.New(wcfg, app.logger)
			if err != nil {
				return err
			}
			files, err := w.Files()
			if err != nil {
				_ = w.Stop()
				return err
			}
			for _, path := range files {
				check(path)
			}
			if err := w.Start(ctx); err != nil {
				_ = w.Stop()
				return err
			}
			defer w.Stop()

			for ev := range w.Events() {
				switch ev.Operation {
				case watch.OpDelete:
					app.logger.Info("Ontology removed", "path", ev.Path)
				default:
					check(ev.AbsPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reason, "reason", false, "Materialize inferences before validating")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish inferences to NATS (requires --reason)")
	return cmd
}

func storeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored ontologies",
	}

	withRepo := func(cmd *cobra.Command, fn func(ctx context.Context, app *App, repo storage.Repository) error) error {
		app, err := flags.app(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		repo, err := app.Repository(cmd.Context())
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer repo.Close()
		return fn(cmd.Context(), app, repo)
	}

	var name string
	save := &cobra.Command{
		Use:   "save <file|glob>...",
		Short: "Store ontologies, replacing any stored ontology with the same IRI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, app *App, repo storage.Repository) error {
				files, err := expandInputs(args)
				if err != nil {
					return err
				}
				for _, path := range files {
					o, err := app.LoadOntology(path)
					if err != nil {
						return err
					}
					n := name
					if n == "" {
						n = ontologyName(path)
					}
					rec, err := storage.SaveOntology(ctx, repo, o, n)
					if err != nil {
						return err
					}
					fmt.Fprintf(app.out, "%s\t%s\n", rec.ID, rec.IRI)
				}
				return nil
			})
		},
	}
	save.Flags().StringVar(&name, "name", "", "Name to store the ontology under (default file name)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored ontologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, app *App, repo storage.Repository) error {
				all, err := repo.ListOntologies(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tIRI\tAXIOMS\tRULES\tUPDATED")
				for _, o := range all {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
						o.ID, o.Name, o.IRI, o.Axioms, o.Rules, o.UpdatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}

	runs := &cobra.Command{
		Use:   "runs <iri>",
		Short: "List the recorded runs of a stored ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, app *App, repo storage.Repository) error {
				rec, err := repo.FindOntology(ctx, args[0])
				if err != nil {
					return fmt.Errorf("find %s: %w", args[0], err)
				}
				id, err := storage.ParseEntityID(rec.ID)
				if err != nil {
					return err
				}
				all, err := repo.ListRuns(ctx, id)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KIND\tINFERENCES\tERRORS\tWARNINGS\tDURATION\tAT")
				for _, r := range all {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n",
						r.Kind, r.Inferences, r.Errors, r.Warnings, r.Duration, r.CreatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}

	var out outputFlags
	show := &cobra.Command{
		Use:   "show <iri>",
		Short: "Write a stored ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, app *App, repo storage.Repository) error {
				rec, err := repo.FindOntology(ctx, args[0])
				if err != nil {
					return fmt.Errorf("find %s: %w", args[0], err)
				}
				o, err := rec.Decode()
				if err != nil {
					return err
				}
				return out.write(app, o)
			})
		},
	}
	out.register(show)

	remove := &cobra.Command{
		Use:   "delete <iri>",
		Short: "Delete a stored ontology and its runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, app *App, repo storage.Repository) error {
				rec, err := repo.FindOntology(ctx, args[0])
				if err != nil {
					return fmt.Errorf("find %s: %w", args[0], err)
				}
				id, err := storage.ParseEntityID(rec.ID)
				if err != nil {
					return err
				}
				return repo.DeleteOntology(ctx, id)
			})
		},
	}

	cmd.AddCommand(save, list, runs, show, remove)
	return cmd
}

func vocabCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the predicates registered by the enabled extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PREDICATE\tIRI\tDESCRIPTION")
			for _, name := range app.predicateNames() {
				meta := vocabulary.GetPredicateMetadata(name)
				if meta == nil {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, meta.StandardIRI, meta.Description)
			}
			return tw.Flush()
		},
	}
}

package main

import (
	"fmt"

	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/adapter/builtin"
	"github.com/siegeai/siegeschema/batch"
	"github.com/siegeai/siegeschema/infer"
	"github.com/siegeai/siegeschema/integrations/registry"
	"github.com/siegeai/siegeschema/loader"
	"github.com/siegeai/siegeschema/persist"
	"github.com/siegeai/siegeschema/schema"
	"github.com/spf13/cobra"
)

type inferFlags struct {
	native          string
	output          string
	overwrite       bool
	format          string
	workers         int
	continueOnError bool
	publish         bool
}

func newInferCmd(a *app) *cobra.Command {
	var f inferFlags
	cmd := &cobra.Command{
		Use:   "infer PATH...",
		Short: "Infer the schema of JSON documents",
		Long: `Infers one schema per document. Directories are searched recursively
for *.json, *.json.gz and *.json.zz files.

Without --output, schemas are printed to stdout. With --output, a single
document is written to that file, and several documents are written into that
directory as <name>-schema.json (or <name>-<adapter><ext> with --native).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, a, f, args)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.native, "native", "", "also convert into a native schema: arrow, jsonschema, openapi, spark")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.overwrite, "overwrite", false, "replace existing output files")
	fs.StringVar(&f.format, "format", "json", "canonical schema format: json or yaml")
	fs.IntVarP(&f.workers, "workers", "w", 0, "documents processed in parallel (default SIEGE_WORKERS)")
	fs.BoolVar(&f.continueOnError, "continue-on-error", false, "report failed documents and keep going")
	fs.BoolVar(&f.publish, "publish", false, "publish schemas to the registry at SIEGE_REGISTRY")
	return cmd
}

func runInfer(cmd *cobra.Command, a *app, f inferFlags, args []string) error {
	format, err := persist.ParseFormat(f.format)
	if err != nil {
		return err
	}

	paths, err := loader.Discover(args...)
	if err != nil {
		return err
	}

	opts := batch.Options{
		Workers:         a.cfg.Workers,
		Output:          f.output,
		Format:          format,
		Overwrite:       f.overwrite,
		ContinueOnError: f.continueOnError,
	}
	if f.workers > 0 {
		opts.Workers = f.workers
	}
	if f.native != "" {
		if opts.Adapter, err = builtin.Registry().Lookup(f.native); err != nil {
			return err
		}
	}
	if f.publish {
		client, err := registry.NewClient(a.cfg.APIKey, a.cfg.Registry)
		if err != nil {
			return fmt.Errorf("could not init registry client: %w", err)
		}
		opts.Publisher = client
	}

	inferrer := infer.WithLogging(infer.NewEngine(), a.logger)
	results, err := batch.NewRunner(inferrer, opts, a.logger).Run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		case r.Written != "":
			a.logger.Info("wrote schema", "path", r.Path, "output", r.Written)
			continue
		}
		if err := a.print(r, format, opts.Adapter); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// print writes one result to stdout: the native rendering when there is one,
// otherwise the canonical schema, indented only for terminals.
func (a *app) print(r batch.Result, format persist.Format, ad adapter.Adapter) error {
	if r.Native != nil {
		_, err := a.stdout.Write(r.Native)
		return err
	}
	if ad != nil && r.NativeErr != nil {
		a.logger.Warn("printing canonical schema instead", "path", r.Path, "adapter", ad.Name())
	}

	var (
		bs  []byte
		err error
	)
	if format == persist.FormatJSON && !a.tty {
		bs, err = schema.Marshal(r.Schema)
		bs = append(bs, '\n')
	} else {
		bs, err = persist.Encode(r.Schema, format)
	}
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(bs)
	return err
}

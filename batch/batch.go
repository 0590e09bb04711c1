// Package batch infers schemas for many documents in parallel and persists
// the results.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/infer"
	"github.com/siegeai/siegeschema/loader"
	"github.com/siegeai/siegeschema/persist"
	"github.com/siegeai/siegeschema/schema"
	"golang.org/x/sync/errgroup"
)

var ErrNoInput = errors.New("no input documents")

// Publisher sends an inferred schema somewhere outside the process.
type Publisher interface {
	PublishSchema(ctx context.Context, source string, s schema.Schema) error
}

type Options struct {
	// Workers bounds the number of documents processed at once.
	Workers int
	// Adapter, when set, also converts each schema into its native form.
	Adapter adapter.Adapter
	// Output is where results are written; empty writes nothing. With more
	// than one input, or when Output is an existing directory, each document
	// gets its own file inside it.
	Output    string
	Format    persist.Format
	Overwrite bool
	// ContinueOnError records per-document failures in the results instead
	// of stopping at the first one.
	ContinueOnError bool
	Publisher       Publisher
}

type Result struct {
	Path   string
	Schema schema.Schema
	// Native is the rendered native schema, when an adapter is set and the
	// conversion succeeded.
	Native    []byte
	NativeErr error
	// Written is the file the result was persisted to, if any.
	Written    string
	PublishErr error
	Err        error
}

type Runner struct {
	inferrer infer.Inferrer
	opts     Options
	logger   *slog.Logger
}

func NewRunner(inferrer infer.Inferrer, opts Options, logger *slog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Format == "" {
		opts.Format = persist.FormatJSON
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{inferrer: inferrer, opts: opts, logger: logger}
}

// Run processes paths and returns one result per path, in input order.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	dirMode, err := r.prepareOutput(len(paths))
	if err != nil {
		return nil, err
	}

	var stems []string
	if dirMode {
		stems = outputStems(paths)
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, p := range paths {
		i, p := i, p
		results[i].Path = p

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			stem := Stem(p)
			if dirMode {
				stem = stems[i]
			}
			err := r.process(ctx, &results[i], stem, dirMode)
			if err == nil {
				return nil
			}
			results[i].Err = err
			if r.opts.ContinueOnError {
				r.logger.Warn("could not process document", "path", p, "err", err)
				return nil
			}
			return fmt.Errorf("%s: %w", p, err)
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) prepareOutput(n int) (bool, error) {
	if r.opts.Output == "" {
		return false, nil
	}
	info, err := os.Stat(r.opts.Output)
	if err == nil && info.IsDir() {
		return true, nil
	}
	if n == 1 {
		return false, nil
	}
	if err == nil {
		return false, fmt.Errorf("output %s must be a directory for %d inputs", r.opts.Output, n)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	return true, os.MkdirAll(r.opts.Output, 0o755)
}

func (r *Runner) process(ctx context.Context, res *Result, stem string, dirMode bool) error {
	bs, err := loader.ReadFile(res.Path)
	if err != nil {
		return err
	}
	s, err := r.inferrer.InferBytes(bs)
	if err != nil {
		return err
	}
	res.Schema = s
	r.logger.Debug("inferred document", "path", res.Path, "root", s.Kind())

	if a := r.opts.Adapter; a != nil {
		res.Native, res.NativeErr = adapter.Render(a, s)
		if res.NativeErr != nil {
			r.logger.Warn("could not convert schema", "path", res.Path, "adapter", a.Name(), "err", res.NativeErr)
		}
	}

	if r.opts.Output != "" {
		if err := r.persist(res, stem, dirMode); err != nil {
			return err
		}
	}

	if r.opts.Publisher != nil {
		res.PublishErr = r.opts.Publisher.PublishSchema(ctx, res.Path, s)
		if res.PublishErr != nil {
			r.logger.Warn("could not publish schema", "path", res.Path, "err", res.PublishErr)
		}
	}
	return nil
}

// persist writes the native rendering when there is one and the canonical
// schema otherwise.
func (r *Runner) persist(res *Result, stem string, dirMode bool) error {
	var (
		data []byte
		name string
		err  error
	)
	if res.Native != nil {
		data = res.Native
		name = stem + "-" + r.opts.Adapter.Name() + r.opts.Adapter.FileExt()
	} else {
		data, err = persist.Encode(res.Schema, r.opts.Format)
		if err != nil {
			return err
		}
		name = stem + "-schema" + r.opts.Format.Ext()
	}

	out := r.opts.Output
	if dirMode {
		out = filepath.Join(out, name)
	}
	res.Written, err = persist.Save(data, out, persist.Options{Overwrite: r.opts.Overwrite})
	return err
}

// Stem is the file name of path without its document extensions.
func Stem(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range []string{".json.gz", ".json.zz", ".json"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputStems names the output file of each path inside an output directory.
// Paths whose stems collide are named after their location below the
// deepest directory shared by all paths ("a/doc.json" becomes "a-doc"), and
// any name still taken gets a numeric suffix. The result holds no
// duplicates, so no two documents write the same file.
func outputStems(paths []string) []string {
	stems := make([]string, len(paths))
	counts := make(map[string]int, len(paths))
	for i, p := range paths {
		stems[i] = Stem(p)
		counts[stems[i]]++
	}

	root := commonDir(paths)
	used := make(map[string]bool, len(paths))
	for i, p := range paths {
		s := stems[i]
		if counts[s] > 1 {
			if rel, err := filepath.Rel(root, absPath(p)); err == nil {
				rel = filepath.Join(filepath.Dir(rel), s)
				s = strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
			}
		}
		name := s
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", s, n)
		}
		used[name] = true
		stems[i] = name
	}
	return stems
}

// commonDir is the deepest directory containing every path.
func commonDir(paths []string) string {
	var common []string
	for i, p := range paths {
		parts := strings.Split(filepath.ToSlash(filepath.Dir(absPath(p))), "/")
		if i == 0 {
			common = parts
			continue
		}
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	dir := filepath.FromSlash(strings.Join(common, "/"))
	if dir == "" {
		return string(filepath.Separator)
	}
	return dir
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

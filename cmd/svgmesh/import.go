package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/svgmesh"
	"github.com/gogpu/svgmesh/internal/config"
)

type importFlags struct {
	config string
	out    string
	jobs   int
}

func newImportCommand() *cobra.Command {
	var f importFlags
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import YAML documents and write mesh summaries and atlas pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd, f, args)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "settings file (TOML)")
	cmd.Flags().StringVarP(&f.out, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "files imported at once")
	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, f importFlags, files []string) error {
	s, err := config.Load(f.config)
	if err != nil {
		return err
	}
	opts, err := s.Options()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.LogLevel}))
	opts = append(opts, svgmesh.WithLogger(log))

	if err := os.MkdirAll(f.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	if f.jobs > 0 {
		g.SetLimit(f.jobs)
	}
	names := outputNames(files)
	for i, file := range files {
		g.Go(func() error {
			out, err := importFile(ctx, file, f.out, names[i], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	}
	return g.Wait()
}

// outputNames gives every input a distinct output name, derived from its
// base name. Repeats get a -2, -3, ... suffix in argument order.
func outputNames(files []string) []string {
	names := make([]string, len(files))
	used := make(map[string]bool, len(files))
	for i, file := range files {
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		name := stem
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", stem, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// importFile imports one document with its own session and returns the
// summary path. Outputs are written under outDir as name.
func importFile(ctx context.Context, file, outDir, name string, opts []svgmesh.ImportOption) (string, error) {
	r, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer r.Close()
	doc, err := svgmesh.ReadDocument(r)
	if err != nil {
		return "", err
	}

	s, err := svgmesh.NewSession(opts...)
	if err != nil {
		return "", err
	}
	defer s.Close()
	res, err := s.Import(ctx, doc)
	if err != nil {
		return "", err
	}

	var pages []string
	if res.Gradients != nil {
		if pages, err = s.Atlas().SavePNG(outDir, name); err != nil {
			return "", err
		}
	}

	data, err := yaml.Marshal(summarize(file, res, pages))
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, name+".mesh.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Command svgmesh converts YAML document descriptions into mesh summaries
// and gradient atlas images.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/svgmesh"
	"github.com/gogpu/svgmesh/internal/config"
)

// version is set with -ldflags "-X main.version=..." in release builds.
var version = svgmesh.Version

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "svgmesh",
		Short:         "Convert vector documents into triangle meshes",
		SilenceUsage: true,
	}
	root.AddCommand(newImportCommand(), newConfigCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "svgmesh %s\n", version)
		},
	}
}

func newConfigCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load(path)
			if err != nil {
				return err
			}
			return s.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "settings file (TOML)")
	return cmd
}

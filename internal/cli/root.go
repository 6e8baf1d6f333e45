// Package cli implements the postmate command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X postmate/internal/cli.version=..."
var version = "dev"

// NewRootCommand builds the postmate command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "postmate",
		Short: "Analyze social media posts from PDFs and screenshots",
		Long: `postmate extracts the text of a post from a PDF or an image, computes
engagement and readability metrics and asks a language model for
improvement suggestions.

The same pipeline backs the HTTP server in cmd/server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postmate %s\n", version)
		},
	}
}

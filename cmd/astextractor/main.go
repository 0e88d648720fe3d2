package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/astextractor/cli"
)

const programName = "astextractor"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err, rootCmd.ErrOrStderr()))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   programName + ` -project="path/to/project"|-file="path/to/file" [-properties="path"] [-repr=XML|JSON]`,
		Short: "Abstract Syntax Tree Extractor for Java source code",
		// -key=value tokens are parsed by cli.ParseArgs, not by pflag.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE:               runExtract,
	}
	return cmd
}

// exitCode reports err on w unless it is a usage error, whose help text has
// already been printed.
func exitCode(err error, w io.Writer) int {
	if errors.Is(err, cli.ErrUsage) {
		return 2
	}
	fmt.Fprintf(w, "%s: %v\n", programName, err)
	return 1
}

package main

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/astextractor/cli"
	"github.com/dhamidi/astextractor/config"
	"github.com/dhamidi/astextractor/extractor"
	"github.com/dhamidi/astextractor/filter"
	"github.com/dhamidi/astextractor/format"
	"github.com/dhamidi/astextractor/javaast"
)

// fs is swapped out by tests.
var fs afero.Fs = afero.NewOsFs()

func runExtract(cmd *cobra.Command, args []string) error {
	req, err := cli.ParseArgs(args).Request()
	if errors.Is(err, cli.ErrUsage) {
		cli.Usage(cmd.OutOrStdout(), programName)
		if len(args) == 0 {
			return nil
		}
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	settings.ConfigureLogging()

	nodeFilter, err := filter.Load(fs, req.PropertiesPath)
	if err != nil {
		return err
	}

	ext := extractor.New(fs, javaast.NewParser(nodeFilter))
	doc, err := ext.Markup(cmd.Context(), req.Target)
	if err != nil {
		return err
	}

	return format.NewEncoder(req.Repr, cmd.OutOrStdout()).Encode(doc)
}

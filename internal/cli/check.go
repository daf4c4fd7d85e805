package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"connected-collections/internal/diagnostic"
)

type checkReport struct {
	File        string                  `yaml:"file"`
	Types       int                     `yaml:"types"`
	Diagnostics []diagnostic.Diagnostic `yaml:"diagnostics,omitempty"`
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate declaration files and resolve every schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) check(w io.Writer, paths []string) error {
	reports := make([]checkReport, 0, len(paths))
	failed := 0

	for _, path := range paths {
		l, err := a.load(path)
		if err != nil {
			return err
		}

		if l.diags.HasErrors() {
			failed++
		}

		reports = append(reports, checkReport{
			File:        path,
			Types:       len(l.types()),
			Diagnostics: l.diags.All(),
		})
	}

	if err := a.writeCheck(w, reports); err != nil {
		return err
	}

	if failed > 0 {
		return errors.Newf("%d of %d file(s) have declaration errors", failed, len(paths))
	}

	return nil
}

func (a *app) writeCheck(w io.Writer, reports []checkReport) error {
	if a.settings.Format == FormatYAML {
		return yaml.NewEncoder(w).Encode(reports)
	}

	for _, r := range reports {
		status := "ok"

		for _, d := range r.Diagnostics {
			if d.Severity == diagnostic.SeverityError {
				status = "FAILED"
				break
			}
		}

		fmt.Fprintf(w, "%s: %s (%d types)\n", r.File, status, r.Types)

		for _, d := range r.Diagnostics {
			fmt.Fprintf(w, "  %s: %s\n", d.Severity, d)

			for _, s := range d.Suggestions {
				fmt.Fprintf(w, "    hint: %s\n", s)
			}
		}
	}

	return nil
}

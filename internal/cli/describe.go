package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"connected-collections/connected"
	"connected-collections/internal/common"
)

type typeDescription struct {
	Name      string             `yaml:"name"`
	Ancestors []string           `yaml:"ancestors"`
	Fields    []fieldDescription `yaml:"fields,omitempty"`
}

type fieldDescription struct {
	Name     string `yaml:"name"`
	Element  string `yaml:"element"`
	Identity string `yaml:"identity"`
	Owner    string `yaml:"declared_by"`
	Status   string `yaml:"status"`
}

func newDescribeCommand(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Print the linearization and relationship schema of every declared type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.load(args[0])
			if err != nil {
				return err
			}

			if err := l.diags.Error(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dump {
				return dumpSchemas(w, l.types())
			}

			descs, err := describeTypes(l.types())
			if err != nil {
				return err
			}

			if a.settings.Format == FormatYAML {
				return yaml.NewEncoder(w).Encode(descs)
			}

			return writeDescriptions(w, descs)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the resolved schemas")

	return cmd
}

func describeTypes(types []*connected.Type) ([]typeDescription, error) {
	out := make([]typeDescription, 0, len(types))

	for _, t := range types {
		s, err := t.Schema()
		if err != nil {
			return nil, err
		}

		d := typeDescription{Name: t.Name()}
		for _, a := range t.Ancestors() {
			d.Ancestors = append(d.Ancestors, a.Name())
		}

		for _, f := range s.Fields() {
			d.Fields = append(d.Fields, fieldDescription{
				Name:     f.Name,
				Element:  f.Identity().Type,
				Identity: f.Identity().String(),
				Owner:    f.Owner.Name(),
				Status:   fieldStatus(s, f),
			})
		}

		out = append(out, d)
	}

	return out, nil
}

func fieldStatus(s *connected.Schema, f connected.RelationshipField) string {
	switch {
	case !f.Connected():
		return "unbound"
	case s.Bound(f.Name):
		return "bound"
	default:
		return "shadowed"
	}
}

func writeDescriptions(w io.Writer, descs []typeDescription) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		fmt.Fprintf(tw, "%s\n", d.Name)

		if common.IsMultiple(d.Ancestors) {
			fmt.Fprintf(tw, "  ancestors: %s\n", strings.Join(d.Ancestors, " > "))
		}

		for _, f := range d.Fields {
			owner := ""
			if f.Owner != d.Name {
				owner = "from " + common.ShortName(f.Owner)
			}

			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, f.Identity, f.Status, owner)
		}
	}

	return tw.Flush()
}

func dumpSchemas(w io.Writer, types []*connected.Type) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, MaxDepth: 3}

	for _, t := range types {
		s, err := t.Schema()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "# %s\n", t.Name())
		cfg.Fdump(w, s.Fields())
	}

	return nil
}

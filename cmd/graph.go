package cmd

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/spf13/cobra"

	"github.com/polypheny/polytype/graph"
	"github.com/polypheny/polytype/polytype"
)

func newGraphCmd(s *session, opts *rootOptions) *cobra.Command {
	var lattice, coerce bool
	var precedence string
	cmd := &cobra.Command{
		Use:   "graph [TYPE]",
		Short: "Print a type tree, the cast lattice or a precedence list in dot format.",
		Example: `polytype graph "MAP(VARCHAR, INTEGER ARRAY)" | dot -Tpng > type.png
polytype graph --lattice --coerce
polytype graph --precedence TIMESTAMP`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g *gographviz.Graph
			var err error
			switch {
			case lattice:
				g, err = graph.CastLattice(coerce)
			case precedence != "":
				kind, ok := polytype.KindByName(precedence)
				if !ok {
					return fmt.Errorf("unknown kind %s", precedence)
				}
				g, err = graph.PrecedenceList(kind)
			case len(args) == 1:
				t, parseErr := s.parseType(args[0], opts.describeJSON)
				if parseErr != nil {
					return parseErr
				}
				g, err = graph.Show(graph.TypeTree(t))
			default:
				return fmt.Errorf("expected a type, --lattice or --precedence")
			}
			if err != nil {
				return fmt.Errorf("couldn't build graph: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), g.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&lattice, "lattice", false, "Print the cast lattice.")
	cmd.Flags().BoolVar(&coerce, "coerce", false, "Use the explicit CAST rules for the lattice.")
	cmd.Flags().StringVar(&precedence, "precedence", "", "Print the precedence list of a kind.")
	return cmd
}

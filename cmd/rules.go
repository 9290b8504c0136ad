package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/polypheny/polytype/polytype"
)

func newLeastRestrictiveCmd(s *session, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lrt TYPE...",
		Short: "Print the least restrictive type of the given types.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := s.parseTypes(args, opts.describeJSON)
			if err != nil {
				return err
			}
			out := s.factory.LeastRestrictive(types)
			if out == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no common type")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.FullTypeString())
			return nil
		},
	}
}

func newCastCmd(s *session, opts *rootOptions) *cobra.Command {
	var coerce bool
	cmd := &cobra.Command{
		Use:   "cast TO FROM",
		Short: "Tell whether a value of type FROM may be cast to type TO.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := s.parseTypes(args, opts.describeJSON)
			if err != nil {
				return err
			}
			printVerdict(cmd, polytype.CanCastFrom(types[0], types[1], coerce), "cast", types[0], types[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&coerce, "coerce", false, "Use the explicit CAST rules instead of the assignment rules.")
	return cmd
}

func newAssignCmd(s *session, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assign TO FROM",
		Short: "Tell whether a value of type FROM may be assigned to type TO.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := s.parseTypes(args, opts.describeJSON)
			if err != nil {
				return err
			}
			printVerdict(cmd, polytype.CanAssignFrom(types[0], types[1]), "assigned", types[0], types[1])
			return nil
		},
	}
}

func printVerdict(cmd *cobra.Command, ok bool, verb string, to, from *polytype.Type) {
	if ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s can be %s to %s\n", from.FullTypeString(), verb, to.FullTypeString())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s can't be %s to %s\n", from.FullTypeString(), verb, to.FullTypeString())
	}
}

func newRulesCmd() *cobra.Command {
	var coerce bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the source kinds accepted by each target kind.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := polytype.Rules(coerce)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetColWidth(80)
			table.SetAutoWrapText(false)
			table.SetRowLine(false)
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"TO", "FROM"})
			for _, to := range polytype.AllTypes {
				if !rules.Defined(to) {
					continue
				}
				sources := rules.Sources(to)
				names := make([]string, len(sources))
				for i := range sources {
					names[i] = sources[i].String()
				}
				table.Append([]string{to.String(), strings.Join(names, ", ")})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&coerce, "coerce", false, "Print the explicit CAST rules instead of the assignment rules.")
	return cmd
}

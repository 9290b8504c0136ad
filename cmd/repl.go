package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/google/shlex"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/polypheny/polytype/config"
	"github.com/polypheny/polytype/polytype"
)

func newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "List the interned types in digest order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetColWidth(80)
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"#", "kind", "digest"})
			for i, t := range polytype.InternedTypes() {
				table.Append([]string{strconv.Itoa(i), t.Kind().String(), t.Digest()})
			}
			table.Render()
			return nil
		},
	}
}

var replCommands = []prompt.Suggest{
	{Text: "lrt", Description: "least restrictive type of the given types"},
	{Text: "cast", Description: "whether FROM may be cast to TO"},
	{Text: "assign", Description: "whether FROM may be assigned to TO"},
	{Text: "rules", Description: "assignment or cast rules"},
	{Text: "describe", Description: "describe a type"},
	{Text: "graph", Description: "dot graph of a type"},
	{Text: "cache", Description: "interned types"},
	{Text: "exit", Description: "leave the repl"},
}

func newReplCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run commands interactively. Quote type arguments containing spaces with single quotes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := config.ReplHistory(s.config)
			if err != nil {
				return err
			}
			prompt.New(
				func(line string) {
					if strings.TrimSpace(line) == "exit" {
						s.close()
						os.Exit(0)
					}
					if err := s.executeLine(line); err != nil {
						fmt.Fprintln(os.Stderr, err)
					}
				},
				completer,
				prompt.OptionPrefix("polytype> "),
				prompt.OptionHistory(history),
				prompt.OptionTitle("polytype"),
			).Run()
			return nil
		},
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return prompt.FilterHasPrefix(replCommands, d.GetWordBeforeCursor(), true)
}

// executeLine runs one repl line against a fresh command tree sharing the session.
func (s *session) executeLine(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("couldn't split command line: %w", err)
	}
	if len(args) == 0 {
		return nil
	}
	if args[0] == "repl" {
		return fmt.Errorf("already in the repl")
	}
	root := newRootCmd(s)
	root.SetArgs(args)
	return root.Execute()
}

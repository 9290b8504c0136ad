package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/kr/text"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/polypheny/polytype/polytype"
)

func newDescribeCmd(s *session, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe TYPE",
		Short: "Describe a type and the types nested in it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.parseType(args[0], opts.describeJSON)
			if err != nil {
				return err
			}
			describeType(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func describeType(w io.Writer, t *polytype.Type) {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(64)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"property", "value"})
	table.Append([]string{"digest", t.FullTypeString()})
	table.Append([]string{"kind", t.Kind().String()})
	table.Append([]string{"family", t.Family().FamilyName()})
	table.Append([]string{"precision", specifiedOrDash(t.Precision())})
	table.Append([]string{"scale", specifiedOrDash(t.Scale())})
	if cs := t.Charset(); cs != nil {
		table.Append([]string{"charset", cs.Name()})
	}
	if c := t.Collation(); c != nil {
		table.Append([]string{"collation", c.Name()})
	}
	table.Append([]string{"nullable", strconv.FormatBool(t.IsNullable())})
	table.Render()

	switch {
	case polytype.IsMap(t):
		describeNested(w, "key", t.KeyType())
		describeNested(w, "value", t.ValueType())
	case t.ComponentType() != nil:
		describeNested(w, "component", t.ComponentType())
	case t.IsStruct():
		fields := tablewriter.NewWriter(w)
		fields.SetColWidth(64)
		fields.SetAutoWrapText(false)
		fields.SetAutoFormatHeaders(false)
		fields.SetHeader([]string{"#", "name", "type"})
		for _, field := range t.Fields() {
			fields.Append([]string{strconv.Itoa(field.Index), field.Name, field.Type.FullTypeString()})
		}
		fields.Render()
		for _, field := range t.Fields() {
			if field.Type.IsStruct() || field.Type.ComponentType() != nil || polytype.IsMap(field.Type) {
				describeNested(w, field.Name, field.Type)
			}
		}
	}
}

func describeNested(w io.Writer, name string, t *polytype.Type) {
	var buf bytes.Buffer
	describeType(&buf, t)
	fmt.Fprintf(w, "%s:\n%s", name, text.Indent(buf.String(), "  "))
}

func specifiedOrDash(n int) string {
	if n == polytype.NotSpecified {
		return "-"
	}
	return strconv.Itoa(n)
}

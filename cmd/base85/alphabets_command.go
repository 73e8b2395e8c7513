package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/thehowl/base85"
)

func newAlphabetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabets",
		Short: "List the available alphabets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), renderAlphabets()+"\n")
			return err
		},
	}
}

func renderAlphabets() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Byte order", "Digits", "Shorthand"})
	for _, name := range base85.Names() {
		enc, _ := base85.Lookup(name)
		alpha := enc.Alphabet()
		tw.AppendRow(table.Row{
			name,
			enc.ByteOrder().String(),
			fmt.Sprintf("%q .. %q", alpha[0], alpha[len(alpha)-1]),
			shorthands(enc),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	return tw.Render()
}

func shorthands(enc *base85.Encoding) string {
	var parts []string
	for c := 0; c < 256; c++ {
		if group, ok := enc.Expand(byte(c)); ok {
			parts = append(parts, fmt.Sprintf("%q = %s", byte(c), group))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlsorensen/labelcue/pkg/outputs/term"
	"github.com/mlsorensen/labelcue/pkg/reactions"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Print the effective reaction table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := reactions.LoadOrDefault(cfg.Reactions.File)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			data, err := reactions.Marshal(table)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		draw, _ := cmd.Flags().GetBool("icons")
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LABEL\tICON\tTONE")
		for _, label := range table.Labels() {
			r, ok := table.Lookup(label)
			if !ok {
				fmt.Fprintf(tw, "%s\t-\t-\n", label)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%d Hz %s\n", label, r.Icon, r.Frequency, r.Duration)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if draw {
			plain := lipgloss.NewStyle()
			for _, e := range table.Entries() {
				fmt.Fprintf(out, "\n%s\n%s\n", e.Label, term.Render(e.Reaction.Icon.Pattern(), plain, plain))
			}
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a reaction table file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := reactions.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d labels, %d reactions\n", args[0], len(table.Labels()), table.Len())
		return nil
	},
}

func init() {
	labelsCmd.Flags().Bool("yaml", false, "print in reaction table file format")
	labelsCmd.Flags().Bool("icons", false, "draw each reaction's icon")
}

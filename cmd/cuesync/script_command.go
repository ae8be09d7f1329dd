package main

import (
	"encoding/csv"
	"fmt"

	"github.com/spf13/cobra"

	"cuesync/internal/script"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "script <script.yaml>",
		Short: "Extract the spoken lines from a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := script.ExtractVoices(args[0])
			if err != nil {
				return err
			}

			switch outputFlag {
			case "csv":
				writer := csv.NewWriter(cmd.OutOrStdout())
				for _, ref := range refs {
					if err := writer.Write([]string{ref.Character, ref.Text}); err != nil {
						return err
					}
				}
				writer.Flush()
				return writer.Error()
			case "table":
				rows := make([][]string, 0, len(refs))
				for _, ref := range refs {
					rows = append(rows, []string{ref.Character, ref.Text})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Character", "Text"}, rows,
					[]columnAlignment{alignLeft, alignLeft}))
				return nil
			case "json":
				type line struct {
					Character string `json:"character"`
					Text      string `json:"text"`
				}
				lines := make([]line, 0, len(refs))
				for _, ref := range refs {
					lines = append(lines, line{Character: ref.Character, Text: ref.Text})
				}
				return writeJSON(cmd, lines)
			default:
				return fmt.Errorf("unsupported output format %q (csv, table, json)", outputFlag)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "csv", "Output format: csv, table, or json")

	return cmd
}

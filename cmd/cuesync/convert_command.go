package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cuesync/internal/convert"
	"cuesync/internal/project"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var summaryFlag bool
	var layerFlag int
	var projectRootFlag string
	var imageDirFlag string

	cmd := &cobra.Command{
		Use:   "convert <script.yaml> <project.ymmp> <output.ymmp>",
		Short: "Insert the script's image and text cues into a project document",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := convert.Options{
				ScriptPath:  args[0],
				ProjectPath: args[1],
				OutputPath:  args[2],
				ProjectRoot: projectRootFlag,
				ImageDir:    imageDirFlag,
				Config:      cfg,
				Logger:      logger,
			}
			if cmd.Flags().Changed("layer") {
				opts.InsertionLayer = &layerFlag
			}

			result, err := convert.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d item(s) into %s\n", len(result.Created), args[2])
			if summaryFlag {
				fmt.Fprintln(cmd.OutOrStdout(), renderItemSummary(result.Project))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summaryFlag, "summary", false, "Print a table of all timeline items after converting")
	cmd.Flags().IntVar(&layerFlag, "layer", 0, "Override the insertion layer")
	cmd.Flags().StringVar(&projectRootFlag, "project-root", "", "Prefix for image paths written into the document")
	cmd.Flags().StringVar(&imageDirFlag, "image-dir", "", "Directory relative image paths are probed against")

	return cmd
}

func renderItemSummary(doc *project.Project) string {
	headers := []string{"Type", "Layer", "Frame", "Length", "Detail"}
	rows := make([][]string, 0, len(doc.Timeline.Items))
	for _, item := range doc.Timeline.Items {
		base := item.Base()
		rows = append(rows, []string{
			itemKind(item),
			strconv.Itoa(base.Layer),
			strconv.Itoa(base.Frame),
			strconv.Itoa(base.Length),
			itemDetail(item),
		})
	}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func itemKind(item project.Item) string {
	switch item.(type) {
	case *project.ImageItem:
		return "Image"
	case *project.ShapeItem:
		return "Shape"
	case *project.TachieItem:
		return "Tachie"
	case *project.TextItem:
		return "Text"
	case *project.VoiceItem:
		return "Voice"
	default:
		return "?"
	}
}

func itemDetail(item project.Item) string {
	switch it := item.(type) {
	case *project.ImageItem:
		return it.FilePath
	case *project.TextItem:
		return it.Text
	case *project.VoiceItem:
		return fmt.Sprintf("%s: %s", it.CharacterName, it.Serif)
	default:
		return ""
	}
}

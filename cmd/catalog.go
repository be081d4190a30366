package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/project"
)

var catalogSearch string

var catalogCmd = &cobra.Command{
	Use:   "catalog [plants|terrain|structures]",
	Short: "List the placeable catalog items",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, config, err := project.Load()
		if err != nil {
			return err
		}
		cat, err := config.LoadCatalog()
		if err != nil {
			return err
		}

		sections := catalog.Sections
		if len(args) == 1 {
			section, err := catalog.ParseSection(args[0])
			if err != nil {
				return err
			}
			sections = []catalog.Section{section}
		}

		var blocks []string
		if catalogSearch != "" {
			blocks = append(blocks, catalogBlock("search: "+catalogSearch, cat.Search(catalogSearch)))
		} else {
			for _, s := range sections {
				blocks = append(blocks, catalogBlock(string(s), cat.Section(s)))
			}
		}
		fmt.Println(lipgloss.JoinVertical(lipgloss.Left, blocks...))
		return nil
	},
}

func catalogBlock(title string, items []catalog.Item) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	for _, item := range items {
		name := item.Ref.Name
		if item.Ref.Icon != "" {
			name = item.Ref.Icon + " " + name
		}
		details := []string{item.Ref.ID}
		if item.Footprint.W > 0 {
			details = append(details, fmt.Sprintf("%gx%g m", item.Footprint.W, item.Footprint.H))
		}
		if item.Ref.Category != "" {
			details = append(details, item.Ref.Category)
		}
		lines = append(lines, row(name, dimStyle.Render(strings.Join(details, "  "))))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "filter by name, id or category")
	rootCmd.AddCommand(catalogCmd)
}

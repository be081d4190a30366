package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/gardenplan/garden"
)

var infoCmd = &cobra.Command{
	Use:   "info {plan-name}",
	Short: "Show the settings and contents of a garden plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, plan, path, err := openPlan(args[0], false)
		if err != nil {
			return err
		}

		s := plan.Settings
		lines := []string{
			titleStyle.Render(plan.Name),
			row("File", path),
			row("ID", plan.ID.String()),
			row("Area", fmt.Sprintf("%g x %g m", s.WidthMeters, s.HeightMeters)),
			row("Grid", fmt.Sprintf("%g m (shown: %t, snap: %t)", s.GridSizeMeters, s.ShowGrid, s.SnapToGrid)),
			row("Zoom", fmt.Sprintf("%g%%", plan.Zoom)),
		}
		if !plan.Timestamp.IsZero() {
			lines = append(lines, row("Saved", plan.Timestamp.Local().Format("2006-01-02 15:04")))
		}

		counts := plan.Counts()
		lines = append(lines, row("Elements", fmt.Sprint(len(plan.Elements))))
		for _, kind := range []garden.Kind{garden.KindPlant, garden.KindTerrain, garden.KindRectangle, garden.KindCircle} {
			if n := counts[kind]; n > 0 {
				lines = append(lines, row("  "+string(kind), fmt.Sprint(n)))
			}
		}
		fmt.Println(boxStyle.Render(strings.Join(lines, "\n")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

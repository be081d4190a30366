package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/bloodmagesoftware/gardenplan/export"
	"github.com/bloodmagesoftware/gardenplan/garden"
)

var (
	exportFormat  string
	exportScale   float64
	exportQuality int
	exportOut     string
	exportKind    string
	exportOnly    []string
)

var exportCmd = &cobra.Command{
	Use:   "export {plan-name}",
	Short: "Render a garden plan to an image",
	Long: `Renders a saved plan without opening the editor.

Kinds:
  full      the whole working area at twice its size
  hires     the whole working area at the configured export scale
  elements  the bounds of the elements matched by --only, padded by one meter`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, plan, _, err := openPlan(args[0], false)
		if err != nil {
			return err
		}

		rasterizer, err := export.NewRasterizer()
		if err != nil {
			return err
		}
		opts := config.CanvasOptions()
		opts.Exporter = rasterizer
		c := canvas.New(plan, opts)
		defer c.Close()

		exportOpts := config.HighResOptions()
		exportOpts.Path = exportOut
		if cmd.Flags().Changed("scale") {
			exportOpts.Scale = exportScale
		}
		if cmd.Flags().Changed("quality") {
			exportOpts.Quality = exportQuality
		}
		if cmd.Flags().Changed("format") {
			if exportOpts.Format, err = canvas.ParseFormat(exportFormat); err != nil {
				return err
			}
		}

		var path string
		switch exportKind {
		case "full":
			if !cmd.Flags().Changed("scale") {
				exportOpts.Scale = 2
			}
			path, err = exportArea(c, exportOpts)
		case "hires":
			path, err = c.ExportHighResolution(exportOpts)
		case "elements":
			n := c.Store().SelectWhere(matchKinds(exportOnly))
			if n == 0 {
				return fmt.Errorf("no elements match %v", exportOnly)
			}
			bounds, _ := c.SelectedBounds()
			if !cmd.Flags().Changed("scale") {
				exportOpts.Scale = 3
			}
			path, err = c.ExportRegion(bounds.Inset(-c.Machine().Metrics().MetersToPixels(1)), "selected-elements", exportOpts)
		default:
			return fmt.Errorf("unknown export kind %q", exportKind)
		}
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Exported") + " " + path)
		return nil
	},
}

// exportArea writes the whole working area with the given options.
func exportArea(c *canvas.Canvas, opts canvas.ExportOptions) (string, error) {
	return c.ExportRegion(c.Machine().Metrics().AreaRect(), "canvas-full", opts)
}

// matchKinds selects elements whose kind is listed. An empty list matches all.
func matchKinds(kinds []string) func(*garden.Element) bool {
	return func(e *garden.Element) bool {
		if len(kinds) == 0 {
			return true
		}
		for _, k := range kinds {
			if string(e.Kind()) == k {
				return true
			}
		}
		return false
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "png", "image format: png, jpeg or qoi")
	exportCmd.Flags().Float64VarP(&exportScale, "scale", "s", 4, "output pixels per world pixel")
	exportCmd.Flags().IntVarP(&exportQuality, "quality", "q", 98, "JPEG quality")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: timestamped file in the export directory)")
	exportCmd.Flags().StringVarP(&exportKind, "kind", "k", "hires", "what to export: full, hires or elements")
	exportCmd.Flags().StringSliceVar(&exportOnly, "only", nil, "element kinds for --kind elements: plant, terrain, rectangle, circle")
	rootCmd.AddCommand(exportCmd)
}

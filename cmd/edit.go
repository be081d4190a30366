package cmd

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/editor"
	"github.com/bloodmagesoftware/gardenplan/export"
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/interact"
	"github.com/bloodmagesoftware/gardenplan/project"
)

var editCmd = &cobra.Command{
	Use:   "edit {plan-name}",
	Short: "Edit the specified garden plan",
	Long:  `Creates a new plan file if it doesn't exist, then opens the visual editor for that plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return cmd.Help()
		}

		config, plan, path, err := openPlan(args[0], true)
		if err != nil {
			return err
		}
		cat, err := config.LoadCatalog()
		if err != nil {
			return err
		}

		go func() {
			window := new(app.Window)
			window.Option(app.Title("Gardenplan - "+plan.Name), app.Size(unit.Dp(1400), unit.Dp(900)))
			window.Perform(system.ActionMaximize)
			err := run(window, config, path, plan, cat)
			if err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

func run(window *app.Window, config *project.Config, path string, plan *garden.Plan, cat *catalog.Catalog) error {
	theme := material.NewTheme()
	rasterizer, err := export.NewRasterizer()
	if err != nil {
		return err
	}

	opts := config.CanvasOptions()
	opts.Frames = interact.FrameFunc(window.Invalidate)
	opts.Exporter = rasterizer
	c := canvas.New(plan, opts)
	defer c.Close()

	ed := editor.NewEditor(theme, path, c, cat, config.HighResOptions())
	c.SetNotifier(ed)

	var ops op.Ops
	for {
		switch e := window.Event().(type) {
		case app.DestroyEvent:
			if ed.HasUnsavedChanges() {
				log.Printf("closing %s with unsaved changes", path)
			}
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ed.Layout(gtx)
			e.Frame(gtx.Ops)

			if ed.ShouldClose() {
				window.Perform(system.ActionClose)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
}

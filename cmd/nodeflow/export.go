package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"nodeflow/flow"
	"nodeflow/geom"
	"nodeflow/surface"
)

const defaultExportMargin = 50

var errEmptyGraph = errors.New("nothing to export")

func exportCmd() *cobra.Command {
	var (
		output string
		margin float64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the demo graph to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			th, err := cfg.Theme(logger)
			if err != nil {
				return err
			}
			g := flow.NewGraph(flow.SubsystemConfig{Theme: &th, Registry: demoRegistry(), Logger: logger})
			g.Camera = cfg.Camera()
			demoScene(g)
			propagate(g.Nodes())

			path := cfg.GetSavePath(output)
			if err := exportPNG(g, path, margin); err != nil {
				return fmt.Errorf("export %s: %w", path, err)
			}
			good.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "nodeflow.png", "file name inside the save directory")
	cmd.Flags().Float64Var(&margin, "margin", defaultExportMargin, "blank border around the graph in pixels")
	return cmd
}

// exportPNG renders every node and note of g at zoom 1 into a PNG that fits
// them plus margin. Open menus are closed and the camera is restored
// afterwards.
func exportPNG(g *flow.Graph, path string, margin float64) error {
	g.CloseMenus()
	saved := *g.Camera
	defer func() { *g.Camera = saved }()

	g.Camera.Reset()
	probe, err := surface.NewGG(1, 1)
	if err != nil {
		return err
	}
	g.Frame(probe, nil)
	extent, ok := g.Extent(probe)
	if !ok {
		return errEmptyGraph
	}

	width := int(math.Ceil(extent.Size.X + 2*margin))
	height := int(math.Ceil(extent.Size.Y + 2*margin))
	canvas, err := surface.NewGG(width, height)
	if err != nil {
		return err
	}
	g.Camera.Position = geom.Vector2{X: margin - extent.Position.X, Y: margin - extent.Position.Y}
	g.Frame(canvas, nil)
	return canvas.SavePNG(path)
}

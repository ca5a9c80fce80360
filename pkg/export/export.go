// Package export renders a scanned tree to image files and serves them for
// local preview.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reposcope/pkg/model"
	"reposcope/pkg/render"
	"reposcope/pkg/treemap"
)

// RenderPNG lays the tree out at width x height and writes a PNG.
func RenderPNG(tree *model.TreeNode, cfg model.Config, width, height int, path string) error {
	layout := treemap.Build(tree, float64(width), float64(height), cfg)

	canvas, err := render.NewGGCanvas(width, height)
	if err != nil {
		return err
	}
	render.Render(canvas, layout, render.Options{
		ColorMode: layout.Config.ColorMode,
		SizeMode:  layout.Config.SizeMode,
	})
	if err := canvas.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RenderSVG lays the tree out at width x height and writes an SVG.
func RenderSVG(tree *model.TreeNode, cfg model.Config, width, height int, path string) error {
	layout := treemap.Build(tree, float64(width), float64(height), cfg)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	canvas := render.NewSVGCanvas(f, float64(width), float64(height))
	render.Render(canvas, layout, render.Options{
		ColorMode: layout.Config.ColorMode,
		SizeMode:  layout.Config.SizeMode,
	})
	canvas.Close()
	return nil
}

// RenderFile picks the output format from the file extension (.png or
// .svg).
func RenderFile(tree *model.TreeNode, cfg model.Config, width, height int, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return RenderPNG(tree, cfg, width, height, path)
	case ".svg":
		return RenderSVG(tree, cfg, width, height, path)
	default:
		return fmt.Errorf("unsupported output format %q (want .png or .svg)", filepath.Ext(path))
	}
}

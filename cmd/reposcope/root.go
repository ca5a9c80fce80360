package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"reposcope/pkg/export"
	"reposcope/pkg/model"
	"reposcope/pkg/scan"
	"reposcope/pkg/ui"
	"reposcope/pkg/watcher"
)

// rescanWindow is how long the filesystem must stay quiet after a change
// burst before watch mode triggers a rescan.
const rescanWindow = 400 * time.Millisecond

type rootFlags struct {
	configPath string
	depth      int
	sizeMode   string
	colorMode  string
	noCache    bool
	workers    int
	verbose    bool
	watch      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:     "reposcope [dir]",
		Short:   "Interactive treemap of a repository's files",
		Long:    "reposcope scans a repository and shows its files as a squarified treemap,\nsized and colored by source metrics.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, dirArg(args), flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default .reposcope.yml in the scanned dir)")
	pf.IntVar(&flags.depth, "depth", 0, "max nesting depth (0 uses config)")
	pf.StringVar(&flags.sizeMode, "size", "", "size metric: loc, bytes, files, complexity")
	pf.StringVar(&flags.colorMode, "color", "", "color mode: language, age, complexity, density")
	pf.BoolVar(&flags.noCache, "no-cache", false, "skip the metric cache")
	pf.IntVar(&flags.workers, "workers", 0, "concurrent file counters (0 = CPU count)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log skipped and unreadable files")

	root.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rescan when files change")

	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newSVGCmd(flags))
	root.AddCommand(newPreviewCmd(flags))
	return root
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var out string
	var width, height int

	cmd := &cobra.Command{
		Use:   "render [dir]",
		Short: "Render the treemap to a PNG or SVG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			tree, cfg, err := scanDir(cmd.Context(), dir, flags)
			if err != nil {
				return err
			}
			if err := export.RenderFile(tree, cfg, width, height, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "map.png", "output file (.png or .svg)")
	cmd.Flags().IntVar(&width, "width", 1600, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 1000, "image height in pixels")
	return cmd
}

func newSVGCmd(flags *rootFlags) *cobra.Command {
	var out string
	var width, height int

	cmd := &cobra.Command{
		Use:   "svg [dir]",
		Short: "Render the treemap to an SVG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			tree, cfg, err := scanDir(cmd.Context(), dir, flags)
			if err != nil {
				return err
			}
			if err := export.RenderSVG(tree, cfg, width, height, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "map.svg", "output file")
	cmd.Flags().IntVar(&width, "width", 1600, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 1000, "image height in pixels")
	return cmd
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "preview [dir]",
		Short: "Render a PNG and serve it on a local port",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			tree, cfg, err := scanDir(cmd.Context(), dir, flags)
			if err != nil {
				return err
			}

			out := filepath.Join(os.TempDir(), "reposcope-preview.png")
			if err := export.RenderPNG(tree, cfg, width, height, out); err != nil {
				return err
			}

			port, err := export.FindAvailablePort(export.PreviewPortRangeStart, export.PreviewPortRangeEnd)
			if err != nil {
				return err
			}
			srv := export.NewPreviewServer(out, port)
			fmt.Fprintln(cmd.OutOrStdout(), "serving", srv.URL(), "(ctrl+c to stop)")
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&width, "width", 1600, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 1000, "image height in pixels")
	return cmd
}

func runTUI(cmd *cobra.Command, dir string, flags *rootFlags) error {
	tree, cfg, err := scanDir(cmd.Context(), dir, flags)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	rescan := func() (*model.TreeNode, error) {
		t, _, err := scanDir(context.Background(), dir, flags)
		return t, err
	}

	m := ui.NewModel(tree, filepath.Base(abs), cfg, rescan)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if flags.watch {
		w, err := watcher.Watch(abs, rescanWindow, func() {
			p.Send(ui.RescanRequestMsg{})
		})
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// scanDir loads the config for dir, applies flag overrides, and scans the
// tree with the metric cache unless it is disabled.
func scanDir(ctx context.Context, dir string, flags *rootFlags) (*model.TreeNode, model.Config, error) {
	cfgPath := flags.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, ".reposcope.yml")
	}
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("loading config: %w", err)
	}
	if flags.depth > 0 {
		cfg.MaxNestingDepth = flags.depth
	}
	if flags.sizeMode != "" {
		cfg.SizeMode = model.ParseSizeMode(flags.sizeMode)
	}
	if flags.colorMode != "" {
		cfg.ColorMode = model.ParseColorMode(flags.colorMode)
	}

	opts := scan.Options{Workers: flags.workers}
	if flags.verbose {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	}
	if !flags.noCache {
		cache, err := scan.OpenCache(scan.DefaultCachePath(dir))
		if err == nil {
			opts.Cache = cache
			defer cache.Close()
		} else if opts.Logger != nil {
			opts.Logger.Warn("metric cache unavailable", "err", err)
		}
	}

	tree, err := scan.Scan(ctx, dir, opts)
	if err != nil {
		return nil, cfg, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return tree, cfg.Normalized(), nil
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

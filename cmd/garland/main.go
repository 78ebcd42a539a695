package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/garland/internal/config"
	"github.com/san-kum/garland/internal/garland"
	"github.com/san-kum/garland/internal/input"
	"github.com/san-kum/garland/internal/loop"
	"github.com/san-kum/garland/internal/preview"
	"github.com/san-kum/garland/internal/render"
	"github.com/san-kum/garland/internal/tui"
)

const logFileName = "garland.log"

type options struct {
	length     int
	seed       int64
	mode       string
	configFile string
	useTUI     bool
	debug      bool
}

// main builds the garland command tree and runs it, exiting with status 1 on error.
func main() {
	if err := newRootCmd(input.New).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(newPoller func() input.Poller) *cobra.Command {
	opts := &options{}
	previewOpts := &options{}

	rootCmd := &cobra.Command{
		Use:          "garland",
		Short:        "animated string of lights for the terminal",
		Long:         "garland draws a string of colored bulbs and cycles through animation modes.\n\nKeys: enter next mode, h toggle header, a toggle auto-switch (every 5s), ctrl+c quit.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGarland(cmd, opts, newPoller)
		},
	}
	rootCmd.Flags().IntVarP(&opts.length, "length", "l", config.DefaultLength, "number of bulbs")
	rootCmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.Flags().StringVar(&opts.mode, "mode", "", "starting mode, by name or number")
	rootCmd.Flags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().BoolVar(&opts.useTUI, "tui", false, "use the Bubble Tea frontend")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "write a debug log to "+logFileName)

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list animation modes",
		Args:  cobra.NoArgs,
		RunE:  listModes,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [mode]",
		Short: "chart lit bulbs per tick for one cycle of a mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return previewModes(cmd, previewOpts, args)
		},
	}
	previewCmd.Flags().IntVarP(&previewOpts.length, "length", "l", 12, "number of bulbs")
	previewCmd.Flags().Int64Var(&previewOpts.seed, "seed", 0, "random seed (0 = time based)")

	rootCmd.AddCommand(modesCmd, previewCmd)
	return rootCmd
}

// resolveConfig layers defaults, the config file, GARLAND_* variables and
// explicit flags, in that order, then validates the result.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.FromEnv(cmd.Context(), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if cmd.Flags().Changed("length") {
		cfg.Length = opts.length
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func runGarland(cmd *cobra.Command, opts *options, newPoller func() input.Poller) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	var start garland.Mode
	if opts.mode != "" {
		if start, err = garland.ParseMode(opts.mode); err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	colors, err := garland.Assign(cfg.Length, garland.DefaultPalette, rng)
	if err != nil {
		return err
	}
	st, err := garland.NewState(colors, time.Now)
	if err != nil {
		return err
	}
	st.SetMode(start)

	logger, logFile, err := setupLogging(opts.debug)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Debug("starting", "length", cfg.Length, "seed", cfg.Seed, "mode", st.Mode(), "tui", opts.useTUI)

	out := cmd.OutOrStdout()
	painter := render.NewPainter(lipgloss.NewRenderer(out), render.DefaultGlyphs)

	if opts.useTUI {
		return tui.Run(tui.NewModel(st, painter, garland.DefaultPalette, rng, time.Now, logger))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loop.New(st, painter, render.NewScreen(out), newPoller(),
		loop.WithRandom(rng),
		loop.WithLogger(logger),
	)
	if err := l.Run(ctx); err != nil {
		logger.Error("loop failed", "err", err)
		return err
	}
	return nil
}

// setupLogging returns a discarding logger unless debug is set, since the
// animation owns stdout.
func setupLogging(debug bool) (*log.Logger, *os.File, error) {
	if !debug {
		return log.New(io.Discard), nil, nil
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "garland",
	}), f, nil
}

func listModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tDELAY")
	for _, m := range garland.Modes() {
		fmt.Fprintf(w, "%d\t%s\t%v\n", int(m)+1, m.Name(), m.Delay())
	}
	return w.Flush()
}

func previewModes(cmd *cobra.Command, opts *options, args []string) error {
	if opts.length < 1 {
		return &garland.ConfigError{Field: "length", Value: opts.length, Reason: "must be greater than 0"}
	}

	modes := garland.Modes()
	if len(args) == 1 {
		m, err := garland.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []garland.Mode{m}
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	colors, err := garland.Assign(opts.length, garland.DefaultPalette, rng)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range modes {
		fmt.Fprintln(out, preview.Plot(m, colors, garland.DefaultPalette, rng))
		fmt.Fprintln(out)
	}
	return nil
}

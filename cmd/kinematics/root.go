package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/kinematics/app"
	"github.com/lixenwraith/kinematics/audio"
	"github.com/lixenwraith/kinematics/config"
	"github.com/lixenwraith/kinematics/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// rootOptions carries state shared by every command
type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	debug   bool
}

// flagBindings maps command-line flags to config keys
var flagBindings = []struct{ flag, key string }{
	{"segments", "chain.segments"},
	{"length", "chain.length"},
	{"width", "chain.width"},
	{"growth", "chain.width_growth"},
	{"paused", "chain.paused"},
	{"fps", "render.fps"},
	{"scale", "render.scale"},
	{"color", "render.color"},
	{"status-bar", "render.status_bar"},
	{"audio", "audio.enabled"},
	{"idle-timeout", "input.idle_timeout"},
	{"log-level", "log.level"},
	{"log-file", "log.file"},
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "kinematics",
		Short:         "A segmented chain that follows the mouse, drawn in braille",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./kinematics.{toml,yaml})")
	pf.BoolVar(&opts.debug, "debug", false, "debug logging to "+config.DebugLogFile)
	pf.Int("segments", 0, "number of segments")
	pf.Float64("length", 0, "length of every segment")
	pf.Float64("width", 0, "stroke width of the head segment")
	pf.Float64("growth", 0, "width added per segment toward the tail")
	pf.Bool("paused", false, "start with the target frozen")
	pf.Int("fps", 0, "frames per second")
	pf.Float64("scale", 0, "world units per braille dot")
	pf.String("color", "", "chain color as #rrggbb")
	pf.Bool("status-bar", true, "show the status line")
	pf.Bool("audio", false, "play a cue on tracker state changes")
	pf.Duration("idle-timeout", 0, "forget the pointer after this long without motion, 0 never")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "log file, empty disables file logging")

	// Unchanged flags fall through to config file, env and defaults
	for _, b := range flagBindings {
		if err := opts.v.BindPFlag(b.key, pf.Lookup(b.flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", b.flag, err))
		}
	}

	cmd.AddCommand(newRunCmd(opts), newTraceCmd(opts))
	return cmd
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive terminal demo (same as no subcommand)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}
}

// setup loads configuration and builds the logger
func (o *rootOptions) setup(console zapcore.WriteSyncer) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if o.debug {
		cfg.Log = logging.ForDebug(cfg.Log)
	}

	logger, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("starting", zap.String("version", Version), zap.String("config", o.v.ConfigFileUsed()))
	for _, key := range cfg.ClampChain() {
		logger.Warn("option out of range, clamped", zap.String("key", key), zap.Any("value", o.v.Get(key)))
	}
	return cfg, logger, nil
}

func runInteractive(ctx context.Context, opts *rootOptions) error {
	// The TUI owns the terminal so logs only go to the file sink
	cfg, logger, err := opts.setup(nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before printing so the trace stays readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Error("crashed", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mKINEMATICS CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	var cues *audio.Cues
	if cfg.Audio.Enabled {
		cues = audio.NewCues()
		if err := cues.Init(); err != nil {
			logger.Warn("audio initialization failed, continuing without audio", zap.Error(err))
			cues = nil
		} else {
			defer cues.Close()
		}
	}

	a, err := app.New(screen, cfg, cues, logger)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	return a.Run(ctx)
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
	"github.com/nguyentantai21042004/deck-scribe/internal/media"
	"github.com/nguyentantai21042004/deck-scribe/internal/processor"
	"github.com/nguyentantai21042004/deck-scribe/pkg/executor"
)

// errBatchFailed is returned when at least one document failed. The details
// were already logged per document.
var errBatchFailed = errors.New("one or more presentations failed")

// options holds the persistent flags shared by every command
type options struct {
	cfgFile  string
	verbose  bool
	progress bool
	exec     executor.Executor
}

// Execute builds the command tree and runs it. Any error exits with status 1.
func Execute() {
	os.Exit(exitCode(newRootCmd(executor.New()).Execute(), os.Stderr))
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errBatchFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func newRootCmd(exec executor.Executor) *cobra.Command {
	opts := &options{exec: exec}

	// rootCmd runs one batch over the configured input directory
	rootCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Transcribe the narration embedded in PowerPoint presentations",
		Long: `Transcribe the narration embedded in PowerPoint presentations.

- Every .pptx in the input directory is opened and its audio clips extracted
- Clips are joined in slide order and transcribed with the configured engine
- A <name>_transcription.txt and <name>_transcription.vtt pair is written per deck

Directories and the engine come from config.yaml and DECK_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			report, err := a.processor.Run(ctx)
			if err != nil {
				a.logger.Error(ctx, "Batch could not start: %v", err)
				return err
			}
			if report.ExitCode() != 0 {
				return errBatchFailed
			}
			return nil
		},
	}

	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "config.yaml", "config file (missing file means built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.progress, "progress", false, "show a progress bar even when stderr is not a terminal")

	return rootCmd
}

// app holds the wired dependencies shared by the commands
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	processor processor.Processor
}

func setup(cmd *cobra.Command, opts *options) (*app, error) {
	if _, err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	// An explicitly requested config file must exist
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(opts.cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(opts.cfgFile)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := cmd.Context()

	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Engine: %s, max concurrent: %d", cfg.Engine.Name, cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Input: %s, output: %s", cfg.Paths.Input, cfg.Paths.Output)

	if err := preflight(cfg, opts.exec); err != nil {
		return nil, err
	}
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	eng, err := engine.New(cfg, opts.exec, log)
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}

	var procOpts []processor.Option
	if opts.progress || processor.IsTTY(os.Stderr) {
		procOpts = append(procOpts, processor.WithProgress(os.Stderr))
	}
	conv := media.New(cfg.FFmpeg, opts.exec, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		processor: processor.New(cfg, conv, eng, log, procOpts...),
	}, nil
}

// preflight fails fast when a required binary or model is missing, instead
// of failing every presentation one by one
func preflight(cfg *config.Config, exec executor.Executor) error {
	binaries := []string{cfg.FFmpeg.BinaryPath, cfg.FFmpeg.ProbePath}
	if cfg.Engine.Name == config.EngineWhisperCpp {
		binaries = append(binaries, cfg.Whisper.BinaryPath)
	}
	for _, bin := range binaries {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("preflight: %w", err)
		}
	}

	if cfg.Engine.Name == config.EngineWhisperCpp {
		if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
			return fmt.Errorf("preflight: whisper model: %w", err)
		}
	}
	return nil
}

// ensureDirectories creates the output and temp directories. The input
// directory is provided by the deployment and never created here.
func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Temp} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"hc08re/internal/hc08re/log"
	"hc08re/internal/logging"
	"hc08re/internal/ui/colorize"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolP("binary", "b", false, "Read the input as a flat binary instead of S-records")
	rootCmd.PersistentFlags().Uint32("base", 0x8000, "Load address of flat binary input")
	rootCmd.PersistentFlags().StringP("registers", "r", "", "Register table name or YAML file")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Show summary without TUI")
	rootCmd.Flags().BoolP("full", "f", false, "Include the full disassembly listing (implies --no-tui)")
	rootCmd.Flags().BoolP("json", "j", false, "Output results as JSON for regression testing")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")

	rootCmd.AddCommand(runCmd)
}

var rootCmd = &cobra.Command{
	Use:   "hc08re [file]",
	Short: "HC08 firmware reverse engineering tool",
	Long: `hc08re loads Motorola S-record or flat binary firmware for the
MC68HC08 family, disassembles it and reports subroutines, loops, I/O register
traffic, RAM hotspots, interrupt vectors and embedded strings.`,
	Example: `
# Explore a firmware image interactively
hc08re firmware.s19

# Print the summary with the full listing
hc08re --full firmware.s19

# Flat dump loaded at 0x8000
hc08re --binary --base 0x8000 dump.bin
  `,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug)
		_, err := ResolveCwd(cmd)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup CPU profiling if requested
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
		if cpuprofile != "" {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		// Setup memory profiling if requested
		memprofile, _ := cmd.Flags().GetString("memprofile")
		if memprofile != "" {
			defer func() {
				f, err := os.Create(memprofile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
					return
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
				}
			}()
		}

		absPath, err := resolveFile(args[0])
		if err != nil {
			return err
		}
		cfg, err := settings(cmd)
		if err != nil {
			return err
		}
		binary, _ := cmd.Flags().GetBool("binary")

		noTUI, _ := cmd.Flags().GetBool("no-tui")
		showFull, _ := cmd.Flags().GetBool("full")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		// --full implies --no-tui
		if showFull {
			noTUI = true
		}

		// Also use no-tui mode when output is being piped
		if !term.IsTerminal(os.Stdout.Fd()) {
			noTUI = true
		}

		// Disable coloring when using --no-tui to avoid garbled output
		if noTUI {
			os.Setenv(colorize.NoColorEnv, "1")
		}

		if jsonOutput || noTUI {
			logger := newLogger(cmd)
			defer logger.Close()

			rep, _, err := analyze(absPath, cfg, binary, logger.Logger)
			if err != nil {
				return err
			}
			if jsonOutput {
				return runJSON(cmd.OutOrStdout(), rep)
			}
			return runNoTUI(cmd.OutOrStdout(), rep, showFull)
		}

		// Loader warnings would tear the alt screen, so they are dropped
		// unless written to a file.
		logger := logging.NewLoggerWithWriter(io.Discard)
		if os.Getenv("HC08RE_LOG_TO_FILE") == "1" {
			logger = logging.NewLogger()
		}
		defer logger.Close()

		// Set up the TUI.
		program := tea.NewProgram(
			NewModel(absPath, cfg, binary, logger.Logger),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

// newLogger returns the loader logger, honoring --debug and --quiet.
func newLogger(cmd *cobra.Command) *logging.LoggerCloser {
	logger := logging.NewLogger()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger.SetLevel(charmlog.DebugLevel)
	}
	if quiet, err := cmd.Flags().GetBool("quiet"); err == nil && quiet {
		logger.SetLevel(charmlog.ErrorLevel)
	}
	return logger
}

func Execute() {
	// Check if --no-tui or --full flag is present, or if output is being piped
	// to bypass fang's markdown rendering
	noTUI := false
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" || arg == "--full" || arg == "-f" || arg == "--json" || arg == "-j" {
			noTUI = true
			break
		}
	}

	// Also bypass fang when output is being piped
	if !noTUI && !term.IsTerminal(os.Stdout.Fd()) {
		noTUI = true
	}

	if noTUI {
		// Use cobra directly to avoid fang's automatic markdown rendering
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
	} else {
		// Use fang for enhanced CLI experience with markdown rendering
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		); err != nil {
			os.Exit(1)
		}
	}
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %w", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return cwd, nil
}

// Package cli provides the command-line interface for sheetmv.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	debug   bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// Version information - set by main package at startup
// The actual version is defined in:
// 1. Makefile (source of truth for releases, injected via LDFLAGS)
// 2. cmd/sheetmv/main.go (fallback for non-Makefile builds)
var (
	Version   = "v1.3.0-dev"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command for CLI mode.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.BinaryName,
		Short: "SheetMV - spreadsheet-driven batch file renaming",
		Long: `SheetMV ` + Version + ` - Built: ` + BuildTime + `
Renames files in a folder according to a spreadsheet mapping.

Typical workflow:
  1. sheetmv template <folder>   Scan a folder into an editable template
  2. Edit the sheet in Excel     Fill Prefix / New_Filename per row
  3. sheetmv preview             See exactly what would happen
  4. sheetmv run                 Rename, with backup and audit log

Rows pair to files by exact Current_Filename match (Column B). Row order
never decides which file is renamed: a row whose Column B matches nothing
is skipped, not guessed.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger
			logger = logging.NewLogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	// Customize completion command description
	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Enable tab-completion for sheetmv commands",
		Long: `Generate shell completion scripts to enable tab-completion for sheetmv.

QUICK START:

  macOS with zsh (default on modern Macs):
    mkdir -p ~/.zsh/completions
    sheetmv completion zsh > ~/.zsh/completions/_sheetmv
    # Then add to ~/.zshrc: fpath=(~/.zsh/completions $fpath)
    # Restart terminal

  Linux with bash:
    sheetmv completion bash | sudo tee /etc/bash_completion.d/sheetmv
    # Restart terminal

For detailed instructions, use: sheetmv completion [shell] --help`,
	}
	rootCmd.AddCommand(completionCmd)

	completionCmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate the autocompletion script for bash.

Linux:
  sheetmv completion bash | sudo tee /etc/bash_completion.d/sheetmv

macOS (with brew's bash-completion@2 installed):
  sheetmv completion bash > $(brew --prefix)/etc/bash_completion.d/sheetmv

QUICK TEST (temporary, current session only):
  source <(sheetmv completion bash)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Generate zsh completion script",
		Long: `Generate the autocompletion script for zsh.

  mkdir -p ~/.zsh/completions
  sheetmv completion zsh > ~/.zsh/completions/_sheetmv
  # Add to ~/.zshrc: fpath=(~/.zsh/completions $fpath)
  # Then: autoload -Uz compinit && compinit

QUICK TEST (temporary, current session only):
  source <(sheetmv completion zsh)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate the autocompletion script for fish.

  sheetmv completion fish > ~/.config/fish/completions/sheetmv.fish

QUICK TEST (temporary, current session only):
  sheetmv completion fish | source`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "powershell",
		Short: "Generate PowerShell completion script",
		Long: `Generate the autocompletion script for PowerShell.

  sheetmv completion powershell >> $PROFILE
  # Restart PowerShell

QUICK TEST (temporary, current session only):
  sheetmv completion powershell | Out-String | Invoke-Expression`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenPowerShellCompletion(cmd.OutOrStdout())
		},
	})

	// Disable default completion command (we're adding our own above)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())

	// Set up signal handling for graceful cancellation
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Loop to handle multiple signals (e.g. Ctrl+C pressed repeatedly)
	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\n\nReceived signal %v, cancelling...\n", sig)
				fmt.Fprintf(os.Stderr, "The operation in progress will finish cleanly.\n\n")
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
// This context will be cancelled when the user presses Ctrl+C.
func GetContext() context.Context {
	if rootContext == nil {
		// Fallback to background context if called before Execute()
		return context.Background()
	}
	return rootContext
}

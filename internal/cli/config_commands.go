package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheetmv/sheetmv/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sheetmv configuration",
		Long: `Configuration management commands for sheetmv.

Commands:
  init  - Interactive configuration setup
  show  - Display current configuration
  set   - Set one configuration value
  path  - Show configuration file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration interactively",
		Long: `Interactive configuration setup for sheetmv.

The configuration will be saved to ~/.config/sheetmv/config

Use --force to overwrite existing configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := settingsPath()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(configPath); err == nil {
					fmt.Printf("Configuration already exists at: %s\n", configPath)
					fmt.Println("Use --force to overwrite or run 'config show' to view current config.")
					return nil
				}
			}

			fmt.Println("SheetMV Configuration Setup")
			fmt.Println("===========================")
			fmt.Println()

			reader := bufio.NewReader(os.Stdin)
			cfg := config.NewSettings()

			// Target folder (required)
			for cfg.Paths.TargetFolder == "" {
				fmt.Print("Target folder (required): ")
				input, _ := reader.ReadString('\n')
				cfg.Paths.TargetFolder = strings.TrimSpace(input)
				if cfg.Paths.TargetFolder == "" {
					fmt.Println("  Error: target folder is required")
				}
			}

			fmt.Print("Mapping sheet path [auto-pull newest template]: ")
			sheetInput, _ := reader.ReadString('\n')
			cfg.Paths.SheetPath = strings.TrimSpace(sheetInput)

			fmt.Println()
			fmt.Println("Rename Settings (press Enter for defaults)")
			fmt.Println("------------------------------------------")

			fmt.Printf("File extension [%s]: ", cfg.Rename.Extension)
			extInput, _ := reader.ReadString('\n')
			if ext := strings.TrimSpace(extInput); ext != "" {
				if !strings.HasPrefix(ext, ".") {
					ext = "." + ext
				}
				cfg.Rename.Extension = ext
			}

			fmt.Printf("Mode (prefix/replace) [%s]: ", cfg.Rename.Mode)
			modeInput, _ := reader.ReadString('\n')
			if mode := strings.ToLower(strings.TrimSpace(modeInput)); mode != "" {
				cfg.Rename.Mode = mode
			}

			fmt.Printf("Prefix delimiter [%s]: ", cfg.Rename.Delimiter)
			delimInput, _ := reader.ReadString('\n')
			if delim := strings.TrimRight(delimInput, "\r\n"); delim != "" {
				cfg.Rename.Delimiter = delim
			}

			fmt.Print("Include subdirectories? [y/N]: ")
			recInput, _ := reader.ReadString('\n')
			rec := strings.ToLower(strings.TrimSpace(recInput))
			cfg.Rename.Recursive = rec == "y" || rec == "yes"

			fmt.Print("Create a backup before each run? [Y/n]: ")
			bakInput, _ := reader.ReadString('\n')
			bak := strings.ToLower(strings.TrimSpace(bakInput))
			cfg.Rename.Backup = bak != "n" && bak != "no"

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if err := config.SaveSettings(cfg, configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println()
			fmt.Printf("✓ Configuration saved to: %s\n", configPath)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  sheetmv template     Scan the target folder into a template")
			fmt.Println("  sheetmv preview      Check what a run would do")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current configuration settings.

Values shown are the saved settings; preview and run can still override
any of them per invocation with flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := settingsPath()
			if err != nil {
				return err
			}

			cfg, err := config.LoadSettings(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Println("Current Configuration")
			fmt.Println("=====================")
			fmt.Println()

			fmt.Println("Paths:")
			if cfg.Paths.SheetPath != "" {
				fmt.Printf("  Mapping sheet: %s\n", cfg.Paths.SheetPath)
			} else if cfg.Rename.AutoPull {
				fmt.Println("  Mapping sheet: <not set - newest template is auto-pulled>")
			} else {
				fmt.Println("  Mapping sheet: <not set>")
			}
			if cfg.Paths.TargetFolder != "" {
				fmt.Printf("  Target folder: %s\n", cfg.Paths.TargetFolder)
			} else {
				fmt.Println("  Target folder: <not set>")
			}
			fmt.Println()

			fmt.Println("Rename Settings:")
			fmt.Printf("  Extension:      %s\n", cfg.Rename.Extension)
			fmt.Printf("  Mode:           %s\n", cfg.Rename.Mode)
			fmt.Printf("  Delimiter:      '%s'\n", cfg.Rename.Delimiter)
			fmt.Printf("  Recursive:      %t\n", cfg.Rename.Recursive)
			fmt.Printf("  Backup:         %t\n", cfg.Rename.Backup)
			fmt.Printf("  Auto-pull:      %t\n", cfg.Rename.AutoPull)
			fmt.Printf("  Collision case: %s\n", cfg.Rename.CollisionCase)
			fmt.Println()

			if cfg.Filter.Include != "" || cfg.Filter.Exclude != "" {
				fmt.Println("Filters:")
				if cfg.Filter.Include != "" {
					fmt.Printf("  Include: %s\n", cfg.Filter.Include)
				}
				if cfg.Filter.Exclude != "" {
					fmt.Printf("  Exclude: %s\n", cfg.Filter.Exclude)
				}
				fmt.Println()
			}

			fmt.Println("Notifications:")
			fmt.Printf("  Enabled:           %t\n", cfg.Notify.Enabled)
			fmt.Printf("  Show run complete: %t\n", cfg.Notify.ShowRunComplete)
			fmt.Printf("  Show run failed:   %t\n", cfg.Notify.ShowRunFailed)
			fmt.Println()

			fmt.Printf("Configuration file: %s\n", configPath)
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				fmt.Println("  (file does not exist - using defaults)")
			}

			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the 'config set' command.
func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value",
		Long: `Set a single configuration value and save the file.

Keys:
  paths.sheet_path       Mapping sheet path (empty enables auto-pull)
  paths.target_folder    Target folder
  rename.extension       Candidate extension, e.g. .pdf
  rename.mode            prefix | replace
  rename.delimiter       Prefix delimiter (may be empty)
  rename.recursive       true | false
  rename.backup          true | false
  rename.auto_pull       true | false
  rename.collision_case  auto | sensitive | insensitive
  filter.include         Include glob patterns, comma-separated
  filter.exclude         Exclude glob patterns, comma-separated
  notify.enabled         true | false

Example:
  sheetmv config set rename.mode replace`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			configPath, err := settingsPath()
			if err != nil {
				return err
			}

			cfg, err := config.LoadSettings(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := applySetting(cfg, key, value); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveSettings(cfg, configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("✓ %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}

// applySetting writes one value into the settings by dotted key.
func applySetting(cfg *config.Settings, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return false, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	}

	switch strings.ToLower(key) {
	case "paths.sheet_path":
		cfg.Paths.SheetPath = value
	case "paths.target_folder":
		cfg.Paths.TargetFolder = value
	case "rename.extension":
		cfg.Rename.Extension = value
	case "rename.mode":
		cfg.Rename.Mode = strings.ToLower(value)
	case "rename.delimiter":
		cfg.Rename.Delimiter = value
	case "rename.recursive":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Rename.Recursive = b
	case "rename.backup":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Rename.Backup = b
	case "rename.auto_pull":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Rename.AutoPull = b
	case "rename.collision_case":
		cfg.Rename.CollisionCase = strings.ToLower(value)
	case "filter.include":
		cfg.Filter.Include = value
	case "filter.exclude":
		cfg.Filter.Exclude = value
	case "notify.enabled":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Notify.Enabled = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return nil
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  `Display the path to the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := settingsPath()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				fmt.Println("Configuration path (from --config flag):")
			} else {
				fmt.Println("Default configuration path:")
			}
			fmt.Printf("  %s\n", configPath)
			fmt.Println()

			if info, err := os.Stat(configPath); err == nil {
				fmt.Println("Status: ✓ File exists")
				fmt.Printf("Size:   %d bytes\n", info.Size())
				fmt.Printf("Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))
			} else {
				fmt.Println("Status: File does not exist")
				fmt.Println()
				fmt.Println("Create a configuration file with: sheetmv config init")
			}

			return nil
		},
	}

	return cmd
}

// settingsPath resolves the active settings file: the --config flag when
// given, the platform default otherwise.
func settingsPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultSettingsPath()
}

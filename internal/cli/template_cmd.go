package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheetmv/sheetmv/internal/config"
	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/localfs"
	"github.com/sheetmv/sheetmv/internal/pathutil"
	"github.com/sheetmv/sheetmv/internal/template"
	"github.com/sheetmv/sheetmv/internal/util/filter"
)

// newTemplateCmd creates the 'template' command.
func newTemplateCmd() *cobra.Command {
	var (
		output    string
		extension string
		recursive bool
		include   string
		exclude   string
		blank     bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "template [folder]",
		Short: "Scan a folder into an editable mapping template",
		Long: `Scans the target folder and writes a template spreadsheet with one row
per file: Row, Current_Filename, Prefix (001, 002, ...), New_Filename
(the current stem) and Notes. Edit columns C-E in Excel, then preview
and run.

The folder argument is optional when a target folder is saved in config.
The output format follows the output extension: .xlsx (default) or .csv.

With --blank, writes a small example template instead of scanning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := GetLogger()

			cfg, err := config.LoadSettings(cfgFile)
			if err != nil {
				log.Warnf("Ignoring unreadable settings (%v); using defaults", err)
				cfg = config.NewSettings()
			}

			if blank {
				path := output
				if path == "" {
					path = template.DefaultFilename(time.Now())
				}
				if err := refuseExisting(path, force); err != nil {
					return err
				}
				if err := template.WriteBlank(path); err != nil {
					return err
				}
				fmt.Printf("Blank template saved: %s\n", path)
				fmt.Println("Fill Column B with exact filenames that exist in your folder.")
				return nil
			}

			folder := cfg.Paths.TargetFolder
			if len(args) == 1 {
				folder = args[0]
			}
			folder = strings.TrimSpace(folder)
			if folder == "" {
				return config.ErrMissingTargetFolder
			}
			if resolved, err := pathutil.ResolveAbsolutePath(folder); err == nil {
				folder = resolved
			}
			info, err := os.Stat(folder)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("not a valid folder to scan: %s", folder)
			}

			// The run commands require a leading dot; here a bare "pdf"
			// is quietly normalized instead.
			ext := strings.TrimSpace(cfg.Rename.Extension)
			if extension != "" {
				ext = strings.TrimSpace(extension)
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}

			if cmd.Flags().Changed("recursive") {
				cfg.Rename.Recursive = recursive
			}
			if include != "" {
				cfg.Filter.Include = include
			}
			if exclude != "" {
				cfg.Filter.Exclude = exclude
			}
			var flt *filter.Filter
			if cfg.Filter.Include != "" || cfg.Filter.Exclude != "" {
				flt = filter.Parse(cfg.Filter.Include, cfg.Filter.Exclude)
			}

			snap, err := localfs.Scan(folder, localfs.ScanOptions{
				Extension: ext,
				Recursive: cfg.Rename.Recursive,
				Filter:    flt,
			})
			if err != nil {
				return err
			}
			if len(snap.Files) == 0 {
				fmt.Printf("No %s files found in %s\n", ext, folder)
				return nil
			}

			now := time.Now()
			path := output
			if path == "" {
				path = filepath.Join(folder, template.DefaultFilename(now))
			}
			if err := refuseExisting(path, force); err != nil {
				return err
			}

			rows := template.BuildRows(snap.Files)
			meta := template.Meta{FileCount: len(snap.Files), Extension: ext, Timestamp: now}
			if err := template.Write(path, rows, meta); err != nil {
				return err
			}

			// Remember the scan so preview and run pick this template up
			// without flags.
			cfg.Paths.TargetFolder = folder
			cfg.Paths.SheetPath = path
			cfg.Rename.Extension = ext
			if err := config.SaveSettings(cfg, cfgFile); err != nil {
				log.Warnf("Could not save settings: %v", err)
			}

			fmt.Printf("Template created with %d files: %s\n", len(snap.Files), path)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  1. Edit the sheet in Excel (Column B must keep matching the files)")
			fmt.Printf("  2. %s preview\n", constants.BinaryName)
			fmt.Printf("  3. %s run\n", constants.BinaryName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (.xlsx or .csv; default sheet-index-<date>.xlsx in the folder)")
	cmd.Flags().StringVarP(&extension, "extension", "e", "", "File extension to match (default from config)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include subdirectories")
	cmd.Flags().StringVar(&include, "include", "", "Comma-separated glob patterns; only matching filenames are listed")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Comma-separated glob patterns; matching filenames are dropped")
	cmd.Flags().BoolVar(&blank, "blank", false, "Write a blank example template instead of scanning")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")

	return cmd
}

func refuseExisting(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return nil
}

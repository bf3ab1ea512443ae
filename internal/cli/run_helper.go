package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheetmv/sheetmv/internal/config"
	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/localfs"
	"github.com/sheetmv/sheetmv/internal/logging"
	"github.com/sheetmv/sheetmv/internal/mapping"
	"github.com/sheetmv/sheetmv/internal/pathutil"
	"github.com/sheetmv/sheetmv/internal/rename"
	"github.com/sheetmv/sheetmv/internal/util/filter"
	"github.com/sheetmv/sheetmv/internal/validation"
)

// runParams is the per-run configuration a pass operates on. It is
// resolved once from saved settings and command flags before any file is
// read, and stays fixed for the whole pass.
type runParams struct {
	SheetPath    string
	TargetFolder string
	Extension    string
	Mode         rename.Mode
	Delimiter    string
	Recursive    bool
	Backup       bool
	AutoPull     bool
	CaseMode     rename.CaseMode
	Filter       *filter.Filter
}

// addRunFlags registers the flags shared by preview and run. Defaults are
// deliberately zero: a flag the user did not set falls back to the saved
// settings, so an empty --delimiter stays distinguishable from no flag.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("sheet", "s", "", "Mapping sheet path (.xlsx, .xlsm or .csv)")
	cmd.Flags().StringP("folder", "f", "", "Target folder containing the files to rename")
	cmd.Flags().StringP("extension", "e", "", "File extension to match, e.g. .pdf")
	cmd.Flags().StringP("mode", "m", "", `Rename mode: "prefix" or "replace"`)
	cmd.Flags().StringP("delimiter", "d", "", "Delimiter between prefix and name in prefix mode")
	cmd.Flags().BoolP("recursive", "r", false, "Include subdirectories (backup_* and hidden dirs are skipped)")
	cmd.Flags().String("include", "", "Comma-separated glob patterns; only matching filenames are candidates")
	cmd.Flags().String("exclude", "", "Comma-separated glob patterns; matching filenames are dropped")
	cmd.Flags().String("collision-case", "", `Collision name comparison: "auto", "sensitive" or "insensitive"`)
}

// resolveRunParams merges saved settings with the command's flags and
// returns the fixed parameters for this pass plus the merged settings
// (so run can persist the paths it ends up using).
func resolveRunParams(cmd *cobra.Command) (*runParams, *config.Settings, error) {
	cfg, err := config.LoadSettings(cfgFile)
	if err != nil {
		// A corrupt settings file must not block a run; the config
		// commands are where it surfaces as a hard error.
		GetLogger().Warnf("Ignoring unreadable settings (%v); using defaults", err)
		cfg = config.NewSettings()
	}

	f := cmd.Flags()
	if f.Changed("sheet") {
		cfg.Paths.SheetPath, _ = f.GetString("sheet")
	}
	if f.Changed("folder") {
		cfg.Paths.TargetFolder, _ = f.GetString("folder")
	}
	if f.Changed("extension") {
		cfg.Rename.Extension, _ = f.GetString("extension")
	}
	if f.Changed("mode") {
		mode, _ := f.GetString("mode")
		cfg.Rename.Mode = strings.ToLower(mode)
	}
	if f.Changed("delimiter") {
		cfg.Rename.Delimiter, _ = f.GetString("delimiter")
	}
	if f.Changed("recursive") {
		cfg.Rename.Recursive, _ = f.GetBool("recursive")
	}
	if f.Changed("include") {
		cfg.Filter.Include, _ = f.GetString("include")
	}
	if f.Changed("exclude") {
		cfg.Filter.Exclude, _ = f.GetString("exclude")
	}
	if f.Changed("collision-case") {
		cc, _ := f.GetString("collision-case")
		cfg.Rename.CollisionCase = strings.ToLower(cc)
	}

	if err := cfg.ValidateForRun(); err != nil {
		return nil, nil, err
	}

	caseMode := rename.CaseMode(cfg.Rename.CollisionCase)
	if cfg.Rename.CollisionCase == config.CaseAuto {
		caseMode = rename.DefaultCaseMode()
	}

	var flt *filter.Filter
	if cfg.Filter.Include != "" || cfg.Filter.Exclude != "" {
		flt = filter.Parse(cfg.Filter.Include, cfg.Filter.Exclude)
	}

	rp := &runParams{
		SheetPath:    strings.TrimSpace(cfg.Paths.SheetPath),
		TargetFolder: strings.TrimSpace(cfg.Paths.TargetFolder),
		Extension:    strings.TrimSpace(cfg.Rename.Extension),
		Mode:         rename.Mode(cfg.Rename.Mode),
		Delimiter:    cfg.Rename.Delimiter,
		Recursive:    cfg.Rename.Recursive,
		Backup:       cfg.Rename.Backup,
		AutoPull:     cfg.Rename.AutoPull,
		CaseMode:     caseMode,
		Filter:       flt,
	}
	return rp, cfg, nil
}

// validateInputs checks the folder, then the sheet, then the sheet's
// availability, in the order users expect errors to surface. Both paths
// are resolved to absolute form before use. When no sheet is configured
// and auto-pull is enabled, the newest template in the target folder is
// adopted here.
func (rp *runParams) validateInputs(log *logging.Logger) error {
	if rp.TargetFolder == "" {
		return config.ErrMissingTargetFolder
	}
	if folder, err := pathutil.ResolveAbsolutePath(rp.TargetFolder); err == nil {
		rp.TargetFolder = folder
	}
	info, err := os.Stat(rp.TargetFolder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("target folder does not exist or is not a directory: %s", rp.TargetFolder)
	}
	if err := validation.ValidateLocalPath(rp.TargetFolder); err != nil {
		return fmt.Errorf("unsafe target folder path: %w", err)
	}

	if rp.SheetPath == "" {
		if !rp.AutoPull {
			return errors.New("no mapping sheet configured (use --sheet or enable auto_pull)")
		}
		found, err := mapping.FindLatestTemplate(rp.TargetFolder)
		if err != nil {
			if errors.Is(err, mapping.ErrNoTemplate) {
				return fmt.Errorf("%w in %s (create one with: %s template)",
					mapping.ErrNoTemplate, rp.TargetFolder, constants.BinaryName)
			}
			return err
		}
		rp.SheetPath = found
		log.Infof("Auto-pulled newest template: %s", filepath.Base(found))
	}

	if sheet, err := pathutil.ResolveAbsolutePath(rp.SheetPath); err == nil {
		rp.SheetPath = sheet
	}
	if _, err := os.Stat(rp.SheetPath); err != nil {
		return fmt.Errorf("mapping sheet not found: %s", rp.SheetPath)
	}
	if err := validation.ValidateLocalPath(rp.SheetPath); err != nil {
		return fmt.Errorf("unsafe mapping sheet path: %w", err)
	}

	return mapping.CheckAvailable(rp.SheetPath)
}

// loadPlan reads the sheet and scans the folder fresh, then classifies
// every row against the snapshot. Nothing is cached between calls:
// preview and run each see the sheet exactly as it is on disk at that
// moment, so an edit in Excel between the two is always picked up.
func loadPlan(rp *runParams) ([]rename.Operation, *localfs.Snapshot, []mapping.Row, error) {
	rows, err := mapping.ReadRows(rp.SheetPath)
	if err != nil {
		return nil, nil, nil, err
	}

	snap, err := localfs.Scan(rp.TargetFolder, localfs.ScanOptions{
		Extension: rp.Extension,
		Recursive: rp.Recursive,
		Filter:    rp.Filter,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	ops := rename.BuildPlan(rows, snap, rename.Options{
		Mode:      rp.Mode,
		Extension: rp.Extension,
		Delimiter: rp.Delimiter,
		Case:      rp.CaseMode,
	})
	return ops, snap, rows, nil
}

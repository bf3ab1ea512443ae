package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sheetmv/sheetmv/internal/audit"
	"github.com/sheetmv/sheetmv/internal/backup"
	"github.com/sheetmv/sheetmv/internal/config"
	"github.com/sheetmv/sheetmv/internal/diskspace"
	"github.com/sheetmv/sheetmv/internal/notify"
	"github.com/sheetmv/sheetmv/internal/progress"
	"github.com/sheetmv/sheetmv/internal/rename"
)

// newRunCmd creates the 'run' command.
func newRunCmd() *cobra.Command {
	var (
		dryRun   bool
		yes      bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rename files according to the mapping sheet",
		Long: `Reads the mapping sheet fresh, pairs rows to files by exact
Current_Filename match, and renames the matched files in sheet order.

Before any rename, every matched file is copied into a timestamped
backup_<timestamp> directory (disable with --no-backup or in config).
Every row's outcome is written to rename_log_<timestamp>.txt in the
target folder as it happens.

With --dry-run the full pass runs and logs, but no file is touched;
the classification is identical to a live run against the same folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, cfg, err := resolveRunParams(cmd)
			if err != nil {
				return err
			}
			if noBackup {
				rp.Backup = false
			}
			return executeRun(GetContext(), rp, cfg, dryRun, yes)
		},
	}

	addRunFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log what would happen without renaming anything")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the backup copy before renaming")

	return cmd
}

// executeRun is the full rename workflow: validate, plan, confirm,
// backup, execute, log, notify.
func executeRun(ctx context.Context, rp *runParams, cfg *config.Settings, dryRun, yes bool) error {
	log := GetLogger()
	notifier := notify.NewNotifier(&notify.Config{
		Enabled:         cfg.Notify.Enabled,
		ShowRunComplete: cfg.Notify.ShowRunComplete,
		ShowRunFailed:   cfg.Notify.ShowRunFailed,
	}, log)

	fail := func(err error) error {
		if !dryRun {
			notifier.RunFailed(rp.TargetFolder, err.Error())
		}
		return err
	}

	if err := rp.validateInputs(log); err != nil {
		return fail(err)
	}

	ops, snap, _, err := loadPlan(rp)
	if err != nil {
		return fail(err)
	}
	summary := rename.Summarize(ops)

	if !dryRun && !yes {
		ok, err := confirmRun(summary, rp)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Remember the resolved paths for the next invocation.
	cfg.Paths.SheetPath = rp.SheetPath
	cfg.Paths.TargetFolder = rp.TargetFolder
	if err := config.SaveSettings(cfg, cfgFile); err != nil {
		log.Warnf("Could not save settings: %v", err)
	}

	// The backup covers every scanned candidate, not just matched rows,
	// so an incorrect sheet cannot narrow the safety copy.
	backupDir := ""
	if !dryRun && rp.Backup && len(snap.Files) > 0 {
		ui := progress.NewCopyUI(len(snap.Files))
		prevOut := log.Output()
		log.SetOutput(ui.Writer())

		res, err := backup.Create(ctx, rp.TargetFolder, snap.Files, ui, log)
		ui.Wait()
		log.SetOutput(prevOut)

		if err != nil {
			if diskspace.IsInsufficientSpaceError(err) {
				log.Errorf("Not enough disk space for the backup copy. Free up space, or rerun with --no-backup to skip it.")
			}
			return fail(fmt.Errorf("backup failed: %w", err))
		}
		if res.Failed > 0 {
			log.Warnf("Backup finished with %d failed cop(ies); see warnings above", res.Failed)
		}
		backupDir = res.Dir
		log.Infof("Backup created: %s (%d files)", res.Dir, res.Copied)
	}

	logPath := audit.LogPath(rp.TargetFolder, time.Now())
	writer, err := audit.NewWriter(logPath, audit.Params{
		SheetPath:    rp.SheetPath,
		TargetFolder: rp.TargetFolder,
		Mode:         string(rp.Mode),
		Delimiter:    rp.Delimiter,
		Extension:    rp.Extension,
		DryRun:       dryRun,
		BackupDir:    backupDir,
	})
	if err != nil {
		return fail(err)
	}

	exec := &rename.Executor{
		DryRun:   dryRun,
		Progress: progress.NewCountProgress(),
		Recorder: writer,
	}
	result, runErr := exec.Run(ctx, ops)

	// Finish even after an interrupt so the log records the partial pass.
	if err := writer.Finish(result); err != nil {
		log.Warnf("%v", err)
	}

	if runErr != nil {
		return fail(runErr)
	}

	printRunSummary(result, logPath, dryRun)
	if !dryRun {
		notifier.RunComplete(rp.TargetFolder, result.Renamed, result.Errors, result.Skipped)
	}
	return nil
}

func printRunSummary(result *rename.Result, logPath string, dryRun bool) {
	fmt.Println()
	if dryRun {
		fmt.Printf("%s Dry run complete. No files were renamed.\n", color.GreenString("✓"))
		fmt.Printf("  Planned renames: %d | Errors: %d | Skipped: %d\n",
			result.Planned, result.Errors, result.Skipped)
	} else {
		fmt.Printf("%s Renaming complete!\n", color.GreenString("✓"))
		fmt.Printf("  Renamed: %d | Errors: %d | Skipped: %d\n",
			result.Renamed, result.Errors, result.Skipped)
	}
	if result.Errors > 0 {
		fmt.Printf("  %s %d operation(s) failed; details in the log\n", color.RedString("✗"), result.Errors)
	}
	fmt.Printf("  Log: %s\n", logPath)
}

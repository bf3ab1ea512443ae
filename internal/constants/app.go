// Package constants defines shared names and tuning values for sheetmv.
package constants

// Application identity
const (
	// AppName is the user-visible application name.
	AppName = "SheetMV"

	// BinaryName is the installed executable name.
	BinaryName = "sheetmv"

	// ConfigDirName is the directory under the user config root holding settings.
	ConfigDirName = "sheetmv"

	// ConfigFileName is the settings file name inside the config directory.
	ConfigFileName = "config"
)

// Mapping source contract
const (
	// SheetName is the worksheet the row source reads and the template
	// writer creates. Workbooks without this sheet are rejected.
	SheetName = "Rename Index"

	// InstructionsSheetName is the secondary sheet written into templates.
	InstructionsSheetName = "Instructions"

	// TemplatePattern matches template workbooks during auto-pull.
	TemplatePattern = "sheet-index-*.xlsx"

	// TemplatePrefix seeds generated template file names
	// (sheet-index-YYYYMMDD.xlsx).
	TemplatePrefix = "sheet-index-"
)

// Run artifacts
const (
	// LogPrefix seeds audit log file names (rename_log_YYYYMMDD_HHMMSS.txt).
	LogPrefix = "rename_log_"

	// BackupPrefix seeds backup directory names (backup_YYYYMMDD_HHMMSS).
	// Directories with this prefix are never descended into when listing.
	BackupPrefix = "backup_"

	// TimestampFormat is the compact timestamp used in artifact names.
	TimestampFormat = "20060102_150405"

	// DateStampFormat is the date-only stamp used in template file names.
	DateStampFormat = "20060102"
)

// Backup copy tuning
const (
	// CopyBufferSize is the pooled buffer size for backup copies (1 MB).
	// Backup sets are typically many small documents; a larger buffer
	// only adds memory pressure without measurable speedup.
	CopyBufferSize = 1 * 1024 * 1024

	// DiskSpaceBufferPercent is the additional free space required beyond
	// the summed backup size (10%). Accounts for filesystem overhead.
	DiskSpaceBufferPercent = 0.10
)

package mapping

// Spreadsheet column names. Column B (Current_Filename) is the join key;
// rows pair to files by exact name match and nothing else.
const (
	ColumnRow             = "Row"
	ColumnCurrentFilename = "Current_Filename"
	ColumnPrefix          = "Prefix"
	ColumnNewFilename     = "New_Filename"
	ColumnNotes           = "Notes"
)

// TemplateHeaders returns the column names in template order.
func TemplateHeaders() []string {
	return []string{ColumnRow, ColumnCurrentFilename, ColumnPrefix, ColumnNewFilename, ColumnNotes}
}

// Row is one rename intent read from the mapping sheet. Fields are
// sanitized on read and never mutated afterwards.
//
// Number is the 1-based position among data rows, which is what every
// log line and preview refers to. The sheet's own "Row" column is
// informational and ignored.
type Row struct {
	Number      int
	CurrentName string // join key; empty means the row is skipped
	Prefix      string
	NewBase     string
	Note        string
}

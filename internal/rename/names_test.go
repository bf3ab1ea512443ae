package rename

import (
	"testing"

	"github.com/sheetmv/sheetmv/internal/mapping"
)

func TestNewName(t *testing.T) {
	testCases := []struct {
		name      string
		prefix    string
		newBase   string
		matched   string
		mode      Mode
		extension string
		delimiter string
		want      string
	}{
		{
			name:      "prefix_keeps_current_stem",
			prefix:    "001",
			matched:   "invoice.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "-",
			want:      "001-invoice.pdf",
		},
		{
			name:      "prefix_with_new_base",
			prefix:    "001",
			newBase:   "Customer-A",
			matched:   "invoice.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "-",
			want:      "001-Customer-A.pdf",
		},
		{
			name:      "empty_prefix_uses_new_base_alone",
			newBase:   "Report",
			matched:   "invoice.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "-",
			want:      "Report.pdf",
		},
		{
			name:      "empty_prefix_empty_base_keeps_name",
			matched:   "invoice.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "-",
			want:      "invoice.pdf",
		},
		{
			name:      "empty_delimiter_concatenates",
			prefix:    "001",
			newBase:   "X",
			matched:   "invoice.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "",
			want:      "001X.pdf",
		},
		{
			name:      "underscore_delimiter",
			prefix:    "2024",
			matched:   "summary.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "_",
			want:      "2024_summary.pdf",
		},
		{
			name:      "replace_uses_new_base",
			prefix:    "001",
			newBase:   "Quarterly Report",
			matched:   "q.pdf",
			mode:      ModeReplace,
			extension: ".pdf",
			delimiter: "-",
			want:      "Quarterly Report.pdf",
		},
		{
			name:      "replace_empty_base_keeps_name",
			matched:   "scan.jpg",
			mode:      ModeReplace,
			extension: ".jpg",
			delimiter: "-",
			want:      "scan.jpg",
		},
		{
			name:      "extension_not_duplicated",
			newBase:   "Report.pdf",
			matched:   "x.pdf",
			mode:      ModeReplace,
			extension: ".pdf",
			delimiter: "-",
			want:      "Report.pdf",
		},
		{
			name:      "prefixed_base_already_suffixed",
			prefix:    "A",
			newBase:   "doc.pdf",
			matched:   "x.pdf",
			mode:      ModePrefix,
			extension: ".pdf",
			delimiter: "-",
			want:      "A-doc.pdf",
		},
		{
			name:      "multi_dot_stem",
			matched:   "archive.tar.gz",
			mode:      ModeReplace,
			extension: ".gz",
			delimiter: "-",
			want:      "archive.tar.gz",
		},
		{
			name:      "suffix_check_is_case_sensitive",
			newBase:   "REPORT.PDF",
			matched:   "x.pdf",
			mode:      ModeReplace,
			extension: ".pdf",
			delimiter: "-",
			want:      "REPORT.PDF.pdf",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row := mapping.Row{Prefix: tc.prefix, NewBase: tc.newBase}
			got := NewName(row, tc.matched, tc.mode, tc.extension, tc.delimiter)
			if got != tc.want {
				t.Errorf("NewName() = %q, want %q", got, tc.want)
			}
		})
	}
}

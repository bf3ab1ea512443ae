package filter

import "testing"

func TestParseEmpty(t *testing.T) {
	if f := Parse("", ""); f != nil {
		t.Errorf("Parse(\"\", \"\") = %+v, want nil", f)
	}
	if f := Parse("  ", " , ,"); f != nil {
		t.Errorf("Parse with blanks = %+v, want nil", f)
	}
}

func TestNilFilterMatchesEverything(t *testing.T) {
	var f *Filter
	if !f.Match("anything.pdf") {
		t.Error("nil filter should match everything")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		include string
		exclude string
		file    string
		want    bool
	}{
		{"no patterns", "", "", "a.pdf", true},
		{"include hit", "invoice-*", "", "invoice-01.pdf", true},
		{"include miss", "invoice-*", "", "report-01.pdf", false},
		{"multiple includes", "invoice-*,report-*", "", "report-01.pdf", true},
		{"exclude hit", "", "draft-*", "draft-2.pdf", false},
		{"exclude miss", "", "draft-*", "final-2.pdf", true},
		{"exclude wins over include", "*.pdf", "draft-*", "draft-2.pdf", false},
		{"extension glob", "*.pdf", "", "scan.pdf", true},
		{"malformed include skipped", "[", "", "x.pdf", false},
		{"malformed exclude skipped", "", "[", "x.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse(tt.include, tt.exclude)
			got := f.Match(tt.file)
			if got != tt.want {
				t.Errorf("Match(%q) with include=%q exclude=%q = %v, want %v",
					tt.file, tt.include, tt.exclude, got, tt.want)
			}
		})
	}
}

package glreport

import (
	"strings"
	"testing"
)

func TestSplitReport(t *testing.T) {
	text := "p1 l1\np1 l2\n" + PageBreak + "\n  p2 l1\np2 l2  \n" + PageBreak + "   \n"
	r := SplitReport(text)
	if len(r.Pages) != 2 {
		t.Fatalf("SplitReport() = %d pages, want 2", len(r.Pages))
	}
	if got := r.Pages[1][1]; got.Raw != "p2 l2" || got.Text != "p2 l2" {
		t.Errorf("page 2 line 2 = %#v", got)
	}
	if r.Lines() != 4 {
		t.Errorf("Lines() = %d, want 4", r.Lines())
	}
}

func TestSplitReport_CRLF(t *testing.T) {
	text := strings.ReplaceAll("a\nb"+PageBreak+"c\nd", "\n", "\r\n")
	r := SplitReport(text)
	if len(r.Pages) != 2 {
		t.Fatalf("SplitReport() = %d pages, want 2", len(r.Pages))
	}
	if r.Pages[0][0].Raw != "a" {
		t.Errorf("line = %q, want %q", r.Pages[0][0].Raw, "a")
	}
}

func TestLineIndent(t *testing.T) {
	testCases := []struct {
		raw  string
		want int
	}{
		{"01/22/22AP", 0},
		{" 01/22/22AP", 1},
		{"  01/22/22AP", 2},
		{"\t\tBell Canada", 2},
		{"   ", 3},
	}
	for _, tc := range testCases {
		if got := NewLine(tc.raw).Indent(); got != tc.want {
			t.Errorf("Indent(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

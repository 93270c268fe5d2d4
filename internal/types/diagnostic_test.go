package types

import "testing"

func TestLineCol(t *testing.T) {
	source := []byte("line1\nline2\nline3\n")

	tests := []struct {
		name     string
		offset   ByteOffset
		wantLine int
		wantCol  int
	}{
		{"start of file", 0, 1, 1},
		{"middle of line 1", 3, 1, 4},
		{"end of line 1 (newline)", 5, 1, 6},
		{"start of line 2", 6, 2, 1},
		{"middle of line 2", 9, 2, 4},
		{"start of line 3", 12, 3, 1},
		{"end of file", 18, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := LineCol(source, tt.offset)
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("LineCol(source, %d) = (%d, %d), want (%d, %d)",
					tt.offset, line, col, tt.wantLine, tt.wantCol)
			}
		})
	}

	// Nil source returns (0, 0)
	line, col := LineCol(nil, 5)
	if line != 0 || col != 0 {
		t.Errorf("LineCol(nil, 5) = (%d, %d), want (0, 0)", line, col)
	}

	// Out of range offset returns (0, 0)
	line, col = LineCol(source, 100)
	if line != 0 || col != 0 {
		t.Errorf("LineCol(source, 100) = (%d, %d), want (0, 0)", line, col)
	}
}

func TestDiagnosticsAccumulate(t *testing.T) {
	var d Diagnostics
	if d.HasErrors() {
		t.Fatal("empty accumulator reports errors")
	}
	d.Warning(DiagUnknownLiteral, At(3), "just a warning")
	if d.HasErrors() {
		t.Error("warning counted as error")
	}
	d.Errorf(DiagUnknownProperty, NewSpan(1, 4), "Unknown property '%s'", "foo")
	if !d.HasErrors() {
		t.Error("expected HasErrors after Errorf")
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	got := d.List()[1]
	if got.Message != "Unknown property 'foo'" || got.Code != DiagUnknownProperty {
		t.Errorf("unexpected diagnostic %+v", got)
	}
	if s := got.String(); s != "[error] 1-4: Unknown property 'foo'" {
		t.Errorf("String() = %q", s)
	}

	taken := d.Take()
	if len(taken) != 2 || d.Len() != 0 {
		t.Errorf("Take() returned %d, left %d", len(taken), d.Len())
	}
}

func TestSpanHelpers(t *testing.T) {
	s := NewSpan(2, 5)
	if s.Len() != 3 || s.IsEmpty() {
		t.Errorf("unexpected span properties for %+v", s)
	}
	if got := s.Text([]byte("abcdefg")); got != "cde" {
		t.Errorf("Text() = %q, want %q", got, "cde")
	}
	if got := s.Text([]byte("ab")); got != "" {
		t.Errorf("Text() past end = %q, want empty", got)
	}
	if m := s.Merge(NewSpan(4, 9)); m != NewSpan(2, 9) {
		t.Errorf("Merge() = %+v", m)
	}
	if !At(7).IsEmpty() {
		t.Error("At() span should be empty")
	}
}

func TestAllDiagnosticCodesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, info := range AllDiagnosticCodes() {
		if seen[info.Code] {
			t.Errorf("duplicate diagnostic code %q", info.Code)
		}
		seen[info.Code] = true
		if info.Phase == "" {
			t.Errorf("code %q has no phase", info.Code)
		}
	}
}

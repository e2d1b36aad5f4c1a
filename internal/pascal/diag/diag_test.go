package diag

import (
	"strings"
	"testing"

	"github.com/pacer/pascheck/internal/pascal/source"
)

func TestCodes_AllDescribed(t *testing.T) {
	for _, code := range Codes() {
		if code.Description() == "" {
			t.Errorf("code %d has an empty description", code)
		}
	}

	if Code(9999).Known() {
		t.Error("unregistered code reported as known")
	}

	if Code(9999).Description() == "" {
		t.Error("unregistered code must still have a fallback description")
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Report(source.Position{Line: 1, Column: 3}, ErrSemicolonExpected, 0)
	c.Report(source.Position{Line: 2, Column: 1}, ErrUndeclared, 4)
	c.Report(source.Position{Line: 2, Column: 9}, ErrSemicolonExpected, 1)

	if c.Len() != 3 {
		t.Fatalf("Expected 3 diagnostics, got %d", c.Len())
	}

	if c.Count(ErrSemicolonExpected) != 2 {
		t.Errorf("Expected 2 diagnostics with code 14, got %d", c.Count(ErrSemicolonExpected))
	}

	if c.Has(ErrDuplicateName) {
		t.Error("unexpected code 101")
	}

	all := c.All()
	if all[0].Width != 1 {
		t.Errorf("Expected width clamped to 1, got %d", all[0].Width)
	}

	all[0].Code = ErrType
	if c.All()[0].Code != ErrSemicolonExpected {
		t.Error("All() must return a copy")
	}

	if got := c.From(2); len(got) != 1 || got[0].Pos.Column != 9 {
		t.Errorf("unexpected From(2): %v", got)
	}

	if got := c.From(5); got != nil {
		t.Errorf("Expected nil for From past the end, got %v", got)
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Pos: source.Position{Line: 4, Column: 7}, Code: ErrUndeclared, Width: 1}

	got := d.String()
	if !strings.Contains(got, "4:7") || !strings.Contains(got, "104") {
		t.Errorf("unexpected string: %q", got)
	}

	if d.GetError() != "имя не описано" {
		t.Errorf("unexpected description: %q", d.GetError())
	}
}

func TestListing_Format(t *testing.T) {
	var out strings.Builder
	diags := NewCollector()
	listing := NewListing(&out, diags)

	listing.Line(1, "program p;")
	listing.Line(2, "begin x := 1 end.")
	diags.Report(source.Position{Line: 2, Column: 7}, ErrUndeclared, 1)

	if err := listing.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "   1  program p;\n" +
		"   2  begin x := 1 end.\n" +
		"*001*       ^ошибка код 104\n" +
		"***** имя не описано\n"

	if out.String() != want {
		t.Errorf("unexpected listing:\n%s\nwant:\n%s", out.String(), want)
	}

	if listing.Errors() != 1 {
		t.Errorf("Expected 1 listed error, got %d", listing.Errors())
	}
}

func TestListing_DiagnosticsFollowTheirLine(t *testing.T) {
	var out strings.Builder
	diags := NewCollector()
	listing := NewListing(&out, diags)

	listing.Line(1, "a")
	diags.Report(source.Position{Line: 1, Column: 1}, ErrIllegalSymbol, 1)
	listing.Line(2, "b")
	diags.Report(source.Position{Line: 2, Column: 2}, ErrIllegalSymbol, 1)
	_ = listing.Close()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected 6 listing lines, got %d:\n%s", len(lines), out.String())
	}

	if !strings.HasPrefix(lines[1], "*001* ^") {
		t.Errorf("first diagnostic must follow line 1, got %q", lines[1])
	}

	if !strings.HasPrefix(lines[4], "*002*  ^") {
		t.Errorf("second diagnostic must follow line 2, got %q", lines[4])
	}
}

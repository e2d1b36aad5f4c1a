package pascal

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/testutil"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

const undeclaredProgram = "program p;\nbegin\n  x := 1\nend.\n"

func TestCompile_ListingAndTrace(t *testing.T) {
	var listing, trace bytes.Buffer

	result, err := CompileString(undeclaredProgram, Options{
		Listing: &listing,
		Trace:   &trace,
		Logger:  quiet,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertCodes(t, result.Diagnostics, diag.ErrUndeclared)

	want := strings.Join([]string{
		"   1  program p;",
		"   2  begin",
		"   3    x := 1",
		"*001*   ^ошибка код 104",
		"***** " + diag.ErrUndeclared.Description(),
		"   4  end.",
		"",
	}, "\n")

	if got := listing.String(); got != want {
		t.Errorf("unexpected listing:\n%s\nwant:\n%s", got, want)
	}

	if got := trace.String(); got != "program|p|;|begin|x|:=|1|end|.|" {
		t.Errorf("unexpected trace %q", got)
	}

	if result.Name != "p" || result.Lines != 4 || result.Tokens != 9 {
		t.Errorf("unexpected counters: name=%q lines=%d tokens=%d", result.Name, result.Lines, result.Tokens)
	}

	if result.OK() {
		t.Error("a run with diagnostics is not OK")
	}

	if result.RunID == "" {
		t.Error("every run gets an id")
	}
}

func TestCompile_DiagnosticsAfterLastLine(t *testing.T) {
	var listing bytes.Buffer

	result, err := CompileString("program p; begin end", Options{Listing: &listing, Logger: quiet})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertCodes(t, result.Diagnostics, diag.ErrPointExpected)

	if !strings.HasSuffix(listing.String(), "***** "+diag.ErrPointExpected.Description()+"\n") {
		t.Errorf("pending diagnostics must be written on close, got:\n%s", listing.String())
	}
}

func TestCompile_ValidProgram(t *testing.T) {
	text := `program ok;
var i: integer;
begin
  i := 0;
  while i < 10 do i := i + 1;
  writeln(i)
end.`

	result, err := CompileString(text, Options{Logger: quiet})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertNoErrors(t, result.Diagnostics)

	if !result.OK() || result.Scopes.Depth() != 2 {
		t.Errorf("Expected a clean run ending at depth 2, got %d", result.Scopes.Depth())
	}

	if _, ok := result.Program.Identifiers.Lookup("i"); !ok {
		t.Error("i must be declared in the program scope")
	}
}

func TestCompile_Options(t *testing.T) {
	text := "program P; var Count: integer; begin count := 40000 end."

	result, _ := CompileString(text, Options{Logger: quiet})
	testutil.AssertCodes(t, result.Diagnostics, diag.ErrUndeclared, diag.ErrIntegerOverflow)

	result, _ = CompileString(text, Options{Logger: quiet, FoldIdentifiers: true, MaxInteger: 65535})
	testutil.AssertNoErrors(t, result.Diagnostics)
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestCompile_WriterFailure(t *testing.T) {
	result, err := CompileString(undeclaredProgram, Options{
		Listing: failingWriter{},
		Trace:   failingWriter{},
		Logger:  quiet,
	})

	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Expected the write error, got %v", err)
	}

	if result == nil || len(result.Diagnostics) != 1 {
		t.Error("the run must complete despite the failing writers")
	}
}

func TestCompile_NoInput(t *testing.T) {
	if _, err := Compile(nil, Options{}); !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
}

func TestCompileFile(t *testing.T) {
	path := testutil.WriteSource(t, "prog.pas", undeclaredProgram)

	result, err := CompileFile(path, Options{Logger: quiet})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertCodes(t, result.Diagnostics, diag.ErrUndeclared)

	if _, err := CompileFile(filepath.Join(t.TempDir(), "missing.pas"), Options{Logger: quiet}); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestWorkspace(t *testing.T) {
	dir := testutil.TempDir(t, map[string]string{
		"good.pas":           "program good; begin end.",
		"nested/bad.pas":     undeclaredProgram,
		"nested/notes.txt":   "not a program",
		"nested/deep/up.pp":  "program up; var b: boolean; begin b := 1 end.",
		"nested/deep/x.pas~": "backup",
	})

	files, err := OpenProjectFiles(dir, SourceExtensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 programs, got %d", len(files))
	}

	results := CompileWorkspace(files, Options{Logger: quiet})
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	data := map[string][]diag.Code{
		"good.pas":          nil,
		"nested/bad.pas":    {diag.ErrUndeclared},
		"nested/deep/up.pp": {diag.ErrTypeMismatch},
	}

	for name, codes := range data {
		res, ok := results[filepath.Join(dir, filepath.FromSlash(name))]
		if !ok {
			t.Errorf("missing result for %s", name)
			continue
		}

		if res.Err != nil {
			t.Errorf("%s: unexpected error %v", name, res.Err)
		}

		testutil.AssertCodes(t, res.Result.Diagnostics, codes...)
	}

	if _, err := OpenProjectFiles(filepath.Join(dir, "absent"), SourceExtensions); err == nil {
		t.Error("Expected an error for a missing directory")
	}

	if got := CompileWorkspace(nil, Options{}); len(got) != 0 {
		t.Errorf("Expected no results, got %d", len(got))
	}
}

func TestHasFileExtension(t *testing.T) {
	data := []struct {
		Name string
		Want bool
	}{
		{"a.pas", true},
		{"dir/a.pp", true},
		{"a.pascal", false},
		{"pas", false},
	}

	for _, d := range data {
		if got := HasFileExtension(d.Name, SourceExtensions); got != d.Want {
			t.Errorf("HasFileExtension(%q) = %v, want %v", d.Name, got, d.Want)
		}
	}
}

package pascal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// MaxProjectFileDepth bounds the directory recursion of OpenProjectFiles.
const MaxProjectFileDepth = 5

// SourceExtensions are the file extensions treated as programs.
var SourceExtensions = []string{"pas", "pp"}

// FileResult pairs a run with the file it was made on.
type FileResult struct {
	FileName string
	Result   *Result
	Err      error
}

// OpenProjectFiles recursively reads the files under rootDir having one of
// extensions, MaxProjectFileDepth directories deep at most.
func OpenProjectFiles(rootDir string, extensions []string) (map[string][]byte, error) {
	files := make(map[string][]byte)

	if err := openProjectFiles(rootDir, extensions, 0, files); err != nil {
		return nil, err
	}

	return files, nil
}

func openProjectFiles(dir string, extensions []string, depth int, files map[string][]byte) error {
	if depth > MaxProjectFileDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		fileName := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := openProjectFiles(fileName, extensions, depth+1, files); err != nil {
				return err
			}

			continue
		}

		if !HasFileExtension(fileName, extensions) {
			continue
		}

		//nolint:gosec // fileName comes from a directory listing
		content, err := os.ReadFile(fileName)
		if err != nil {
			slog.Warn("unable to read file", slog.String("file", fileName), slog.String("error", err.Error()))
			continue
		}

		files[fileName] = content
	}

	return nil
}

// CompileWorkspace compiles every file concurrently, one independent run per
// file. The listing and trace writers of opts are ignored: runs cannot share
// them. Results come back keyed by file name.
func CompileWorkspace(files map[string][]byte, opts Options) map[string]FileResult {
	results := make(map[string]FileResult, len(files))
	if len(files) == 0 {
		return results
	}

	opts.Listing = nil
	opts.Trace = nil

	numWorkers := min(runtime.GOMAXPROCS(0), len(files))

	done := make(chan FileResult, len(files))
	// semaphore limiting concurrent runs
	sem := make(chan struct{}, numWorkers)

	var wg sync.WaitGroup
	for fileName, content := range files {
		wg.Add(1)
		go func(fileName string, content []byte) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			runOpts := opts
			if opts.Logger != nil {
				runOpts.Logger = opts.Logger.With(slog.String("file", fileName))
			}

			result, err := CompileString(string(content), runOpts)
			done <- FileResult{FileName: fileName, Result: result, Err: err}
		}(fileName, content)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	for result := range done {
		results[result.FileName] = result
	}

	return results
}

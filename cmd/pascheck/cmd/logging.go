package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pacer/pascheck/internal/config"
)

const (
	appName        = "pascheck"
	maxLogFileSize = 5_000_000
)

// createLogFile opens the log file in the user cache directory, truncating
// it once it grows past maxLogFileSize. Standard error is used when the
// file cannot be opened.
func createLogFile() *os.File {
	userCachePath, err := os.UserCacheDir()
	if err != nil {
		return os.Stderr
	}

	appCachePath := filepath.Join(userCachePath, appName)
	logFilePath := filepath.Join(appCachePath, appName+".log")

	_ = os.MkdirAll(appCachePath, 0750)

	file, err := openLogFile(logFilePath)
	if err != nil {
		return os.Stderr
	}

	return file
}

func openLogFile(path string) (*os.File, error) {
	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY

	fileInfo, err := os.Stat(path)
	if err == nil && fileInfo.Size() >= maxLogFileSize {
		flags = os.O_TRUNC | os.O_WRONLY
	}

	//nolint:gosec // safe log file path
	return os.OpenFile(path, flags, 0600)
}

// configureLogging sets up structured logging. The returned closer releases
// the log file, it is nil when logging goes to a standard stream.
func configureLogging(cfg config.LogConfig, verbose bool) (io.Closer, error) {
	level, err := (&config.Config{Log: cfg}).LogLevel()
	if err != nil {
		return nil, err
	}

	if verbose {
		level = slog.LevelDebug
	}

	var file *os.File

	if cfg.File != "" {
		file, err = openLogFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
	} else {
		file = createLogFile()
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(file, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(file, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))

	if file == os.Stderr {
		return nil, nil
	}

	return file, nil
}

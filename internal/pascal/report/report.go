// Package report renders the outcome of one or more runs for machines (JSON,
// YAML) and for people (a styled terminal summary).
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pacer/pascheck/internal/pascal"
)

// Format selects how a report is written.
type Format string

const (
	FormatListing Format = "listing"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatSummary Format = "summary"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// ParseFormat accepts the names of the formats, case-insensitively; "yml"
// is YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "listing":
		return FormatListing, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "summary":
		return FormatSummary, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

type Entry struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Width   int    `json:"width" yaml:"width"`
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

type File struct {
	File        string  `json:"file" yaml:"file"`
	Program     string  `json:"program,omitempty" yaml:"program,omitempty"`
	RunID       string  `json:"run_id" yaml:"run_id"`
	Lines       int     `json:"lines" yaml:"lines"`
	Tokens      int     `json:"tokens" yaml:"tokens"`
	Diagnostics []Entry `json:"diagnostics" yaml:"diagnostics"`
}

// Report is a set of runs, sorted by file name.
type Report struct {
	Files []File `json:"files" yaml:"files"`
	Total int    `json:"total" yaml:"total"`
}

func New() *Report {
	return &Report{Files: []File{}}
}

// Add records the result of the run made on fileName.
func (r *Report) Add(fileName string, result *pascal.Result) {
	file := File{
		File:        fileName,
		Program:     result.Name,
		RunID:       result.RunID,
		Lines:       result.Lines,
		Tokens:      result.Tokens,
		Diagnostics: make([]Entry, 0, len(result.Diagnostics)),
	}

	for _, d := range result.Diagnostics {
		file.Diagnostics = append(file.Diagnostics, Entry{
			Line:    d.Pos.Line,
			Column:  d.Pos.Column,
			Width:   d.Width,
			Code:    int(d.Code),
			Message: d.Code.Description(),
		})
	}

	index, _ := slices.BinarySearchFunc(r.Files, fileName, func(f File, name string) int {
		return strings.Compare(f.File, name)
	})

	r.Files = slices.Insert(r.Files, index, file)
	r.Total += len(file.Diagnostics)
}

// Write encodes the report in format. FormatListing has no report form:
// listings are written by the run itself.
func (r *Report) Write(w io.Writer, format Format, color bool) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}

		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}

		return encoder.Close()

	case FormatSummary:
		_, err := io.WriteString(w, Summary(r, color))
		return err
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

package entities

import (
	"path/filepath"
	"strings"
)

// MarkupExtension is the file extension of produced documents.
const MarkupExtension = ".md"

// ConversionState tracks the lifecycle of a single conversion run
type ConversionState string

const (
	StateIdle       ConversionState = "idle"
	StateReading    ConversionState = "reading"
	StateConverting ConversionState = "converting"
	StateWriting    ConversionState = "writing"
	StateSucceeded  ConversionState = "succeeded"
	StateFailed     ConversionState = "failed"
)

// Terminal reports whether the state ends a run
func (s ConversionState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// ConversionResult is the single terminal value of a conversion run:
// either a success carrying the output location, or a failure carrying
// a human-readable message
type ConversionResult struct {
	Success    bool   `json:"success"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewSuccessResult builds a successful result for the given destination
func NewSuccessResult(outputPath string) ConversionResult {
	return ConversionResult{Success: true, OutputPath: outputPath}
}

// NewFailureResult builds a failed result from an error
func NewFailureResult(err error) ConversionResult {
	msg := "unknown conversion error"
	if err != nil {
		msg = err.Error()
	}
	return ConversionResult{Success: false, Error: msg}
}

// ProgressPercent computes the progress value emitted before processing
// slide i of total. The first value for a non-empty deck is always 0 and
// every in-loop value stays below 100 for decks with more than one slide.
func ProgressPercent(i, total int) int {
	if total <= 0 {
		return 100
	}
	return i * 100 / total
}

// DefaultDestination derives the default output path for a source deck:
// the source path with its extension replaced by the markup extension.
func DefaultDestination(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + MarkupExtension
}

// Package testutil provides shared test helpers for the compiler packages.
package testutil

import (
	"slices"
	"strings"
	"testing"

	"github.com/pacer/pascheck/internal/pascal/diag"
)

// ContainsSubstring checks if haystack contains needle (case-insensitive).
func ContainsSubstring(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Error is anything carrying a human readable description.
type Error interface {
	GetError() string
}

// AssertNoErrors fails the test if errs is not empty.
func AssertNoErrors[E Error](t *testing.T, errs []E) {
	t.Helper()
	if len(errs) != 0 {
		t.Errorf("Expected no diagnostics, got %d: %v", len(errs), errs)
	}
}

// AssertErrorCount fails if the count doesn't match expected.
func AssertErrorCount[E Error](t *testing.T, errs []E, expected int) {
	t.Helper()
	if len(errs) != expected {
		t.Fatalf("Expected %d diagnostics, got %d: %v", expected, len(errs), errs)
	}
}

// AssertErrorContains fails if no description contains the expected substring.
func AssertErrorContains[E Error](t *testing.T, errs []E, expected string) {
	t.Helper()
	if !HasErrorContaining(errs, expected) {
		t.Errorf("Expected diagnostic containing %q, got: %v", expected, errs)
	}
}

// HasErrorContaining returns true if any description contains the expected substring.
func HasErrorContaining[E Error](errs []E, expected string) bool {
	for _, err := range errs {
		if ContainsSubstring(err.GetError(), expected) {
			return true
		}
	}
	return false
}

// Codes extracts the codes of diags in report order.
func Codes(diags []diag.Diagnostic) []diag.Code {
	codes := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

// AssertCodes fails unless diags carry exactly the expected codes, in order.
func AssertCodes(t *testing.T, diags []diag.Diagnostic, expected ...diag.Code) {
	t.Helper()
	if got := Codes(diags); !slices.Equal(got, expected) {
		t.Errorf("Expected codes %v, got %v: %v", expected, got, diags)
	}
}

// AssertHasCode fails if no diagnostic carries code.
func AssertHasCode(t *testing.T, diags []diag.Diagnostic, code diag.Code) {
	t.Helper()
	if !slices.Contains(Codes(diags), code) {
		t.Errorf("Expected a diagnostic with code %d, got %v", code, diags)
	}
}

// RequireCode is like AssertHasCode but stops the test.
func RequireCode(t *testing.T, diags []diag.Diagnostic, code diag.Code) {
	t.Helper()
	if !slices.Contains(Codes(diags), code) {
		t.Fatalf("Expected a diagnostic with code %d, got %v", code, diags)
	}
}

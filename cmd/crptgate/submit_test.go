package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"crptlabs/crptgate/pkg/journal"
	"crptlabs/crptgate/pkg/ratelimit"
)

func TestClassifyOutcome(t *testing.T) {
	if got := classifyOutcome(nil); got != journal.OutcomeOK {
		t.Errorf("Expected ok for nil error, got %q", got)
	}

	cancelErr := fmt.Errorf("%w: %w", ratelimit.ErrAcquireCancelled, context.Canceled)
	if got := classifyOutcome(cancelErr); got != journal.OutcomeCancelled {
		t.Errorf("Expected cancelled, got %q", got)
	}

	if got := classifyOutcome(errors.New("boom")); got != journal.OutcomeError {
		t.Errorf("Expected error, got %q", got)
	}
}

func TestVersionIsSet(t *testing.T) {
	if Version == "" {
		t.Error("Version must not be empty")
	}
}

func TestReadSignature_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.b64")
	if err := os.WriteFile(path, []byte("c2lnbmF0dXJl\n"), 0o644); err != nil {
		t.Fatalf("Writing signature file: %v", err)
	}

	sig, err := readSignature(path)
	if err != nil {
		t.Fatalf("readSignature failed: %v", err)
	}
	if sig != "c2lnbmF0dXJl" {
		t.Errorf("Expected trimmed signature, got %q", sig)
	}
}

func TestReadDocument_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Writing document file: %v", err)
	}

	if _, err := readDocument(path); err == nil {
		t.Error("Expected error for invalid document JSON")
	}
}

func TestReadDocument_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	content := `{"doc_id": "doc-42", "production_date": "2023-01-01", "products": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing document file: %v", err)
	}

	doc, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument failed: %v", err)
	}
	if doc.DocID != "doc-42" {
		t.Errorf("Expected doc_id doc-42, got %q", doc.DocID)
	}
	if doc.ProductionDate != "2023-01-01" {
		t.Errorf("Expected production date to parse, got %q", doc.ProductionDate)
	}
}

func TestReadDocument_MissingFile(t *testing.T) {
	if _, err := readDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing document file")
	}
}

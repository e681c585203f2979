package render

import (
	"testing"
	"time"
)

func TestRenderFilenameDefaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	got, err := renderFilename("", "classic", "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9", now)
	if err != nil {
		t.Fatalf("renderFilename: %v", err)
	}
	if got != "cv_classic_0a1b2c3d.pdf" {
		t.Fatalf("unexpected filename: %s", got)
	}
}

func TestRenderFilenameCustomPattern(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	got, err := renderFilename("resume_{{.Template}}_{{.Date}}", "modern", "abcd1234", now)
	if err != nil {
		t.Fatalf("renderFilename: %v", err)
	}
	if got != "resume_modern_20260314.pdf" {
		t.Fatalf("unexpected filename: %s", got)
	}
}

func TestRenderFilenameShortID(t *testing.T) {
	now := time.Now()

	got, err := renderFilename("", "classic", "abc", now)
	if err != nil {
		t.Fatalf("renderFilename: %v", err)
	}
	if got != "cv_classic_abc.pdf" {
		t.Fatalf("unexpected filename: %s", got)
	}
}

func TestRenderFilenameErrors(t *testing.T) {
	now := time.Now()

	if _, err := renderFilename("{{.Broken", "classic", "id", now); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := renderFilename("{{.Unknown}}", "classic", "id", now); err == nil {
		t.Fatal("expected execute error for unknown field")
	}
}

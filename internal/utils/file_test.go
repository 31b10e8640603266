package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(resume, []byte("EXPERIENCE\nGo developer"), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := ValidateInputFile(resume); err != nil {
		t.Errorf("valid file rejected: %v", err)
	}

	if err := ValidateInputFile(""); err == nil {
		t.Error("empty filename must be rejected")
	}

	if err := ValidateInputFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("missing file must be rejected")
	} else if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected error for missing file: %v", err)
	}

	if err := ValidateInputFile(dir); err == nil {
		t.Error("directory must be rejected")
	}
}

func TestValidateOutputFileCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "reports", "scan.json")

	if err := ValidateOutputFile(out); err != nil {
		t.Fatalf("ValidateOutputFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "reports")); err != nil {
		t.Errorf("parent directory was not created: %v", err)
	}

	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("empty name means stdout and must be accepted: %v", err)
	}
}

func TestIsTextFile(t *testing.T) {
	for _, name := range []string{"resume.txt", "profile.md", "job.MARKDOWN", "notes.text"} {
		if !IsTextFile(name) {
			t.Errorf("IsTextFile(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"resume.pdf", "photo.png", "noext"} {
		if IsTextFile(name) {
			t.Errorf("IsTextFile(%q) = true, want false", name)
		}
	}
}

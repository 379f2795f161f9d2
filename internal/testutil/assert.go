package testutil

import (
	"os"
	"strings"
	"testing"
)

// ReadFile reads a file or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// AssertFileContains fails the test if the file does not contain substr.
func AssertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	content := ReadFile(t, path)
	if !strings.Contains(content, substr) {
		t.Errorf("expected %s to contain %q, got:\n%s", path, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains substr.
func AssertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	content := ReadFile(t, path)
	if strings.Contains(content, substr) {
		t.Errorf("expected %s to not contain %q, got:\n%s", path, substr, content)
	}
}

// AssertFileEquals fails the test if the file content differs from want.
func AssertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	content := ReadFile(t, path)
	if content != want {
		t.Errorf("unexpected content in %s:\ngot:  %q\nwant: %q", path, content, want)
	}
}

package cli

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/pflag"
)

func TestPersistentFlagsRegistered(t *testing.T) {
	want := map[string]struct{}{
		"library":      {},
		"library-id":   {},
		"library-type": {},
		"key":          {},
		"api-base":     {},
		"config":       {},
		"tag-filter":   {},
		"json":         {},
		"quiet":        {},
	}

	got := make(map[string]struct{})
	rootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		got[flag.Name] = struct{}{}
	})

	for name := range want {
		if _, ok := got[name]; !ok {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
	for name := range got {
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected persistent flag %q", name)
		}
	}
}

// executeRoot runs the full command tree with the given arguments,
// capturing stdout. Flag-backed globals are restored afterwards so other
// tests in the package see a clean slate.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		jsonOutput = false
		quiet = false
		libraryName, libraryIDFlag, libraryTypeFlag = "", "", ""
		apiKeyFlag, apiBaseFlag, configPath = "", "", ""
		tagFilterFlags = nil
		rootCmd.SilenceErrors = false
		for _, cmd := range rootCmd.Commands() {
			cmd.SilenceErrors = false
		}
		rootCmd.SetArgs(nil)
	})

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	os.Stdout = oldStdout
	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured stdout: %v", err)
	}
	return string(out), execErr
}

func TestJSONModeMissingLibraryStopsBeforeCommand(t *testing.T) {
	// With no config and no library flags the pre-run hook fails. The
	// subcommand must never run: before the sentinel was introduced it
	// proceeded with a nil client and panicked.
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, err := executeRoot(t, "--json", "get-tags", "-")
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}
	if !strings.Contains(out, `"ok": false`) || !strings.Contains(out, ErrLibraryNotSpecified) {
		t.Fatalf("expected a %s error envelope, got:\n%s", ErrLibraryNotSpecified, out)
	}
}

func TestJSONModeInvalidFilterIssuesNoRemoteCalls(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	out, err := executeRoot(t,
		"--json",
		"--library-id", "12345", "--library-type", "group",
		"--api-base", srv.URL,
		"--tag-filter", "-",
		"get-tags", "-",
	)
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}
	if !strings.Contains(out, ErrInvalidFilter) {
		t.Fatalf("expected a %s error envelope, got:\n%s", ErrInvalidFilter, out)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("command ran despite the pre-run failure: %d remote calls", n)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"get-tags",
		"apply-category-tags",
		"find-missing-tags",
		"get-union",
		"list-journals",
		"bibliography",
		"version",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

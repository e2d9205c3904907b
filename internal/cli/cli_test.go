package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/crash"
	"github.com/Brendon-Hablutzel/api-client/internal/ui/tui"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
	dir    string
}

// runCLI runs one command line against an isolated home, log dir and crash log.
func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	var out, errb bytes.Buffer

	a := newApp(&out, &errb)
	a.configOpts.Home = dir

	args = append(args,
		"--log-dir", filepath.Join(dir, "logs"),
		"--env-file", filepath.Join(dir, "missing.env"),
		"--panic-log", filepath.Join(dir, "panic.log"),
	)
	code := a.run(context.Background(), args)
	return cliResult{code: code, stdout: out.String(), stderr: errb.String(), dir: dir}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("nope"))
			return
		}
		w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requestsJSON(srv *httptest.Server) string {
	return fmt.Sprintf(`{"requests": [
		{"url": "%[1]s/a", "method": "GET"},
		{"url": "%[1]s/b", "method": "FETCH"},
		{"url": "%[1]s/missing", "method": "DELETE"}
	]}`, srv.URL)
}

func TestFromFile_ContinuesPastFailures(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json", requestsJSON(srv))

	res := runCLI(t, dir, "from-file", path)
	if res.code != ExitOK {
		t.Fatalf("expected exit 0, got %d (stderr=%s)", res.code, res.stderr)
	}

	want := fmt.Sprintf("200 OK for GET to %[1]s/a\nok\n\n"+
		"ERROR: Invalid method: FETCH to %[1]s/b\n\n"+
		"404 Not Found for DELETE to %[1]s/missing\nnope\n\n", srv.URL)
	if res.stdout != want {
		t.Fatalf("unexpected stdout:\n%q\nwant:\n%q", res.stdout, want)
	}
	if !strings.Contains(res.stderr, "3 request(s): 2 ok, 1 failed") {
		t.Fatalf("expected summary on stderr, got %q", res.stderr)
	}
}

func TestFromFile_StopEarly(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json", requestsJSON(srv))

	res := runCLI(t, dir, "from-file", path, "--stop-early-on-fail")
	if res.code != ExitRequest {
		t.Fatalf("expected exit %d, got %d", ExitRequest, res.code)
	}
	if strings.Contains(res.stdout, "/missing") {
		t.Fatalf("third entry must not run: %q", res.stdout)
	}
	if !strings.Contains(res.stdout, "ERROR: Invalid method: FETCH to ") {
		t.Fatalf("expected failing entry printed, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "stopped at entry 2: Invalid method: FETCH to ") {
		t.Fatalf("unexpected stderr: %q", res.stderr)
	}
}

func TestFromFile_LogFile(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json", requestsJSON(srv))
	logPath := filepath.Join(dir, "history.log")

	res := runCLI(t, dir, "from-file", path, "--log-file", logPath)
	if res.code != ExitOK {
		t.Fatalf("expected exit 0, got %d (stderr=%s)", res.code, res.stderr)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(b), " - "); got != 3 {
		t.Fatalf("expected 3 timestamped records, got %d: %q", got, string(b))
	}
	if strings.Contains(res.stdout, " - ") {
		t.Fatalf("console should not be timestamped by default: %q", res.stdout)
	}
}

func TestFromFile_Timestamps(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json",
		fmt.Sprintf(`{"requests": [{"url": "%s/a", "method": "GET"}]}`, srv.URL))

	res := runCLI(t, dir, "from-file", path, "--timestamps")
	if res.code != ExitOK {
		t.Fatalf("expected exit 0, got %d", res.code)
	}
	if !strings.Contains(res.stdout, " - 200 OK for GET to ") {
		t.Fatalf("expected timestamp prefix, got %q", res.stdout)
	}
}

func TestFromFile_LogWriteFailure(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json", requestsJSON(srv))

	res := runCLI(t, dir, "from-file", path, "--log-file", filepath.Join(dir, "no-such-dir", "h.log"))
	if res.code != ExitIO {
		t.Fatalf("expected exit %d, got %d (stderr=%s)", ExitIO, res.code, res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("expected nothing printed before the failed log write, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "history log:") {
		t.Fatalf("unexpected stderr: %q", res.stderr)
	}
}

func TestFromFile_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json", `{"requests": [{"method": "GET"}]}`)

	res := runCLI(t, dir, "from-file", path)
	if res.code != ExitFile {
		t.Fatalf("expected exit %d, got %d", ExitFile, res.code)
	}
	if res.stdout != "" {
		t.Fatalf("expected no output, got %q", res.stdout)
	}
}

func TestFromFile_RequiresPath(t *testing.T) {
	res := runCLI(t, t.TempDir(), "from-file")
	if res.code != ExitFailure {
		t.Fatalf("expected exit %d, got %d", ExitFailure, res.code)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"requests": [
		{"url": "https://a", "method": "GET"},
		{"url": "https://b", "method": "put"}
	]}`)
	good := writeFile(t, dir, "good.yaml", "requests:\n  - url: https://a\n    method: PATCH\n")

	res := runCLI(t, dir, "validate", bad)
	if res.code != ExitRequest {
		t.Fatalf("expected exit %d, got %d", ExitRequest, res.code)
	}
	if !strings.Contains(res.stdout, "requests[1]: Invalid method: put to https://b") {
		t.Fatalf("unexpected stdout: %q", res.stdout)
	}

	res = runCLI(t, dir, "validate", good)
	if res.code != ExitOK || !strings.Contains(res.stdout, "OK (1 request(s))") {
		t.Fatalf("expected OK, got %d %q", res.code, res.stdout)
	}
}

func TestHistory(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json", requestsJSON(srv))
	db := filepath.Join(dir, "history.db")

	res := runCLI(t, dir, "from-file", path, "--history-db", db)
	if res.code != ExitOK {
		t.Fatalf("from-file: expected exit 0, got %d (stderr=%s)", res.code, res.stderr)
	}

	res = runCLI(t, dir, "history", "--history-db", db, "--limit", "2")
	if res.code != ExitOK {
		t.Fatalf("history: expected exit 0, got %d (stderr=%s)", res.code, res.stderr)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), res.stdout)
	}
	if !strings.Contains(lines[0], "404 Not Found") || !strings.Contains(lines[1], "ERROR (decode)") {
		t.Fatalf("unexpected history order: %q", res.stdout)
	}
}

func TestHistory_RequiresDatabase(t *testing.T) {
	res := runCLI(t, t.TempDir(), "history")
	if res.code != ExitFailure {
		t.Fatalf("expected exit %d, got %d", ExitFailure, res.code)
	}
	if !strings.Contains(res.stderr, "--history-db") {
		t.Fatalf("expected hint, got %q", res.stderr)
	}
}

func TestConfigFileSuppliesLogFile(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "requests.json",
		fmt.Sprintf(`{"requests": [{"url": "%s/a", "method": "GET"}]}`, srv.URL))
	logPath := filepath.Join(dir, "from-config.log")
	writeFile(t, dir, ".apiclient.yaml", "log_file: "+logPath+"\n")

	res := runCLI(t, dir, "from-file", path)
	if res.code != ExitOK {
		t.Fatalf("expected exit 0, got %d (stderr=%s)", res.code, res.stderr)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file from config: %v", err)
	}
}

func TestVersion(t *testing.T) {
	res := runCLI(t, t.TempDir(), "version")
	if res.code != ExitOK || !strings.HasPrefix(res.stdout, "apiclient ") {
		t.Fatalf("unexpected version output: %d %q", res.code, res.stdout)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("x"), ExitFailure},
		{"file", &domain.OpError{Kind: domain.KindFile}, ExitFile},
		{"batch", &domain.BatchError{Reason: "x"}, ExitRequest},
		{"decode", &domain.OpError{Kind: domain.KindDecode}, ExitRequest},
		{"io", fmt.Errorf("history log: %w", &domain.OpError{Kind: domain.KindIO}), ExitIO},
		{"panic", &crash.PanicError{}, ExitCrash},
		{"tui crash", fmt.Errorf("%w: boom", tui.ErrCrashed), ExitCrash},
		{"config", &domain.OpError{Kind: domain.KindInvalidConfig}, ExitFailure},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%s) = %d, want %d", c.name, got, c.want)
		}
	}
}

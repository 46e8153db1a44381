package command

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/kiwikv/kiwikv/internal/logstore"
	"github.com/kiwikv/kiwikv/internal/server/rpcserver"
	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	engine, err := logstore.Open(dir, logstore.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("logstore.Open() error = %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}

	router := rpcserver.NewRouter(&rpcserver.RouterConfig{Engine: engine, Logger: log})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func runApp(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	app := App()
	full := append([]string{"kiwikv-cli", "-s", server.URL}, args...)

	var runErr error
	out := captureStdout(t, func() {
		runErr = app.Run(full)
	})
	return out, runErr
}

func TestCLI_SetGetRemove(t *testing.T) {
	server := newTestServer(t)

	if _, err := runApp(t, server, "set", "k1", "v1"); err != nil {
		t.Fatalf("set error = %v", err)
	}

	out, err := runApp(t, server, "get", "k1")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if out != "v1\n" {
		t.Errorf("get output = %q, want %q", out, "v1\n")
	}

	out, err = runApp(t, server, "rm", "k1")
	if err != nil {
		t.Fatalf("rm k1 error = %v", err)
	}
	if out != "" {
		t.Errorf("rm output = %q, want empty", out)
	}

	out, err = runApp(t, server, "get", "k1")
	if err != nil {
		t.Fatalf("get after rm error = %v", err)
	}
	if out != "Key not found\n" {
		t.Errorf("get after rm output = %q, want %q", out, "Key not found\n")
	}
}

func TestCLI_RemoveMissingKeyIsNonZero(t *testing.T) {
	server := newTestServer(t)

	// cli.Exit errors make urfave/cli call OsExiter; keep the test
	// process alive so the returned error can be inspected.
	origExiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	defer func() { cli.OsExiter = origExiter }()

	app := App()
	var exitErr error
	captureStdout(t, func() {
		exitErr = app.Run([]string{"kiwikv-cli", "-s", server.URL, "rm", "nope"})
	})

	exitCoder, ok := exitErr.(cli.ExitCoder)
	if !ok {
		t.Fatalf("expected cli.ExitCoder, got %v (%T)", exitErr, exitErr)
	}
	if exitCoder.ExitCode() == 0 {
		t.Error("expected non-zero exit code for remove-of-missing")
	}
}

func TestCLI_SystemPing(t *testing.T) {
	server := newTestServer(t)

	out, err := runApp(t, server, "system", "ping")
	if err != nil {
		t.Fatalf("system ping error = %v", err)
	}
	if out != "ok\n" {
		t.Errorf("system ping output = %q, want %q", out, "ok\n")
	}
}

func TestCLI_Stats(t *testing.T) {
	server := newTestServer(t)
	runApp(t, server, "set", "k1", "v1")

	out, err := runApp(t, server, "-o", "json", "stats")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	if out == "" {
		t.Error("stats output is empty")
	}
}

package daemonctl

import (
	"errors"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"callsheet/internal/config"
)

func TestDerivePIDPath(t *testing.T) {
	if got := derivePIDPath("/var/lib/callsheet/callsheetd.lock", nil); got != "/var/lib/callsheet/callsheetd.pid" {
		t.Fatalf("derivePIDPath from lock = %q", got)
	}

	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/cs-data"
	if got := derivePIDPath("", &cfg); got != filepath.Join("/tmp/cs-data", "callsheetd.pid") {
		t.Fatalf("derivePIDPath from config = %q", got)
	}

	if got := derivePIDPath("", nil); got != "" {
		t.Fatalf("derivePIDPath with nothing = %q", got)
	}
}

func TestIsDaemonUnavailable(t *testing.T) {
	if !isDaemonUnavailable(syscall.ENOENT) || !isDaemonUnavailable(syscall.ECONNREFUSED) {
		t.Fatal("expected socket-missing errors to classify as unavailable")
	}
	if isDaemonUnavailable(errors.New("boom")) {
		t.Fatal("generic errors must not classify as unavailable")
	}
}

func TestWaitForClientTimesOut(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	if _, err := WaitForClient(socket, 300*time.Millisecond); err == nil {
		t.Fatal("expected timeout error for missing socket")
	}
}

func TestFetchStatusUnreachableReportsNotRunning(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	status, err := FetchStatus(socket)
	if err != nil {
		t.Fatalf("FetchStatus: %v", err)
	}
	if status.Running {
		t.Fatal("expected Running=false for unreachable daemon")
	}
}

func TestStopAndTerminateWithoutDaemon(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	if _, err := StopAndTerminate(socket, nil, time.Second); !errors.Is(err, ErrDaemonNotRunning) {
		t.Fatalf("StopAndTerminate = %v, want ErrDaemonNotRunning", err)
	}
}

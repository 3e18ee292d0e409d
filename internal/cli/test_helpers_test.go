package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/config"
	"github.com/baaaaaaaka/cipherrank/internal/dialer"
	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

var testStart = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.FixedZone("", 3600))

func newTempStore(t *testing.T) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := config.NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

// runCLI executes the root command in-process and returns its output and
// exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	code := run(cmd)
	return stdout.String(), stderr.String(), code
}

// prefToolchain answers every handshake with its first preference that was
// offered, on any version it lists.
type prefToolchain struct {
	universe []string
	prefs    []string
	versions []suites.Version
	refuse   bool

	handshakes atomic.Int64
}

func (f *prefToolchain) Name() string { return "fake" }

func (f *prefToolchain) Ciphers() []string { return f.universe }

func (f *prefToolchain) Versions() []suites.Version { return f.versions }

func (f *prefToolchain) Handshake(ctx context.Context, req probe.Request) (*probe.Session, error) {
	f.handshakes.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.refuse {
		return nil, errors.New("connection refused")
	}
	offered := map[string]bool{}
	for _, c := range req.Ciphers {
		offered[c] = true
	}
	for _, p := range f.prefs {
		if offered[p] {
			return &probe.Session{Cipher: p, Version: req.Version}, nil
		}
	}
	return &probe.Session{Cipher: probe.NoCipher, Version: req.Version, Reason: "handshake_failure"}, nil
}

// stubScan swaps the toolchain factory, clock and ID source for the test.
// It returns the toolchain names the factory was asked for.
func stubScan(t *testing.T, fake *prefToolchain) *[]string {
	t.Helper()
	var asked []string
	prevToolchain, prevNow, prevID, prevTerm := newToolchain, now, newScanID, stderrIsTerminal
	newToolchain = func(name string, _ dialer.Dialer) (probe.Toolchain, error) {
		asked = append(asked, name)
		return fake, nil
	}
	now = func() time.Time { return testStart }
	newScanID = func() (string, error) { return "0123456789abcdef", nil }
	stderrIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		newToolchain, now, newScanID, stderrIsTerminal = prevToolchain, prevNow, prevID, prevTerm
	})
	return &asked
}

func standardFake() *prefToolchain {
	return &prefToolchain{
		universe: []string{"AES128-SHA", "AES256-SHA", "ECDHE-RSA-AES128-GCM-SHA256"},
		prefs:    []string{"ECDHE-RSA-AES128-GCM-SHA256", "AES128-SHA"},
		versions: []suites.Version{suites.TLSv12},
	}
}

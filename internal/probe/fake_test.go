package probe

import (
	"context"
	"errors"
	"sync"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

// fakeServer is a deterministic responder: for each version it holds the
// server's preference list and picks the first one the client offers.
type fakeServer struct {
	mu       sync.Mutex
	prefs    map[suites.Version][]string
	pfs      map[string]*ForwardSecrecy
	universe []string
	versions []suites.Version
	// refuse makes every handshake fail at the connection level.
	refuse bool
	// failAfter, when > 0, fails every handshake after that many calls.
	failAfter int
	calls     int
	offered   [][]string
}

func (f *fakeServer) Name() string { return "fake" }

func (f *fakeServer) Ciphers() []string { return f.universe }

func (f *fakeServer) Versions() []suites.Version {
	if len(f.versions) > 0 {
		return f.versions
	}
	return suites.AllVersions
}

func (f *fakeServer) Handshake(ctx context.Context, req Request) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.offered = append(f.offered, append([]string(nil), req.Ciphers...))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.refuse {
		return nil, errors.New("connection refused")
	}
	if f.failAfter > 0 && f.calls > f.failAfter {
		return nil, errors.New("i/o timeout")
	}
	prefs, ok := f.prefs[req.Version]
	if !ok {
		return nil, errors.New("protocol version not supported")
	}
	offered := map[string]bool{}
	for _, c := range req.Ciphers {
		offered[c] = true
	}
	for _, c := range prefs {
		if offered[c] {
			return &Session{Cipher: c, Version: req.Version, PFS: f.pfs[c]}, nil
		}
	}
	return &Session{Cipher: NoCipher, Version: req.Version, Reason: "handshake_failure"}, nil
}

func (f *fakeServer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newDriver(tc Toolchain) *Driver {
	return &Driver{Prober: &Prober{Toolchain: tc}}
}

var testUniverse = []string{
	"ECDHE-RSA-AES256-GCM-SHA384",
	"ECDHE-RSA-AES128-GCM-SHA256",
	"DHE-RSA-AES256-SHA",
	"AES256-SHA",
	"AES128-SHA",
	"DES-CBC3-SHA",
	"RC4-SHA",
}

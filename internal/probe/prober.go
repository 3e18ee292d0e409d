package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

const DefaultTimeout = 10 * time.Second

var errNoSession = errors.New("no session metadata")

// Prober runs one bounded handshake and classifies it.
type Prober struct {
	Toolchain  Toolchain
	Timeout    time.Duration
	ServerName string
	Logger     *slog.Logger
}

// Probe never returns an error: every failure is folded into the Outcome.
func (p *Prober) Probe(ctx context.Context, target string, pool Pool, version suites.Version) Outcome {
	log := p.logger()
	ciphers := pool.Names()
	if len(ciphers) == 0 {
		return Outcome{Kind: Rejected, Reason: "empty candidate pool"}
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	serverName := p.ServerName
	if serverName == "" {
		serverName, _ = ValidateTarget(target)
	}

	sess, err := p.Toolchain.Handshake(attemptCtx, Request{
		Target:     target,
		ServerName: serverName,
		Ciphers:    ciphers,
		Version:    version,
	})
	out := classify(sess, err, pool, version)
	log.Debug("handshake",
		"target", target,
		"version", version.String(),
		"offered", len(ciphers),
		"outcome", out.Kind.String(),
		"cipher", out.Cipher,
		"reason", out.Reason,
	)
	return out
}

func classify(sess *Session, err error, pool Pool, version suites.Version) Outcome {
	if err != nil {
		return Outcome{Kind: ConnectionFailure, Reason: err.Error(), Err: err}
	}
	if sess == nil {
		return Outcome{Kind: ConnectionFailure, Reason: errNoSession.Error(), Err: errNoSession}
	}

	cipher := strings.TrimSpace(sess.Cipher)
	if cipher == "" || strings.EqualFold(cipher, NoCipher) || cipher == "(NONE)" {
		reason := sess.Reason
		if reason == "" {
			reason = "no cipher negotiated"
		}
		return Outcome{Kind: Rejected, Reason: reason}
	}

	// A cipher we did not offer means the toolchain output cannot be trusted
	// to advance the exclusion loop.
	if !pool.Contains(cipher) {
		err := fmt.Errorf("negotiated %q outside the offered pool", cipher)
		return Outcome{Kind: ConnectionFailure, Reason: err.Error(), Err: err}
	}

	proto := sess.Version
	if proto == 0 {
		proto = version
	}
	return Outcome{
		Kind:      Success,
		Cipher:    cipher,
		Protocols: []suites.Version{proto},
		PFS:       sess.PFS,
		Reason:    sess.Reason,
	}
}

func (p *Prober) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

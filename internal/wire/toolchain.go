// Package wire is a probe toolchain that writes its own ClientHello and reads
// the server's answer up to ServerHelloDone. It never completes a handshake,
// so it can offer any suite or version the registry names, SSLv3 included.
package wire

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/dialer"
	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

const Name = "wire"

// Toolchain implements probe.Toolchain.
type Toolchain struct {
	Dialer dialer.Dialer
}

func New(d dialer.Dialer) *Toolchain {
	return &Toolchain{Dialer: d}
}

func (t *Toolchain) Name() string { return Name }

func (t *Toolchain) Ciphers() []string { return suites.Names() }

func (t *Toolchain) Versions() []suites.Version {
	return append([]suites.Version(nil), suites.AllVersions...)
}

func (t *Toolchain) Handshake(ctx context.Context, req probe.Request) (*probe.Session, error) {
	ids := offerable(req.Ciphers, req.Version)
	if len(ids) == 0 {
		return &probe.Session{Cipher: probe.NoCipher, Version: req.Version, Reason: "no offered suite exists in " + req.Version.String()}, nil
	}
	params, err := newHelloParams(req.Version, req.ServerName, ids)
	if err != nil {
		return nil, err
	}
	hello, err := params.marshal()
	if err != nil {
		return nil, fmt.Errorf("build ClientHello: %w", err)
	}
	rec, err := record(recordHandshake, params.recordVersion(), hello)
	if err != nil {
		return nil, err
	}

	d := t.Dialer
	if d == nil {
		d = dialer.Direct(probe.DefaultTimeout)
	}
	conn, err := d.DialContext(ctx, "tcp", req.Target)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", req.Target, err)
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	sess, err := exchange(conn, rec, req.Version)
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return nil, ctxErr
	}
	return sess, err
}

// offerable maps names to IDs, keeping only suites that exist in v.
func offerable(names []string, v suites.Version) []uint16 {
	ids := make([]uint16, 0, len(names))
	for _, name := range names {
		s, ok := suites.Lookup(name)
		if !ok || !s.Supports(v) {
			continue
		}
		ids = append(ids, s.ID)
	}
	return ids
}

func exchange(conn net.Conn, hello []byte, want suites.Version) (*probe.Session, error) {
	if _, err := conn.Write(hello); err != nil {
		return nil, fmt.Errorf("write ClientHello: %w", err)
	}

	rr := newRecordReader(conn)
	var (
		sess  *probe.Session
		suite suites.Suite
	)
	for {
		msg, err := rr.readMessage()
		if err != nil {
			if sess != nil {
				// The choice is already known; a server that hangs up before
				// ServerHelloDone only costs us the key exchange details.
				return sess, nil
			}
			return nil, err
		}

		if msg.alert != nil {
			if sess != nil {
				return sess, nil
			}
			if rejects(msg.alert.Description) {
				return &probe.Session{Cipher: probe.NoCipher, Version: want, Reason: alertName(msg.alert.Description)}, nil
			}
			return nil, msg.alert
		}

		switch msg.typ {
		case typeServerHello:
			sh, err := parseServerHello(msg.body)
			if err != nil {
				return nil, err
			}
			if sh.version != want {
				return &probe.Session{Cipher: probe.NoCipher, Version: sh.version, Reason: "version"}, nil
			}
			sess = &probe.Session{Cipher: suites.NameForID(sh.suite), Version: sh.version}
			if want == suites.TLSv13 {
				if sh.retry {
					sess.Reason = "hello_retry_request"
				}
				if sh.hasGroup {
					sess.PFS = groupSecrecy(sh.group)
				}
				return sess, nil
			}
			suite, _ = suites.ByID(sh.suite)
		case typeServerKeyExchange:
			if sess == nil {
				return nil, fmt.Errorf("%w: ServerKeyExchange before ServerHello", ErrMalformed)
			}
			if !suite.Ephemeral() {
				continue
			}
			pfs, err := parseServerKeyExchange(msg.body, suite.Kx)
			if err != nil {
				return nil, err
			}
			sess.PFS = pfs
		case typeServerHelloDone:
			if sess == nil {
				return nil, fmt.Errorf("%w: ServerHelloDone before ServerHello", ErrMalformed)
			}
			return sess, nil
		}
	}
}

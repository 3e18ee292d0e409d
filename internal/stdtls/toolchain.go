// Package stdtls is a probe toolchain built on crypto/tls. It completes real
// handshakes and sends one HTTP request, but can only offer what Go
// implements and cannot pick TLS1.3 suites.
package stdtls

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/dialer"
	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

const Name = "stdtls"

// responseWait caps how long the HEAD response is awaited, within the
// attempt deadline.
const responseWait = 2 * time.Second

// ErrUnsupportedVersion is returned for versions crypto/tls cannot speak.
var ErrUnsupportedVersion = errors.New("version unsupported by toolchain")

type Toolchain struct {
	Dialer dialer.Dialer
}

func New(d dialer.Dialer) *Toolchain {
	return &Toolchain{Dialer: d}
}

func (t *Toolchain) Name() string { return Name }

// Ciphers lists every registry suite Go can negotiate, secure ones first.
func (t *Toolchain) Ciphers() []string {
	var out []string
	for _, cs := range goSuites() {
		if s, ok := suites.ByID(cs.ID); ok {
			out = append(out, s.Name)
		}
	}
	return out
}

func (t *Toolchain) Versions() []suites.Version {
	return []suites.Version{suites.TLSv10, suites.TLSv11, suites.TLSv12, suites.TLSv13}
}

func (t *Toolchain) Handshake(ctx context.Context, req probe.Request) (*probe.Session, error) {
	if req.Version < suites.TLSv10 || req.Version > suites.TLSv13 {
		return nil, fmt.Errorf("%s: %w", req.Version, ErrUnsupportedVersion)
	}
	ids := offerable(req.Ciphers, req.Version)
	if len(ids) == 0 {
		return &probe.Session{Cipher: probe.NoCipher, Version: req.Version, Reason: "no offered suite exists in " + req.Version.String()}, nil
	}

	cfg := &tls.Config{
		InsecureSkipVerify: true,
		MinVersion:         uint16(req.Version),
		MaxVersion:         uint16(req.Version),
		ServerName:         req.ServerName,
	}
	// TLS1.3 suites are not configurable, Go offers all of them.
	if req.Version < suites.TLSv13 {
		cfg.CipherSuites = ids
	}

	d := t.Dialer
	if d == nil {
		d = dialer.Direct(probe.DefaultTimeout)
	}
	raw, err := d.DialContext(ctx, "tcp", req.Target)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", req.Target, err)
	}
	defer raw.Close()
	if dl, ok := ctx.Deadline(); ok {
		_ = raw.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = raw.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	conn := tls.Client(raw, cfg)
	if err := conn.HandshakeContext(ctx); err != nil {
		if reason, ok := rejection(err); ok {
			return &probe.Session{Cipher: probe.NoCipher, Version: req.Version, Reason: reason}, nil
		}
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	state := conn.ConnectionState()
	sess := &probe.Session{
		Cipher:  suites.NameForID(state.CipherSuite),
		Version: suites.Version(state.Version),
	}
	if s, ok := suites.ByID(state.CipherSuite); ok && s.Ephemeral() {
		sess.PFS = curveSecrecy(state.CurveID)
	}

	host := req.ServerName
	if host == "" {
		host, _, _ = net.SplitHostPort(req.Target)
	}
	applicationRequest(ctx, conn, host)
	return sess, nil
}

// applicationRequest sends a HEAD and reads the status line, never past the
// attempt deadline. Failures are ignored.
func applicationRequest(ctx context.Context, conn *tls.Conn, host string) {
	deadline := time.Now().Add(responseWait)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	if ctx.Err() != nil {
		return
	}
	_, err := fmt.Fprintf(conn, "HEAD / HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", host)
	if err != nil {
		return
	}
	_, _ = bufio.NewReader(conn).ReadString('\n')
}

func goSuites() []*tls.CipherSuite {
	return append(tls.CipherSuites(), tls.InsecureCipherSuites()...)
}

// offerable keeps suites Go implements for v, in request order.
func offerable(names []string, v suites.Version) []uint16 {
	known := map[uint16]bool{}
	for _, cs := range goSuites() {
		for _, sv := range cs.SupportedVersions {
			if sv == uint16(v) {
				known[cs.ID] = true
			}
		}
	}
	var ids []uint16
	for _, name := range names {
		s, ok := suites.Lookup(name)
		if !ok || !known[s.ID] || !s.Supports(v) {
			continue
		}
		ids = append(ids, s.ID)
	}
	return ids
}

// remote alert text as crypto/tls renders it, mapped to the alert name.
var rejectAlerts = map[string]string{
	"handshake failure":              "handshake_failure",
	"insufficient security level":    "insufficient_security",
	"protocol version not supported": "protocol_version",
	"illegal parameter":              "illegal_parameter",
}

// rejection reports whether err means the server declined every offered
// suite on this version.
func rejection(err error) (string, bool) {
	var op *net.OpError
	if errors.As(err, &op) && op.Op == "remote error" && op.Err != nil {
		msg := op.Err.Error()
		for text, name := range rejectAlerts {
			if strings.Contains(msg, text) {
				return name, true
			}
		}
		return "", false
	}
	if strings.Contains(err.Error(), "server selected unsupported protocol version") {
		return "version", true
	}
	return "", false
}

type curveInfo struct {
	name string
	bits int
}

var curves = map[tls.CurveID]curveInfo{
	tls.CurveP256:      {"P-256", 256},
	tls.CurveP384:      {"P-384", 384},
	tls.CurveP521:      {"P-521", 521},
	tls.X25519:         {"X25519", 253},
	tls.X25519MLKEM768: {"X25519MLKEM768", 253},
}

func curveSecrecy(id tls.CurveID) *probe.ForwardSecrecy {
	if id == 0 {
		return nil
	}
	c, ok := curves[id]
	if !ok {
		c = curveInfo{name: id.String()}
	}
	return &probe.ForwardSecrecy{Algorithm: "ECDHE", Curve: c.name, Bits: c.bits}
}

package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

// NoCipher is what a toolchain reports when the server answered but
// negotiated nothing.
const NoCipher = "none"

// Request is one handshake attempt handed to a Toolchain.
type Request struct {
	Target     string
	ServerName string
	Ciphers    []string
	Version    suites.Version
}

// Session is the negotiated metadata a Toolchain observed. A nil Session is
// treated like a connection failure.
type Session struct {
	Cipher  string
	Version suites.Version
	PFS     *ForwardSecrecy
	// Reason explains a NoCipher session (alert name, version mismatch) or
	// notes how a cipher was reached (hello_retry_request).
	Reason string
}

// Toolchain is the TLS implementation the prober drives.
type Toolchain interface {
	Name() string
	// Ciphers is the universe the toolchain can offer, in its own order.
	Ciphers() []string
	// Versions lists the protocol versions the toolchain can attempt.
	Versions() []suites.Version
	Handshake(ctx context.Context, req Request) (*Session, error)
}

// ForwardSecrecy describes an ephemeral key exchange.
type ForwardSecrecy struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Curve     string `json:"curve,omitempty" yaml:"curve,omitempty"`
	Bits      int    `json:"bits" yaml:"bits"`
}

func (f *ForwardSecrecy) String() string {
	if f == nil {
		return "None"
	}
	parts := []string{f.Algorithm}
	if f.Curve != "" {
		parts = append(parts, f.Curve)
	}
	if f.Bits > 0 {
		parts = append(parts, strconv.Itoa(f.Bits))
	}
	return strings.Join(parts, ",")
}

// Kind tags an Outcome.
type Kind int

const (
	ConnectionFailure Kind = iota
	Rejected
	Success
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Rejected:
		return "rejected"
	default:
		return "connection-failure"
	}
}

// Outcome is the classified result of one handshake or of one fallback run.
type Outcome struct {
	Kind      Kind
	Cipher    string
	Protocols []suites.Version
	PFS       *ForwardSecrecy
	Reason    string
	Err       error
}

func (o Outcome) OK() bool { return o.Kind == Success }

// ProtocolNames renders Protocols with their String form.
func (o Outcome) ProtocolNames() []string {
	return versionNames(o.Protocols)
}

// Ranked is one row of the server preference order.
type Ranked struct {
	Rank            int              `json:"rank" yaml:"rank"`
	Cipher          string           `json:"cipher" yaml:"cipher"`
	Protocols       []suites.Version `json:"protocols" yaml:"protocols"`
	PFS             *ForwardSecrecy  `json:"pfs,omitempty" yaml:"pfs,omitempty"`
	BenchmarkMicros *int64           `json:"benchmarkMicros,omitempty" yaml:"benchmarkMicros,omitempty"`
}

func (r Ranked) ProtocolNames() []string {
	return versionNames(r.Protocols)
}

// CipherCheck is one row of the all-ciphers scan.
type CipherCheck struct {
	Cipher    string
	Accepted  bool
	Protocols []suites.Version
	PFS       *ForwardSecrecy
}

// Scan bundles everything one run produced.
type Scan struct {
	Target     string
	Toolchain  string
	StartedAt  time.Time
	Ranked     []Ranked
	AllCiphers []CipherCheck
	Benchmark  bool
}

func versionNames(vs []suites.Version) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}

// ValidateTarget checks the host:port form and returns the host part.
func ValidateTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("target is required (host:port)")
	}
	host, port, err := splitHostPort(target)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("invalid port %q in target %q", port, target)
	}
	return host, nil
}

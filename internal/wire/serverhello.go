package wire

import (
	"bytes"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"

	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

// helloRetryRandom is SHA-256("HelloRetryRequest"), RFC 8446 4.1.3.
var helloRetryRandom = []byte{
	0xCF, 0x21, 0xAD, 0x74, 0xE5, 0x9A, 0x61, 0x11,
	0xBE, 0x1D, 0x8C, 0x02, 0x1E, 0x65, 0xB8, 0x91,
	0xC2, 0xA2, 0x11, 0x16, 0x7A, 0xBB, 0x8C, 0x5E,
	0x07, 0x9E, 0x09, 0xE2, 0xC8, 0xA8, 0x33, 0x9C,
}

type serverHello struct {
	// version is the negotiated version, supported_versions included.
	version  suites.Version
	suite    uint16
	group    uint16
	hasGroup bool
	retry    bool
}

func parseServerHello(body []byte) (serverHello, error) {
	var (
		sh      serverHello
		legacy  uint16
		random  []byte
		session cryptobyte.String
	)
	s := cryptobyte.String(body)
	if !s.ReadUint16(&legacy) || !s.ReadBytes(&random, 32) ||
		!s.ReadUint8LengthPrefixed(&session) || !s.ReadUint16(&sh.suite) || !s.Skip(1) {
		return sh, fmt.Errorf("%w: short ServerHello", ErrMalformed)
	}
	sh.version = suites.Version(legacy)
	sh.retry = bytes.Equal(random, helloRetryRandom)
	if s.Empty() {
		return sh, nil
	}

	var exts cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&exts) {
		return sh, fmt.Errorf("%w: ServerHello extensions", ErrMalformed)
	}
	for !exts.Empty() {
		var (
			typ  uint16
			data cryptobyte.String
		)
		if !exts.ReadUint16(&typ) || !exts.ReadUint16LengthPrefixed(&data) {
			return sh, fmt.Errorf("%w: ServerHello extension header", ErrMalformed)
		}
		switch typ {
		case extSupportedVersions:
			var v uint16
			if !data.ReadUint16(&v) {
				return sh, fmt.Errorf("%w: supported_versions", ErrMalformed)
			}
			sh.version = suites.Version(v)
		case extKeyShare:
			// Both a key_share entry and a retry request lead with the group.
			if !data.ReadUint16(&sh.group) {
				return sh, fmt.Errorf("%w: key_share", ErrMalformed)
			}
			sh.hasGroup = true
		}
	}
	return sh, nil
}

// groupSecrecy describes a TLS1.3 key_share group.
func groupSecrecy(id uint16) *probe.ForwardSecrecy {
	g := lookupGroup(id)
	alg := "ECDHE"
	if g.finite {
		alg = "DHE"
	}
	return &probe.ForwardSecrecy{Algorithm: alg, Curve: g.name, Bits: g.bits}
}

// parseServerKeyExchange pulls the ephemeral parameters out of a TLS<=1.2
// ServerKeyExchange. Signatures are not checked.
func parseServerKeyExchange(body []byte, kx suites.KeyExchange) (*probe.ForwardSecrecy, error) {
	s := cryptobyte.String(body)
	switch kx {
	case suites.KxECDHE, suites.KxECAnon:
		var curveType uint8
		if !s.ReadUint8(&curveType) {
			return nil, fmt.Errorf("%w: ServerKeyExchange curve type", ErrMalformed)
		}
		if curveType != 3 {
			// explicit_prime / explicit_char2 carry no name.
			return &probe.ForwardSecrecy{Algorithm: "ECDHE", Curve: "explicit"}, nil
		}
		var id uint16
		if !s.ReadUint16(&id) {
			return nil, fmt.Errorf("%w: ServerKeyExchange named curve", ErrMalformed)
		}
		g := lookupGroup(id)
		return &probe.ForwardSecrecy{Algorithm: "ECDHE", Curve: g.name, Bits: g.bits}, nil
	case suites.KxDHE, suites.KxDHAnon:
		var p cryptobyte.String
		if !s.ReadUint16LengthPrefixed(&p) || len(p) == 0 {
			return nil, fmt.Errorf("%w: ServerKeyExchange dh_p", ErrMalformed)
		}
		return &probe.ForwardSecrecy{Algorithm: "DHE", Bits: new(big.Int).SetBytes(p).BitLen()}, nil
	}
	return nil, nil
}

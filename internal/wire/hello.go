package wire

import (
	"crypto/rand"
	"fmt"
	"net"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/curve25519"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

const (
	recordChangeCipherSpec uint8 = 20
	recordAlert            uint8 = 21
	recordHandshake        uint8 = 22
	recordApplicationData  uint8 = 23

	typeClientHello       uint8 = 1
	typeServerHello       uint8 = 2
	typeCertificate       uint8 = 11
	typeServerKeyExchange uint8 = 12
	typeCertificateReq    uint8 = 13
	typeServerHelloDone   uint8 = 14

	extServerName          uint16 = 0
	extSupportedGroups     uint16 = 10
	extECPointFormats      uint16 = 11
	extSignatureAlgorithms uint16 = 13
	extSupportedVersions   uint16 = 43
	extPSKModes            uint16 = 45
	extKeyShare            uint16 = 51
	extRenegotiationInfo   uint16 = 0xff01
)

var offeredGroups = []uint16{groupX25519, groupP256, groupP384, groupP521, groupFFDHE2048, groupFFDHE3072}

// ecdsa, rsa_pss_rsae, rsa_pkcs1, ed25519, then the sha1 fallbacks.
var offeredSignatureSchemes = []uint16{
	0x0403, 0x0503, 0x0603,
	0x0804, 0x0805, 0x0806,
	0x0401, 0x0501, 0x0601,
	0x0807,
	0x0201, 0x0203,
}

// helloParams is everything that varies between two ClientHellos.
type helloParams struct {
	version    suites.Version
	serverName string
	cipherIDs  []uint16
	random     [32]byte
	sessionID  []byte
	// keyShare is the X25519 public key, TLS1.3 only.
	keyShare []byte
}

func newHelloParams(v suites.Version, serverName string, ids []uint16) (helloParams, error) {
	p := helloParams{version: v, serverName: serverName, cipherIDs: ids}
	if _, err := rand.Read(p.random[:]); err != nil {
		return p, fmt.Errorf("client random: %w", err)
	}
	if v < suites.TLSv13 {
		return p, nil
	}

	p.sessionID = make([]byte, 32)
	if _, err := rand.Read(p.sessionID); err != nil {
		return p, fmt.Errorf("session id: %w", err)
	}
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(priv); err != nil {
		return p, fmt.Errorf("key share: %w", err)
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return p, fmt.Errorf("key share: %w", err)
	}
	p.keyShare = pub
	return p, nil
}

// legacyVersion is the client_version field. TLS1.3 hides behind 1.2.
func (p helloParams) legacyVersion() uint16 {
	if p.version >= suites.TLSv13 {
		return uint16(suites.TLSv12)
	}
	return uint16(p.version)
}

// recordVersion is what goes in the record header of the first flight.
func (p helloParams) recordVersion() uint16 {
	if p.version == suites.SSLv3 {
		return uint16(suites.SSLv3)
	}
	return uint16(suites.TLSv10)
}

func (p helloParams) marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint8(typeClientHello)
	b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16(p.legacyVersion())
		b.AddBytes(p.random[:])
		b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes(p.sessionID)
		})
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			for _, id := range p.cipherIDs {
				b.AddUint16(id)
			}
		})
		b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint8(0) // null compression
		})
		// SSLv3 servers predate extensions and some choke on them.
		if p.version == suites.SSLv3 {
			return
		}
		b.AddUint16LengthPrefixed(p.addExtensions)
	})
	return b.Bytes()
}

func (p helloParams) addExtensions(b *cryptobyte.Builder) {
	if p.serverName != "" && net.ParseIP(p.serverName) == nil {
		b.AddUint16(extServerName)
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddUint8(0) // host_name
				b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
					b.AddBytes([]byte(p.serverName))
				})
			})
		})
	}

	b.AddUint16(extSupportedGroups)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			for _, g := range offeredGroups {
				b.AddUint16(g)
			}
		})
	})

	b.AddUint16(extECPointFormats)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint8(0) // uncompressed
		})
	})

	if p.version >= suites.TLSv12 {
		b.AddUint16(extSignatureAlgorithms)
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				for _, s := range offeredSignatureSchemes {
					b.AddUint16(s)
				}
			})
		})
	}

	b.AddUint16(extRenegotiationInfo)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint8(0)
	})

	if p.version < suites.TLSv13 {
		return
	}

	b.AddUint16(extSupportedVersions)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint16(uint16(suites.TLSv13))
		})
	})

	b.AddUint16(extPSKModes)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint8(1) // psk_dhe_ke
		})
	})

	b.AddUint16(extKeyShare)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint16(groupX25519)
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes(p.keyShare)
			})
		})
	})
}

// record wraps one handshake message in a TLS record.
func record(typ uint8, version uint16, body []byte) ([]byte, error) {
	if len(body) > maxRecordLen {
		return nil, fmt.Errorf("record body too large: %d bytes", len(body))
	}
	var b cryptobyte.Builder
	b.AddUint8(typ)
	b.AddUint16(version)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(body)
	})
	return b.Bytes()
}

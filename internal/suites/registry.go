package suites

import (
	"fmt"
	"sort"
	"strings"
)

// KeyExchange is the key agreement family of a suite.
type KeyExchange string

const (
	KxRSA    KeyExchange = "RSA"
	KxDH     KeyExchange = "DH"
	KxDHE    KeyExchange = "DHE"
	KxECDH   KeyExchange = "ECDH"
	KxECDHE  KeyExchange = "ECDHE"
	KxPSK    KeyExchange = "PSK"
	KxSRP    KeyExchange = "SRP"
	KxTLS13  KeyExchange = "TLS13"
	KxDHAnon KeyExchange = "ADH"
	KxECAnon KeyExchange = "AECDH"
)

// Suite is one entry of the cipher-suite registry. Name is the openssl-style
// identifier used throughout output.
type Suite struct {
	ID     uint16
	Name   string
	IANA   string
	Kx     KeyExchange
	minVer Version
	maxVer Version
}

// Ephemeral reports whether the suite negotiates a fresh key per session.
func (s Suite) Ephemeral() bool {
	switch s.Kx {
	case KxDHE, KxECDHE, KxTLS13, KxDHAnon, KxECAnon:
		return true
	}
	return false
}

// Supports reports whether the suite may be offered in a hello for v.
func (s Suite) Supports(v Version) bool {
	return v >= s.minVer && v <= s.maxVer
}

// legacy suites run from SSLv3 to TLS1.2. Export suites stop at TLS1.0,
// TLS1.1 forbids negotiating them.
func legacy(id uint16, name, iana string, kx KeyExchange) Suite {
	lo, hi := SSLv3, TLSv12
	switch kx {
	case KxECDH, KxECDHE, KxECAnon, KxPSK, KxSRP:
		lo = TLSv10
	}
	if strings.Contains(iana, "_EXPORT_") {
		hi = TLSv10
	}
	return Suite{ID: id, Name: name, IANA: iana, Kx: kx, minVer: lo, maxVer: hi}
}

func tls12(id uint16, name, iana string, kx KeyExchange) Suite {
	return Suite{ID: id, Name: name, IANA: iana, Kx: kx, minVer: TLSv12, maxVer: TLSv12}
}

func tls13(id uint16, name string) Suite {
	return Suite{ID: id, Name: name, IANA: name, Kx: KxTLS13, minVer: TLSv13, maxVer: TLSv13}
}

// registry is kept in openssl "ALL" order: strongest first, roughly.
var registry = []Suite{
	tls13(0x1302, "TLS_AES_256_GCM_SHA384"),
	tls13(0x1303, "TLS_CHACHA20_POLY1305_SHA256"),
	tls13(0x1301, "TLS_AES_128_GCM_SHA256"),
	tls13(0x1304, "TLS_AES_128_CCM_SHA256"),
	tls13(0x1305, "TLS_AES_128_CCM_8_SHA256"),

	tls12(0xC02C, "ECDHE-ECDSA-AES256-GCM-SHA384", "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384", KxECDHE),
	tls12(0xC030, "ECDHE-RSA-AES256-GCM-SHA384", "TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384", KxECDHE),
	tls12(0x009F, "DHE-RSA-AES256-GCM-SHA384", "TLS_DHE_RSA_WITH_AES_256_GCM_SHA384", KxDHE),
	tls12(0x00A3, "DHE-DSS-AES256-GCM-SHA384", "TLS_DHE_DSS_WITH_AES_256_GCM_SHA384", KxDHE),
	tls12(0xCCA9, "ECDHE-ECDSA-CHACHA20-POLY1305", "TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256", KxECDHE),
	tls12(0xCCA8, "ECDHE-RSA-CHACHA20-POLY1305", "TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256", KxECDHE),
	tls12(0xCCAA, "DHE-RSA-CHACHA20-POLY1305", "TLS_DHE_RSA_WITH_CHACHA20_POLY1305_SHA256", KxDHE),
	tls12(0xC0AD, "ECDHE-ECDSA-AES256-CCM", "TLS_ECDHE_ECDSA_WITH_AES_256_CCM", KxECDHE),
	tls12(0xC09F, "DHE-RSA-AES256-CCM", "TLS_DHE_RSA_WITH_AES_256_CCM", KxDHE),
	tls12(0xC02B, "ECDHE-ECDSA-AES128-GCM-SHA256", "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256", KxECDHE),
	tls12(0xC02F, "ECDHE-RSA-AES128-GCM-SHA256", "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", KxECDHE),
	tls12(0x009E, "DHE-RSA-AES128-GCM-SHA256", "TLS_DHE_RSA_WITH_AES_128_GCM_SHA256", KxDHE),
	tls12(0x00A2, "DHE-DSS-AES128-GCM-SHA256", "TLS_DHE_DSS_WITH_AES_128_GCM_SHA256", KxDHE),
	tls12(0xC0AC, "ECDHE-ECDSA-AES128-CCM", "TLS_ECDHE_ECDSA_WITH_AES_128_CCM", KxECDHE),
	tls12(0xC09E, "DHE-RSA-AES128-CCM", "TLS_DHE_RSA_WITH_AES_128_CCM", KxDHE),
	tls12(0xC024, "ECDHE-ECDSA-AES256-SHA384", "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA384", KxECDHE),
	tls12(0xC028, "ECDHE-RSA-AES256-SHA384", "TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA384", KxECDHE),
	tls12(0x006B, "DHE-RSA-AES256-SHA256", "TLS_DHE_RSA_WITH_AES_256_CBC_SHA256", KxDHE),
	tls12(0x006A, "DHE-DSS-AES256-SHA256", "TLS_DHE_DSS_WITH_AES_256_CBC_SHA256", KxDHE),
	tls12(0xC073, "ECDHE-ECDSA-CAMELLIA256-SHA384", "TLS_ECDHE_ECDSA_WITH_CAMELLIA_256_CBC_SHA384", KxECDHE),
	tls12(0xC077, "ECDHE-RSA-CAMELLIA256-SHA384", "TLS_ECDHE_RSA_WITH_CAMELLIA_256_CBC_SHA384", KxECDHE),
	tls12(0xC023, "ECDHE-ECDSA-AES128-SHA256", "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256", KxECDHE),
	tls12(0xC027, "ECDHE-RSA-AES128-SHA256", "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256", KxECDHE),
	tls12(0x0067, "DHE-RSA-AES128-SHA256", "TLS_DHE_RSA_WITH_AES_128_CBC_SHA256", KxDHE),
	tls12(0x0040, "DHE-DSS-AES128-SHA256", "TLS_DHE_DSS_WITH_AES_128_CBC_SHA256", KxDHE),
	tls12(0xC072, "ECDHE-ECDSA-CAMELLIA128-SHA256", "TLS_ECDHE_ECDSA_WITH_CAMELLIA_128_CBC_SHA256", KxECDHE),
	tls12(0xC076, "ECDHE-RSA-CAMELLIA128-SHA256", "TLS_ECDHE_RSA_WITH_CAMELLIA_128_CBC_SHA256", KxECDHE),
	legacy(0xC00A, "ECDHE-ECDSA-AES256-SHA", "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA", KxECDHE),
	legacy(0xC014, "ECDHE-RSA-AES256-SHA", "TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA", KxECDHE),
	legacy(0x0039, "DHE-RSA-AES256-SHA", "TLS_DHE_RSA_WITH_AES_256_CBC_SHA", KxDHE),
	legacy(0x0038, "DHE-DSS-AES256-SHA", "TLS_DHE_DSS_WITH_AES_256_CBC_SHA", KxDHE),
	legacy(0x0088, "DHE-RSA-CAMELLIA256-SHA", "TLS_DHE_RSA_WITH_CAMELLIA_256_CBC_SHA", KxDHE),
	legacy(0x0087, "DHE-DSS-CAMELLIA256-SHA", "TLS_DHE_DSS_WITH_CAMELLIA_256_CBC_SHA", KxDHE),
	legacy(0xC009, "ECDHE-ECDSA-AES128-SHA", "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA", KxECDHE),
	legacy(0xC013, "ECDHE-RSA-AES128-SHA", "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA", KxECDHE),
	legacy(0x0033, "DHE-RSA-AES128-SHA", "TLS_DHE_RSA_WITH_AES_128_CBC_SHA", KxDHE),
	legacy(0x0032, "DHE-DSS-AES128-SHA", "TLS_DHE_DSS_WITH_AES_128_CBC_SHA", KxDHE),
	legacy(0x009A, "DHE-RSA-SEED-SHA", "TLS_DHE_RSA_WITH_SEED_CBC_SHA", KxDHE),
	legacy(0x0099, "DHE-DSS-SEED-SHA", "TLS_DHE_DSS_WITH_SEED_CBC_SHA", KxDHE),
	legacy(0x0045, "DHE-RSA-CAMELLIA128-SHA", "TLS_DHE_RSA_WITH_CAMELLIA_128_CBC_SHA", KxDHE),
	legacy(0x0044, "DHE-DSS-CAMELLIA128-SHA", "TLS_DHE_DSS_WITH_CAMELLIA_128_CBC_SHA", KxDHE),
	legacy(0xC019, "AECDH-AES256-SHA", "TLS_ECDH_anon_WITH_AES_256_CBC_SHA", KxECAnon),
	legacy(0x003A, "ADH-AES256-SHA", "TLS_DH_anon_WITH_AES_256_CBC_SHA", KxDHAnon),
	tls12(0x00A7, "ADH-AES256-GCM-SHA384", "TLS_DH_anon_WITH_AES_256_GCM_SHA384", KxDHAnon),
	tls12(0x006D, "ADH-AES256-SHA256", "TLS_DH_anon_WITH_AES_256_CBC_SHA256", KxDHAnon),
	legacy(0xC018, "AECDH-AES128-SHA", "TLS_ECDH_anon_WITH_AES_128_CBC_SHA", KxECAnon),
	legacy(0x0034, "ADH-AES128-SHA", "TLS_DH_anon_WITH_AES_128_CBC_SHA", KxDHAnon),
	tls12(0x00A6, "ADH-AES128-GCM-SHA256", "TLS_DH_anon_WITH_AES_128_GCM_SHA256", KxDHAnon),
	tls12(0x006C, "ADH-AES128-SHA256", "TLS_DH_anon_WITH_AES_128_CBC_SHA256", KxDHAnon),
	legacy(0x0089, "ADH-CAMELLIA256-SHA", "TLS_DH_anon_WITH_CAMELLIA_256_CBC_SHA", KxDHAnon),
	legacy(0x0046, "ADH-CAMELLIA128-SHA", "TLS_DH_anon_WITH_CAMELLIA_128_CBC_SHA", KxDHAnon),
	legacy(0x009B, "ADH-SEED-SHA", "TLS_DH_anon_WITH_SEED_CBC_SHA", KxDHAnon),
	tls12(0xC032, "ECDH-RSA-AES256-GCM-SHA384", "TLS_ECDH_RSA_WITH_AES_256_GCM_SHA384", KxECDH),
	tls12(0xC02E, "ECDH-ECDSA-AES256-GCM-SHA384", "TLS_ECDH_ECDSA_WITH_AES_256_GCM_SHA384", KxECDH),
	tls12(0xC02A, "ECDH-RSA-AES256-SHA384", "TLS_ECDH_RSA_WITH_AES_256_CBC_SHA384", KxECDH),
	tls12(0xC026, "ECDH-ECDSA-AES256-SHA384", "TLS_ECDH_ECDSA_WITH_AES_256_CBC_SHA384", KxECDH),
	legacy(0xC00F, "ECDH-RSA-AES256-SHA", "TLS_ECDH_RSA_WITH_AES_256_CBC_SHA", KxECDH),
	legacy(0xC005, "ECDH-ECDSA-AES256-SHA", "TLS_ECDH_ECDSA_WITH_AES_256_CBC_SHA", KxECDH),
	tls12(0xC031, "ECDH-RSA-AES128-GCM-SHA256", "TLS_ECDH_RSA_WITH_AES_128_GCM_SHA256", KxECDH),
	tls12(0xC02D, "ECDH-ECDSA-AES128-GCM-SHA256", "TLS_ECDH_ECDSA_WITH_AES_128_GCM_SHA256", KxECDH),
	tls12(0xC029, "ECDH-RSA-AES128-SHA256", "TLS_ECDH_RSA_WITH_AES_128_CBC_SHA256", KxECDH),
	tls12(0xC025, "ECDH-ECDSA-AES128-SHA256", "TLS_ECDH_ECDSA_WITH_AES_128_CBC_SHA256", KxECDH),
	legacy(0xC00E, "ECDH-RSA-AES128-SHA", "TLS_ECDH_RSA_WITH_AES_128_CBC_SHA", KxECDH),
	legacy(0xC004, "ECDH-ECDSA-AES128-SHA", "TLS_ECDH_ECDSA_WITH_AES_128_CBC_SHA", KxECDH),
	tls12(0x00A1, "DH-RSA-AES256-GCM-SHA384", "TLS_DH_RSA_WITH_AES_256_GCM_SHA384", KxDH),
	tls12(0x00A5, "DH-DSS-AES256-GCM-SHA384", "TLS_DH_DSS_WITH_AES_256_GCM_SHA384", KxDH),
	legacy(0x0037, "DH-RSA-AES256-SHA", "TLS_DH_RSA_WITH_AES_256_CBC_SHA", KxDH),
	legacy(0x0036, "DH-DSS-AES256-SHA", "TLS_DH_DSS_WITH_AES_256_CBC_SHA", KxDH),
	legacy(0x0031, "DH-RSA-AES128-SHA", "TLS_DH_RSA_WITH_AES_128_CBC_SHA", KxDH),
	legacy(0x0030, "DH-DSS-AES128-SHA", "TLS_DH_DSS_WITH_AES_128_CBC_SHA", KxDH),
	tls12(0x009D, "AES256-GCM-SHA384", "TLS_RSA_WITH_AES_256_GCM_SHA384", KxRSA),
	tls12(0xC09D, "AES256-CCM", "TLS_RSA_WITH_AES_256_CCM", KxRSA),
	tls12(0x009C, "AES128-GCM-SHA256", "TLS_RSA_WITH_AES_128_GCM_SHA256", KxRSA),
	tls12(0xC09C, "AES128-CCM", "TLS_RSA_WITH_AES_128_CCM", KxRSA),
	tls12(0x003D, "AES256-SHA256", "TLS_RSA_WITH_AES_256_CBC_SHA256", KxRSA),
	tls12(0x003C, "AES128-SHA256", "TLS_RSA_WITH_AES_128_CBC_SHA256", KxRSA),
	tls12(0x00C0, "CAMELLIA256-SHA256", "TLS_RSA_WITH_CAMELLIA_256_CBC_SHA256", KxRSA),
	tls12(0x00BA, "CAMELLIA128-SHA256", "TLS_RSA_WITH_CAMELLIA_128_CBC_SHA256", KxRSA),
	legacy(0x0035, "AES256-SHA", "TLS_RSA_WITH_AES_256_CBC_SHA", KxRSA),
	legacy(0x0084, "CAMELLIA256-SHA", "TLS_RSA_WITH_CAMELLIA_256_CBC_SHA", KxRSA),
	legacy(0x002F, "AES128-SHA", "TLS_RSA_WITH_AES_128_CBC_SHA", KxRSA),
	legacy(0x0096, "SEED-SHA", "TLS_RSA_WITH_SEED_CBC_SHA", KxRSA),
	legacy(0x0041, "CAMELLIA128-SHA", "TLS_RSA_WITH_CAMELLIA_128_CBC_SHA", KxRSA),
	legacy(0x0007, "IDEA-CBC-SHA", "TLS_RSA_WITH_IDEA_CBC_SHA", KxRSA),
	legacy(0x008D, "PSK-AES256-CBC-SHA", "TLS_PSK_WITH_AES_256_CBC_SHA", KxPSK),
	legacy(0x008C, "PSK-AES128-CBC-SHA", "TLS_PSK_WITH_AES_128_CBC_SHA", KxPSK),
	legacy(0xC022, "SRP-DSS-AES-256-CBC-SHA", "TLS_SRP_SHA_DSS_WITH_AES_256_CBC_SHA", KxSRP),
	legacy(0xC021, "SRP-RSA-AES-256-CBC-SHA", "TLS_SRP_SHA_RSA_WITH_AES_256_CBC_SHA", KxSRP),
	legacy(0xC020, "SRP-AES-256-CBC-SHA", "TLS_SRP_SHA_WITH_AES_256_CBC_SHA", KxSRP),
	legacy(0xC01F, "SRP-DSS-AES-128-CBC-SHA", "TLS_SRP_SHA_DSS_WITH_AES_128_CBC_SHA", KxSRP),
	legacy(0xC01E, "SRP-RSA-AES-128-CBC-SHA", "TLS_SRP_SHA_RSA_WITH_AES_128_CBC_SHA", KxSRP),
	legacy(0xC01D, "SRP-AES-128-CBC-SHA", "TLS_SRP_SHA_WITH_AES_128_CBC_SHA", KxSRP),
	legacy(0xC012, "ECDHE-RSA-DES-CBC3-SHA", "TLS_ECDHE_RSA_WITH_3DES_EDE_CBC_SHA", KxECDHE),
	legacy(0xC008, "ECDHE-ECDSA-DES-CBC3-SHA", "TLS_ECDHE_ECDSA_WITH_3DES_EDE_CBC_SHA", KxECDHE),
	legacy(0x0016, "EDH-RSA-DES-CBC3-SHA", "TLS_DHE_RSA_WITH_3DES_EDE_CBC_SHA", KxDHE),
	legacy(0x0013, "EDH-DSS-DES-CBC3-SHA", "TLS_DHE_DSS_WITH_3DES_EDE_CBC_SHA", KxDHE),
	legacy(0xC017, "AECDH-DES-CBC3-SHA", "TLS_ECDH_anon_WITH_3DES_EDE_CBC_SHA", KxECAnon),
	legacy(0x001B, "ADH-DES-CBC3-SHA", "TLS_DH_anon_WITH_3DES_EDE_CBC_SHA", KxDHAnon),
	legacy(0xC00D, "ECDH-RSA-DES-CBC3-SHA", "TLS_ECDH_RSA_WITH_3DES_EDE_CBC_SHA", KxECDH),
	legacy(0xC003, "ECDH-ECDSA-DES-CBC3-SHA", "TLS_ECDH_ECDSA_WITH_3DES_EDE_CBC_SHA", KxECDH),
	legacy(0x0010, "DH-RSA-DES-CBC3-SHA", "TLS_DH_RSA_WITH_3DES_EDE_CBC_SHA", KxDH),
	legacy(0x000D, "DH-DSS-DES-CBC3-SHA", "TLS_DH_DSS_WITH_3DES_EDE_CBC_SHA", KxDH),
	legacy(0x000A, "DES-CBC3-SHA", "TLS_RSA_WITH_3DES_EDE_CBC_SHA", KxRSA),
	legacy(0x008B, "PSK-3DES-EDE-CBC-SHA", "TLS_PSK_WITH_3DES_EDE_CBC_SHA", KxPSK),
	legacy(0xC01C, "SRP-DSS-3DES-EDE-CBC-SHA", "TLS_SRP_SHA_DSS_WITH_3DES_EDE_CBC_SHA", KxSRP),
	legacy(0xC01B, "SRP-RSA-3DES-EDE-CBC-SHA", "TLS_SRP_SHA_RSA_WITH_3DES_EDE_CBC_SHA", KxSRP),
	legacy(0xC01A, "SRP-3DES-EDE-CBC-SHA", "TLS_SRP_SHA_WITH_3DES_EDE_CBC_SHA", KxSRP),
	legacy(0xC011, "ECDHE-RSA-RC4-SHA", "TLS_ECDHE_RSA_WITH_RC4_128_SHA", KxECDHE),
	legacy(0xC007, "ECDHE-ECDSA-RC4-SHA", "TLS_ECDHE_ECDSA_WITH_RC4_128_SHA", KxECDHE),
	legacy(0xC016, "AECDH-RC4-SHA", "TLS_ECDH_anon_WITH_RC4_128_SHA", KxECAnon),
	legacy(0x0018, "ADH-RC4-MD5", "TLS_DH_anon_WITH_RC4_128_MD5", KxDHAnon),
	legacy(0xC00C, "ECDH-RSA-RC4-SHA", "TLS_ECDH_RSA_WITH_RC4_128_SHA", KxECDH),
	legacy(0xC002, "ECDH-ECDSA-RC4-SHA", "TLS_ECDH_ECDSA_WITH_RC4_128_SHA", KxECDH),
	legacy(0x0005, "RC4-SHA", "TLS_RSA_WITH_RC4_128_SHA", KxRSA),
	legacy(0x0004, "RC4-MD5", "TLS_RSA_WITH_RC4_128_MD5", KxRSA),
	legacy(0x008A, "PSK-RC4-SHA", "TLS_PSK_WITH_RC4_128_SHA", KxPSK),
	legacy(0x0015, "EDH-RSA-DES-CBC-SHA", "TLS_DHE_RSA_WITH_DES_CBC_SHA", KxDHE),
	legacy(0x0012, "EDH-DSS-DES-CBC-SHA", "TLS_DHE_DSS_WITH_DES_CBC_SHA", KxDHE),
	legacy(0x001A, "ADH-DES-CBC-SHA", "TLS_DH_anon_WITH_DES_CBC_SHA", KxDHAnon),
	legacy(0x000F, "DH-RSA-DES-CBC-SHA", "TLS_DH_RSA_WITH_DES_CBC_SHA", KxDH),
	legacy(0x000C, "DH-DSS-DES-CBC-SHA", "TLS_DH_DSS_WITH_DES_CBC_SHA", KxDH),
	legacy(0x0009, "DES-CBC-SHA", "TLS_RSA_WITH_DES_CBC_SHA", KxRSA),
	legacy(0x0014, "EXP-EDH-RSA-DES-CBC-SHA", "TLS_DHE_RSA_EXPORT_WITH_DES40_CBC_SHA", KxDHE),
	legacy(0x0011, "EXP-EDH-DSS-DES-CBC-SHA", "TLS_DHE_DSS_EXPORT_WITH_DES40_CBC_SHA", KxDHE),
	legacy(0x0019, "EXP-ADH-DES-CBC-SHA", "TLS_DH_anon_EXPORT_WITH_DES40_CBC_SHA", KxDHAnon),
	legacy(0x000E, "EXP-DH-RSA-DES-CBC-SHA", "TLS_DH_RSA_EXPORT_WITH_DES40_CBC_SHA", KxDH),
	legacy(0x000B, "EXP-DH-DSS-DES-CBC-SHA", "TLS_DH_DSS_EXPORT_WITH_DES40_CBC_SHA", KxDH),
	legacy(0x0008, "EXP-DES-CBC-SHA", "TLS_RSA_EXPORT_WITH_DES40_CBC_SHA", KxRSA),
	legacy(0x0006, "EXP-RC2-CBC-MD5", "TLS_RSA_EXPORT_WITH_RC2_CBC_40_MD5", KxRSA),
	legacy(0x0017, "EXP-ADH-RC4-MD5", "TLS_DH_anon_EXPORT_WITH_RC4_40_MD5", KxDHAnon),
	legacy(0x0003, "EXP-RC4-MD5", "TLS_RSA_EXPORT_WITH_RC4_40_MD5", KxRSA),
	legacy(0xC010, "ECDHE-RSA-NULL-SHA", "TLS_ECDHE_RSA_WITH_NULL_SHA", KxECDHE),
	legacy(0xC006, "ECDHE-ECDSA-NULL-SHA", "TLS_ECDHE_ECDSA_WITH_NULL_SHA", KxECDHE),
	legacy(0xC015, "AECDH-NULL-SHA", "TLS_ECDH_anon_WITH_NULL_SHA", KxECAnon),
	legacy(0xC00B, "ECDH-RSA-NULL-SHA", "TLS_ECDH_RSA_WITH_NULL_SHA", KxECDH),
	legacy(0xC001, "ECDH-ECDSA-NULL-SHA", "TLS_ECDH_ECDSA_WITH_NULL_SHA", KxECDH),
	tls12(0x003B, "NULL-SHA256", "TLS_RSA_WITH_NULL_SHA256", KxRSA),
	legacy(0x0002, "NULL-SHA", "TLS_RSA_WITH_NULL_SHA", KxRSA),
	legacy(0x0001, "NULL-MD5", "TLS_RSA_WITH_NULL_MD5", KxRSA),
}

var (
	byName = map[string]Suite{}
	byID   = map[uint16]Suite{}
)

func init() {
	for _, s := range registry {
		byName[s.Name] = s
		byName[s.IANA] = s
		byID[s.ID] = s
	}
}

// All returns every registered suite in registry order.
func All() []Suite {
	out := make([]Suite, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered suite names in registry order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, s := range registry {
		out = append(out, s.Name)
	}
	return out
}

// Lookup resolves an openssl-style or IANA name.
func Lookup(name string) (Suite, bool) {
	s, ok := byName[strings.TrimSpace(name)]
	return s, ok
}

func ByID(id uint16) (Suite, bool) {
	s, ok := byID[id]
	return s, ok
}

// NameForID falls back to a hex label for suites missing from the registry.
func NameForID(id uint16) string {
	if s, ok := byID[id]; ok {
		return s.Name
	}
	return fmt.Sprintf("UNKNOWN-0x%04X", id)
}

// SortedNames returns names in stable lexical order.
func SortedNames(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

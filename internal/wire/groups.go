package wire

import "fmt"

const (
	groupP256      uint16 = 23
	groupP384      uint16 = 24
	groupP521      uint16 = 25
	groupX25519    uint16 = 29
	groupX448      uint16 = 30
	groupFFDHE2048 uint16 = 256
	groupFFDHE3072 uint16 = 257
	groupFFDHE4096 uint16 = 258
	groupFFDHE6144 uint16 = 259
	groupFFDHE8192 uint16 = 260
)

type groupInfo struct {
	name string
	bits int
	// ffdhe groups are finite-field, everything else is elliptic.
	finite bool
}

var namedGroups = map[uint16]groupInfo{
	19:             {name: "P-192", bits: 192},
	21:             {name: "P-224", bits: 224},
	22:             {name: "secp256k1", bits: 256},
	groupP256:      {name: "P-256", bits: 256},
	groupP384:      {name: "P-384", bits: 384},
	groupP521:      {name: "P-521", bits: 521},
	26:             {name: "brainpoolP256r1", bits: 256},
	27:             {name: "brainpoolP384r1", bits: 384},
	28:             {name: "brainpoolP512r1", bits: 512},
	groupX25519:    {name: "X25519", bits: 253},
	groupX448:      {name: "X448", bits: 448},
	groupFFDHE2048: {name: "ffdhe2048", bits: 2048, finite: true},
	groupFFDHE3072: {name: "ffdhe3072", bits: 3072, finite: true},
	groupFFDHE4096: {name: "ffdhe4096", bits: 4096, finite: true},
	groupFFDHE6144: {name: "ffdhe6144", bits: 6144, finite: true},
	groupFFDHE8192: {name: "ffdhe8192", bits: 8192, finite: true},
}

func lookupGroup(id uint16) groupInfo {
	if g, ok := namedGroups[id]; ok {
		return g
	}
	return groupInfo{name: fmt.Sprintf("group-0x%04x", id)}
}

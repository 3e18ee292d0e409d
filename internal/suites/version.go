package suites

import (
	"fmt"
	"strings"
)

// Version is a TLS/SSL protocol version in its wire encoding.
type Version uint16

const (
	SSLv3  Version = 0x0300
	TLSv10 Version = 0x0301
	TLSv11 Version = 0x0302
	TLSv12 Version = 0x0303
	TLSv13 Version = 0x0304
)

// AllVersions is the fallback order: oldest first.
var AllVersions = []Version{SSLv3, TLSv10, TLSv11, TLSv12, TLSv13}

func (v Version) String() string {
	switch v {
	case SSLv3:
		return "SSLv3"
	case TLSv10:
		return "TLSv1.0"
	case TLSv11:
		return "TLSv1.1"
	case TLSv12:
		return "TLSv1.2"
	case TLSv13:
		return "TLSv1.3"
	default:
		return fmt.Sprintf("0x%04x", uint16(v))
	}
}

// ParseVersion accepts the String form plus the usual openssl spellings
// ("tls1", "tls1_2", "TLSv1").
func ParseVersion(s string) (Version, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", ".", "v", "", " ", "").Replace(key)
	switch key {
	case "ssl3", "ssl3.0":
		return SSLv3, nil
	case "tls1", "tls1.0", "tls10":
		return TLSv10, nil
	case "tls1.1", "tls11":
		return TLSv11, nil
	case "tls1.2", "tls12":
		return TLSv12, nil
	case "tls1.3", "tls13":
		return TLSv13, nil
	}
	return 0, fmt.Errorf("unknown protocol version %q", s)
}

// ParseVersions parses a list and returns it in fallback order without
// duplicates.
func ParseVersions(list []string) ([]Version, error) {
	seen := map[Version]bool{}
	for _, s := range list {
		for _, part := range strings.Split(s, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			v, err := ParseVersion(part)
			if err != nil {
				return nil, err
			}
			seen[v] = true
		}
	}
	var out []Version
	for _, v := range AllVersions {
		if seen[v] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

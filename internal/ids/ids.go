package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ShortLen is how many characters of an ID listings show.
const ShortLen = 8

// New returns a random 16-character hex ID.
func New() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

func Short(id string) string {
	if len(id) <= ShortLen {
		return id
	}
	return id[:ShortLen]
}

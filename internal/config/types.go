package config

import (
	"fmt"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/probe"
)

const CurrentVersion = 1

// MaxScans is how many scan records the history keeps.
const MaxScans = 50

type Config struct {
	Version  int          `json:"version"`
	Defaults Defaults     `json:"defaults"`
	Scans    []ScanRecord `json:"scans"`
}

// Defaults back the scan flags the user did not set explicitly. Zero values
// mean "use the built-in default".
type Defaults struct {
	Timeout   Duration `json:"timeout,omitempty"`
	Rounds    int      `json:"rounds,omitempty"`
	Toolchain string   `json:"toolchain,omitempty"`
	Proxy     string   `json:"proxy,omitempty"`
	Workers   int      `json:"workers,omitempty"`
}

type ScanRecord struct {
	ID        string         `json:"id"`
	Target    string         `json:"target"`
	StartedAt time.Time      `json:"startedAt"`
	Toolchain string         `json:"toolchain"`
	Benchmark bool           `json:"benchmark,omitempty"`
	Ranked    []probe.Ranked `json:"ranked"`
}

// Duration stores a time.Duration as "10s" rather than nanoseconds.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

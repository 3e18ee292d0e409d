package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/stdtls"
	"github.com/baaaaaaaka/cipherrank/internal/wire"
)

// AddScan appends rec and drops the oldest records beyond MaxScans.
func (c *Config) AddScan(rec ScanRecord) {
	c.Scans = append(c.Scans, rec)
	if over := len(c.Scans) - MaxScans; over > 0 {
		c.Scans = append([]ScanRecord(nil), c.Scans[over:]...)
	}
}

// FindScan matches an exact ID first, then a unique ID prefix.
func (c Config) FindScan(ref string) (ScanRecord, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ScanRecord{}, false
	}
	var (
		match ScanRecord
		n     int
	)
	for _, s := range c.Scans {
		if s.ID == ref {
			return s, true
		}
		if strings.HasPrefix(s.ID, ref) {
			match = s
			n++
		}
	}
	return match, n == 1
}

func (c *Config) RemoveScan(id string) bool {
	for i := range c.Scans {
		if c.Scans[i].ID != id {
			continue
		}
		c.Scans = append(c.Scans[:i], c.Scans[i+1:]...)
		return true
	}
	return false
}

func (r ScanRecord) Scan() probe.Scan {
	return probe.Scan{
		Target:    r.Target,
		Toolchain: r.Toolchain,
		StartedAt: r.StartedAt,
		Ranked:    r.Ranked,
		Benchmark: r.Benchmark,
	}
}

func NewScanRecord(id string, scan probe.Scan) ScanRecord {
	return ScanRecord{
		ID:        id,
		Target:    scan.Target,
		StartedAt: scan.StartedAt,
		Toolchain: scan.Toolchain,
		Benchmark: scan.Benchmark,
		Ranked:    scan.Ranked,
	}
}

var defaultKeys = map[string]func(d *Defaults, v string) error{
	"timeout": func(d *Defaults, v string) error {
		t, err := time.ParseDuration(v)
		if err != nil || t < 0 {
			return fmt.Errorf("invalid timeout %q", v)
		}
		d.Timeout = Duration(t)
		return nil
	},
	"rounds": func(d *Defaults, v string) error {
		n, err := positive(v)
		d.Rounds = n
		return err
	},
	"toolchain": func(d *Defaults, v string) error {
		v = strings.ToLower(v)
		if v != wire.Name && v != stdtls.Name {
			return fmt.Errorf("unknown toolchain %q (want %s or %s)", v, wire.Name, stdtls.Name)
		}
		d.Toolchain = v
		return nil
	},
	"proxy": func(d *Defaults, v string) error {
		d.Proxy = v
		return nil
	},
	"workers": func(d *Defaults, v string) error {
		n, err := positive(v)
		d.Workers = n
		return err
	},
}

// DefaultKeys lists the settable keys, sorted.
func DefaultKeys() []string {
	keys := make([]string, 0, len(defaultKeys))
	for k := range defaultKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns one default by key. An empty value resets it.
func (d *Defaults) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	set, ok := defaultKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(DefaultKeys(), ", "))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		d.reset(key)
		return nil
	}
	return set(d, value)
}

func (d *Defaults) reset(key string) {
	switch key {
	case "timeout":
		d.Timeout = 0
	case "rounds":
		d.Rounds = 0
	case "toolchain":
		d.Toolchain = ""
	case "proxy":
		d.Proxy = ""
	case "workers":
		d.Workers = 0
	}
}

func positive(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", v)
	}
	return n, nil
}

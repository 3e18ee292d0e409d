package config

import (
	"fmt"
	"testing"
	"time"
)

func TestAddScanKeepsNewest(t *testing.T) {
	var cfg Config
	for i := range MaxScans + 5 {
		cfg.AddScan(ScanRecord{ID: fmt.Sprintf("s%03d", i)})
	}
	if len(cfg.Scans) != MaxScans {
		t.Fatalf("len=%d want %d", len(cfg.Scans), MaxScans)
	}
	if cfg.Scans[0].ID != "s005" || cfg.Scans[MaxScans-1].ID != fmt.Sprintf("s%03d", MaxScans+4) {
		t.Fatalf("kept wrong window: first=%s last=%s", cfg.Scans[0].ID, cfg.Scans[MaxScans-1].ID)
	}
}

func TestFindScan(t *testing.T) {
	cfg := Config{Scans: []ScanRecord{{ID: "ab12"}, {ID: "ab34"}, {ID: "cd56"}}}

	if got, ok := cfg.FindScan("ab34"); !ok || got.ID != "ab34" {
		t.Fatalf("exact match: ok=%v got=%#v", ok, got)
	}
	if got, ok := cfg.FindScan(" cd "); !ok || got.ID != "cd56" {
		t.Fatalf("prefix match: ok=%v got=%#v", ok, got)
	}
	if _, ok := cfg.FindScan("ab"); ok {
		t.Fatalf("ambiguous prefix should not match")
	}
	if _, ok := cfg.FindScan(""); ok {
		t.Fatalf("empty ref should not match")
	}
}

func TestRemoveScan(t *testing.T) {
	cfg := Config{Scans: []ScanRecord{{ID: "a"}, {ID: "b"}}}
	if cfg.RemoveScan("missing") {
		t.Fatalf("RemoveScan(missing) = true")
	}
	if !cfg.RemoveScan("a") || len(cfg.Scans) != 1 || cfg.Scans[0].ID != "b" {
		t.Fatalf("unexpected scans after remove: %#v", cfg.Scans)
	}
}

func TestDefaultsSet(t *testing.T) {
	var d Defaults
	for _, kv := range [][2]string{
		{"timeout", "2s"},
		{"Rounds", "5"},
		{"toolchain", "STDTLS"},
		{"proxy", "127.0.0.1:1080"},
		{"workers", "4"},
	} {
		if err := d.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%s): %v", kv[0], err)
		}
	}
	want := Defaults{Timeout: Duration(2 * time.Second), Rounds: 5, Toolchain: "stdtls", Proxy: "127.0.0.1:1080", Workers: 4}
	if d != want {
		t.Fatalf("got %#v want %#v", d, want)
	}

	if err := d.Set("proxy", ""); err != nil || d.Proxy != "" {
		t.Fatalf("reset proxy: %v %#v", err, d)
	}

	for _, kv := range [][2]string{
		{"colour", "red"},
		{"timeout", "fast"},
		{"rounds", "0"},
		{"workers", "-1"},
		{"toolchain", "openssl"},
	} {
		if err := d.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("Set(%s, %s) should fail", kv[0], kv[1])
		}
	}
}

package suites

import (
	"encoding/json"
	"testing"
)

func TestRegistryUnique(t *testing.T) {
	ids := map[uint16]string{}
	names := map[string]bool{}
	for _, s := range All() {
		if prev, ok := ids[s.ID]; ok {
			t.Fatalf("id 0x%04x used by %s and %s", s.ID, prev, s.Name)
		}
		ids[s.ID] = s.Name
		if names[s.Name] {
			t.Fatalf("duplicate name %s", s.Name)
		}
		names[s.Name] = true
	}
}

func TestLookupByEitherName(t *testing.T) {
	a, ok := Lookup("ECDHE-RSA-AES256-GCM-SHA384")
	if !ok || a.ID != 0xC030 {
		t.Fatalf("lookup openssl name: %#v %v", a, ok)
	}
	b, ok := Lookup("TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384")
	if !ok || b.Name != a.Name {
		t.Fatalf("lookup iana name: %#v %v", b, ok)
	}
	if NameForID(0xFFFF) != "UNKNOWN-0xFFFF" {
		t.Fatalf("unexpected fallback name %q", NameForID(0xFFFF))
	}
}

func TestSupports(t *testing.T) {
	cases := []struct {
		name string
		v    Version
		want bool
	}{
		{"AES128-SHA", SSLv3, true},
		{"AES128-SHA", TLSv12, true},
		{"AES128-SHA", TLSv13, false},
		{"ECDHE-RSA-AES128-SHA", SSLv3, false},
		{"ECDHE-RSA-AES128-GCM-SHA256", TLSv11, false},
		{"ECDHE-RSA-AES128-GCM-SHA256", TLSv12, true},
		{"TLS_AES_128_GCM_SHA256", TLSv12, false},
		{"TLS_AES_128_GCM_SHA256", TLSv13, true},
		{"EXP-RC4-MD5", SSLv3, true},
		{"EXP-RC4-MD5", TLSv10, true},
		{"EXP-RC4-MD5", TLSv11, false},
		{"EXP-EDH-RSA-DES-CBC-SHA", TLSv12, false},
	}
	for _, tc := range cases {
		s, ok := Lookup(tc.name)
		if !ok {
			t.Fatalf("missing %s", tc.name)
		}
		if got := s.Supports(tc.v); got != tc.want {
			t.Fatalf("%s supports %s = %v, want %v", tc.name, tc.v, got, tc.want)
		}
	}
}

func TestEphemeral(t *testing.T) {
	for name, want := range map[string]bool{
		"AES128-SHA":             false,
		"DHE-RSA-AES128-SHA":     true,
		"ECDHE-RSA-AES128-SHA":   true,
		"ECDH-RSA-AES128-SHA":    false,
		"TLS_AES_256_GCM_SHA384": true,
	} {
		s, _ := Lookup(name)
		if s.Ephemeral() != want {
			t.Fatalf("%s ephemeral = %v", name, !want)
		}
	}
}

func TestParseVersions(t *testing.T) {
	got, err := ParseVersions([]string{"tls1.2,TLSv1", "ssl3", "tls1_2"})
	if err != nil {
		t.Fatalf("ParseVersions: %v", err)
	}
	want := []Version{SSLv3, TLSv10, TLSv12}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if _, err := ParseVersions([]string{"tls2"}); err == nil {
		t.Fatalf("expected error for unknown version")
	}
}

func TestVersionText(t *testing.T) {
	b, err := json.Marshal([]Version{TLSv10, TLSv13})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["TLSv1.0","TLSv1.3"]` {
		t.Fatalf("json = %s", b)
	}
	var back []Version
	if err := json.Unmarshal(b, &back); err != nil || len(back) != 2 || back[1] != TLSv13 {
		t.Fatalf("unmarshal: %v %v", back, err)
	}
}

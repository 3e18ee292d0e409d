package probe

import (
	"context"
	"testing"
	"time"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

// stepClock hands out the given offsets (in microseconds) one per call.
func stepClock(offsets ...int64) func() time.Time {
	base := time.Unix(0, 0)
	i := 0
	return func() time.Time {
		if i >= len(offsets) {
			return base.Add(time.Duration(offsets[len(offsets)-1]) * time.Microsecond)
		}
		t := base.Add(time.Duration(offsets[i]) * time.Microsecond)
		i++
		return t
	}
}

func singleVersionServer() *fakeServer {
	return &fakeServer{
		universe: testUniverse,
		versions: []suites.Version{suites.TLSv12},
		prefs:    map[suites.Version][]string{suites.TLSv12: testUniverse},
	}
}

func TestMeasureStopsAtFirstFailure(t *testing.T) {
	srv := singleVersionServer()
	srv.failAfter = 2

	b := &Benchmark{Driver: newDriver(srv), Rounds: 30}
	// attempt 1: 0 -> 100, attempt 2: 100 -> 400, attempt 3 fails.
	b.now = stepClock(0, 100, 100, 400, 400, 450)

	micros, ok := b.Measure(context.Background(), "example.com:443", "AES128-SHA")
	if !ok {
		t.Fatalf("expected a measurement")
	}
	if micros != 200 {
		t.Fatalf("mean = %d, want 200", micros)
	}
	if srv.callCount() != 3 {
		t.Fatalf("expected 3 handshakes, got %d", srv.callCount())
	}
}

func TestMeasureDefaultsToThirtyRounds(t *testing.T) {
	srv := singleVersionServer()
	b := &Benchmark{Driver: newDriver(srv)}
	if _, ok := b.Measure(context.Background(), "example.com:443", "AES256-SHA"); !ok {
		t.Fatalf("expected a measurement")
	}
	if srv.callCount() != DefaultBenchmarkRounds {
		t.Fatalf("expected %d handshakes, got %d", DefaultBenchmarkRounds, srv.callCount())
	}
}

func TestMeasureNoCompletedAttempt(t *testing.T) {
	srv := singleVersionServer()
	srv.refuse = true
	b := &Benchmark{Driver: newDriver(srv), Rounds: 5}
	if _, ok := b.Measure(context.Background(), "example.com:443", "AES256-SHA"); ok {
		t.Fatalf("expected no measurement")
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	srv := singleVersionServer()
	b := &Benchmark{Driver: newDriver(srv), Rounds: 2}
	in := []Ranked{
		{Rank: 1, Cipher: "AES256-SHA"},
		{Rank: 2, Cipher: "AES128-SHA"},
	}
	out := b.Apply(context.Background(), "example.com:443", in)

	if len(out) != 2 || out[0].Cipher != "AES256-SHA" || out[1].Cipher != "AES128-SHA" {
		t.Fatalf("order changed: %#v", out)
	}
	for _, r := range out {
		if r.BenchmarkMicros == nil {
			t.Fatalf("missing benchmark for %s", r.Cipher)
		}
	}
	if in[0].BenchmarkMicros != nil {
		t.Fatalf("input slice was modified")
	}
}

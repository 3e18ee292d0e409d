package probe

import (
	"context"
	"log/slog"
	"time"
)

const DefaultBenchmarkRounds = 30

// Benchmark measures average handshake latency for single-cipher pools.
type Benchmark struct {
	Driver *Driver
	Rounds int
	Logger *slog.Logger

	now func() time.Time
}

// Measure repeats the handshake and returns the mean in microseconds over the
// attempts that completed before the first failure. ok is false when not even
// one attempt succeeded.
func (b *Benchmark) Measure(ctx context.Context, target string, cipher string) (micros int64, ok bool) {
	rounds := b.Rounds
	if rounds <= 0 {
		rounds = DefaultBenchmarkRounds
	}
	now := b.now
	if now == nil {
		now = time.Now
	}

	pool := NewPool([]string{cipher})
	var total time.Duration
	completed := 0
	for i := 0; i < rounds; i++ {
		if ctx.Err() != nil {
			break
		}
		start := now()
		out := b.Driver.Negotiate(ctx, target, pool)
		elapsed := now().Sub(start)
		if !out.OK() {
			b.logger().Debug("benchmark attempt failed",
				"cipher", cipher, "attempt", i+1, "outcome", out.Kind.String(), "reason", out.Reason)
			break
		}
		total += elapsed
		completed++
	}
	if completed == 0 {
		return 0, false
	}
	return total.Microseconds() / int64(completed), true
}

// Apply fills BenchmarkMicros on a copy of ranked. Order is untouched.
func (b *Benchmark) Apply(ctx context.Context, target string, ranked []Ranked) []Ranked {
	out := make([]Ranked, len(ranked))
	copy(out, ranked)
	for i := range out {
		if ctx.Err() != nil {
			break
		}
		if micros, ok := b.Measure(ctx, target, out[i].Cipher); ok {
			v := micros
			out[i].BenchmarkMicros = &v
		}
	}
	return out
}

func (b *Benchmark) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return discardLogger
}

package probe

import (
	"context"
	"log/slog"
)

// Resolver discovers the server preference order by repeatedly asking the
// driver for its pick and excluding it from the next round.
type Resolver struct {
	Driver *Driver
	Logger *slog.Logger
	// OnRound is called after each ranked entry is appended.
	OnRound func(Ranked)
	// OnAttempt is called before each round with the pool size.
	OnAttempt func(round int, remaining int)
}

// Resolve starts from universe and returns the ranked sequence. A round that
// ends in Rejected or ConnectionFailure ends the enumeration; so does
// cancellation, in which case only fully classified rounds are returned.
func (r *Resolver) Resolve(ctx context.Context, target string, universe []string) []Ranked {
	log := r.logger()
	pool := NewPool(universe)
	ranked := []Ranked{}

	for rank := 1; ; rank++ {
		if pool.Empty() {
			log.Debug("candidate pool exhausted", "rounds", rank-1)
			return ranked
		}
		if ctx.Err() != nil {
			return ranked
		}
		if r.OnAttempt != nil {
			r.OnAttempt(rank, pool.Len())
		}

		out := r.Driver.Negotiate(ctx, target, pool)
		if ctx.Err() != nil {
			return ranked
		}
		if !out.OK() {
			log.Debug("enumeration finished",
				"round", rank, "outcome", out.Kind.String(), "reason", out.Reason)
			return ranked
		}
		if pool.Excluded(out.Cipher) {
			log.Debug("server repeated an excluded cipher", "round", rank, "cipher", out.Cipher)
			return ranked
		}

		entry := Ranked{
			Rank:      rank,
			Cipher:    out.Cipher,
			Protocols: out.Protocols,
			PFS:       out.PFS,
		}
		ranked = append(ranked, entry)
		log.Debug("ranked", "rank", rank, "cipher", out.Cipher, "protocols", out.ProtocolNames())
		if r.OnRound != nil {
			r.OnRound(entry)
		}
		pool = pool.Without(out.Cipher)
	}
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return discardLogger
}

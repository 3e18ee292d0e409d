package probe

import (
	"context"
	"log/slog"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

// Driver tries one pool across protocol versions, oldest first.
type Driver struct {
	Prober *Prober
	// Versions restricts the attempted versions; empty means all the
	// toolchain supports.
	Versions []suites.Version
	Logger   *slog.Logger
}

// EffectiveVersions is the fixed attempt order for this driver.
func (d *Driver) EffectiveVersions() []suites.Version {
	supported := map[suites.Version]bool{}
	for _, v := range d.Prober.Toolchain.Versions() {
		supported[v] = true
	}
	wanted := map[suites.Version]bool{}
	for _, v := range d.Versions {
		wanted[v] = true
	}

	var out []suites.Version
	for _, v := range suites.AllVersions {
		if !supported[v] {
			continue
		}
		if len(wanted) > 0 && !wanted[v] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Negotiate returns a merged Success (first successful cipher plus every
// later version that picked the same cipher), or Rejected / ConnectionFailure.
func (d *Driver) Negotiate(ctx context.Context, target string, pool Pool) Outcome {
	var (
		merged     Outcome
		found      bool
		sawSession bool
		lastFail   Outcome
	)
	lastFail = Outcome{Kind: ConnectionFailure, Reason: "no protocol version attempted"}

	for _, v := range d.EffectiveVersions() {
		if ctx.Err() != nil {
			return Outcome{Kind: ConnectionFailure, Reason: ctx.Err().Error(), Err: ctx.Err()}
		}

		out := d.Prober.Probe(ctx, target, pool, v)
		switch out.Kind {
		case Success:
			if !found {
				merged = out
				merged.Protocols = append([]suites.Version(nil), out.Protocols...)
				found = true
				continue
			}
			if out.Cipher != merged.Cipher {
				d.logger().Debug("version picked a different cipher, left for a later round",
					"version", v.String(), "cipher", out.Cipher, "kept", merged.Cipher)
				continue
			}
			merged.Protocols = appendVersion(merged.Protocols, out.Protocols...)
			if out.PFS != nil {
				merged.PFS = out.PFS
			}
		case Rejected:
			sawSession = true
			lastFail = out
		default:
			if !sawSession {
				lastFail = out
			}
		}
	}

	// A round cut short by cancellation has not completed classification.
	if ctx.Err() != nil {
		return Outcome{Kind: ConnectionFailure, Reason: ctx.Err().Error(), Err: ctx.Err()}
	}
	if found {
		return merged
	}
	if sawSession {
		return Outcome{Kind: Rejected, Reason: lastFail.Reason}
	}
	return lastFail
}

func appendVersion(list []suites.Version, vs ...suites.Version) []suites.Version {
	for _, v := range vs {
		dup := false
		for _, have := range list {
			if have == v {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, v)
		}
	}
	return list
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return discardLogger
}

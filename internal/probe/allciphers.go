package probe

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

// ScanAll tests every cipher of universe on its own and reports pass/fail in
// lexical order. workers <= 1 keeps the probes sequential. The returned error
// only aggregates connection failures for diagnostics; the checks are always
// complete for the ciphers that were attempted.
func ScanAll(ctx context.Context, d *Driver, target string, universe []string, workers int) ([]CipherCheck, error) {
	names := suites.SortedNames(universe)
	checks := make([]CipherCheck, len(names))
	if workers <= 0 {
		workers = 1
	}

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			checks[i] = CipherCheck{Cipher: name}
			if gctx.Err() != nil {
				return nil
			}
			out := d.Negotiate(gctx, target, NewPool([]string{name}))
			switch out.Kind {
			case Success:
				checks[i].Accepted = true
				checks[i].Protocols = out.Protocols
				checks[i].PFS = out.PFS
			case ConnectionFailure:
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %s", name, out.Reason))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return checks, errs.ErrorOrNil()
}

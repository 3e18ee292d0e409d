package probe

import (
	"fmt"
	"net"
	"strings"
)

// Pool is the set of suites still eligible in a round: Base minus Exclude,
// in Base order.
type Pool struct {
	base    []string
	exclude map[string]bool
}

func NewPool(base []string) Pool {
	return Pool{base: append([]string(nil), base...), exclude: map[string]bool{}}
}

// Names renders the eligible suites in priority order.
func (p Pool) Names() []string {
	out := make([]string, 0, len(p.base))
	for _, name := range p.base {
		if !p.exclude[name] {
			out = append(out, name)
		}
	}
	return out
}

func (p Pool) Contains(name string) bool {
	if p.exclude[name] {
		return false
	}
	for _, b := range p.base {
		if b == name {
			return true
		}
	}
	return false
}

func (p Pool) Excluded(name string) bool { return p.exclude[name] }

func (p Pool) Len() int { return len(p.Names()) }

func (p Pool) Empty() bool { return p.Len() == 0 }

// Without returns a copy of p that also excludes name.
func (p Pool) Without(name string) Pool {
	next := Pool{base: p.base, exclude: make(map[string]bool, len(p.exclude)+1)}
	for k := range p.exclude {
		next.exclude[k] = true
	}
	next.exclude[name] = true
	return next
}

// Spec renders the pool in openssl selection syntax, "base:!x:!y".
func (p Pool) Spec() string {
	var b strings.Builder
	b.WriteString(strings.Join(p.base, ":"))
	for _, name := range p.base {
		if p.exclude[name] {
			b.WriteString(":!")
			b.WriteString(name)
		}
	}
	return b.String()
}

func splitHostPort(target string) (string, string, error) {
	host, port, err := net.SplitHostPort(target)
	if err != nil {
		return "", "", fmt.Errorf("invalid target %q: %w", target, err)
	}
	if strings.TrimSpace(host) == "" {
		return "", "", fmt.Errorf("invalid target %q: missing host", target)
	}
	return host, port, nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cipherrank/internal/config"
	"github.com/baaaaaaaka/cipherrank/internal/dialer"
	"github.com/baaaaaaaka/cipherrank/internal/ids"
	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/report"
	"github.com/baaaaaaaka/cipherrank/internal/stdtls"
	"github.com/baaaaaaaka/cipherrank/internal/suites"
	"github.com/baaaaaaaka/cipherrank/internal/term"
	"github.com/baaaaaaaka/cipherrank/internal/tui"
	"github.com/baaaaaaaka/cipherrank/internal/wire"
)

var (
	newToolchain     = defaultToolchain
	watchScan        = tui.Watch
	stderrIsTerminal = func() bool { return term.IsTerminalFile(os.Stderr) }
	newScanID        = ids.New
	now              = time.Now
)

type scanOptions struct {
	verbose    bool
	allCiphers bool
	jsonOut    bool
	yamlOut    bool
	benchmark  bool
	tui        bool
	noSave     bool

	rounds    int
	timeout   time.Duration
	toolchain string
	proxy     string
	versions  []string
	sni       string
	workers   int
}

func bindScanFlags(cmd *cobra.Command, o *scanOptions) {
	f := cmd.Flags()
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Print the known cipher list and per-round diagnostics")
	f.BoolVarP(&o.allCiphers, "all-ciphers", "a", false, "Run the all-ciphers scan after ranking")
	f.BoolVarP(&o.jsonOut, "json", "j", false, "JSON output")
	f.BoolVar(&o.yamlOut, "yaml", false, "YAML output")
	f.BoolVarP(&o.benchmark, "benchmark", "b", false, "Measure average handshake latency per ranked cipher")
	f.BoolVar(&o.tui, "tui", false, "Live full-screen view")
	f.BoolVar(&o.noSave, "no-save", false, "Do not record the scan in history")
	f.IntVar(&o.rounds, "rounds", probe.DefaultBenchmarkRounds, "Benchmark repetitions")
	f.DurationVar(&o.timeout, "timeout", probe.DefaultTimeout, "Per-attempt timeout")
	f.StringVar(&o.toolchain, "toolchain", wire.Name, "TLS toolchain: "+wire.Name+" | "+stdtls.Name)
	f.StringVar(&o.proxy, "proxy", "", "Proxy: SOCKS5 [user:pass@]host:port or http://[user:pass@]host:port for CONNECT")
	f.StringSliceVar(&o.versions, "versions", nil, "Restrict protocol versions (e.g. tls1.2,tls1.3)")
	f.StringVar(&o.sni, "sni", "", "Override server name (default: target host)")
	f.IntVar(&o.workers, "workers", 1, "All-ciphers parallelism")

	cmd.MarkFlagsMutuallyExclusive("verbose", "all-ciphers", "json", "yaml", "tui")
}

func defaultToolchain(name string, d dialer.Dialer) (probe.Toolchain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case wire.Name:
		return wire.New(d), nil
	case stdtls.Name:
		return stdtls.New(d), nil
	default:
		return nil, fmt.Errorf("unknown toolchain %q (want %s or %s)", name, wire.Name, stdtls.Name)
	}
}

// applyDefaults fills flags the user left alone from the stored defaults.
func applyDefaults(changed func(string) bool, o *scanOptions, d config.Defaults) {
	if !changed("timeout") && d.Timeout > 0 {
		o.timeout = time.Duration(d.Timeout)
	}
	if !changed("rounds") && d.Rounds > 0 {
		o.rounds = d.Rounds
	}
	if !changed("toolchain") && d.Toolchain != "" {
		o.toolchain = d.Toolchain
	}
	if !changed("proxy") && d.Proxy != "" {
		o.proxy = d.Proxy
	}
	if !changed("workers") && d.Workers > 0 {
		o.workers = d.Workers
	}
}

func (o scanOptions) validate() error {
	if o.timeout <= 0 {
		return usageErrorf("--timeout must be positive, got %s", o.timeout)
	}
	if o.rounds <= 0 {
		return usageErrorf("--rounds must be positive, got %d", o.rounds)
	}
	if o.workers <= 0 {
		return usageErrorf("--workers must be positive, got %d", o.workers)
	}
	return nil
}

// loadConfig never fails the scan: a broken config only loses defaults and
// history.
func loadConfig(root *rootOptions, log *slog.Logger) (*config.Store, config.Config) {
	store, err := config.NewStore(root.configPath)
	if err != nil {
		log.Warn("config unavailable", "err", err)
		return nil, config.Config{}
	}
	cfg, err := store.Load()
	if err != nil {
		log.Warn("config unreadable, using built-in defaults", "path", store.Path(), "err", err)
		return store, config.Config{}
	}
	return store, cfg
}

func runScan(cmd *cobra.Command, root *rootOptions, opts scanOptions, target string) error {
	host, err := probe.ValidateTarget(target)
	if err != nil {
		return usageError(err)
	}
	target = strings.TrimSpace(target)
	versions, err := suites.ParseVersions(opts.versions)
	if err != nil {
		return usageError(err)
	}

	log := newLogger(cmd.ErrOrStderr(), opts.verbose)
	store, cfg := loadConfig(root, log)
	applyDefaults(cmd.Flags().Changed, &opts, cfg.Defaults)
	if err := opts.validate(); err != nil {
		return err
	}

	d, err := dialer.New(opts.proxy, opts.timeout)
	if err != nil {
		return usageError(err)
	}
	tc, err := newToolchain(opts.toolchain, d)
	if err != nil {
		return usageError(err)
	}

	serverName := opts.sni
	if serverName == "" {
		serverName = host
	}
	driver := &probe.Driver{
		Prober: &probe.Prober{
			Toolchain:  tc,
			Timeout:    opts.timeout,
			ServerName: serverName,
			Logger:     log,
		},
		Versions: versions,
		Logger:   log,
	}
	if len(driver.EffectiveVersions()) == 0 {
		return usageErrorf("toolchain %s supports none of the requested versions", tc.Name())
	}
	var bench *probe.Benchmark
	if opts.benchmark {
		bench = &probe.Benchmark{Driver: driver, Rounds: opts.rounds, Logger: log}
	}

	out := cmd.OutOrStdout()
	universe := tc.Ciphers()
	if opts.verbose {
		_, _ = fmt.Fprintf(out, "%d ciphers known to %s:\n", len(universe), tc.Name())
		_ = report.WriteNames(out, universe)
		_, _ = fmt.Fprintln(out)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	scan := probe.Scan{
		Target:    target,
		Toolchain: tc.Name(),
		StartedAt: now(),
		Benchmark: opts.benchmark,
	}

	if opts.tui {
		res, err := watchScan(ctx, tui.Options{
			Target:    target,
			Toolchain: tc.Name(),
			Run: func(ctx context.Context, r tui.Reporter) ([]probe.Ranked, error) {
				return rankCiphers(ctx, driver, bench, target, universe, r), nil
			},
		})
		if err != nil {
			return err
		}
		scan.Ranked = res.Ranked
		if res.Cancelled {
			log.Info("scan cancelled", "ranked", len(res.Ranked))
		}
	} else {
		prog := startProgress(cmd.ErrOrStderr(), opts, target)
		scan.Ranked = rankCiphers(ctx, driver, bench, target, universe, prog)
		prog.stop()
	}
	if ctx.Err() != nil && !opts.tui {
		log.Info("scan interrupted", "ranked", len(scan.Ranked))
	}

	if opts.allCiphers && ctx.Err() == nil {
		checks, err := probe.ScanAll(ctx, driver, target, universe, opts.workers)
		if err != nil {
			log.Debug("all-ciphers connection failures", "err", err)
		}
		scan.AllCiphers = checks
	}

	if err := writeScan(out, scan, opts); err != nil {
		return err
	}

	if !opts.noSave && store != nil {
		if err := saveScan(store, scan); err != nil {
			log.Warn("scan not saved to history", "err", err)
		}
	}
	return nil
}

// rankCiphers resolves the preference order and, when bench is set, times
// every ranked cipher.
func rankCiphers(ctx context.Context, d *probe.Driver, bench *probe.Benchmark, target string, universe []string, r tui.Reporter) []probe.Ranked {
	res := &probe.Resolver{
		Driver:    d,
		Logger:    d.Logger,
		OnRound:   r.Round,
		OnAttempt: r.Attempt,
	}
	ranked := res.Resolve(ctx, target, universe)
	if bench == nil || len(ranked) == 0 || ctx.Err() != nil {
		return ranked
	}
	r.Status("benchmarking")
	return bench.Apply(ctx, target, ranked)
}

func writeScan(w io.Writer, scan probe.Scan, opts scanOptions) error {
	switch {
	case opts.jsonOut:
		return report.WriteJSON(w, scan)
	case opts.yamlOut:
		return report.WriteYAML(w, scan)
	}
	if err := report.WriteTable(w, scan); err != nil {
		return err
	}
	if opts.allCiphers {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return report.WriteAllCiphers(w, scan.AllCiphers)
	}
	return nil
}

func saveScan(store *config.Store, scan probe.Scan) error {
	id, err := newScanID()
	if err != nil {
		return err
	}
	return store.Update(func(cfg *config.Config) error {
		cfg.AddScan(config.NewScanRecord(id, scan))
		return nil
	})
}

// spinnerProgress shows resolver progress on an interactive stderr.
type spinnerProgress struct {
	s      *spinner.Spinner
	target string
}

func startProgress(w io.Writer, opts scanOptions, target string) *spinnerProgress {
	p := &spinnerProgress{target: target}
	if opts.verbose || !stderrIsTerminal() {
		return p
	}
	p.s = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w), spinner.WithHiddenCursor(false))
	p.s.Suffix = " probing " + target
	p.s.Start()
	return p
}

func (p *spinnerProgress) setSuffix(msg string) {
	if p.s == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = " " + msg
	p.s.Unlock()
}

func (p *spinnerProgress) Round(r probe.Ranked) {
	p.setSuffix(fmt.Sprintf("%s: #%d %s", p.target, r.Rank, r.Cipher))
}

func (p *spinnerProgress) Attempt(round, remaining int) {
	p.setSuffix(fmt.Sprintf("%s: round %d, %d candidates left", p.target, round, remaining))
}

func (p *spinnerProgress) Status(msg string) {
	p.setSuffix(fmt.Sprintf("%s: %s", p.target, msg))
}

func (p *spinnerProgress) stop() {
	if p.s != nil {
		p.s.Stop()
	}
}

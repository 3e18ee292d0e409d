package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath string
}

// UsageError marks a problem with the command line itself. Execute prints
// the usage text for it.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &UsageError{Err: err}
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func Execute() int {
	return run(newRootCmd())
}

func run(cmd *cobra.Command) int {
	c, err := cmd.ExecuteC()
	if err == nil {
		return 0
	}
	var ue *UsageError
	if errors.As(err, &ue) && c != nil {
		_, _ = fmt.Fprint(c.ErrOrStderr(), c.UsageString())
	}
	return 1
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	scan := &scanOptions{}

	cmd := &cobra.Command{
		Use:           "cipherrank [flags] host:port",
		Short:         "Discover a TLS server's cipher suite preference order",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("expected exactly one target (host:port), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, *scan, args[0])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	bindScanFlags(cmd, scan)

	cmd.AddCommand(
		newCiphersCmd(opts),
		newHistoryCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

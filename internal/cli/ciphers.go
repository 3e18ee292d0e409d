package cli

import (
	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cipherrank/internal/dialer"
	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/report"
	"github.com/baaaaaaaka/cipherrank/internal/wire"
)

func newCiphersCmd(root *rootOptions) *cobra.Command {
	var toolchain string

	cmd := &cobra.Command{
		Use:   "ciphers",
		Short: "List the cipher suites a toolchain can offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := toolchain
			if !cmd.Flags().Changed("toolchain") {
				log := newLogger(cmd.ErrOrStderr(), false)
				if _, cfg := loadConfig(root, log); cfg.Defaults.Toolchain != "" {
					name = cfg.Defaults.Toolchain
				}
			}
			tc, err := newToolchain(name, dialer.Direct(probe.DefaultTimeout))
			if err != nil {
				return usageError(err)
			}
			return report.WriteNames(cmd.OutOrStdout(), tc.Ciphers())
		},
	}
	cmd.Flags().StringVar(&toolchain, "toolchain", wire.Name, "Toolchain whose universe to list")
	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cipherrank/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change stored scan defaults",
	}
	cmd.AddCommand(
		newConfigShowCmd(root),
		newConfigSetCmd(root),
	)
	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cfg, err := loadStore(root)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(cfg.Defaults, "", "  ")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", store.Path())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}

func newConfigSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a default (" + strings.Join(config.DefaultKeys(), ", ") + "); omit value to reset",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return usageErrorf("expected <key> [value], got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			err = store.Update(func(cfg *config.Config) error {
				if err := cfg.Defaults.Set(args[0], value); err != nil {
					return usageError(err)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if value == "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", args[0])
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
			}
			return err
		},
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cipherrank/internal/config"
	"github.com/baaaaaaaka/cipherrank/internal/ids"
	"github.com/baaaaaaaka/cipherrank/internal/report"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past scans",
	}
	cmd.AddCommand(
		newHistoryListCmd(root),
		newHistoryShowCmd(root),
		newHistoryRemoveCmd(root),
	)
	return cmd
}

func loadStore(root *rootOptions) (*config.Store, config.Config, error) {
	store, err := config.NewStore(root.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	return store, cfg, nil
}

func newHistoryListCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scans, newest last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := loadStore(root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				scans := cfg.Scans
				if scans == nil {
					scans = []config.ScanRecord{}
				}
				b, err := json.MarshalIndent(scans, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}
			if len(cfg.Scans) == 0 {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No scans recorded yet.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tSTARTED\tTARGET\tTOOLCHAIN\tRANKED\tTOP")
			for _, s := range cfg.Scans {
				top := "-"
				if len(s.Ranked) > 0 {
					top = s.Ranked[0].Cipher
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					ids.Short(s.ID),
					s.StartedAt.Local().Format(historyTimeLayout),
					s.Target,
					s.Toolchain,
					len(s.Ranked),
					top,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func newHistoryShowCmd(root *rootOptions) *cobra.Command {
	var asJSON, asYAML bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the ranking of a recorded scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadStore(root)
			if err != nil {
				return err
			}
			rec, ok := cfg.FindScan(args[0])
			if !ok {
				return fmt.Errorf("no unique scan matches %q", args[0])
			}
			scan := rec.Scan()
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return report.WriteJSON(out, scan)
			case asYAML:
				return report.WriteYAML(out, scan)
			}
			_, _ = fmt.Fprintf(out, "%s via %s at %s\n\n", scan.Target, scan.Toolchain, scan.StartedAt.Local().Format(historyTimeLayout))
			return report.WriteTable(out, scan)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "YAML output")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func newHistoryRemoveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recorded scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			var removed string
			err = store.Update(func(cfg *config.Config) error {
				rec, ok := cfg.FindScan(args[0])
				if !ok {
					return fmt.Errorf("no unique scan matches %q", args[0])
				}
				cfg.RemoveScan(rec.ID)
				removed = rec.ID
				return nil
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", ids.Short(removed))
			return err
		},
	}
}

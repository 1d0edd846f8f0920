package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/domain-harvester/internal/domain"
)

// newCheckCmd creates the 'check' subcommand, which reports how URLs would be
// normalized and filtered without fetching anything.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>...",
		Short: "Shows the registrable domain and filter verdict for URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	rt, err := resolveRuntime(cmd.Context())
	if err != nil {
		return err
	}
	filter, err := domain.NewFilter(rt.cfg.Filter.AllowedSuffixes, rt.cfg.Filter.Excluded)
	if err != nil {
		return fmt.Errorf("domain filter: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "URL\tDOMAIN\tVERDICT")
	for _, raw := range args {
		d, err := domain.Normalize(raw)
		switch {
		case err != nil:
			fmt.Fprintf(tw, "%s\t-\tinvalid (%v)\n", raw, err)
		case filter.Accept(d):
			fmt.Fprintf(tw, "%s\t%s\taccepted\n", raw, d)
		default:
			fmt.Fprintf(tw, "%s\t%s\trejected\n", raw, d)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

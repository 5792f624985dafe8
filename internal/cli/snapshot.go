package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/cryptoboard/internal/cli/pagination"
	"github.com/rshade/cryptoboard/internal/config"
	"github.com/rshade/cryptoboard/internal/listing"
	"github.com/rshade/cryptoboard/internal/logging"
	"github.com/rshade/cryptoboard/internal/refresh"
	"github.com/rshade/cryptoboard/internal/report"
	"github.com/rshade/cryptoboard/internal/tui"
)

// snapshotParams holds the snapshot command flags.
type snapshotParams struct {
	sort   string
	search string
	output string
	plain  bool
	page   pagination.Params
}

// NewSnapshotCmd creates the snapshot command, a single fetch rendered to stdout.
func NewSnapshotCmd() *cobra.Command {
	var params snapshotParams

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current market list once and exit",
		Long: `Fetches the market list once, applies the sort and search, and prints it.

Sort fields: rank, name, price, change_24h, volume, market_cap. The
order suffix is :asc (default) or :desc. The search matches the asset name
case-insensitively.`,
		Example: `  # Top movers first
  cryptoboard snapshot --sort change_24h:desc

  # Only assets whose name contains "bit"
  cryptoboard snapshot --search bit

  # Machine-readable output
  cryptoboard snapshot --output json

  # Second page of ten
  cryptoboard snapshot --page 2 --page-size 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.sort, "sort", "",
		"sort expression field[:asc|desc] (default from display.default_sort)")
	cmd.Flags().StringVar(&params.search, "search", "", "filter by asset name (case-insensitive)")
	cmd.Flags().StringVar(&params.output, "output", report.FormatTable, "output format: table or json")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "disable colors and borders")
	params.page.AddFlags(cmd)

	return cmd
}

func runSnapshot(cmd *cobra.Command, params snapshotParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	if params.output != report.FormatTable && params.output != report.FormatJSON {
		return fmt.Errorf("unsupported output format: %s", params.output)
	}
	if err := params.page.Validate(); err != nil {
		return err
	}

	expr := params.sort
	if expr == "" {
		expr = cfg.Display.DefaultSort
	}
	spec, err := listing.ParseSortExpression(expr)
	if err != nil {
		return fmt.Errorf("invalid sort %q: %w", expr, err)
	}

	assets, err := newMarketClient(cfg).FetchAssets(ctx)
	if err != nil {
		log.Error().Err(err).Str("base_url", cfg.API.BaseURL).Msg("snapshot fetch failed")
		return fmt.Errorf("%s: %w", refresh.FailureMessage, err)
	}

	rows := listing.Derive(assets, spec, params.search)
	snap := report.Snapshot{
		LastUpdated: time.Now(),
		Sort:        spec,
		Search:      params.search,
		Total:       len(assets),
		Assets:      rows,
	}
	if params.page.Active() {
		meta := pagination.NewMeta(params.page, len(rows))
		snap.Pagination = &meta
		snap.Assets = pagination.Apply(params.page, rows)
	}

	log.Debug().
		Int("fetched", len(assets)).
		Int("matched", len(rows)).
		Int("shown", len(snap.Assets)).
		Str("sort", spec.String()).
		Msg("snapshot derived")

	styled := tui.DetectOutputMode(params.plain, true) == tui.OutputModeStyled
	return report.Render(cmd.OutOrStdout(), params.output, styled, snap)
}

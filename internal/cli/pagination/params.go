package pagination

import (
	"errors"

	"github.com/spf13/cobra"
)

// Flag names registered by AddFlags.
const (
	FlagLimit    = "limit"
	FlagOffset   = "offset"
	FlagPage     = "page"
	FlagPageSize = "page-size"
)

// Validation errors.
var (
	ErrNegative             = errors.New("pagination values cannot be negative")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset/--limit) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
	ErrPageWithoutPageSize  = errors.New("--page requires --page-size to be set")
)

// Params holds the pagination flags.
type Params struct {
	Limit    int // 0 means no limit
	Offset   int
	Page     int // 1-based; 0 disables page mode
	PageSize int
}

// AddFlags registers the pagination flags on cmd, bound to p.
func (p *Params) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, FlagLimit, 0, "maximum number of assets to print (0 = all)")
	cmd.Flags().IntVar(&p.Offset, FlagOffset, 0, "number of assets to skip")
	cmd.Flags().IntVar(&p.Page, FlagPage, 0, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, FlagPageSize, 0, "assets per page")
}

// Validate checks that the values are non-negative and that only one mode is used.
func (p Params) Validate() error {
	if p.Limit < 0 || p.Offset < 0 || p.Page < 0 || p.PageSize < 0 {
		return ErrNegative
	}
	if p.Page > 0 && (p.Offset > 0 || p.Limit > 0) {
		return ErrMixedPaginationModes
	}
	if p.PageSize > 0 && p.Page == 0 {
		return ErrPageSizeWithoutPage
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutPageSize
	}
	return nil
}

// IsPageBased reports whether page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// Active reports whether any pagination was requested.
func (p Params) Active() bool {
	return p.Page > 0 || p.Limit > 0 || p.Offset > 0
}

// window returns the half-open index range selected from total items.
// A page past the end is clamped to the last page.
func (p Params) window(total int) (int, int) {
	start, size := p.Offset, p.Limit
	if p.IsPageBased() {
		size = p.PageSize
		start = (p.Page - 1) * p.PageSize
		if start >= total && total > 0 {
			start = ((total - 1) / size) * size
		}
	}

	start = min(start, total)
	end := total
	if size > 0 {
		end = min(start+size, total)
	}
	return start, end
}

// Apply returns the window of items selected by p.
func Apply[T any](p Params, items []T) []T {
	start, end := p.window(len(items))
	return items[start:end]
}

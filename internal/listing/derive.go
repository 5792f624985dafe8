package listing

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/cryptoboard/internal/market"
)

// DefaultLanguage is the collation locale for textual columns.
//
//nolint:gochecknoglobals // language.Tag values are not constants.
var DefaultLanguage = language.MustParse("pt-PT")

// compareFunc orders two assets by one column.
type compareFunc func(a, b market.Asset) int

// numericComparators maps each numeric column to its field comparator.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var numericComparators = map[SortKey]compareFunc{
	SortRank: func(a, b market.Asset) int {
		return cmp.Compare(a.MarketCapRank, b.MarketCapRank)
	},
	SortPrice: func(a, b market.Asset) int {
		return cmp.Compare(a.CurrentPrice, b.CurrentPrice)
	},
	SortChange24h: func(a, b market.Asset) int {
		return cmp.Compare(a.PriceChangePercentage24h, b.PriceChangePercentage24h)
	},
	SortVolume: func(a, b market.Asset) int {
		return cmp.Compare(a.TotalVolume, b.TotalVolume)
	},
	SortMarketCap: func(a, b market.Asset) int {
		return cmp.Compare(a.MarketCap, b.MarketCap)
	},
}

// Deriver produces table rows. It owns a collator, so a Deriver must not be
// shared between goroutines; the dashboard keeps one per model.
type Deriver struct {
	collator *collate.Collator
}

// NewDeriver creates a Deriver collating names in the given language.
func NewDeriver(tag language.Tag) *Deriver {
	return &Deriver{collator: collate.New(tag)}
}

// Derive sorts then filters with a fresh default-language Deriver.
func Derive(assets []market.Asset, spec SortSpec, search string) []market.Asset {
	return NewDeriver(DefaultLanguage).Derive(assets, spec, search)
}

// Derive returns a new slice: assets sorted by spec (stable), then filtered to
// names containing search, ignoring case. assets is not modified.
func (d *Deriver) Derive(assets []market.Asset, spec SortSpec, search string) []market.Asset {
	return Filter(d.Sort(assets, spec), search)
}

// Sort returns a stably sorted copy of assets. SortNone returns a copy in input order.
func (d *Deriver) Sort(assets []market.Asset, spec SortSpec) []market.Asset {
	sorted := slices.Clone(assets)
	if sorted == nil {
		sorted = []market.Asset{}
	}

	compare := d.comparator(spec.Key)
	if compare == nil {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b market.Asset) int {
		if spec.Direction == Descending {
			return -compare(a, b)
		}
		return compare(a, b)
	})
	return sorted
}

func (d *Deriver) comparator(key SortKey) compareFunc {
	if key.Textual() {
		return func(a, b market.Asset) int {
			return d.collator.CompareString(a.Name, b.Name)
		}
	}
	return numericComparators[key]
}

// Filter keeps assets whose name contains search, case-insensitively.
// An empty search keeps every asset. Order is preserved.
func Filter(assets []market.Asset, search string) []market.Asset {
	query := strings.ToLower(search)
	if query == "" {
		return assets
	}

	filtered := make([]market.Asset, 0, len(assets))
	for _, a := range assets {
		if strings.Contains(strings.ToLower(a.Name), query) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
